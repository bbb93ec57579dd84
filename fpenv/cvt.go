// Copyright 2024 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package fpenv

import (
	"math/big"

	"github.com/maruel/fpprobe/fpbits"
)

// IntKind is an integer conversion target or source.
type IntKind uint8

const (
	Int32 IntKind = iota
	Uint32
	Int64
	Uint64
)

func (k IntKind) bits() uint {
	if k == Int32 || k == Uint32 {
		return 32
	}
	return 64
}

func (k IntKind) signed() bool {
	return k == Int32 || k == Int64
}

// bounds returns the smallest and largest representable values.
func (k IntKind) bounds() (*big.Int, *big.Int) {
	n := k.bits()
	if k.signed() {
		hi := new(big.Int).Lsh(big.NewInt(1), n-1)
		lo := new(big.Int).Neg(hi)
		return lo, hi.Sub(hi, big.NewInt(1))
	}
	hi := new(big.Int).Lsh(big.NewInt(1), n)
	return new(big.Int), hi.Sub(hi, big.NewInt(1))
}

// truncate returns the two's complement pattern of v in k's width.
func (k IntKind) truncate(v *big.Int) uint64 {
	if k.signed() {
		u := uint64(v.Int64())
		if k.bits() == 32 {
			u &= 0xFFFFFFFF
		}
		return u
	}
	return v.Uint64()
}

// invalidInt returns the result of an invalid conversion.
func (e *Env) invalidInt(k IntKind, nan, neg bool) uint64 {
	e.Raise(Invalid)
	lo, hi := k.bounds()
	if e.Profile == X86SSE {
		// The "integer indefinite" value.
		if k.signed() {
			return k.truncate(lo)
		}
		return k.truncate(hi)
	}
	if neg && !nan {
		return k.truncate(lo)
	}
	return k.truncate(hi)
}

// roundToInt rounds x to an integer with rm. It returns false when the
// result is not exact.
func roundToInt(x *big.Float, rm RoundingMode) (*big.Int, bool) {
	t, acc := x.Int(nil)
	if acc == big.Exact {
		return t, true
	}
	neg := x.Sign() < 0
	frac := new(big.Float).SetPrec(workPrec).Sub(x, new(big.Float).SetPrec(workPrec).SetInt(t))
	c := frac.Abs(frac).Cmp(big.NewFloat(0.5))
	away := false
	switch rm {
	case RNE:
		away = c > 0 || (c == 0 && new(big.Int).Abs(t).Bit(0) == 1)
	case RMM:
		away = c >= 0
	case RDN:
		away = neg
	case RUP:
		away = !neg
	}
	if away {
		if neg {
			t.Sub(t, big.NewInt(1))
		} else {
			t.Add(t, big.NewInt(1))
		}
	}
	return t, false
}

func (e *Env) floatToInt(f fpbits.Format, a uint64, k IntKind) uint64 {
	neg := f.IsNeg(a)
	if f.IsNaN(a) {
		return e.invalidInt(k, true, neg)
	}
	if f.IsInf(a) {
		return e.invalidInt(k, false, neg)
	}
	v, ok := roundToInt(exact(f, a), e.mode())
	if lo, hi := k.bounds(); v.Cmp(lo) < 0 || v.Cmp(hi) > 0 {
		return e.invalidInt(k, false, neg)
	}
	if !ok {
		e.Raise(Inexact)
	}
	return k.truncate(v)
}

func (e *Env) intToFloat(f fpbits.Format, v uint64, k IntKind) uint64 {
	var n *big.Int
	switch k {
	case Int32:
		n = big.NewInt(int64(int32(v)))
	case Uint32:
		n = new(big.Int).SetUint64(v & 0xFFFFFFFF)
	case Int64:
		n = big.NewInt(int64(v))
	default:
		n = new(big.Int).SetUint64(v)
	}
	if n.Sign() == 0 {
		return f.Zero(false)
	}
	x := new(big.Float).SetPrec(workPrec).SetInt(n)
	return e.round(f, x)
}

// ToInt32 converts a to an integer with the environment's rounding mode.
//
// The result is the two's complement pattern of the integer.
func (e *Env) ToInt32(k IntKind, a fpbits.F32) uint64 {
	if e.Profile == Host {
		if k != Int32 {
			panic("fpenv: ToInt32 only has a host implementation for Int32")
		}
		return uint64(e.host1(hostToInt32, a))
	}
	return e.floatToInt(fpbits.Binary32, uint64(a), k)
}

// ToInt64 converts a to an integer with the environment's rounding mode.
func (e *Env) ToInt64(k IntKind, a fpbits.F64) uint64 {
	e.softOnly("ToInt64")
	return e.floatToInt(fpbits.Binary64, uint64(a), k)
}

// FromInt32 converts the integer v, interpreted as k, to binary32.
func (e *Env) FromInt32(k IntKind, v uint64) fpbits.F32 {
	e.softOnly("FromInt32")
	return fpbits.F32(e.intToFloat(fpbits.Binary32, v, k))
}

// FromInt64 converts the integer v, interpreted as k, to binary64.
func (e *Env) FromInt64(k IntKind, v uint64) fpbits.F64 {
	e.softOnly("FromInt64")
	return fpbits.F64(e.intToFloat(fpbits.Binary64, v, k))
}

// Widen converts binary32 to binary64. Only a signaling NaN can raise.
func (e *Env) Widen(a fpbits.F32) fpbits.F64 {
	if e.Profile == Host {
		return e.widenHost(a)
	}
	f32, f64 := fpbits.Binary32, fpbits.Binary64
	b := uint64(a)
	switch {
	case f32.IsNaN(b):
		if f32.IsSignaling(b) {
			e.Raise(Invalid)
		}
		if e.Profile == X86SSE {
			sign := b >> f32.SignOffset << f64.SignOffset
			payload := (b | f32.QuietBit()) & f32.FractionMask()
			return fpbits.F64(sign | f64.Inf(false) | payload<<(f64.ExponentOffset-f32.ExponentOffset))
		}
		return fpbits.F64(canonicalNaN(f64))
	case f32.IsInf(b):
		return fpbits.F64(f64.Inf(f32.IsNeg(b)))
	case f32.IsZero(b):
		return fpbits.F64(f64.Zero(f32.IsNeg(b)))
	}
	return fpbits.F64(e.round(f64, exact(f32, b)))
}

// Narrow converts binary64 to binary32, rounding with the environment's
// mode.
func (e *Env) Narrow(a fpbits.F64) fpbits.F32 {
	e.softOnly("Narrow")
	f32, f64 := fpbits.Binary32, fpbits.Binary64
	b := uint64(a)
	switch {
	case f64.IsNaN(b):
		if f64.IsSignaling(b) {
			e.Raise(Invalid)
		}
		if e.Profile == X86SSE {
			sign := b >> f64.SignOffset << f32.SignOffset
			payload := b & f64.FractionMask() >> (f64.ExponentOffset - f32.ExponentOffset)
			return fpbits.F32(sign | f32.Inf(false) | f32.QuietBit() | payload)
		}
		return fpbits.F32(canonicalNaN(f32))
	case f64.IsInf(b):
		return fpbits.F32(f32.Inf(f64.IsNeg(b)))
	case f64.IsZero(b):
		return fpbits.F32(f32.Zero(f64.IsNeg(b)))
	}
	return fpbits.F32(e.round(f32, exact(f64, b)))
}
