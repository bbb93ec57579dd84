// Copyright 2024 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package fpenv

import (
	"math"
	"math/big"

	"github.com/maruel/fpprobe/fpbits"
)

// workPrec is large enough to hold the exact sum of any two binary64 values,
// or a fused a*b+c.
const workPrec = 4096

// unpack returns the integer significand and exponent so that
// |b| = m * 2^exp. b must be finite.
func unpack(f fpbits.Format, b uint64) (uint64, int) {
	_, exponent, fraction := f.Components(b)
	if exponent == 0 {
		return fraction, f.MinExponent() - int(f.ExponentOffset)
	}
	return fraction | 1<<f.ExponentOffset, int(exponent) - f.ExponentBias - int(f.ExponentOffset)
}

// exact returns the value of the finite bit pattern b.
func exact(f fpbits.Format, b uint64) *big.Float {
	m, exp := unpack(f, b)
	x := new(big.Float).SetPrec(workPrec).SetUint64(m)
	x.SetMantExp(x, exp)
	if f.IsNeg(b) {
		x.Neg(x)
	}
	return x
}

// fromInt returns n * 2^exp, negated if neg. n must be positive.
//
// When sticky is set the true value lies strictly between n and n+1 units;
// an extra low bit is appended so rounding to a narrower precision sees it
// (round to odd).
func fromInt(n *big.Int, exp int, neg, sticky bool) *big.Float {
	if sticky {
		n = new(big.Int).Lsh(n, 1)
		n.SetBit(n, 0, 1)
		exp--
	}
	x := new(big.Float).SetPrec(workPrec).SetInt(n)
	x.SetMantExp(x, exp)
	if neg {
		x.Neg(x)
	}
	return x
}

// round returns x rounded to the format with the environment's rounding
// mode, raising Inexact, Underflow and Overflow.
//
// x must be finite and not zero. Tininess is detected after rounding and
// Underflow is only raised when the result is also inexact.
func (e *Env) round(f fpbits.Format, x *big.Float) uint64 {
	rm := e.mode()
	mode := rm.bigMode()
	neg := x.Signbit()
	prec := int(f.Precision())

	// Tiny if the result, rounded to full precision with an unbounded exponent,
	// lies below the smallest normal.
	t := new(big.Float).SetPrec(uint(prec)).SetMode(mode).Set(x)
	tiny := t.MantExp(nil)-1 < f.MinExponent()

	// Precision available at x's magnitude, less than prec for subnormals.
	p := prec
	if exp := x.MantExp(nil) - 1; exp < f.MinExponent() {
		p -= f.MinExponent() - exp
	}
	if p <= 0 {
		// |x| is below the smallest subnormal; the result is either zero or the
		// smallest subnormal.
		e.Raise(Underflow | Inexact)
		if e.roundsUpTiny(f, x, rm, neg) {
			return f.Zero(neg) | 1
		}
		return f.Zero(neg)
	}

	r := new(big.Float).SetPrec(uint(p)).SetMode(mode).Set(x)
	inexact := r.Acc() != big.Exact
	if r.MantExp(nil)-1 > f.MaxExponent() {
		e.Raise(Overflow | Inexact)
		if overflowsToInf(rm, neg) {
			return f.Inf(neg)
		}
		return f.MaxFinite(neg)
	}
	if inexact {
		e.Raise(Inexact)
		if tiny {
			e.Raise(Underflow)
		}
	}
	return encode(f, r)
}

// roundsUpTiny returns true when x, smaller in magnitude than the smallest
// subnormal, rounds away from zero to it.
func (e *Env) roundsUpTiny(f fpbits.Format, x *big.Float, rm RoundingMode, neg bool) bool {
	switch rm {
	case RTZ:
		return false
	case RUP:
		return !neg
	case RDN:
		return neg
	}
	// Half of the smallest subnormal.
	half := new(big.Float).SetMantExp(big.NewFloat(1), f.MinExponent()-int(f.ExponentOffset)-1)
	c := new(big.Float).Abs(x).Cmp(half)
	if rm == RMM {
		return c >= 0
	}
	// A tie rounds to the even zero.
	return c > 0
}

func overflowsToInf(rm RoundingMode, neg bool) bool {
	switch rm {
	case RTZ:
		return false
	case RUP:
		return !neg
	case RDN:
		return neg
	default:
		return true
	}
}

// encode returns the bit pattern of r, which must be exactly representable.
func encode(f fpbits.Format, r *big.Float) uint64 {
	if f.Width == fpbits.W32 {
		v, _ := r.Float32()
		return uint64(math.Float32bits(v))
	}
	v, _ := r.Float64()
	return math.Float64bits(v)
}

// exactZero returns the zero produced when adding two values whose exact sum
// is zero. Both addends zero with the same sign keep that sign; any other
// cancellation is +0, or -0 when rounding down.
func (e *Env) exactZero(f fpbits.Format, bothZero, na, nb bool) uint64 {
	if bothZero && na == nb {
		return f.Zero(na)
	}
	return f.Zero(e.mode() == RDN)
}
