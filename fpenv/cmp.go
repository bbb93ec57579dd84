// Copyright 2024 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package fpenv

import "github.com/maruel/fpprobe/fpbits"

// Cond is a comparison predicate.
type Cond uint8

const (
	Eq Cond = iota // quiet
	Lt             // signaling
	Le             // signaling
)

// SignOp selects a sign-injection variant.
type SignOp uint8

const (
	SgnJ  SignOp = iota // sign of b
	SgnJN               // opposite sign of b
	SgnJX               // xor of both signs
)

// totalLess orders non-NaN values with -0 below +0.
func totalLess(f fpbits.Format, a, b uint64) bool {
	na, nb := f.IsNeg(a), f.IsNeg(b)
	ma, mb := a&^f.SignBit()&f.Mask(), b&^f.SignBit()&f.Mask()
	switch {
	case na != nb:
		return na
	case na:
		return ma > mb
	default:
		return ma < mb
	}
}

// numLess is the IEEE 754 less-than on non-NaN values; both zeros are equal.
func numLess(f fpbits.Format, a, b uint64) bool {
	if f.IsZero(a) && f.IsZero(b) {
		return false
	}
	return totalLess(f, a, b)
}

func numEqual(f fpbits.Format, a, b uint64) bool {
	return (f.IsZero(a) && f.IsZero(b)) || a&f.Mask() == b&f.Mask()
}

func (e *Env) minMax(f fpbits.Format, a, b uint64, isMax bool) uint64 {
	if e.Profile == X86SSE {
		// MINSS/MAXSS: dst = a < b ? a : b (resp. a > b), so a NaN or a pair of
		// zeros selects the second operand as is.
		if f.IsNaN(a) || f.IsNaN(b) {
			e.Raise(Invalid)
			return b
		}
		if isMax {
			if numLess(f, b, a) {
				return a
			}
			return b
		}
		if numLess(f, a, b) {
			return a
		}
		return b
	}
	if f.IsSignaling(a) || f.IsSignaling(b) {
		e.Raise(Invalid)
	}
	switch {
	case f.IsNaN(a) && f.IsNaN(b):
		return canonicalNaN(f)
	case f.IsNaN(a):
		return b
	case f.IsNaN(b):
		return a
	}
	if totalLess(f, a, b) == isMax {
		return b
	}
	return a
}

func (e *Env) compare(f fpbits.Format, a, b uint64, c Cond) bool {
	if f.IsNaN(a) || f.IsNaN(b) {
		if c != Eq || f.IsSignaling(a) || f.IsSignaling(b) {
			e.Raise(Invalid)
		}
		return false
	}
	switch c {
	case Eq:
		return numEqual(f, a, b)
	case Lt:
		return numLess(f, a, b)
	default:
		return numLess(f, a, b) || numEqual(f, a, b)
	}
}

// signInject never raises and never touches NaN payloads.
func signInject(f fpbits.Format, a, b uint64, op SignOp) uint64 {
	s := f.SignBit()
	switch op {
	case SgnJN:
		return a&^s | ^b&s
	case SgnJX:
		return a ^ b&s
	default:
		return a&^s | b&s
	}
}

func (e *Env) Min32(a, b fpbits.F32) fpbits.F32 {
	if e.Profile == Host {
		return fpbits.F32(e.host2(hostMin32, a, b))
	}
	return fpbits.F32(e.minMax(fpbits.Binary32, uint64(a), uint64(b), false))
}

func (e *Env) Max32(a, b fpbits.F32) fpbits.F32 {
	if e.Profile == Host {
		return fpbits.F32(e.host2(hostMax32, a, b))
	}
	return fpbits.F32(e.minMax(fpbits.Binary32, uint64(a), uint64(b), true))
}

func (e *Env) Compare32(c Cond, a, b fpbits.F32) bool {
	if e.Profile == Host {
		return e.hostCompare(c, a, b)
	}
	return e.compare(fpbits.Binary32, uint64(a), uint64(b), c)
}

func (e *Env) SignInject32(op SignOp, a, b fpbits.F32) fpbits.F32 {
	return fpbits.F32(signInject(fpbits.Binary32, uint64(a), uint64(b), op))
}

func (e *Env) Min64(a, b fpbits.F64) fpbits.F64 {
	e.softOnly("Min64")
	return fpbits.F64(e.minMax(fpbits.Binary64, uint64(a), uint64(b), false))
}

func (e *Env) Max64(a, b fpbits.F64) fpbits.F64 {
	e.softOnly("Max64")
	return fpbits.F64(e.minMax(fpbits.Binary64, uint64(a), uint64(b), true))
}

func (e *Env) Compare64(c Cond, a, b fpbits.F64) bool {
	e.softOnly("Compare64")
	return e.compare(fpbits.Binary64, uint64(a), uint64(b), c)
}

func (e *Env) SignInject64(op SignOp, a, b fpbits.F64) fpbits.F64 {
	return fpbits.F64(signInject(fpbits.Binary64, uint64(a), uint64(b), op))
}

// Class32 returns the fclass mask. It never raises.
func (e *Env) Class32(a fpbits.F32) fpbits.Class {
	return fpbits.ClassMask(uint64(a), fpbits.W32)
}

// Class64 returns the fclass mask. It never raises.
func (e *Env) Class64(a fpbits.F64) fpbits.Class {
	return fpbits.ClassMask(uint64(a), fpbits.W64)
}
