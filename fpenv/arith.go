// Copyright 2024 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package fpenv

import (
	"math/big"

	"github.com/maruel/fpprobe/fpbits"
)

// FusedOp selects the signs of a fused multiply-add.
type FusedOp uint8

const (
	MAdd  FusedOp = iota // a*b + c
	MSub                 // a*b - c
	NMSub                // -(a*b) + c
	NMAdd                // -(a*b) - c
)

func (e *Env) add(f fpbits.Format, a, b uint64, sub bool) uint64 {
	if r, ok := e.propagate(f, a, b); ok {
		return r
	}
	if sub {
		b ^= f.SignBit()
	}
	na, nb := f.IsNeg(a), f.IsNeg(b)
	switch {
	case f.IsInf(a) && f.IsInf(b) && na != nb:
		return e.invalid(f)
	case f.IsInf(a):
		return a
	case f.IsInf(b):
		return b
	}
	x := new(big.Float).SetPrec(workPrec).Add(exact(f, a), exact(f, b))
	if x.Sign() == 0 {
		return e.exactZero(f, f.IsZero(a) && f.IsZero(b), na, nb)
	}
	return e.round(f, x)
}

func (e *Env) mul(f fpbits.Format, a, b uint64) uint64 {
	if r, ok := e.propagate(f, a, b); ok {
		return r
	}
	neg := f.IsNeg(a) != f.IsNeg(b)
	switch {
	case f.IsInf(a) && f.IsZero(b), f.IsZero(a) && f.IsInf(b):
		return e.invalid(f)
	case f.IsInf(a), f.IsInf(b):
		return f.Inf(neg)
	case f.IsZero(a), f.IsZero(b):
		return f.Zero(neg)
	}
	x := new(big.Float).SetPrec(workPrec).Mul(exact(f, a), exact(f, b))
	return e.round(f, x)
}

func (e *Env) div(f fpbits.Format, a, b uint64) uint64 {
	if r, ok := e.propagate(f, a, b); ok {
		return r
	}
	neg := f.IsNeg(a) != f.IsNeg(b)
	switch {
	case f.IsInf(a) && f.IsInf(b), f.IsZero(a) && f.IsZero(b):
		return e.invalid(f)
	case f.IsInf(a):
		return f.Inf(neg)
	case f.IsInf(b):
		return f.Zero(neg)
	case f.IsZero(b):
		e.Raise(DivideByZero)
		return f.Inf(neg)
	case f.IsZero(a):
		return f.Zero(neg)
	}
	ma, ea := unpack(f, a)
	mb, eb := unpack(f, b)
	// Scale the dividend so the quotient keeps at least prec+2 bits even for
	// a subnormal dividend.
	shift := 2*int(f.Precision()) + 2
	n := new(big.Int).Lsh(new(big.Int).SetUint64(ma), uint(shift))
	q, r := new(big.Int).QuoRem(n, new(big.Int).SetUint64(mb), new(big.Int))
	return e.round(f, fromInt(q, ea-eb-shift, neg, r.Sign() != 0))
}

func (e *Env) sqrt(f fpbits.Format, a uint64) uint64 {
	if r, ok := e.propagate(f, a); ok {
		return r
	}
	switch {
	case f.IsZero(a):
		// sqrt(-0) is -0.
		return a
	case f.IsNeg(a):
		return e.invalid(f)
	case f.IsInf(a):
		return a
	}
	m, exp := unpack(f, a)
	shift := 2*int(f.Precision()) + 4
	if (exp-shift)%2 != 0 {
		shift++
	}
	n := new(big.Int).Lsh(new(big.Int).SetUint64(m), uint(shift))
	root := new(big.Int).Sqrt(n)
	rem := new(big.Int).Sub(n, new(big.Int).Mul(root, root))
	return e.round(f, fromInt(root, (exp-shift)/2, false, rem.Sign() != 0))
}

func (e *Env) fma(f fpbits.Format, a, b, c uint64, op FusedOp) uint64 {
	prodInvalid := (f.IsInf(a) && f.IsZero(b)) || (f.IsZero(a) && f.IsInf(b))
	if prodInvalid && e.Profile == RISCV {
		// 0*Inf is invalid even when the addend is a quiet NaN.
		if f.IsSignaling(c) {
			e.Raise(Invalid)
		}
		return e.invalid(f)
	}
	if r, ok := e.propagate(f, a, b, c); ok {
		return r
	}
	if prodInvalid {
		return e.invalid(f)
	}
	pn := f.IsNeg(a) != f.IsNeg(b)
	if op == NMSub || op == NMAdd {
		pn = !pn
	}
	if op == MSub || op == NMAdd {
		c ^= f.SignBit()
	}
	cn := f.IsNeg(c)
	switch {
	case f.IsInf(a) || f.IsInf(b):
		if f.IsInf(c) && cn != pn {
			return e.invalid(f)
		}
		return f.Inf(pn)
	case f.IsInf(c):
		return c
	}
	p := new(big.Float).SetPrec(workPrec).Mul(exact(f, a), exact(f, b))
	if p.Signbit() != pn {
		p.Neg(p)
	}
	x := new(big.Float).SetPrec(workPrec).Add(p, exact(f, c))
	if x.Sign() == 0 {
		return e.exactZero(f, p.Sign() == 0 && f.IsZero(c), pn, cn)
	}
	return e.round(f, x)
}

func (e *Env) Add32(a, b fpbits.F32) fpbits.F32 {
	if e.Profile == Host {
		return fpbits.F32(e.host2(hostAdd32, a, b))
	}
	return fpbits.F32(e.add(fpbits.Binary32, uint64(a), uint64(b), false))
}

func (e *Env) Sub32(a, b fpbits.F32) fpbits.F32 {
	if e.Profile == Host {
		return fpbits.F32(e.host2(hostSub32, a, b))
	}
	return fpbits.F32(e.add(fpbits.Binary32, uint64(a), uint64(b), true))
}

func (e *Env) Mul32(a, b fpbits.F32) fpbits.F32 {
	if e.Profile == Host {
		return fpbits.F32(e.host2(hostMul32, a, b))
	}
	return fpbits.F32(e.mul(fpbits.Binary32, uint64(a), uint64(b)))
}

func (e *Env) Div32(a, b fpbits.F32) fpbits.F32 {
	if e.Profile == Host {
		return fpbits.F32(e.host2(hostDiv32, a, b))
	}
	return fpbits.F32(e.div(fpbits.Binary32, uint64(a), uint64(b)))
}

func (e *Env) Sqrt32(a fpbits.F32) fpbits.F32 {
	if e.Profile == Host {
		return fpbits.F32(e.host1(hostSqrt32, a))
	}
	return fpbits.F32(e.sqrt(fpbits.Binary32, uint64(a)))
}

// Fused32 computes a fused multiply-add with a single rounding.
func (e *Env) Fused32(op FusedOp, a, b, c fpbits.F32) fpbits.F32 {
	e.softOnly("Fused32")
	return fpbits.F32(e.fma(fpbits.Binary32, uint64(a), uint64(b), uint64(c), op))
}

func (e *Env) Add64(a, b fpbits.F64) fpbits.F64 {
	e.softOnly("Add64")
	return fpbits.F64(e.add(fpbits.Binary64, uint64(a), uint64(b), false))
}

func (e *Env) Sub64(a, b fpbits.F64) fpbits.F64 {
	e.softOnly("Sub64")
	return fpbits.F64(e.add(fpbits.Binary64, uint64(a), uint64(b), true))
}

func (e *Env) Mul64(a, b fpbits.F64) fpbits.F64 {
	e.softOnly("Mul64")
	return fpbits.F64(e.mul(fpbits.Binary64, uint64(a), uint64(b)))
}

func (e *Env) Div64(a, b fpbits.F64) fpbits.F64 {
	e.softOnly("Div64")
	return fpbits.F64(e.div(fpbits.Binary64, uint64(a), uint64(b)))
}

func (e *Env) Sqrt64(a fpbits.F64) fpbits.F64 {
	e.softOnly("Sqrt64")
	return fpbits.F64(e.sqrt(fpbits.Binary64, uint64(a)))
}

// Fused64 computes a fused multiply-add with a single rounding.
func (e *Env) Fused64(op FusedOp, a, b, c fpbits.F64) fpbits.F64 {
	e.softOnly("Fused64")
	return fpbits.F64(e.fma(fpbits.Binary64, uint64(a), uint64(b), uint64(c), op))
}
