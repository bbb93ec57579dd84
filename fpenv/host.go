// Copyright 2024 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package fpenv

import "github.com/maruel/fpprobe/fpbits"

// The host routines are implemented in assembly. Each one saves the control
// register, loads csr with every status bit lowered, runs a single
// instruction, reads back the status register and restores the caller's
// control register. They don't call anything so the goroutine cannot be
// rescheduled in between.

type hostBinary func(a, b, csr uint32) (r, st uint32)

type hostUnary func(a, csr uint32) (r, st uint32)

func (e *Env) host2(fn hostBinary, a, b fpbits.F32) uint32 {
	r, st := fn(uint32(a), uint32(b), hostControl(e.mode()))
	e.flags |= hostFlags(uint64(st))
	return r
}

func (e *Env) host1(fn hostUnary, a fpbits.F32) uint32 {
	r, st := fn(uint32(a), hostControl(e.mode()))
	e.flags |= hostFlags(uint64(st))
	return r
}

func (e *Env) hostCompare(c Cond, a, b fpbits.F32) bool {
	switch c {
	case Lt:
		return e.host2(hostLt32, a, b) != 0
	case Le:
		return e.host2(hostLe32, a, b) != 0
	default:
		return e.host2(hostEq32, a, b) != 0
	}
}

func (e *Env) widenHost(a fpbits.F32) fpbits.F64 {
	r, st := hostWiden(uint32(a), hostControl(e.mode()))
	e.flags |= hostFlags(st)
	return fpbits.F64(r)
}

// softOnly panics when e is a Host environment. name is the operation that
// has no assembly routine.
func (e *Env) softOnly(name string) {
	if e.Profile == Host {
		panic("fpenv: " + name + " has no host implementation")
	}
}
