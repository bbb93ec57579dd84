// Copyright 2024 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package fpenv

// HostSupported is true when the Host profile is available.
const HostSupported = true

// FPSR cumulative bits.
const (
	fpsrIOC = 1 << 0
	fpsrDZC = 1 << 1
	fpsrOFC = 1 << 2
	fpsrUFC = 1 << 3
	fpsrIXC = 1 << 4
	fpsrIDC = 1 << 7 // only set with FPCR.FZ, which is never enabled
)

// hostControl returns the FPCR value selecting rm. Traps, flush-to-zero and
// default NaN are all off.
func hostControl(rm RoundingMode) uint32 {
	rmode := uint32(0)
	switch rm {
	case RUP:
		rmode = 1
	case RDN:
		rmode = 2
	case RTZ:
		rmode = 3
	}
	return rmode << 22
}

// hostFlags maps the FPSR cumulative bits.
func hostFlags(st uint64) Flags {
	var f Flags
	if st&fpsrIOC != 0 {
		f |= Invalid
	}
	if st&fpsrDZC != 0 {
		f |= DivideByZero
	}
	if st&fpsrOFC != 0 {
		f |= Overflow
	}
	if st&fpsrUFC != 0 {
		f |= Underflow
	}
	if st&fpsrIXC != 0 {
		f |= Inexact
	}
	if st&fpsrIDC != 0 {
		f |= Denormal
	}
	return f
}

func hostAdd32(a, b, csr uint32) (r, st uint32)
func hostSub32(a, b, csr uint32) (r, st uint32)
func hostMul32(a, b, csr uint32) (r, st uint32)
func hostDiv32(a, b, csr uint32) (r, st uint32)
func hostMin32(a, b, csr uint32) (r, st uint32)
func hostMax32(a, b, csr uint32) (r, st uint32)
func hostEq32(a, b, csr uint32) (r, st uint32)
func hostLt32(a, b, csr uint32) (r, st uint32)
func hostLe32(a, b, csr uint32) (r, st uint32)
func hostSqrt32(a, csr uint32) (r, st uint32)
func hostToInt32(a, csr uint32) (r, st uint32)
func hostWiden(a, csr uint32) (r, st uint64)
