// Copyright 2024 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package fpenv

// HostSupported is true when the Host profile is available.
const HostSupported = true

// MXCSR layout.
const (
	mxcsrIE   = 1 << 0
	mxcsrDE   = 1 << 1
	mxcsrZE   = 1 << 2
	mxcsrOE   = 1 << 3
	mxcsrUE   = 1 << 4
	mxcsrPE   = 1 << 5
	mxcsrMask = 0x1F80 // all exceptions masked, DAZ and FTZ off
	mxcsrRC   = 13
)

// hostControl returns the MXCSR value selecting rm.
func hostControl(rm RoundingMode) uint32 {
	rc := uint32(0)
	switch rm {
	case RDN:
		rc = 1
	case RUP:
		rc = 2
	case RTZ:
		rc = 3
	}
	return mxcsrMask | rc<<mxcsrRC
}

// hostFlags maps the MXCSR status bits.
func hostFlags(st uint64) Flags {
	var f Flags
	if st&mxcsrIE != 0 {
		f |= Invalid
	}
	if st&mxcsrDE != 0 {
		f |= Denormal
	}
	if st&mxcsrZE != 0 {
		f |= DivideByZero
	}
	if st&mxcsrOE != 0 {
		f |= Overflow
	}
	if st&mxcsrUE != 0 {
		f |= Underflow
	}
	if st&mxcsrPE != 0 {
		f |= Inexact
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
