// Copyright 2024 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package fpenv

import (
	"fmt"
	"strings"
)

// Flags is a set of IEEE 754 exception flags.
//
// The bit values match the RISC-V fflags CSR layout, which is also how the
// probes report them.
type Flags uint8

const (
	Inexact      Flags = 0x01 // NX
	Underflow    Flags = 0x02 // UF
	Overflow     Flags = 0x04 // OF
	DivideByZero Flags = 0x08 // DZ
	Invalid      Flags = 0x10 // NV

	// Denormal is raised by some processors when an operand is subnormal. It
	// is not an IEEE 754 flag and only the Host profile reports it.
	Denormal Flags = 0x20 // DE

	// AllFlags is the five standard flags.
	AllFlags = Invalid | DivideByZero | Overflow | Underflow | Inexact
)

var flagNames = []struct {
	f    Flags
	name string
}{
	{Invalid, "NV"},
	{DivideByZero, "DZ"},
	{Overflow, "OF"},
	{Underflow, "UF"},
	{Inexact, "NX"},
	{Denormal, "DE"},
}

// Has returns true if every flag in x is set.
func (f Flags) Has(x Flags) bool {
	return f&x == x
}

// Valid returns false if a bit outside of the five standard flags is set.
func (f Flags) Valid() bool {
	return f&^AllFlags == 0
}

// String returns the flags as "NV|NX", or "-" when empty. Unknown bits are
// appended in hex.
func (f Flags) String() string {
	if f == 0 {
		return "-"
	}
	var parts []string
	for _, n := range flagNames {
		if f&n.f != 0 {
			parts = append(parts, n.name)
		}
	}
	if extra := f &^ (AllFlags | Denormal); extra != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint8(extra)))
	}
	return strings.Join(parts, "|")
}
