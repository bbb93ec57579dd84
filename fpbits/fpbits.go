// Copyright 2024 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package fpbits inspects the raw bit patterns of IEEE 754 binary32 and
// binary64 values.
//
// Values are never decoded through a float to be inspected; everything is
// done with masks and shifts on the bit pattern so that NaN payloads and
// signs are observed exactly as stored.
package fpbits

import (
	"fmt"
	"math"
)

const (
	// https://en.wikipedia.org/wiki/Single-precision_floating-point_format
	f32SignOffset     = 31
	f32ExponentOffset = 23
	f32ExponentBias   = 127

	// https://en.wikipedia.org/wiki/Double-precision_floating-point_format
	f64SignOffset     = 63
	f64ExponentOffset = 52
	f64ExponentBias   = 1023
)

// Width is the storage size in bits of a binary interchange format.
type Width uint8

const (
	W32 Width = 32
	W64 Width = 64
)

// Format returns the field layout for the width.
//
// It panics on anything else than W32 or W64.
func (w Width) Format() Format {
	switch w {
	case W32:
		return Binary32
	case W64:
		return Binary64
	default:
		panic(fmt.Sprintf("fpbits: unsupported width %d", w))
	}
}

// Format describes the field layout of a binary interchange format.
type Format struct {
	Width Width
	// SignOffset is the bit index of the sign bit.
	SignOffset uint
	// ExponentOffset is the bit index of the exponent's lowest bit. It is also
	// the number of fraction bits.
	ExponentOffset uint
	ExponentBias   int
}

var (
	// Binary32 is the IEEE 754 single precision layout.
	Binary32 = Format{Width: W32, SignOffset: f32SignOffset, ExponentOffset: f32ExponentOffset, ExponentBias: f32ExponentBias}
	// Binary64 is the IEEE 754 double precision layout.
	Binary64 = Format{Width: W64, SignOffset: f64SignOffset, ExponentOffset: f64ExponentOffset, ExponentBias: f64ExponentBias}
)

// Mask returns the mask of all the bits of the format.
func (f Format) Mask() uint64 {
	return f.SignBit()<<1 - 1
}

// SignBit returns the mask of the sign bit.
func (f Format) SignBit() uint64 {
	return 1 << f.SignOffset
}

// ExponentMask returns the all-ones exponent field, right aligned.
func (f Format) ExponentMask() uint64 {
	return (1 << (f.SignOffset - f.ExponentOffset)) - 1
}

// FractionMask returns the mask of the fraction field.
func (f Format) FractionMask() uint64 {
	return (1 << f.ExponentOffset) - 1
}

// QuietBit returns the mask of the most significant fraction bit, which
// discriminates quiet from signaling NaNs.
func (f Format) QuietBit() uint64 {
	return 1 << (f.ExponentOffset - 1)
}

// Precision is the number of significand bits, including the implicit one.
func (f Format) Precision() uint {
	return f.ExponentOffset + 1
}

// MinExponent is the unbiased exponent of the smallest normal number.
func (f Format) MinExponent() int {
	return 1 - f.ExponentBias
}

// MaxExponent is the unbiased exponent of the largest finite number.
func (f Format) MaxExponent() int {
	return f.ExponentBias
}

// Inf returns the infinity of the requested sign.
func (f Format) Inf(neg bool) uint64 {
	b := f.ExponentMask() << f.ExponentOffset
	if neg {
		b |= f.SignBit()
	}
	return b
}

// MaxFinite returns the largest finite magnitude of the requested sign.
func (f Format) MaxFinite(neg bool) uint64 {
	return f.Inf(neg) - 1
}

// Zero returns the signed zero.
func (f Format) Zero(neg bool) uint64 {
	if neg {
		return f.SignBit()
	}
	return 0
}

// Components returns the sign, exponent and fraction fields separated.
func (f Format) Components(b uint64) (uint8, uint16, uint64) {
	sign := (b >> f.SignOffset) & 1
	exponent := (b >> f.ExponentOffset) & f.ExponentMask()
	fraction := b & f.FractionMask()
	return uint8(sign), uint16(exponent), fraction
}

// F32

// F32 is the bit pattern of a binary32 value.
type F32 uint32

// FromFloat32 reinterprets the storage of v.
func FromFloat32(v float32) F32 {
	return F32(math.Float32bits(v))
}

// Float32 reinterprets the bits as a float32.
func (f F32) Float32() float32 {
	return math.Float32frombits(uint32(f))
}

// Components returns the sign, exponent and fraction bits separated.
func (f F32) Components() (uint8, uint8, uint32) {
	const exponentMask = (1 << (f32SignOffset - f32ExponentOffset)) - 1
	const fractionMask = (1 << f32ExponentOffset) - 1
	sign := f >> f32SignOffset
	exponent := (f >> f32ExponentOffset) & exponentMask
	fraction := f & fractionMask
	return uint8(sign), uint8(exponent), uint32(fraction)
}

func (f F32) Classify() Classification { return Classify(uint64(f), W32) }
func (f F32) IsNaN() bool               { return Binary32.IsNaN(uint64(f)) }
func (f F32) IsQuiet() bool             { return Binary32.IsQuiet(uint64(f)) }
func (f F32) IsNeg() bool               { return Binary32.IsNeg(uint64(f)) }
func (f F32) IsInf() bool               { return Binary32.IsInf(uint64(f)) }

func (f F32) String() string {
	return fmt.Sprintf("0x%08x", uint32(f))
}

// F64

// F64 is the bit pattern of a binary64 value.
type F64 uint64

// FromFloat64 reinterprets the storage of v.
func FromFloat64(v float64) F64 {
	return F64(math.Float64bits(v))
}

// Float64 reinterprets the bits as a float64.
func (f F64) Float64() float64 {
	return math.Float64frombits(uint64(f))
}

// Components returns the sign, exponent and fraction bits separated.
func (f F64) Components() (uint8, uint16, uint64) {
	return Binary64.Components(uint64(f))
}

func (f F64) Classify() Classification { return Classify(uint64(f), W64) }
func (f F64) IsNaN() bool               { return Binary64.IsNaN(uint64(f)) }
func (f F64) IsQuiet() bool             { return Binary64.IsQuiet(uint64(f)) }
func (f F64) IsNeg() bool               { return Binary64.IsNeg(uint64(f)) }
func (f F64) IsInf() bool               { return Binary64.IsInf(uint64(f)) }

func (f F64) String() string {
	return fmt.Sprintf("0x%016x", uint64(f))
}
