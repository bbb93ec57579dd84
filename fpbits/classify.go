// Copyright 2024 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package fpbits

// Kind is the coarse category of a bit pattern.
type Kind uint8

const (
	// Number is any finite value: zero, subnormal or normal.
	Number Kind = iota
	Infinity
	QuietNaN
	SignalingNaN
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "Num"
	case Infinity:
		return "Inf"
	case QuietNaN:
		return "qNaN"
	case SignalingNaN:
		return "sNaN"
	default:
		return "Kind(?)"
	}
}

// Classification is the kind of a bit pattern and its sign bit.
//
// The sign of a NaN is reported verbatim even though IEEE 754 does not give it
// a meaning.
type Classification struct {
	Kind Kind
	Neg  bool
}

// IsNaN returns true for both quiet and signaling NaNs.
func (c Classification) IsNaN() bool {
	return c.Kind == QuietNaN || c.Kind == SignalingNaN
}

func (c Classification) String() string {
	if c.Neg {
		return "-" + c.Kind.String()
	}
	return "+" + c.Kind.String()
}

// Classify returns the classification of bits interpreted with width w.
//
// Bits above the width are ignored. It panics if w is not W32 or W64.
func Classify(bits uint64, w Width) Classification {
	f := w.Format()
	c := Classification{Neg: f.IsNeg(bits)}
	exponent := (bits >> f.ExponentOffset) & f.ExponentMask()
	fraction := bits & f.FractionMask()
	switch {
	case exponent != f.ExponentMask():
		c.Kind = Number
	case fraction == 0:
		c.Kind = Infinity
	case fraction&f.QuietBit() != 0:
		c.Kind = QuietNaN
	default:
		c.Kind = SignalingNaN
	}
	return c
}

// IsNaN is true when the exponent is all ones and the fraction is not zero.
func (f Format) IsNaN(b uint64) bool {
	expAllSet := b&(f.ExponentMask()<<f.ExponentOffset) == f.ExponentMask()<<f.ExponentOffset
	fracNotZero := b&f.FractionMask() != 0
	return expAllSet && fracNotZero
}

// IsQuiet is true when b is a NaN with the top fraction bit set.
func (f Format) IsQuiet(b uint64) bool {
	return f.IsNaN(b) && b&f.QuietBit() != 0
}

// IsSignaling is true when b is a NaN with the top fraction bit clear.
func (f Format) IsSignaling(b uint64) bool {
	return f.IsNaN(b) && b&f.QuietBit() == 0
}

// IsNeg is true when the sign bit is set, for any kind of value.
func (f Format) IsNeg(b uint64) bool {
	return b&f.SignBit() != 0
}

// IsInf is true for both infinities.
func (f Format) IsInf(b uint64) bool {
	return b&^f.SignBit()&f.Mask() == f.Inf(false)
}

// IsZero is true for both signed zeros.
func (f Format) IsZero(b uint64) bool {
	return b&^f.SignBit()&f.Mask() == 0
}

// Class is the one-hot category reported by the RISC-V fclass instruction.
//
// Unlike Kind it subdivides finite numbers, and the NaN bits do not carry the
// sign.
type Class uint16

const (
	ClassNegInf Class = 1 << iota
	ClassNegNormal
	ClassNegSubnormal
	ClassNegZero
	ClassPosZero
	ClassPosSubnormal
	ClassPosNormal
	ClassPosInf
	ClassSignalingNaN
	ClassQuietNaN
)

var classNames = [...]string{
	"-inf", "-normal", "-subnormal", "-zero", "+zero",
	"+subnormal", "+normal", "+inf", "snan", "qnan",
}

func (c Class) String() string {
	for i, n := range classNames {
		if c == 1<<i {
			return n
		}
	}
	return "Class(?)"
}

// ClassMask returns the fclass category of bits interpreted with width w.
func ClassMask(bits uint64, w Width) Class {
	f := w.Format()
	neg := f.IsNeg(bits)
	_, exponent, fraction := f.Components(bits)
	var c Class
	switch {
	case uint64(exponent) == f.ExponentMask() && fraction == 0:
		c = ClassPosInf
		if neg {
			c = ClassNegInf
		}
	case uint64(exponent) == f.ExponentMask():
		if fraction&f.QuietBit() != 0 {
			return ClassQuietNaN
		}
		return ClassSignalingNaN
	case exponent == 0 && fraction == 0:
		c = ClassPosZero
		if neg {
			c = ClassNegZero
		}
	case exponent == 0:
		c = ClassPosSubnormal
		if neg {
			c = ClassNegSubnormal
		}
	default:
		c = ClassPosNormal
		if neg {
			c = ClassNegNormal
		}
	}
	return c
}
