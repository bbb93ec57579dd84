// Copyright 2024 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package fpenv is a floating-point environment: sticky IEEE 754
// exception flags plus the single operations that raise them.
//
// An Env plays the role of a hart's fcsr or an x86 MXCSR register, except
// that it is a plain value owned by its caller instead of ambient per-thread
// state. Two Env never interact, so goroutines can measure independently as
// long as each uses its own. An Env is not safe for concurrent use.
//
// The RISCV and X86SSE profiles compute results and flags in software. The
// Host profile runs each operation on the processor: a single assembly
// routine loads the control register with all flags lowered, executes one
// instruction and stores the status register, and the status bits are
// accumulated in the Env.
package fpenv

import (
	"errors"
	"fmt"
	"math/big"
	"runtime"
	"strings"

	"github.com/maruel/fpprobe/fpbits"
)

var (
	ErrUnknownProfile  = errors.New("unknown profile")
	ErrUnknownRounding = errors.New("unknown rounding mode")
	// ErrNoHost is returned when the Host profile is requested on an
	// architecture without a hardware path.
	ErrNoHost = errors.New("no host floating-point support on " + runtime.GOARCH)
)

// Profile selects whose hardware behavior is reproduced where IEEE 754
// leaves room for implementation choices.
type Profile uint8

const (
	// RISCV follows the RISC-V F and D extensions: NaN results are always the
	// canonical NaN and min/max follow IEEE 754-2019 minimumNumber and
	// maximumNumber.
	RISCV Profile = iota
	// X86SSE follows SSE scalar instructions: NaN operands propagate quieted,
	// invalid operations return the negative default NaN, MINSS/MAXSS return
	// the second operand when either is NaN and raise Invalid for quiet NaNs.
	X86SSE
	// Host runs the operations on the processor executing the program and
	// reports the flags it raised, including non-standard ones like
	// Denormal. Only the binary32 arithmetic, comparison, Widen and Int32
	// conversion have a host path; the other operations panic.
	Host
)

func (p Profile) String() string {
	switch p {
	case RISCV:
		return "riscv"
	case X86SSE:
		return "x86"
	case Host:
		return "host"
	default:
		return fmt.Sprintf("Profile(%d)", uint8(p))
	}
}

// DefaultProfile returns Host when the processor is supported and RISCV
// otherwise.
func DefaultProfile() Profile {
	if HostSupported {
		return Host
	}
	return RISCV
}

// ParseProfile parses the value returned by Profile.String.
func ParseProfile(s string) (Profile, error) {
	switch strings.ToLower(s) {
	case "riscv", "rv":
		return RISCV, nil
	case "x86", "sse", "x86sse":
		return X86SSE, nil
	case "host", "hw":
		if !HostSupported {
			return 0, ErrNoHost
		}
		return Host, nil
	default:
		return 0, fmt.Errorf("%w %q", ErrUnknownProfile, s)
	}
}

// RoundingMode is one of the IEEE 754 rounding-direction attributes.
type RoundingMode uint8

const (
	RNE RoundingMode = iota // to nearest, ties to even
	RTZ                     // toward zero
	RDN                     // toward negative infinity
	RUP                     // toward positive infinity
	RMM                     // to nearest, ties away from zero
)

var roundingNames = [...]string{"rne", "rtz", "rdn", "rup", "rmm"}

func (r RoundingMode) String() string {
	if int(r) < len(roundingNames) {
		return roundingNames[r]
	}
	return fmt.Sprintf("RoundingMode(%d)", uint8(r))
}

// ParseRoundingMode parses the value returned by RoundingMode.String.
func ParseRoundingMode(s string) (RoundingMode, error) {
	for i, n := range roundingNames {
		if strings.EqualFold(s, n) {
			return RoundingMode(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownRounding, s)
}

func (r RoundingMode) bigMode() big.RoundingMode {
	switch r {
	case RTZ:
		return big.ToZero
	case RDN:
		return big.ToNegativeInf
	case RUP:
		return big.ToPositiveInf
	case RMM:
		return big.ToNearestAway
	default:
		return big.ToNearestEven
	}
}

// Env is a floating-point environment.
//
// The zero value is a RISCV environment rounding to nearest even with no flag
// raised.
type Env struct {
	Profile  Profile
	Rounding RoundingMode

	flags Flags
}

// New returns an environment for the profile, rounding to nearest even.
func New(p Profile) *Env {
	return &Env{Profile: p}
}

// Clear lowers all the sticky flags.
func (e *Env) Clear() {
	e.flags = 0
}

// Flags returns the sticky flags raised since the last Clear.
func (e *Env) Flags() Flags {
	return e.flags
}

// Raise sets flags. They stay set until Clear.
func (e *Env) Raise(f Flags) {
	e.flags |= f
}

// mode is the rounding mode actually applied.
func (e *Env) mode() RoundingMode {
	// SSE has no ties-away mode; MXCSR.RC and FPCR.RMode only encode four
	// directions.
	if e.Profile != RISCV && e.Rounding == RMM {
		return RNE
	}
	return e.Rounding
}

// Measure clears the sticky flags of e, runs op once and returns its result
// with the flags it raised.
//
// Nothing else may use e while Measure runs.
func Measure[B ~uint32 | ~uint64](e *Env, op func(*Env) B) (B, Flags) {
	e.Clear()
	r := op(e)
	return r, e.Flags()
}

// canonicalNaN is the positive quiet NaN with an empty payload.
func canonicalNaN(f fpbits.Format) uint64 {
	return f.Inf(false) | f.QuietBit()
}

// defaultNaN is the NaN returned by invalid operations without NaN operands.
func (e *Env) defaultNaN(f fpbits.Format) uint64 {
	if e.Profile == X86SSE {
		// The "real indefinite" QNaN.
		return f.Inf(true) | f.QuietBit()
	}
	return canonicalNaN(f)
}

// quiet returns the NaN that propagates from the NaN operand b.
func (e *Env) quiet(f fpbits.Format, b uint64) uint64 {
	if e.Profile == X86SSE {
		return b | f.QuietBit()
	}
	return canonicalNaN(f)
}

// invalid raises Invalid and returns the default NaN.
func (e *Env) invalid(f fpbits.Format) uint64 {
	e.Raise(Invalid)
	return e.defaultNaN(f)
}

// propagate raises Invalid for signaling NaN operands and, if any operand is
// a NaN, returns the NaN result.
func (e *Env) propagate(f fpbits.Format, ops ...uint64) (uint64, bool) {
	for _, b := range ops {
		if f.IsSignaling(b) {
			e.Raise(Invalid)
			break
		}
	}
	for _, b := range ops {
		if f.IsNaN(b) {
			return e.quiet(f, b), true
		}
	}
	return 0, false
}
