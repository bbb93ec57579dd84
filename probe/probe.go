// Copyright 2024 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package probe runs one floating-point operation over a table of edge-case
// binary32 bit patterns and records each result with the exception flags it
// raised.
package probe

import (
	"errors"
	"fmt"
	"sort"

	"github.com/maruel/fpprobe/fpbits"
	"github.com/maruel/fpprobe/fpenv"
)

var (
	ErrUnknownOp = errors.New("unknown op")
	// ErrUnsupported is returned when running an operation on the host
	// profile that has no hardware routine.
	ErrUnsupported = errors.New("not supported on the host profile")
)

// Vector is a named binary32 test input.
type Vector struct {
	Name string
	Bits fpbits.F32
}

// Vectors is the default table, sorted from the negative quiet NaN to the
// positive one.
var Vectors = []Vector{
	{"-qNaN", 0xFFC00000},
	{"-sNaN", 0xFF800001},
	{"-Inf", 0xFF800000},
	{"-big", 0xFF7FFFFF},
	{"-1", 0xBF800000},
	{"-tiny", 0x80000001},
	{"-0", 0x80000000},
	{"0", 0x00000000},
	{"tiny", 0x00000001},
	{"1", 0x3F800000},
	{"big", 0x7F7FFFFF},
	{"Inf", 0x7F800000},
	{"sNaN", 0x7F800001},
	{"qNaN", 0x7FC00000},
}

// Result tells how to interpret the bits an Op returns.
type Result uint8

const (
	// Float is a binary32 or binary64 bit pattern, depending on Op.Width.
	Float Result = iota
	// Int is an integer: a boolean for comparisons or the two's complement
	// pattern of a conversion.
	Int
)

// Op is one operation that can be probed.
type Op struct {
	Name string
	// Arity is 1 or 2.
	Arity int
	// Width is the width of the result.
	Width  fpbits.Width
	Result Result
	// Signed is set when an Int result is a two's complement integer.
	Signed bool
	// Host is set when the operation can run on the fpenv.Host profile.
	Host bool

	eval func(e *fpenv.Env, a, b fpbits.F32) uint64
}

// Eval runs the operation on e. b is ignored for unary operations.
func (o *Op) Eval(e *fpenv.Env, a, b fpbits.F32) uint64 {
	return o.eval(e, a, b)
}

func (o *Op) String() string {
	return o.Name
}

func binary(name string, fn func(e *fpenv.Env, a, b fpbits.F32) fpbits.F32) *Op {
	return &Op{
		Name:  name,
		Arity: 2,
		Width: fpbits.W32,
		Host:  true,
		eval: func(e *fpenv.Env, a, b fpbits.F32) uint64 {
			return uint64(fn(e, a, b))
		},
	}
}

func compare(name string, c fpenv.Cond) *Op {
	return &Op{
		Name:   name,
		Arity:  2,
		Width:  fpbits.W32,
		Result: Int,
		Host:   true,
		eval: func(e *fpenv.Env, a, b fpbits.F32) uint64 {
			if e.Compare32(c, a, b) {
				return 1
			}
			return 0
		},
	}
}

func toInt(name string, k fpenv.IntKind) *Op {
	return &Op{
		Name:   name,
		Arity:  1,
		Width:  fpbits.W32,
		Result: Int,
		Signed: k == fpenv.Int32 || k == fpenv.Int64,
		Host:   k == fpenv.Int32,
		eval: func(e *fpenv.Env, a, _ fpbits.F32) uint64 {
			return e.ToInt32(k, a)
		},
	}
}

var ops = map[string]*Op{}

func register(o *Op) {
	if _, ok := ops[o.Name]; ok {
		panic("duplicate op " + o.Name)
	}
	ops[o.Name] = o
}

func init() {
	register(binary("add", (*fpenv.Env).Add32))
	register(binary("sub", (*fpenv.Env).Sub32))
	register(binary("mul", (*fpenv.Env).Mul32))
	register(binary("div", (*fpenv.Env).Div32))
	register(binary("min", (*fpenv.Env).Min32))
	register(binary("max", (*fpenv.Env).Max32))
	register(binary("sgnj", func(e *fpenv.Env, a, b fpbits.F32) fpbits.F32 { return e.SignInject32(fpenv.SgnJ, a, b) }))
	register(binary("sgnjn", func(e *fpenv.Env, a, b fpbits.F32) fpbits.F32 { return e.SignInject32(fpenv.SgnJN, a, b) }))
	register(binary("sgnjx", func(e *fpenv.Env, a, b fpbits.F32) fpbits.F32 { return e.SignInject32(fpenv.SgnJX, a, b) }))
	register(compare("feq", fpenv.Eq))
	register(compare("flt", fpenv.Lt))
	register(compare("fle", fpenv.Le))
	register(&Op{
		Name:  "sqrt",
		Arity: 1,
		Width: fpbits.W32,
		Host:  true,
		eval: func(e *fpenv.Env, a, _ fpbits.F32) uint64 {
			return uint64(e.Sqrt32(a))
		},
	})
	register(&Op{
		Name:  "widen",
		Arity: 1,
		Width: fpbits.W64,
		Host:  true,
		eval: func(e *fpenv.Env, a, _ fpbits.F32) uint64 {
			return uint64(e.Widen(a))
		},
	})
	register(toInt("fcvt.w", fpenv.Int32))
	register(toInt("fcvt.wu", fpenv.Uint32))
}

// Lookup returns the operation registered as name.
func Lookup(name string) (*Op, error) {
	if o := ops[name]; o != nil {
		return o, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownOp, name)
}

// Names returns the registered operation names, sorted.
func Names() []string {
	out := make([]string, 0, len(ops))
	for n := range ops {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
