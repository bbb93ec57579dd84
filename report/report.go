// Copyright 2024 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package report prints a probe.Matrix, either as raw hex pairs or as a
// color coded table.
package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/maruel/fpprobe/fpbits"
	"github.com/maruel/fpprobe/fpenv"
	"github.com/maruel/fpprobe/probe"
)

const reset = "\033[0m"

// Raw writes every cell in row order as "(0xHHHHHHHH, 0xE), ", as a single
// line. Rows are not delimited; a row holds len(m.Vectors) cells.
//
// Binary64 results use 16 hex digits.
func Raw(w io.Writer, m *probe.Matrix) error {
	format := "(0x%08x, 0x%x), "
	if m.Op.Width == fpbits.W64 {
		format = "(0x%016x, 0x%x), "
	}
	var b strings.Builder
	for _, row := range m.Cells {
		for _, c := range row {
			fmt.Fprintf(&b, format, c.Bits, uint8(c.Flags))
		}
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

// Color writes a table where every cell is colored by the exact set of flags
// it raised.
type Color struct {
	// Out receives the table.
	Out io.Writer
	// Diag receives a "[[EC: x]]" note for each flag set that has no color.
	// It defaults to os.Stderr.
	Diag io.Writer
	// NoColor disables escape sequences. Diagnostics are still written.
	NoColor bool
}

// NewColor returns a Color writing to f, with escape sequences translated on
// Windows consoles and disabled when f is not a terminal.
func NewColor(f *os.File, diag io.Writer) *Color {
	return &Color{
		Out:     colorable.NewColorable(f),
		Diag:    diag,
		NoColor: !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()),
	}
}

// Escape returns the escape sequence for the flags, or false if the
// combination has no assigned color. No flag maps to "".
func Escape(f fpenv.Flags) (string, bool) {
	switch f {
	case 0:
		return "", true
	case fpenv.Invalid:
		return "\033[1;31m", true
	case fpenv.DivideByZero:
		return "\033[1;35m", true
	case fpenv.Inexact:
		return "\033[1;32m", true
	case fpenv.Overflow | fpenv.Inexact:
		return "\033[1;34m", true
	case fpenv.Underflow | fpenv.Inexact:
		return "\033[1;33m", true
	default:
		return "", false
	}
}

// Write prints the table for m followed by a legend.
func (c *Color) Write(m *probe.Matrix) error {
	diag := c.Diag
	if diag == nil {
		diag = os.Stderr
	}
	width := 8
	if m.Op.Result == probe.Int {
		width = 12
	}
	var b strings.Builder
	b.WriteString(center("", width))
	for _, v := range m.Vectors {
		b.WriteString(center(v.Name, width))
	}
	b.WriteByte('\n')
	for i, row := range m.Cells {
		label := m.Op.Name
		if m.Op.Arity == 2 {
			label = m.Vectors[i].Name
		}
		b.WriteString(center(label, width))
		for _, cell := range row {
			esc, ok := Escape(cell.Flags)
			if !ok {
				if _, err := fmt.Fprintf(diag, "[[EC: %x]]", uint8(cell.Flags)); err != nil {
					return err
				}
			}
			text := center(Cell(m, cell), width)
			if esc == "" || c.NoColor {
				b.WriteString(text)
			} else {
				b.WriteString(esc + text + reset)
			}
		}
		b.WriteByte('\n')
	}
	b.WriteString(c.legend())
	_, err := io.WriteString(c.Out, b.String())
	return err
}

func (c *Color) legend() string {
	items := []struct {
		f    fpenv.Flags
		name string
	}{
		{fpenv.Invalid, "invalid"},
		{fpenv.DivideByZero, "divide-by-zero"},
		{fpenv.Inexact, "inexact"},
		{fpenv.Overflow | fpenv.Inexact, "overflow"},
		{fpenv.Underflow | fpenv.Inexact, "underflow"},
	}
	parts := make([]string, len(items))
	for i, it := range items {
		esc, _ := Escape(it.f)
		if c.NoColor {
			parts[i] = it.name
		} else {
			parts[i] = esc + it.name + reset
		}
	}
	return strings.Join(parts, " ") + "\n"
}

// Cell renders one result without padding.
//
// NaNs are printed with their sign bit, numbers in exponent notation with no
// fractional digits.
func Cell(m *probe.Matrix, c probe.Cell) string {
	if m.Op.Result == probe.Int {
		if m.Op.Signed {
			return strconv.FormatInt(int64(int32(c.Bits)), 10)
		}
		return strconv.FormatUint(c.Bits, 10)
	}
	cl := m.Classify(c)
	sign := ""
	if cl.Neg {
		sign = "-"
	}
	switch cl.Kind {
	case fpbits.QuietNaN, fpbits.SignalingNaN:
		return sign + cl.Kind.String()
	case fpbits.Infinity:
		return sign + "inf"
	}
	if m.Op.Width == fpbits.W64 {
		return strconv.FormatFloat(math.Float64frombits(c.Bits), 'e', 0, 64)
	}
	return strconv.FormatFloat(float64(math.Float32frombits(uint32(c.Bits))), 'e', 0, 32)
}

// center pads s with spaces on both sides to width, the extra space going
// to the right.
func center(s string, width int) string {
	n := width - len(s)
	if n <= 0 {
		return s
	}
	return strings.Repeat(" ", n/2) + s + strings.Repeat(" ", n-n/2)
}
