// Copyright 2024 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package probe

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/maruel/fpprobe/fpbits"
	"github.com/maruel/fpprobe/fpenv"
)

// Cell is one measurement.
type Cell struct {
	Bits  uint64
	Flags fpenv.Flags
}

// Matrix is the outcome of a Run.
//
// For a binary operation, Cells[i][j] is op(Vectors[i], Vectors[j]). For a
// unary operation there is a single row and Cells[0][j] is op(Vectors[j]).
type Matrix struct {
	Op       *Op
	Profile  fpenv.Profile
	Rounding fpenv.RoundingMode
	Vectors  []Vector
	Cells    [][]Cell
}

// Classify classifies a float result. It must not be called for Int results.
func (m *Matrix) Classify(c Cell) fpbits.Classification {
	return fpbits.Classify(c.Bits, m.Op.Width)
}

// Run measures op over vectors.
//
// Rows are computed concurrently, each with its own environment.
func Run(ctx context.Context, op *Op, vectors []Vector, p fpenv.Profile, rm fpenv.RoundingMode) (*Matrix, error) {
	if p == fpenv.Host {
		if !fpenv.HostSupported {
			return nil, fpenv.ErrNoHost
		}
		if !op.Host {
			return nil, fmt.Errorf("%s: %w", op, ErrUnsupported)
		}
	}
	m := &Matrix{Op: op, Profile: p, Rounding: rm, Vectors: vectors}
	if op.Arity == 1 {
		m.Cells = make([][]Cell, 1)
	} else {
		m.Cells = make([][]Cell, len(vectors))
	}
	eg, ctx := errgroup.WithContext(ctx)
	for i := range m.Cells {
		i := i
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			e := &fpenv.Env{Profile: p, Rounding: rm}
			row := make([]Cell, len(vectors))
			for j, v := range vectors {
				a, b := v.Bits, fpbits.F32(0)
				if op.Arity == 2 {
					a, b = vectors[i].Bits, v.Bits
				}
				bits, flags := fpenv.Measure(e, func(e *fpenv.Env) uint64 { return op.Eval(e, a, b) })
				row[j] = Cell{Bits: bits, Flags: flags}
			}
			m.Cells[i] = row
			slog.Debug("probe", "op", op.Name, "row", i, "profile", p, "rm", rm)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return m, nil
}

// Tally returns the number of cells that raised each flag, indexed by the
// flag's bit position: Inexact at 0 through Invalid at 4. Index 5 counts the
// cells that raised nothing. Denormal is not counted.
func (m *Matrix) Tally() Tally {
	var t Tally
	t.Resize(6)
	for _, row := range m.Cells {
		for _, c := range row {
			if c.Flags == 0 {
				t.Add(5)
				continue
			}
			for i := 0; i < 5; i++ {
				if c.Flags&(1<<i) != 0 {
					t.Add(i)
				}
			}
		}
	}
	return t
}
