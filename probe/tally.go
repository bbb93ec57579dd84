// Copyright 2024 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package probe

import (
	"fmt"
	"strings"

	"github.com/maruel/fpprobe/fpenv"
)

// Tally is a count set.
type Tally struct {
	Counts []uint32
}

func (t *Tally) Resize(l int) {
	d := make([]uint32, l)
	// Keep the old data if any.
	copy(d, t.Counts)
	t.Counts = d
}

func (t *Tally) Add(i int) {
	t.Counts[i]++
}

func (t *Tally) Get(i int) uint32 {
	return t.Counts[i]
}

// String renders a tally returned by Matrix.Tally as "NV=12 DZ=0 ... none=3".
func (t *Tally) String() string {
	var parts []string
	for i := 4; i >= 0; i-- {
		if i < len(t.Counts) {
			parts = append(parts, fmt.Sprintf("%s=%d", fpenv.Flags(1<<i), t.Get(i)))
		}
	}
	if len(t.Counts) > 5 {
		parts = append(parts, fmt.Sprintf("none=%d", t.Get(5)))
	}
	return strings.Join(parts, " ")
}
