// Copyright 2024 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build ignore

package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"text/template"
)

const srcTmpl = `// Code generated "go run gen.go" DO NOT EDIT.

package probe_test

import "github.com/maruel/fpprobe/probe"

// Measured on RISC-V hardware; see testdata/riscv_rne.txt.
var traces = map[string][][]probe.Cell{
{{range .}}"{{.Name}}": {
{{range .Rows}}{ {{.}} },
{{end}}},
{{end}} }
`

type trace struct {
	Name string
	Rows []string
}

var reCell = regexp.MustCompile(`\((0x[0-9a-f]+), (0x[0-9a-f]+)\)`)

// load reads the hardware measurements. Each block is an operation name
// followed by one line of pairs per row.
func load(filename string, vectors int) []trace {
	f, err := os.Open(filename)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	var td []trace
	s := bufio.NewScanner(f)
	s.Buffer(nil, 1<<20)
	for s.Scan() {
		l := strings.TrimSpace(s.Text())
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		if !strings.HasPrefix(l, "(") {
			td = append(td, trace{Name: l})
			continue
		}
		if len(td) == 0 {
			panic("row before the first operation name")
		}
		m := reCell.FindAllStringSubmatch(l, -1)
		if len(m) != vectors {
			panic(fmt.Sprintf("%s: got %d cells, want %d", td[len(td)-1].Name, len(m), vectors))
		}
		cells := make([]string, len(m))
		for i, c := range m {
			bits, err := strconv.ParseUint(c[1], 0, 32)
			if err != nil {
				panic(err)
			}
			flags, err := strconv.ParseUint(c[2], 0, 8)
			if err != nil {
				panic(err)
			}
			cells[i] = fmt.Sprintf("{0x%08x, 0x%02x}", bits, flags)
		}
		t := &td[len(td)-1]
		t.Rows = append(t.Rows, strings.Join(cells, ", "))
	}
	if err := s.Err(); err != nil {
		panic(err)
	}
	for _, t := range td {
		if len(t.Rows) != vectors {
			panic(fmt.Sprintf("%s: got %d rows, want %d", t.Name, len(t.Rows), vectors))
		}
	}
	return td
}

func generate(filename string, td []trace) {
	f, err := os.Create(filename)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	t := template.Must(template.New("").Parse(srcTmpl))
	if err := t.Execute(f, td); err != nil {
		panic(err)
	}
	if err := exec.Command("gofmt", "-w", "-s", filename).Run(); err != nil {
		panic(fmt.Errorf("failed to run gofmt: %w", err))
	}
}

func main() {
	generate("trace_data_test.go", load("testdata/riscv_rne.txt", 14))
}
