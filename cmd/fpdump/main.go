// Copyright 2024 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// fpdump prints the raw result bits and exception flags of one operation over
// the edge-case binary32 vectors, as "(0xHHHHHHHH, 0xE), " pairs. By default
// the operation runs on this processor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/maruel/fpprobe/fpenv"
	"github.com/maruel/fpprobe/probe"
	"github.com/maruel/fpprobe/report"
)

func run(ctx context.Context, w io.Writer, opName, profile, rounding string) error {
	op, err := probe.Lookup(opName)
	if err != nil {
		return fmt.Errorf("-op: %w", err)
	}
	p, err := fpenv.ParseProfile(profile)
	if err != nil {
		return fmt.Errorf("-profile: %w", err)
	}
	rm, err := fpenv.ParseRoundingMode(rounding)
	if err != nil {
		return fmt.Errorf("-rm: %w", err)
	}
	m, err := probe.Run(ctx, op, probe.Vectors, p, rm)
	if err != nil {
		return err
	}
	slog.Debug("fpdump", "op", op, "profile", p, "rm", rm, "rows", len(m.Cells))
	return report.Raw(w, m)
}

func mainImpl() error {
	verbose := flag.Bool("v", false, "enable debug logging")
	opName := flag.String("op", "add", "operation; one of "+strings.Join(probe.Names(), ", "))
	profile := flag.String("profile", fpenv.DefaultProfile().String(), "host to measure this processor, or the riscv or x86 model")
	rounding := flag.String("rm", fpenv.RNE.String(), "rounding mode: rne, rtz, rdn, rup or rmm")
	flag.Parse()
	if flag.NArg() != 0 {
		return errors.New("unexpected argument")
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})))

	ctx := context.Background()
	return run(ctx, os.Stdout, *opName, *profile, *rounding)
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "fpdump: %s\n", err)
		os.Exit(1)
	}
}
