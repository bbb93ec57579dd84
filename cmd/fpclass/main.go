// Copyright 2024 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// fpclass prints a color coded table classifying the result of one operation
// over the edge-case binary32 vectors, then how many results raised each
// exception flag. By default the operation runs on this processor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
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

func run(ctx context.Context, c *report.Color, opName, profile, rounding string) error {
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
	if err = c.Write(m); err != nil {
		return err
	}
	t := m.Tally()
	slog.Debug("fpclass", "op", op, "profile", p, "rm", rm, "none", t.Get(5))
	_, err = fmt.Fprintf(c.Out, "%s %s/%s: %s\n", op, p, rm, t.String())
	return err
}

func mainImpl() error {
	verbose := flag.Bool("v", false, "enable debug logging")
	opName := flag.String("op", "add", "operation; one of "+strings.Join(probe.Names(), ", "))
	profile := flag.String("profile", fpenv.DefaultProfile().String(), "host to measure this processor, or the riscv or x86 model")
	rounding := flag.String("rm", fpenv.RNE.String(), "rounding mode: rne, rtz, rdn, rup or rmm")
	noColor := flag.Bool("no-color", false, "disable colors even on a terminal")
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

	c := report.NewColor(os.Stdout, os.Stderr)
	if *noColor {
		c.NoColor = true
	}
	ctx := context.Background()
	return run(ctx, c, *opName, *profile, *rounding)
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "fpclass: %s\n", err)
		os.Exit(1)
	}
}
