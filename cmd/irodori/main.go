// Irodori - perceptual colour distance and matching
//
// Irodori measures perceptual colour difference in CIE LAB space and
// builds on it: colour conversion, catalogue matching, palette harmony
// scoring and image palette extraction.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmylchreest/irodori/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
