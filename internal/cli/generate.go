package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/swagger2retrofit/internal/emitter/kotlinemitter"
	"github.com/mark3labs/swagger2retrofit/internal/output"
	genspec "github.com/mark3labs/swagger2retrofit/internal/spec"
)

var generateRunner = runGenerate

func newLogger(format string, verbose bool, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func runGenerate(ctx context.Context, cfg *Config) error {
	stdout, stderr := cfg.Stdout, cfg.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	logger := newLogger(cfg.LogFormat, cfg.Verbose, stderr)

	// 1) Load the document (file or http/https URL); Swagger 2 is converted
	doc, err := genspec.Load(ctx, cfg.Input, genspec.WithLogger(logger))
	if err != nil {
		var se *genspec.SpecError
		if errors.As(err, &se) {
			msg := fmt.Sprintf("spec: %s", se.Message)
			if se.Location != "" {
				msg = fmt.Sprintf("%s\nLocation: %s", msg, se.Location)
			}
			if se.JSONPointer != "" {
				msg = fmt.Sprintf("%s\nPointer: %s", msg, se.JSONPointer)
			}
			return wrapUsageError(err, msg)
		}
		return err
	}

	absOut := cfg.Output
	if ap, err := filepath.Abs(cfg.Output); err == nil {
		absOut = ap
	}

	// 2) Emit; dry runs render into memory and only print the plan
	var w output.Writer = output.NewDirWriter(cfg.Output)
	if cfg.DryRun {
		w = output.NewMemWriter()
	}
	res, err := kotlinemitter.Emit(ctx, doc, kotlinemitter.Options{Writer: w, Logger: logger})
	if err != nil {
		return wrapOutputError(err, absOut)
	}

	logger.Debug("generation complete", "services", res.Services, "models", res.Models, "files", len(res.Planned))
	if cfg.DryRun {
		paths := make([]string, 0, len(res.Planned))
		for _, p := range res.Planned {
			paths = append(paths, p.RelPath)
		}
		printPlan(stdout, absOut, paths)
	}
	return nil
}

func printPlan(w io.Writer, outDir string, relPaths []string) {
	fmt.Fprintf(w, "Planned writes to %s (%d files):\n", outDir, len(relPaths))
	for _, p := range relPaths {
		fmt.Fprintf(w, "- %s\n", p)
	}
}

func wrapOutputError(err error, outDir string) error {
	if errors.Is(err, output.ErrUnsafePath) {
		return wrapUsageError(err, fmt.Sprintf("output error for %s: %v", outDir, err))
	}
	lower := strings.ToLower(err.Error())
	if strings.Contains(lower, "permission") || strings.Contains(lower, "read-only") {
		return fmt.Errorf("output error for %s: %w\nHint: choose a different output directory or check its permissions", outDir, err)
	}
	return err
}
