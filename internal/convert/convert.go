// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns rug source files into HTML or JavaScript module
// output. It is the file-level host of package rug: it finds sources, writes
// outputs next to each other under an output directory, reports per-file
// status and annotates every failure with the offending file.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/rug/internal/manifest"
	"github.com/pdiddy/rug/internal/rug"
	"github.com/pdiddy/rug/pkg/types"
)

// Converter transforms a source file into HTML.
type Converter interface {
	// Convert reads the file at path and returns the HTML content.
	Convert(path string) (string, error)
}

// Tracker remembers previous conversions so unchanged sources can be
// skipped. *manifest.Store implements it.
type Tracker interface {
	Lookup(ctx context.Context, source string) (types.Conversion, bool, error)
	Record(ctx context.Context, c types.Conversion) error
}

var _ Tracker = (*manifest.Store)(nil)

// RugConverter converts rug files with a fixed set of options.
type RugConverter struct {
	opts rug.Options
}

// NewRugConverter validates opts and returns a converter using them.
func NewRugConverter(opts rug.Options) (*RugConverter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &RugConverter{opts: opts}, nil
}

// Convert reads the rug file at path and converts it. Errors name the file.
func (r *RugConverter) Convert(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	html, err := rug.Convert(string(data), r.opts)
	if err != nil {
		return "", fmt.Errorf("converting %s: %w", path, err)
	}
	return html, nil
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Builder writes converted sources under OutDir. Status lines go to Out.
type Builder struct {
	Converter Converter
	OutDir    string
	Format    types.OutputFormat

	// Tracker is optional. Without it every source is converted.
	Tracker Tracker

	Out io.Writer
}

// OutputPath returns where the output for src is written.
func (b *Builder) OutputPath(src types.SourceFile) string {
	return filepath.Join(b.OutDir, filepath.FromSlash(src.ID)+outputExt(b.Format))
}

// ConvertFile converts a single source and writes the result. It returns
// ConversionNone when the tracker shows the source unchanged since its last
// successful conversion and the output is still present.
func (b *Builder) ConvertFile(ctx context.Context, src types.SourceFile) types.ConversionStatus {
	outPath := b.OutputPath(src)

	var hash string
	if b.Tracker != nil {
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return b.fail(ctx, src, outPath, "", fmt.Errorf("reading %s: %w", src.Path, err))
		}
		hash = manifest.Hash(data)
		if b.unchanged(ctx, src, outPath, hash) {
			fmt.Fprintf(b.Out, "skipped: %s (unchanged)\n", src.ID)
			return types.ConversionNone
		}
	}

	html, err := b.Converter.Convert(src.Path)
	if err != nil {
		return b.fail(ctx, src, outPath, hash, err)
	}

	content, err := render(b.Format, html)
	if err != nil {
		return b.fail(ctx, src, outPath, hash, err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return b.fail(ctx, src, outPath, hash, fmt.Errorf("creating output directory: %w", err))
	}
	if err := os.WriteFile(outPath, content, 0o644); err != nil {
		return b.fail(ctx, src, outPath, hash, fmt.Errorf("writing %s: %w", outPath, err))
	}

	b.record(ctx, types.Conversion{
		Source: src.Path,
		Output: outPath,
		Hash:   hash,
		Status: types.ConversionConverted,
	})
	fmt.Fprintf(b.Out, "converted: %s\n", src.ID)
	return types.ConversionConverted
}

func (b *Builder) unchanged(ctx context.Context, src types.SourceFile, outPath, hash string) bool {
	prev, ok, err := b.Tracker.Lookup(ctx, src.Path)
	if err != nil {
		fmt.Fprintf(b.Out, "warning: %v\n", err)
		return false
	}
	if !ok || prev.Status != types.ConversionConverted || prev.Hash != hash || prev.Output != outPath {
		return false
	}
	_, err = os.Stat(outPath)
	return err == nil
}

func (b *Builder) fail(ctx context.Context, src types.SourceFile, outPath, hash string, err error) types.ConversionStatus {
	fmt.Fprintf(b.Out, "failed:  %s (%v)\n", src.ID, err)
	b.record(ctx, types.Conversion{
		Source: src.Path,
		Output: outPath,
		Hash:   hash,
		Status: types.ConversionFailed,
		Error:  err.Error(),
	})
	return types.ConversionFailed
}

func (b *Builder) record(ctx context.Context, c types.Conversion) {
	if b.Tracker == nil {
		return
	}
	if err := b.Tracker.Record(ctx, c); err != nil {
		fmt.Fprintf(b.Out, "warning: %v\n", err)
	}
}

// ConvertBatch converts sources in order, printing per-file status and a
// summary. It stops early when ctx is cancelled.
func (b *Builder) ConvertBatch(ctx context.Context, sources []types.SourceFile) (BatchResult, error) {
	var result BatchResult
	for _, src := range sources {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		switch b.ConvertFile(ctx, src) {
		case types.ConversionConverted:
			result.Converted++
		case types.ConversionNone:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(b.Out, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// ConvertPaths builds SourceFile records for explicit paths relative to
// root and delegates to ConvertBatch.
func (b *Builder) ConvertPaths(ctx context.Context, root string, paths []string) (BatchResult, error) {
	return b.ConvertBatch(ctx, SourcesFromPaths(root, paths))
}
