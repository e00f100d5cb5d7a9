// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/rug/internal/convert"
	"github.com/pdiddy/rug/internal/rug"
	"github.com/pdiddy/rug/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert rug files to HTML",
	Long: `Convert transforms rug sources into HTML files under out-dir. With no
arguments every source matching pattern below source-dir is converted; with
file arguments only those files are. Use "-" to convert standard input to
standard output.

Sources whose content has not changed since their last successful conversion
are skipped unless --no-manifest is set.`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if len(args) == 1 && args[0] == "-" {
		return convertStream(cmd.InOrStdin(), cmd.OutOrStdout(), cfg)
	}

	b, closeTracker, err := newBuilder(cfg)
	if err != nil {
		return err
	}
	defer closeTracker()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var result convert.BatchResult
	if len(args) > 0 {
		result, err = b.ConvertPaths(ctx, cfg.SourceDir, args)
	} else {
		var sources []types.SourceFile
		sources, err = convert.FindSources(cfg.SourceDir, cfg.Pattern)
		if err != nil {
			return err
		}
		result, err = b.ConvertBatch(ctx, sources)
	}
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}

// convertStream converts r to w without touching the filesystem or the
// manifest.
func convertStream(r io.Reader, w io.Writer, cfg types.BuildConfig) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	html, err := rug.Convert(string(data), cfg.Rug)
	if err != nil {
		return fmt.Errorf("converting stdin: %w", err)
	}

	out := []byte(html + "\n")
	if cfg.Format == types.OutputModule {
		if out, err = convert.Module(html); err != nil {
			return err
		}
	}
	_, err = w.Write(out)
	return err
}
