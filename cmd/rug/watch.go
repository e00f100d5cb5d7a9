// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/rug/internal/convert"
	"github.com/pdiddy/rug/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild rug files when they change",
	Long: `Watch converts every source below source-dir once, then keeps running
and re-converts sources as they are created or modified. Bursts of changes
are batched; --debounce sets the quiet period. Stop with Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "quiet period before rebuilding changed files")
	if err := viper.BindPFlag("debounce", watchCmd.Flags().Lookup("debounce")); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	b, closeTracker, err := newBuilder(cfg)
	if err != nil {
		return err
	}
	defer closeTracker()

	stderr := cmd.ErrOrStderr()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sources, err := convert.FindSources(cfg.SourceDir, cfg.Pattern)
	if err != nil {
		return err
	}
	if _, err := b.ConvertBatch(ctx, sources); err != nil {
		return err
	}

	w, err := watch.New(cfg, stderr, func(ctx context.Context, paths []string) {
		if _, err := b.ConvertPaths(ctx, cfg.SourceDir, paths); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(stderr, "warning: %v\n", err)
		}
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for changes (Ctrl-C to stop)\n", cfg.SourceDir)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
