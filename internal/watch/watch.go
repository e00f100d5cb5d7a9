// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch re-runs a handler when rug sources below a root change.
package watch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pdiddy/rug/internal/convert"
	"github.com/pdiddy/rug/pkg/types"
)

// DefaultDebounce is the quiet period used when the config sets none.
const DefaultDebounce = 100 * time.Millisecond

// Handler receives the sorted paths that changed during one quiet period.
type Handler func(ctx context.Context, paths []string)

// Watcher collects filesystem events for matching sources and hands them to
// a Handler in debounced batches.
type Watcher struct {
	root     string
	pattern  string
	debounce time.Duration
	handle   Handler
	out      io.Writer
	fs       *fsnotify.Watcher

	pending map[string]struct{}
}

// New watches cfg.SourceDir and every directory below it. Warnings are
// written to out.
func New(cfg types.BuildConfig, out io.Writer, h Handler) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		root:     cfg.SourceDir,
		pattern:  cfg.Pattern,
		debounce: cfg.Debounce,
		handle:   h,
		out:      out,
		fs:       fw,
		pending:  map[string]struct{}{},
	}
	if w.pattern == "" {
		w.pattern = convert.DefaultPattern
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}

	if err := w.addTree(w.root, false); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// Run dispatches batches until ctx is cancelled, then releases the
// underlying watcher and returns ctx.Err().
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.event(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(w.out, "warning: watching %s: %v\n", w.root, err)

		case <-fire:
			fire = nil
			w.flush(ctx)
		}
	}
}

// event records ev and reports whether anything became pending.
func (w *Watcher) event(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return false
	}
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.addTree(ev.Name, true); err != nil {
				fmt.Fprintf(w.out, "warning: %v\n", err)
			}
			return len(w.pending) > 0
		}
	}
	return w.mark(ev.Name)
}

func (w *Watcher) mark(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || !convert.Matches(w.pattern, rel) {
		return false
	}
	w.pending[path] = struct{}{}
	return true
}

func (w *Watcher) flush(ctx context.Context) {
	if len(w.pending) == 0 {
		return
	}
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	w.pending = map[string]struct{}{}
	w.handle(ctx, paths)
}

// addTree watches dir and its subdirectories. With markFiles, matching files
// already present are marked pending; they may have been written before the
// watch on a new directory was in place.
func (w *Watcher) addTree(dir string, markFiles bool) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			if markFiles {
				w.mark(path)
			}
			return nil
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}
