// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"time"

	"github.com/pdiddy/rug/internal/rug"
)

// OutputFormat selects how converted HTML is written.
type OutputFormat string

const (
	// OutputHTML writes the HTML string as-is to <id>.html.
	OutputHTML OutputFormat = "html"

	// OutputModule writes an ES module to <id>.rug.js whose default export
	// is the HTML string.
	OutputModule OutputFormat = "module"
)

// Valid reports whether f is a known output format.
func (f OutputFormat) Valid() bool {
	return f == OutputHTML || f == OutputModule
}

// ManifestConfig holds settings for the incremental-build manifest.
type ManifestConfig struct {
	// Path is the SQLite database file (default ".rug/manifest.db").
	// An empty path disables the manifest.
	Path string `json:"path" yaml:"path"`
}

// BuildConfig holds settings for converting a tree of rug sources.
type BuildConfig struct {
	// SourceDir is the root directory searched for sources.
	SourceDir string `json:"source_dir" yaml:"source_dir"`

	// OutDir receives the converted files, mirroring SourceDir's layout.
	OutDir string `json:"out_dir" yaml:"out_dir"`

	// Pattern is a doublestar glob relative to SourceDir (default "**/*.rug").
	Pattern string `json:"pattern" yaml:"pattern"`

	// Format selects html or module output.
	Format OutputFormat `json:"format" yaml:"format"`

	// Rug holds the converter options.
	Rug rug.Options `json:"rug" yaml:"rug"`

	Manifest ManifestConfig `json:"manifest" yaml:"manifest"`

	// Debounce is the quiet period the watcher waits for before
	// re-converting changed files (default 100ms).
	Debounce time.Duration `json:"debounce" yaml:"debounce"`
}
