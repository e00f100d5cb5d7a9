// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/pdiddy/rug/internal/convert"
	"github.com/pdiddy/rug/internal/manifest"
	"github.com/pdiddy/rug/internal/rug"
	"github.com/pdiddy/rug/pkg/types"
)

// buildConfig assembles the build settings from flags, environment and the
// config file, in that order of precedence.
func buildConfig() (types.BuildConfig, error) {
	cfg := types.BuildConfig{
		SourceDir: viper.GetString("source_dir"),
		OutDir:    viper.GetString("out_dir"),
		Pattern:   viper.GetString("pattern"),
		Format:    types.OutputFormat(viper.GetString("format")),
		Rug: rug.Options{
			DefaultTag:   viper.GetString("default_tag"),
			ExplicitTags: viper.GetBool("explicit_tags"),
		},
		Debounce: viper.GetDuration("debounce"),
	}
	if !viper.GetBool("no_manifest") {
		cfg.Manifest.Path = viper.GetString("manifest")
	}

	if cfg.Format == "" {
		cfg.Format = types.OutputHTML
	}
	if !cfg.Format.Valid() {
		return cfg, fmt.Errorf("unsupported format %q: use html or module", cfg.Format)
	}
	if err := cfg.Rug.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newBuilder wires a Builder for cfg. The returned close function releases
// the manifest, if one was opened.
func newBuilder(cfg types.BuildConfig) (*convert.Builder, func() error, error) {
	conv, err := convert.NewRugConverter(cfg.Rug)
	if err != nil {
		return nil, nil, err
	}

	b := &convert.Builder{
		Converter: conv,
		OutDir:    cfg.OutDir,
		Format:    cfg.Format,
		Out:       rootCmd.OutOrStdout(),
	}
	if cfg.Manifest.Path == "" {
		return b, func() error { return nil }, nil
	}

	store, err := manifest.Open(cfg.Manifest)
	if err != nil {
		return nil, nil, err
	}
	b.Tracker = store
	return b, store.Close, nil
}
