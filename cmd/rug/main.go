// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the rug CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the rug CLI.
var rootCmd = &cobra.Command{
	Use:   "rug",
	Short: "Convert rug markup into HTML",
	Long: `rug converts indentation-based shorthand markup into HTML. Lines that
start with .class, #id, :attr or [attr] open elements, indentation decides
nesting, lines containing < pass through as raw HTML, and plain text becomes
paragraphs.

Use convert for one-off builds, watch to rebuild on change, and manifest to
inspect the incremental-build record.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./rug.yaml or ~/.config/rug/rug.yaml)")
	flags.String("source-dir", "src", "root directory searched for rug sources")
	flags.String("out-dir", "dist", "directory receiving converted output")
	flags.String("pattern", "**/*.rug", "glob selecting sources below source-dir")
	flags.String("format", "html", "output format: html or module")
	flags.String("default-tag", "", "element for lines without a tag name (default div)")
	flags.Bool("explicit-tags", false, "treat lines like h1.title as markup when the tag is a known HTML element")
	flags.String("manifest", ".rug/manifest.db", "incremental-build manifest database")
	flags.Bool("no-manifest", false, "convert every source without consulting the manifest")

	for key, flag := range map[string]string{
		"source_dir":    "source-dir",
		"out_dir":       "out-dir",
		"pattern":       "pattern",
		"format":        "format",
		"default_tag":   "default-tag",
		"explicit_tags": "explicit-tags",
		"manifest":      "manifest",
		"no_manifest":   "no-manifest",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("rug")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "rug"))
		}
	}

	viper.SetEnvPrefix("RUG")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
