// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/rug/internal/manifest"
	"github.com/pdiddy/rug/pkg/types"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Inspect the incremental-build manifest",
	Long: `Manifest reads the SQLite database that records every converted source,
its content hash and the outcome of its last conversion.`,
}

// --- list subcommand ---

var manifestListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded conversions",
	RunE:  runManifestList,
}

func runManifestList(cmd *cobra.Command, args []string) error {
	store, err := openManifest()
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(cmd.Context())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-10s  %-40s  %-12s  %s\n", "Status", "Source", "Hash", "Converted")
	for _, r := range records {
		source := r.Source
		if len(source) > 40 {
			source = "..." + source[len(source)-37:]
		}
		hash := r.Hash
		if len(hash) > 12 {
			hash = hash[:12]
		}
		fmt.Fprintf(w, "%-10s  %-40s  %-12s  %s\n",
			r.Status, source, hash, r.ConvertedAt.Local().Format("2006-01-02 15:04:05"))
		if r.Error != "" {
			fmt.Fprintf(w, "            %s\n", r.Error)
		}
	}
	fmt.Fprintf(w, "\n%d conversions\n", len(records))
	return nil
}

// --- export subcommand ---

var manifestExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the manifest to YAML or JSON",
	Long: `Export writes every manifest record to manifest.yaml or manifest.json
next to the manifest database, or to --output.`,
	RunE: runManifestExport,
}

func runManifestExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	store, err := openManifest()
	if err != nil {
		return err
	}
	defer store.Close()

	if output == "" {
		output = filepath.Join(filepath.Dir(store.Path()), "manifest."+format)
	}

	switch format {
	case "yaml":
		err = store.ExportYAML(cmd.Context(), output)
	case "json":
		err = store.ExportJSON(cmd.Context(), output)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", output)
	return nil
}

// --- shared helpers ---

func openManifest() (*manifest.Store, error) {
	path := viper.GetString("manifest")
	if path == "" {
		path = manifest.DefaultPath
	}
	return manifest.Open(types.ManifestConfig{Path: path})
}

func init() {
	manifestListCmd.Flags().Bool("json", false, "output records as JSON")

	manifestExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	manifestExportCmd.Flags().String("output", "", "output file (default: next to the manifest database)")

	manifestCmd.AddCommand(manifestListCmd)
	manifestCmd.AddCommand(manifestExportCmd)

	rootCmd.AddCommand(manifestCmd)
}
