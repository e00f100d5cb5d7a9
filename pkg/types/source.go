// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the outcome of converting one source file.
type ConversionStatus string

const (
	ConversionNone      ConversionStatus = "none"
	ConversionConverted ConversionStatus = "converted"
	ConversionFailed    ConversionStatus = "failed"
)

// SourceFile is one rug document on disk.
type SourceFile struct {
	// ID is the path relative to the source root without its extension
	// (e.g. "pages/about"). Output files are named after it.
	ID string `json:"id" yaml:"id"`

	// Path is the filesystem path of the source.
	Path string `json:"path" yaml:"path"`
}

// Conversion is the manifest record for one source file.
type Conversion struct {
	// Source is the source file path as given to the converter.
	Source string `json:"source" yaml:"source"`

	// Output is the path of the written file.
	Output string `json:"output" yaml:"output"`

	// Hash is the BLAKE3 hex digest of the source content.
	Hash string `json:"hash" yaml:"hash"`

	Status ConversionStatus `json:"status" yaml:"status"`

	// Error holds the failure message for failed conversions.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`
}
