//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Watch rebuilds the site whenever a source under src/ changes.
func Watch() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "watch")
}
