//go:build mage

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Harvest re-runs a saved query file with every page fetched, writes the
// papers to harvests/<name>.json and adds them to the library.
func Harvest(queryFile string) error {
	mg.Deps(Build, Init)

	name := strings.TrimSuffix(filepath.Base(queryFile), filepath.Ext(queryFile))
	out := filepath.Join("harvests", name+".json")
	bin := filepath.Join(binDir, binName)

	if err := sh.RunV(bin, "search", "--query-file", queryFile, "--all", "--out", out, "--store", "--save-query", queryFile); err != nil {
		return fmt.Errorf("harvest %s: %w", queryFile, err)
	}
	fmt.Printf("Harvested %s into %s\n", queryFile, out)
	return nil
}
