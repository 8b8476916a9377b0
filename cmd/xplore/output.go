// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/xplore/internal/papers"
	"github.com/pdiddy/xplore/pkg/types"
)

// addOutputFlags registers the flags read by printPapers.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "print papers as JSON")
	cmd.Flags().Bool("csl", false, "print papers as a CSL-YAML bibliography")
}

// printPapers writes papers to stdout as a table, JSON or CSL-YAML.
func printPapers(cmd *cobra.Command, ps []types.Paper) error {
	if csl, _ := cmd.Flags().GetBool("csl"); csl {
		return papers.FormatCSL(ps, os.Stdout)
	}
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return papers.FormatJSON(ps, os.Stdout)
	}
	papers.FormatTable(ps, os.Stdout)
	return nil
}

// parseKV splits a name=value flag argument.
func parseKV(s string) (string, string, error) {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", fmt.Errorf("invalid pair %q: expected name=value", s)
	}
	return name, strings.TrimSpace(value), nil
}
