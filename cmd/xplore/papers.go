// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/xplore/internal/papers"
	"github.com/pdiddy/xplore/pkg/types"
)

var papersCmd = &cobra.Command{
	Use:   "papers",
	Short: "Inspect and convert saved paper files",
}

var papersShowCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print the papers in a JSON or YAML paper file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ps, err := loadPapers(cmd, args[0])
		if err != nil {
			return err
		}
		return printPapers(cmd, ps)
	},
}

var papersExportCmd = &cobra.Command{
	Use:   "export <file> <out>",
	Short: "Convert a paper file to JSON, YAML or CSL-YAML",
	Long: `Export reads a paper file and writes it to out. The output format follows
the extension of out (.json, .yaml). With --csl a CSL-YAML bibliography
is written instead.`,
	Args: cobra.ExactArgs(2),
	RunE: runPapersExport,
}

func runPapersExport(cmd *cobra.Command, args []string) error {
	ps, err := loadPapers(cmd, args[0])
	if err != nil {
		return err
	}
	out := args[1]

	if csl, _ := cmd.Flags().GetBool("csl"); csl {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", out, err)
		}
		if err := papers.FormatCSL(ps, f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	} else if err := papers.Save(out, ps); err != nil {
		return err
	}

	fmt.Printf("Exported %d papers to %s\n", len(ps), out)
	return nil
}

// loadPapers reads a paper file, treating "N/A" values as absent when
// --legacy is set.
func loadPapers(cmd *cobra.Command, path string) ([]types.Paper, error) {
	if legacy, _ := cmd.Flags().GetBool("legacy"); legacy {
		return papers.LoadLegacy(path)
	}
	return papers.Load(path)
}

func addLegacyFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("legacy", false, "read \"N/A\" values in the input as absent")
}

func init() {
	addOutputFlags(papersShowCmd)
	addLegacyFlag(papersShowCmd)
	addLegacyFlag(papersExportCmd)
	papersExportCmd.Flags().Bool("csl", false, "write a CSL-YAML bibliography")

	papersCmd.AddCommand(papersShowCmd)
	papersCmd.AddCommand(papersExportCmd)

	rootCmd.AddCommand(papersCmd)
}
