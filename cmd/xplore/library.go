// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/xplore/internal/library"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the local paper library (add, search, export)",
	Long: `Library manages a local SQLite database of papers. Papers are keyed by
DOI, or by normalized title when the DOI is missing, so adding the same
paper twice updates the stored record.`,
}

// --- add subcommand ---

var libraryAddCmd = &cobra.Command{
	Use:   "add <file>...",
	Short: "Add the papers in JSON or YAML paper files to the library",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLibraryAdd,
}

func runLibraryAdd(cmd *cobra.Command, args []string) error {
	store, err := openLibrary(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := commandContext()
	defer cancel()

	var total library.AddSummary
	for _, path := range args {
		ps, err := loadPapers(cmd, path)
		if err != nil {
			return err
		}
		summary, err := store.Add(ctx, ps, filepath.Base(path))
		if err != nil {
			return fmt.Errorf("adding %s: %w", path, err)
		}
		fmt.Printf("%-40s  inserted: %d, updated: %d, skipped: %d\n",
			path, summary.Inserted, summary.Updated, summary.Skipped)
		total.Inserted += summary.Inserted
		total.Updated += summary.Updated
		total.Skipped += summary.Skipped
	}

	n, err := store.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\n%d papers processed, library holds %d\n", total.Total(), n)
	return nil
}

// --- search subcommand ---

var librarySearchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Search the library by text, year and author",
	RunE:  runLibrarySearch,
}

func runLibrarySearch(cmd *cobra.Command, args []string) error {
	store, err := openLibrary(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := commandContext()
	defer cancel()

	results, err := store.Search(ctx, searchOptsFromFlags(cmd, args))
	if err != nil {
		return err
	}
	return printPapers(cmd, results)
}

// --- export subcommand ---

var libraryExportCmd = &cobra.Command{
	Use:   "export <out>",
	Short: "Export the library to a JSON or YAML paper file",
	Long: `Export writes the library, or the subset matching the filter flags, to
out. The format follows the extension of out.`,
	Args: cobra.ExactArgs(1),
	RunE: runLibraryExport,
}

func runLibraryExport(cmd *cobra.Command, args []string) error {
	store, err := openLibrary(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := commandContext()
	defer cancel()

	n, err := store.Export(ctx, args[0], searchOptsFromFlags(cmd, nil))
	if err != nil {
		return err
	}
	fmt.Printf("Exported %d papers to %s\n", n, args[0])
	return nil
}

// --- shared helpers ---

func openLibrary(cmd *cobra.Command) (*library.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("library-dir") {
		cfg.Library.Dir, _ = cmd.Flags().GetString("library-dir")
	}
	return library.NewStore(cfg.Library)
}

func searchOptsFromFlags(cmd *cobra.Command, args []string) library.SearchOptions {
	text, _ := cmd.Flags().GetString("text")
	if text == "" && len(args) > 0 {
		text = strings.Join(args, " ")
	}
	year, _ := cmd.Flags().GetString("year")
	author, _ := cmd.Flags().GetString("author")
	limit, _ := cmd.Flags().GetInt("limit")

	return library.SearchOptions{
		Text:       text,
		Year:       year,
		Author:     author,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	libraryCmd.PersistentFlags().String("library-dir", "library", "directory holding the library database")

	for _, c := range []*cobra.Command{librarySearchCmd, libraryExportCmd} {
		c.Flags().String("text", "", "match title, abstract or keywords")
		c.Flags().String("year", "", "filter by publication year")
		c.Flags().String("author", "", "filter by author name")
	}
	librarySearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	addOutputFlags(librarySearchCmd)
	addLegacyFlag(libraryAddCmd)

	// Wire subcommands.
	libraryCmd.AddCommand(libraryAddCmd)
	libraryCmd.AddCommand(librarySearchCmd)
	libraryCmd.AddCommand(libraryExportCmd)

	rootCmd.AddCommand(libraryCmd)
}
