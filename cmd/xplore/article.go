// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/xplore/internal/xplore"
)

var articleCmd = &cobra.Command{
	Use:   "article <article-number>",
	Short: "Fetch the open-access full text of an article",
	Long: `Article requests the full text of one open-access article from the IEEE
Xplore document endpoint and writes the response body to stdout or --out.`,
	Args: cobra.ExactArgs(1),
	RunE: runArticle,
}

func runArticle(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	q := xplore.NewQuery(cfg.Xplore.APIKey)
	format, _ := cmd.Flags().GetString("format")
	if err := q.DataType(format); err != nil {
		return err
	}
	q.OpenAccess(args[0])

	client := xplore.NewClient(cfg.Xplore, nil, log)
	if printURL, _ := cmd.Flags().GetBool("print-url"); printURL {
		u, err := client.URL(q)
		if err != nil {
			return err
		}
		fmt.Println(u)
		return nil
	}

	ctx, cancel := commandContext()
	defer cancel()

	resp, err := client.CallAPI(ctx, q)
	if err != nil {
		return err
	}

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		if err := os.WriteFile(out, resp.Raw, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %d bytes to %s\n", len(resp.Raw), out)
		return nil
	}
	_, err = os.Stdout.Write(resp.Raw)
	return err
}

func init() {
	articleCmd.Flags().String("format", xplore.OutputJSON, "API output type: json or xml")
	articleCmd.Flags().String("out", "", "write the response body to this file")
	articleCmd.Flags().Bool("print-url", false, "print the request URL and exit")

	rootCmd.AddCommand(articleCmd)
}
