// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/xplore/internal/library"
	"github.com/pdiddy/xplore/internal/paginate"
	"github.com/pdiddy/xplore/internal/papers"
	"github.com/pdiddy/xplore/internal/xplore"
	"github.com/pdiddy/xplore/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search IEEE Xplore for papers",
	Long: `Search queries the IEEE Xplore metadata API. Criteria come from --field
name=value pairs, shortcut flags such as --query or --author, or a saved
query file. --filter adds result filters (content_type, start_year, ...).

Without --all a single page is fetched. With --all every page is fetched,
pausing between requests, until the reported total is reached.`,
	RunE: runSearch,
}

// shortcutFlags maps shortcut flag names to the search fields they set.
var shortcutFlags = []struct {
	flag, field, usage string
}{
	{"query", xplore.FieldQueryText, "free text searched across all metadata"},
	{"boolean", xplore.FieldBooleanText, "boolean expression, e.g. \"(rfid AND security)\""},
	{"article-number", xplore.FieldArticleNumber, "IEEE article number"},
	{"title", "article_title", "words in the article title"},
	{"author", "author", "author name"},
	{"abstract", "abstract", "words in the abstract"},
	{"affiliation", "affiliation", "author affiliation"},
	{"doi", "doi", "article DOI"},
	{"index-terms", "index_terms", "index terms"},
	{"publication-title", "publication_title", "journal or conference title"},
	{"year", "publication_year", "publication year"},
	{"facet-author", "d-au", "author facet"},
	{"facet-year", "d-year", "publication year facet"},
	{"facet-type", "d-pubtype", "content type facet"},
	{"facet-publisher", "d-publisher", "publisher facet"},
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	q := xplore.NewQuery(cfg.Xplore.APIKey)
	for _, err := range buildSearchQuery(cmd, q) {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	client := xplore.NewClient(cfg.Xplore, nil, log)

	if printURL, _ := cmd.Flags().GetBool("print-url"); printURL {
		u, err := client.URL(q)
		if err != nil {
			return err
		}
		fmt.Println(u)
		return nil
	}

	// Captured before pagination moves the starting record.
	saved := xplore.NewQueryFile(q)

	ctx, cancel := commandContext()
	defer cancel()

	all, _ := cmd.Flags().GetBool("all")
	var (
		results []types.Paper
		total   int
		runErr  error
	)
	if all {
		results, total, runErr = searchAll(ctx, cmd, client, q, cfg.Xplore.PageDelay)
	} else {
		var raw []byte
		results, total, raw, runErr = searchPage(ctx, client, q)
		if runErr == nil && raw != nil {
			_, err := os.Stdout.Write(raw)
			return err
		}
	}
	if runErr != nil && len(results) == 0 {
		return runErr
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "warning: stopped after %d papers: %v\n", len(results), runErr)
	}

	if err := saveSearchResults(ctx, cmd, cfg, saved, results, total); err != nil {
		return err
	}
	if err := printPapers(cmd, results); err != nil {
		return err
	}
	if total > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d total records\n", len(results), total)
	}
	return runErr
}

// buildSearchQuery applies the query file, options, fields and filters
// from cmd to q. Rejected settings are returned for reporting; they do not
// stop the search.
func buildSearchQuery(cmd *cobra.Command, q *xplore.Query) []error {
	var errs []error
	flags := cmd.Flags()

	if path, _ := flags.GetString("query-file"); path != "" {
		qf, err := xplore.ReadQueryFile(path)
		if err != nil {
			errs = append(errs, err)
		} else if err := qf.Apply(q); err != nil {
			errs = append(errs, err)
		}
	}

	if flags.Changed("format") {
		v, _ := flags.GetString("format")
		if err := q.DataType(v); err != nil {
			errs = append(errs, err)
		}
	}
	if flags.Changed("data-format") {
		v, _ := flags.GetString("data-format")
		if err := q.SetDataFormat(v); err != nil {
			errs = append(errs, err)
		}
	}
	if flags.Changed("max") {
		v, _ := flags.GetFloat64("max")
		q.MaximumResults(v)
	}
	if flags.Changed("start") {
		v, _ := flags.GetFloat64("start")
		q.StartingResult(v)
	}
	if flags.Changed("sort-field") || flags.Changed("sort-order") {
		field, order := q.Sort()
		if flags.Changed("sort-field") {
			field, _ = flags.GetString("sort-field")
		}
		if flags.Changed("sort-order") {
			order, _ = flags.GetString("sort-order")
		}
		if err := q.ResultsSorting(field, order); err != nil {
			errs = append(errs, err)
		}
	}

	fields, _ := flags.GetStringArray("field")
	for _, kv := range fields {
		name, value, err := parseKV(kv)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := q.SearchField(name, value); err != nil {
			errs = append(errs, err)
		}
	}
	for _, s := range shortcutFlags {
		if v, _ := flags.GetString(s.flag); v != "" {
			q.AddParameter(s.field, v)
		}
	}

	filters, _ := flags.GetStringArray("filter")
	for _, kv := range filters {
		name, value, err := parseKV(kv)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		q.ResultsFilter(name, value)
	}
	return errs
}

// searchPage fetches one page. For raw XML output the body is returned
// unparsed so it can be written as is.
func searchPage(ctx context.Context, client *xplore.Client, q *xplore.Query) ([]types.Paper, int, []byte, error) {
	resp, err := client.CallAPI(ctx, q)
	if err != nil {
		return nil, 0, nil, err
	}
	if resp.OutputType == xplore.OutputXML {
		return nil, 0, resp.Raw, nil
	}
	page, err := resp.SearchPage()
	if err != nil {
		return nil, 0, nil, err
	}
	return papers.Extract(page.Articles), page.TotalRecords, nil, nil
}

func searchAll(ctx context.Context, cmd *cobra.Command, client *xplore.Client, q *xplore.Query, delay time.Duration) ([]types.Paper, int, error) {
	limit, _ := cmd.Flags().GetInt("limit")
	if cmd.Flags().Changed("page-delay") {
		delay, _ = cmd.Flags().GetDuration("page-delay")
	}

	p := paginate.New(client, q,
		paginate.WithPageDelay(delay),
		paginate.WithLimit(limit),
		paginate.WithLogger(log))

	var (
		out   []types.Paper
		total int
	)
	for {
		step, err := p.Next(ctx)
		if err != nil {
			return out, total, err
		}
		total = step.Total
		if step.Kind == paginate.StepExhausted {
			return out, total, nil
		}
		out = append(out, step.Papers...)
		fmt.Fprintf(os.Stderr, "fetched %d/%d\n", len(out), total)
	}
}

// saveSearchResults writes the --out file, the --save-query file and the
// library entries requested on cmd.
func saveSearchResults(ctx context.Context, cmd *cobra.Command, cfg types.Config, qf xplore.QueryFile, results []types.Paper, total int) error {
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		if err := papers.Save(out, results); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %d papers to %s\n", len(results), out)
	}

	if path, _ := cmd.Flags().GetString("save-query"); path != "" {
		qf.Summary = &xplore.QuerySummary{Records: len(results), Total: total, Timestamp: time.Now().UTC()}
		if err := xplore.WriteQueryFile(path, qf); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved query to %s\n", path)
	}

	if store, _ := cmd.Flags().GetBool("store"); store {
		lib, err := library.NewStore(cfg.Library)
		if err != nil {
			return err
		}
		defer lib.Close()

		summary, err := lib.Add(ctx, results, "search")
		if err != nil {
			return err
		}
		log.Info("stored search results",
			zap.Int("inserted", summary.Inserted),
			zap.Int("updated", summary.Updated),
			zap.Int("skipped", summary.Skipped))
		fmt.Fprintf(os.Stderr, "library: %d inserted, %d updated, %d skipped\n",
			summary.Inserted, summary.Updated, summary.Skipped)
	}
	return nil
}

func addSearchFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringArray("field", nil, "search field as name=value (repeatable)")
	f.StringArray("filter", nil, "result filter as name=value (repeatable)")
	for _, s := range shortcutFlags {
		f.String(s.flag, "", s.usage)
	}

	f.Float64("max", xplore.DefaultMaxRecords, "records per request (1-200)")
	f.Float64("start", xplore.DefaultStartRecord, "starting record")
	f.String("sort-field", xplore.DefaultSortField, "field to sort by")
	f.String("sort-order", xplore.SortAsc, "sort order: asc or desc")
	f.String("format", xplore.OutputJSON, "API output type: json or xml")
	f.String("data-format", xplore.FormatRaw, "response data format: raw or object")

	f.Bool("all", false, "fetch every page")
	f.Int("limit", 0, "with --all, stop after this many papers (0 = no limit)")
	f.Duration("page-delay", time.Second, "with --all, pause between requests")

	f.Bool("print-url", false, "print the request URL and exit")
	f.String("query-file", "", "load the search from a saved query file")
	f.String("save-query", "", "save the search to a query file")
	f.String("out", "", "write papers to a JSON or YAML file")
	f.Bool("store", false, "add papers to the local library")
	addOutputFlags(cmd)
}

func init() {
	addSearchFlags(searchCmd)
	rootCmd.AddCommand(searchCmd)
}
