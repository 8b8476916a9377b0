// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package papers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/xplore/pkg/types"
)

// FormatTable writes papers as a human-readable table to w. Absent fields
// are shown as N/A.
func FormatTable(papers []types.Paper, w io.Writer) {
	if len(papers) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-4s  %s\n",
		"#", "Title", "Authors", "Year", "DOI")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, p := range papers {
		title := truncate(types.OrNA(p.Title), 60)
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-4s  %s\n",
			i+1, title, formatAuthors(p.AuthorNames()), types.OrNA(p.PublicationYear), types.OrNA(p.DOI))
	}

	fmt.Fprintf(w, "\n%d papers\n", len(papers))
}

// FormatJSON writes papers as indented JSON to w.
func FormatJSON(papers []types.Paper, w io.Writer) error {
	dicts := make([]map[string]any, len(papers))
	for i, p := range papers {
		dicts[i] = p.ToMap()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(dicts)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return types.NotAvailable
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
