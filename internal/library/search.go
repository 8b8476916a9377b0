// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/xplore/pkg/types"
)

// SearchOptions holds parameters for library searches. Empty fields do
// not filter.
type SearchOptions struct {
	// Text matches title, abstract or keywords, case-insensitively.
	Text string

	// Year matches the publication year exactly.
	Year string

	// Author matches any author name, case-insensitively.
	Author string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the options have no search terms or filters.
func (o SearchOptions) IsEmpty() bool {
	return o.Text == "" && o.Year == "" && o.Author == ""
}

// Search returns matching papers ordered by publication year, newest
// first, then by title.
func (s *Store) Search(ctx context.Context, opts SearchOptions) ([]types.Paper, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT title, publication_title, publication_year, doi, abstract, keywords, authors
		FROM papers
		WHERE 1=1`)

	if opts.Text != "" {
		like := likePattern(opts.Text)
		qb.WriteString(` AND (lower(title) LIKE ? ESCAPE '\' OR lower(abstract) LIKE ? ESCAPE '\' OR lower(keywords) LIKE ? ESCAPE '\')`)
		args = append(args, like, like, like)
	}

	if opts.Year != "" {
		qb.WriteString(` AND publication_year = ?`)
		args = append(args, opts.Year)
	}

	if opts.Author != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM json_each(papers.authors) WHERE lower(json_extract(value, '$.name')) LIKE ? ESCAPE '\')`)
		args = append(args, likePattern(opts.Author))
	}

	qb.WriteString(` ORDER BY publication_year DESC, title LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying library: %w", err)
	}
	defer rows.Close()

	var results []types.Paper
	for rows.Next() {
		var (
			title, container, year, doi, abstract, keywords sql.NullString
			authorsJSON                                     string
		)
		if err := rows.Scan(&title, &container, &year, &doi, &abstract, &keywords, &authorsJSON); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		p := types.Paper{
			Title:            fromNullable(title),
			PublicationTitle: fromNullable(container),
			PublicationYear:  fromNullable(year),
			DOI:              fromNullable(doi),
			Abstract:         fromNullable(abstract),
			Keywords:         fromNullable(keywords),
		}
		if err := json.Unmarshal([]byte(authorsJSON), &p.Authors); err != nil {
			return nil, fmt.Errorf("decoding authors: %w", err)
		}
		results = append(results, p.Normalized())
	}

	return results, rows.Err()
}

// likePattern builds a lowercase substring pattern with LIKE wildcards
// in text escaped.
func likePattern(text string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(text)) + "%"
}
