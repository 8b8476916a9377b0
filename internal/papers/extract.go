// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package papers turns IEEE Xplore article objects into Paper records and
// reads and writes Paper collections on disk.
package papers

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pdiddy/xplore/pkg/types"
)

// Extract converts article objects from a search response into Papers,
// preserving order. Missing fields stay nil.
func Extract(articles []map[string]any) []types.Paper {
	papers := make([]types.Paper, 0, len(articles))
	for _, a := range articles {
		papers = append(papers, extractOne(a))
	}
	return papers
}

func extractOne(article map[string]any) types.Paper {
	return types.Paper{
		Title:            text(article, "title"),
		PublicationTitle: text(article, "publication_title"),
		PublicationYear:  text(article, "publication_year"),
		DOI:              text(article, "doi"),
		Abstract:         text(article, "abstract"),
		Keywords:         text(article, "author_terms"),
		Authors:          extractAuthors(article),
	}
}

// extractAuthors reads authors.authors[], skipping entries that are not objects.
func extractAuthors(article map[string]any) []types.Author {
	outer, ok := article["authors"].(map[string]any)
	if !ok {
		return []types.Author{}
	}
	list, ok := outer["authors"].([]any)
	if !ok {
		return []types.Author{}
	}
	authors := make([]types.Author, 0, len(list))
	for _, item := range list {
		am, ok := item.(map[string]any)
		if !ok {
			continue
		}
		authors = append(authors, types.Author{
			Name:        text(am, "full_name"),
			Affiliation: text(am, "affiliation"),
		})
	}
	return authors
}

// text renders a scalar value as a string. Objects and arrays are
// rendered as compact JSON; nil and missing keys are absent.
func text(m map[string]any, key string) *string {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case json.Number:
		s = t.String()
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		s = strconv.FormatBool(t)
	case map[string]any, []any:
		b, err := json.Marshal(t)
		if err != nil {
			s = fmt.Sprint(t)
		} else {
			s = string(b)
		}
	default:
		s = fmt.Sprint(t)
	}
	return &s
}
