// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data structures of the xplore client:
// the Paper record extracted from IEEE Xplore responses and the
// configuration consumed by the client, paginator and library.
package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// NotAvailable is the placeholder shown for absent metadata. It is a
// presentation concern only; Paper fields stay nil when the API omits a value.
const NotAvailable = "N/A"

// Author is one entry of a paper's ordered author list.
type Author struct {
	Name        *string `json:"name,omitempty" yaml:"name,omitempty"`
	Affiliation *string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`
}

// Paper holds the metadata of one IEEE Xplore article.
type Paper struct {
	Title            *string `json:"title,omitempty" yaml:"title,omitempty"`
	PublicationTitle *string `json:"publication_title,omitempty" yaml:"publication_title,omitempty"`
	PublicationYear  *string `json:"publication_year,omitempty" yaml:"publication_year,omitempty"`
	DOI              *string `json:"doi,omitempty" yaml:"doi,omitempty"`
	Abstract         *string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Keywords is the article's author_terms rendered as text. It is not
	// split into a list.
	Keywords *string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// Authors lists the paper authors in source order. It is nil only on a
	// hand-built Paper; see Normalized.
	Authors []Author `json:"authors" yaml:"authors"`
}

// Dictionary keys used by ToMap and PaperFromMap.
const (
	KeyTitle            = "title"
	KeyPublicationTitle = "publication_title"
	KeyPublicationYear  = "publication_year"
	KeyDOI              = "doi"
	KeyAbstract         = "abstract"
	KeyKeywords         = "keywords"
	KeyAuthors          = "authors"
	KeyAuthorName       = "name"
	KeyAffiliation      = "affiliation"
)

// String returns a pointer to s. It is a convenience for building Papers.
func String(s string) *string { return &s }

// OrNA dereferences s, falling back to NotAvailable when s is nil.
func OrNA(s *string) string {
	if s == nil {
		return NotAvailable
	}
	return *s
}

// ToMap converts the paper to its dictionary form. Absent fields are
// omitted; authors are always present, possibly empty.
func (p Paper) ToMap() map[string]any {
	m := make(map[string]any, 7)
	putOptional(m, KeyTitle, p.Title)
	putOptional(m, KeyPublicationTitle, p.PublicationTitle)
	putOptional(m, KeyPublicationYear, p.PublicationYear)
	putOptional(m, KeyDOI, p.DOI)
	putOptional(m, KeyAbstract, p.Abstract)
	putOptional(m, KeyKeywords, p.Keywords)

	authors := make([]any, len(p.Authors))
	for i, a := range p.Authors {
		am := make(map[string]any, 2)
		putOptional(am, KeyAuthorName, a.Name)
		putOptional(am, KeyAffiliation, a.Affiliation)
		authors[i] = am
	}
	m[KeyAuthors] = authors
	return m
}

// PaperFromMap builds a Paper from its dictionary form. Missing keys and
// nil values are read as absent. Numeric and boolean scalars are kept as
// their text. Strings, including "N/A", are kept as written, so
// PaperFromMap(p.ToMap()) reproduces p.Normalized().
func PaperFromMap(m map[string]any) (Paper, error) {
	return fromMap(m, false)
}

// PaperFromLegacyMap is PaperFromMap for dictionaries that spell absent
// values as the NotAvailable placeholder. A value that is "N/A" after
// trimming is read as absent.
func PaperFromLegacyMap(m map[string]any) (Paper, error) {
	return fromMap(m, true)
}

func fromMap(m map[string]any, placeholders bool) (Paper, error) {
	p := Paper{Authors: []Author{}}
	var err error
	fields := []struct {
		key string
		dst **string
	}{
		{KeyTitle, &p.Title},
		{KeyPublicationTitle, &p.PublicationTitle},
		{KeyPublicationYear, &p.PublicationYear},
		{KeyDOI, &p.DOI},
		{KeyAbstract, &p.Abstract},
		{KeyKeywords, &p.Keywords},
	}
	for _, f := range fields {
		if *f.dst, err = optionalString(m, f.key, placeholders); err != nil {
			return Paper{}, err
		}
	}

	raw, ok := m[KeyAuthors]
	if !ok || raw == nil {
		return p, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return Paper{}, fmt.Errorf("field %q: expected a list, got %T", KeyAuthors, raw)
	}
	p.Authors = make([]Author, 0, len(list))
	for i, item := range list {
		am, ok := item.(map[string]any)
		if !ok {
			return Paper{}, fmt.Errorf("field %q[%d]: expected an object, got %T", KeyAuthors, i, item)
		}
		var a Author
		if a.Name, err = optionalString(am, KeyAuthorName, placeholders); err != nil {
			return Paper{}, fmt.Errorf("author %d: %w", i, err)
		}
		if a.Affiliation, err = optionalString(am, KeyAffiliation, placeholders); err != nil {
			return Paper{}, fmt.Errorf("author %d: %w", i, err)
		}
		p.Authors = append(p.Authors, a)
	}
	return p, nil
}

// Normalized returns p with a non-nil Authors list. Decoded and extracted
// Papers are always in this form.
func (p Paper) Normalized() Paper {
	if p.Authors == nil {
		p.Authors = []Author{}
	}
	return p
}

// AuthorNames returns the present author names in order.
func (p Paper) AuthorNames() []string {
	names := make([]string, 0, len(p.Authors))
	for _, a := range p.Authors {
		if a.Name != nil {
			names = append(names, *a.Name)
		}
	}
	return names
}

func putOptional(m map[string]any, key string, v *string) {
	if v != nil {
		m[key] = *v
	}
}

func optionalString(m map[string]any, key string, placeholders bool) (*string, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return nil, nil
	}
	var s string
	switch t := raw.(type) {
	case string:
		s = t
	case json.Number:
		s = t.String()
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		s = strconv.Itoa(t)
	case int64:
		s = strconv.FormatInt(t, 10)
	case uint64:
		s = strconv.FormatUint(t, 10)
	case bool:
		s = strconv.FormatBool(t)
	default:
		return nil, fmt.Errorf("field %q: expected a scalar, got %T", key, raw)
	}
	if placeholders && strings.TrimSpace(s) == NotAvailable {
		return nil, nil
	}
	return &s, nil
}
