// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package xplore

import (
	"net/url"
	"strconv"
	"strings"
)

// queryMode selects how the search clause of a generic URL is rendered.
// Exactly one mode applies to a build: article number first, then boolean
// text, else the generic parameter list.
type queryMode interface {
	writeClause(b *strings.Builder)
}

type articleNumberMode struct {
	number string
}

func (m articleNumberMode) writeClause(b *strings.Builder) {
	writePair(b, FieldArticleNumber, m.number)
}

type booleanMode struct {
	text string
}

func (m booleanMode) writeClause(b *strings.Builder) {
	b.WriteString("&" + FieldQueryText + "=(")
	b.WriteString(escape(m.text))
	b.WriteString(")")
}

// genericMode renders every parameter as a name=value pair. When facet is
// non-empty, that parameter is rendered as querytext=<value>&facet=<name>
// in its place.
type genericMode struct {
	params []Param
	facet  string
}

func (m genericMode) writeClause(b *strings.Builder) {
	for _, p := range m.params {
		if p.Name == m.facet {
			writePair(b, FieldQueryText, p.Value)
			b.WriteString("&facet=" + p.Name)
			continue
		}
		writePair(b, p.Name, p.Value)
	}
}

// mode derives the query mode from the current parameters.
func (q *Query) mode() queryMode {
	if n, ok := q.params.get(FieldArticleNumber); ok {
		return articleNumberMode{number: n}
	}
	if t, ok := q.params.get(FieldBooleanText); ok {
		return booleanMode{text: t}
	}
	m := genericMode{params: q.params.list()}
	for _, p := range m.params {
		if IsFacetField(p.Name) {
			m.facet = p.Name
			break
		}
	}
	return m
}

// buildURL renders the request URL against the given endpoints.
func (q *Query) buildURL(searchEndpoint, openAccessEndpoint string) (string, error) {
	if !q.criteriaProvided {
		return "", ErrNoCriteria
	}
	if q.openAccess {
		return q.buildOpenAccessURL(openAccessEndpoint)
	}

	var b strings.Builder
	b.WriteString(searchEndpoint)
	b.WriteString("?apikey=" + escape(q.apiKey))
	b.WriteString("&format=" + q.outputType)
	b.WriteString("&max_records=" + strconv.Itoa(q.maxRecords))
	b.WriteString("&start_record=" + strconv.Itoa(q.startRecord))
	b.WriteString("&sort_order=" + escape(q.sortOrder))
	b.WriteString("&sort_field=" + escape(q.sortField))

	q.mode().writeClause(&b)

	for _, f := range q.filters.list() {
		writePair(&b, f.Name, f.Value)
	}
	return b.String(), nil
}

func (q *Query) buildOpenAccessURL(endpoint string) (string, error) {
	number, ok := q.params.get(FieldArticleNumber)
	if !ok {
		return "", ErrNoCriteria
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(endpoint, "/"))
	b.WriteString("/" + url.PathEscape(number) + "/fulltext")
	b.WriteString("?apikey=" + escape(q.apiKey))
	b.WriteString("&format=" + q.outputType)
	return b.String(), nil
}

// BuildURL returns the URL CallAPI would request against the default
// endpoints.
func (q *Query) BuildURL() (string, error) {
	return q.buildURL(defaultSearchEndpoint, defaultOpenAccessEndpoint)
}

func writePair(b *strings.Builder, name, value string) {
	b.WriteString("&")
	b.WriteString(name)
	b.WriteString("=")
	b.WriteString(escape(value))
}

// escape percent-encodes a query value with spaces as %20.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
