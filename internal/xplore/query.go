// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package xplore builds IEEE Xplore API queries and executes them.
//
// A Query accumulates search parameters, filters and output options. The
// query mode (article number, boolean text, or generic field search with
// optional facet) is derived from the accumulated parameters each time a
// URL is built, so a Query can be modified and sent again.
package xplore

import (
	"fmt"
	"math"
	"strings"
)

// Output types accepted by DataType.
const (
	OutputJSON = "json"
	OutputXML  = "xml"
)

// Data formats accepted by SetDataFormat.
const (
	FormatRaw    = "raw"
	FormatObject = "object"
)

// Sort orders accepted by ResultsSorting.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Result set bounds.
const (
	DefaultMaxRecords  = 25
	MaxRecordsCap      = 200
	DefaultStartRecord = 1
	DefaultSortField   = "article_title"
)

// Param is one named query value.
type Param struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// orderedValues keeps one value per name in first-insertion order.
type orderedValues struct {
	names  []string
	values map[string]string
}

func (o *orderedValues) set(name, value string) {
	if o.values == nil {
		o.values = make(map[string]string)
	}
	if _, ok := o.values[name]; !ok {
		o.names = append(o.names, name)
	}
	o.values[name] = value
}

func (o *orderedValues) get(name string) (string, bool) {
	v, ok := o.values[name]
	return v, ok
}

func (o *orderedValues) list() []Param {
	out := make([]Param, len(o.names))
	for i, n := range o.names {
		out[i] = Param{Name: n, Value: o.values[n]}
	}
	return out
}

// Query accumulates the parameters of one search session. It is not safe
// for concurrent use.
type Query struct {
	apiKey string

	outputType string
	dataFormat string

	maxRecords  int
	startRecord int
	sortField   string
	sortOrder   string

	params  orderedValues
	filters orderedValues

	openAccess       bool
	criteriaProvided bool
}

// NewQuery returns a Query with the API defaults: JSON output, raw data
// format, 25 records from position 1, sorted by article title ascending.
func NewQuery(apiKey string) *Query {
	return &Query{
		apiKey:      apiKey,
		outputType:  OutputJSON,
		dataFormat:  FormatRaw,
		maxRecords:  DefaultMaxRecords,
		startRecord: DefaultStartRecord,
		sortField:   DefaultSortField,
		sortOrder:   SortAsc,
	}
}

// DataType selects the response serialization: json or xml.
func (q *Query) DataType(outputType string) error {
	t := strings.ToLower(strings.TrimSpace(outputType))
	if t != OutputJSON && t != OutputXML {
		return fmt.Errorf("%w: output type %q (want json or xml)", ErrInvalidOption, outputType)
	}
	q.outputType = t
	return nil
}

// SetDataFormat selects how CallAPI returns the response: raw bytes or a
// parsed object.
func (q *Query) SetDataFormat(format string) error {
	f := strings.ToLower(strings.TrimSpace(format))
	if f != FormatRaw && f != FormatObject {
		return fmt.Errorf("%w: data format %q (want raw or object)", ErrInvalidOption, format)
	}
	q.dataFormat = f
	return nil
}

// StartingResult sets the 1-based position of the first record returned.
// Fractional values round up; values <= 0 reset to 1.
func (q *Query) StartingResult(start float64) {
	if start > 0 {
		q.startRecord = int(math.Ceil(start))
		return
	}
	q.startRecord = DefaultStartRecord
}

// MaximumResults sets the page size. Fractional values round up; values
// <= 0 reset to 25; anything above 200 is capped at 200.
func (q *Query) MaximumResults(maximum float64) {
	n := DefaultMaxRecords
	if maximum > 0 {
		// Cap before converting so huge inputs cannot overflow int.
		n = int(math.Ceil(math.Min(maximum, MaxRecordsCap)))
	}
	q.maxRecords = n
}

// ResultsSorting sets the sort field and order.
func (q *Query) ResultsSorting(field, order string) error {
	o := strings.ToLower(strings.TrimSpace(order))
	if o != SortAsc && o != SortDesc {
		return fmt.Errorf("%w: sort order %q (want asc or desc)", ErrInvalidOption, order)
	}
	q.sortField = strings.ToLower(strings.TrimSpace(field))
	q.sortOrder = o
	return nil
}

// ResultsFilter adds a filter such as start_year or content_type. Empty
// values are ignored. Filtering content_type to Standards sorts by
// publication year ascending.
func (q *Query) ResultsFilter(name, value string) {
	name = strings.ToLower(strings.TrimSpace(name))
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	q.filters.set(name, value)
	q.criteriaProvided = true

	if name == FieldContentType && value == "Standards" {
		q.sortField = "publication_year"
		q.sortOrder = SortAsc
	}
}

// SearchField adds a parameter after checking name against the allowed
// search fields. Unsupported names return ErrUnsupportedField and leave
// the query unchanged.
func (q *Query) SearchField(name, value string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if !IsSearchField(name) {
		return fmt.Errorf("%w: searches against field %q are not supported", ErrUnsupportedField, name)
	}
	q.AddParameter(name, value)
	return nil
}

// AddParameter stores a search parameter. The value is trimmed; empty
// values are ignored. Setting a name again replaces its value but keeps
// its original position.
func (q *Query) AddParameter(name, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	q.params.set(name, value)
	q.criteriaProvided = true
}

// OpenAccess switches the query to the full-text endpoint for one article.
// A blank article number leaves the query unchanged.
func (q *Query) OpenAccess(articleNumber string) {
	if strings.TrimSpace(articleNumber) == "" {
		return
	}
	q.openAccess = true
	q.ArticleNumber(articleNumber)
}

// Parameters returns the search parameters in insertion order.
func (q *Query) Parameters() []Param { return q.params.list() }

// Parameter returns the value stored for name.
func (q *Query) Parameter(name string) (string, bool) { return q.params.get(name) }

// Filters returns the filters in insertion order.
func (q *Query) Filters() []Param { return q.filters.list() }

// Sort returns the sort field and order.
func (q *Query) Sort() (field, order string) { return q.sortField, q.sortOrder }

// MaxRecords returns the effective page size.
func (q *Query) MaxRecords() int { return q.maxRecords }

// StartRecord returns the effective starting position.
func (q *Query) StartRecord() int { return q.startRecord }

// OutputType returns json or xml.
func (q *Query) OutputType() string { return q.outputType }

// DataFormat returns raw or object.
func (q *Query) DataFormat() string { return q.dataFormat }

// IsOpenAccess reports whether the query targets the full-text endpoint.
func (q *Query) IsOpenAccess() bool { return q.openAccess }

// CriteriaProvided reports whether any parameter, filter or open-access
// article has been set.
func (q *Query) CriteriaProvided() bool { return q.criteriaProvided }
