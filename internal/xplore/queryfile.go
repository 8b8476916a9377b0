// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package xplore

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// QueryFile is the on-disk representation of a search definition. A
// harvest can be saved to a file and re-run later with the same fields,
// filters and options. Fields and filters are lists so their order, which
// decides facet pairing and URL layout, survives the round trip.
type QueryFile struct {
	Fields     []Param       `yaml:"fields,omitempty"`
	Filters    []Param       `yaml:"filters,omitempty"`
	OpenAccess string        `yaml:"open_access_article,omitempty"`
	Options    QueryOptions  `yaml:"options"`
	Summary    *QuerySummary `yaml:"summary,omitempty"`
}

// QueryOptions stores the output and paging options of a query.
type QueryOptions struct {
	Format      string `yaml:"format,omitempty"`
	MaxRecords  int    `yaml:"max_records,omitempty"`
	StartRecord int    `yaml:"start_record,omitempty"`
	SortField   string `yaml:"sort_field,omitempty"`
	SortOrder   string `yaml:"sort_order,omitempty"`
}

// QuerySummary records the outcome of the last run of the query.
type QuerySummary struct {
	Records   int       `yaml:"records"`
	Total     int       `yaml:"total_records"`
	Timestamp time.Time `yaml:"timestamp"`
}

// NewQueryFile captures the state of q. The API key is never stored.
func NewQueryFile(q *Query) QueryFile {
	qf := QueryFile{
		Fields:  q.Parameters(),
		Filters: q.Filters(),
		Options: QueryOptions{
			Format:      q.outputType,
			MaxRecords:  q.maxRecords,
			StartRecord: q.startRecord,
			SortField:   q.sortField,
			SortOrder:   q.sortOrder,
		},
	}
	if q.openAccess {
		number, _ := q.params.get(FieldArticleNumber)
		qf.OpenAccess = number
		qf.Fields = nil
	}
	return qf
}

// Apply loads the file's definition into q. Options are applied before
// fields and filters so a Standards content_type filter still forces its
// sort. Every unsupported field is reported; valid ones are still applied.
func (qf QueryFile) Apply(q *Query) error {
	var errs []error

	o := qf.Options
	if o.Format != "" {
		if err := q.DataType(o.Format); err != nil {
			errs = append(errs, err)
		}
	}
	if o.MaxRecords != 0 {
		q.MaximumResults(float64(o.MaxRecords))
	}
	if o.StartRecord != 0 {
		q.StartingResult(float64(o.StartRecord))
	}
	if o.SortField != "" || o.SortOrder != "" {
		field, order := q.Sort()
		if o.SortField != "" {
			field = o.SortField
		}
		if o.SortOrder != "" {
			order = o.SortOrder
		}
		if err := q.ResultsSorting(field, order); err != nil {
			errs = append(errs, err)
		}
	}

	if qf.OpenAccess != "" {
		q.OpenAccess(qf.OpenAccess)
	}
	for _, f := range qf.Fields {
		if err := q.SearchField(f.Name, f.Value); err != nil {
			errs = append(errs, err)
		}
	}
	for _, f := range qf.Filters {
		q.ResultsFilter(f.Name, f.Value)
	}
	return errors.Join(errs...)
}

// WriteQueryFile saves qf as YAML at path.
func WriteQueryFile(path string, qf QueryFile) error {
	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}
