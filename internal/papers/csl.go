package papers

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/xplore/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema
// so that output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Author         []CSLName `yaml:"author,omitempty"`
	Abstract       string    `yaml:"abstract,omitempty"`
	Keyword        string    `yaml:"keyword,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// FormatCSL writes papers as a CSL-YAML list to w.
func FormatCSL(papers []types.Paper, w io.Writer) error {
	items := make([]CSLItem, len(papers))
	for i, p := range papers {
		items[i] = toCSLItem(p, i)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

var yearRe = regexp.MustCompile(`\b(1[89]|20)\d{2}\b`)

// toCSLItem converts a Paper to a CSLItem. The DOI doubles as the item ID;
// papers without one get a positional ID.
func toCSLItem(p types.Paper, index int) CSLItem {
	item := CSLItem{
		ID:             fmt.Sprintf("xplore-%d", index+1),
		Type:           "paper-conference",
		Title:          deref(p.Title),
		ContainerTitle: deref(p.PublicationTitle),
		Abstract:       deref(p.Abstract),
		Keyword:        deref(p.Keywords),
		DOI:            deref(p.DOI),
	}
	if item.DOI != "" {
		item.ID = item.DOI
	}
	if isJournal(item.ContainerTitle) {
		item.Type = "article-journal"
	}

	for _, name := range p.AuthorNames() {
		item.Author = append(item.Author, parseAuthorName(name))
	}

	if y := yearRe.FindString(deref(p.PublicationYear)); y != "" {
		year, _ := strconv.Atoi(y)
		item.Issued = &CSLDate{DateParts: [][]int{{year}}}
	}
	return item
}

func isJournal(container string) bool {
	c := strings.ToLower(container)
	return strings.Contains(c, "transactions") || strings.Contains(c, "journal") || strings.Contains(c, "letters")
}

// parseAuthorName splits a full name string into CSL family/given parts.
// It splits on the last space: everything before is given, the last token
// is family. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
