// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package xplore

// Search parameter names with special handling during URL construction.
const (
	FieldArticleNumber = "article_number"
	FieldBooleanText   = "boolean_text"
	FieldQueryText     = "querytext"
	FieldContentType   = "content_type"
)

// allowedSearchFields are the names SearchField accepts.
var allowedSearchFields = map[string]bool{
	"abstract":           true,
	"affiliation":        true,
	"article_number":     true,
	"article_title":      true,
	"author":             true,
	"boolean_text":       true,
	"content_type":       true,
	"d-au":               true,
	"d-pubtype":          true,
	"d-publisher":        true,
	"d-year":             true,
	"doi":                true,
	"end_year":           true,
	"facet":              true,
	"index_terms":        true,
	"isbn":               true,
	"issn":               true,
	"is_number":          true,
	"meta_data":          true,
	"open_access":        true,
	"publication_number": true,
	"publication_title":  true,
	"publication_year":   true,
	"publisher":          true,
	"querytext":          true,
	"start_year":         true,
	"thesaurus_terms":    true,
}

// facetFields are the parameters that put a generic query in facet mode.
var facetFields = map[string]bool{
	"facet":       true,
	"d-au":        true,
	"d-year":      true,
	"d-pubtype":   true,
	"d-publisher": true,
}

// IsSearchField reports whether name is accepted by SearchField.
func IsSearchField(name string) bool { return allowedSearchFields[name] }

// IsFacetField reports whether name is one of the facet-family parameters.
func IsFacetField(name string) bool { return facetFields[name] }

// Field shortcuts. Each stores one parameter through AddParameter.

func (q *Query) AbstractText(v string)         { q.AddParameter("abstract", v) }
func (q *Query) AffiliationText(v string)      { q.AddParameter("affiliation", v) }
func (q *Query) ArticleNumber(v string)        { q.AddParameter(FieldArticleNumber, v) }
func (q *Query) ArticleTitle(v string)         { q.AddParameter("article_title", v) }
func (q *Query) AuthorText(v string)           { q.AddParameter("author", v) }
func (q *Query) AuthorFacetText(v string)      { q.AddParameter("d-au", v) }
func (q *Query) BooleanText(v string)          { q.AddParameter(FieldBooleanText, v) }
func (q *Query) ContentTypeFacetText(v string) { q.AddParameter("d-pubtype", v) }
func (q *Query) DOI(v string)                  { q.AddParameter("doi", v) }
func (q *Query) FacetText(v string)            { q.AddParameter("facet", v) }
func (q *Query) IndexTerms(v string)           { q.AddParameter("index_terms", v) }
func (q *Query) ISBN(v string)                 { q.AddParameter("isbn", v) }
func (q *Query) ISSN(v string)                 { q.AddParameter("issn", v) }
func (q *Query) IssueNumber(v string)          { q.AddParameter("is_number", v) }
func (q *Query) MetaDataText(v string)         { q.AddParameter("meta_data", v) }
func (q *Query) PublicationFacetText(v string) { q.AddParameter("d-year", v) }
func (q *Query) PublisherFacetText(v string)   { q.AddParameter("d-publisher", v) }
func (q *Query) PublicationTitle(v string)     { q.AddParameter("publication_title", v) }
func (q *Query) PublicationYear(v string)      { q.AddParameter("publication_year", v) }
func (q *Query) QueryText(v string)            { q.AddParameter(FieldQueryText, v) }
func (q *Query) ThesaurusTerms(v string)       { q.AddParameter("thesaurus_terms", v) }
