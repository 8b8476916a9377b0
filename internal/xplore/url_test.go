// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package xplore

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEndpoint = "http://api.test/search/articles"
const testOpenAccessEndpoint = "http://api.test/search/document/"

func build(t *testing.T, q *Query) string {
	t.Helper()
	u, err := q.buildURL(testEndpoint, testOpenAccessEndpoint)
	require.NoError(t, err)
	return u
}

func TestBuildURLPrefix(t *testing.T) {
	q := NewQuery("abc123")
	q.ArticleTitle("graphs")

	got := build(t, q)
	want := testEndpoint + "?apikey=abc123&format=json&max_records=25&start_record=1" +
		"&sort_order=asc&sort_field=article_title&article_title=graphs"
	assert.Equal(t, want, got)
}

func TestBuildURLNoCriteria(t *testing.T) {
	q := NewQuery("abc123")
	q.AuthorText("   ")

	_, err := q.buildURL(testEndpoint, testOpenAccessEndpoint)
	assert.ErrorIs(t, err, ErrNoCriteria)

	_, err = q.BuildURL()
	assert.ErrorIs(t, err, ErrNoCriteria)
}

func TestBuildURLArticleNumberTakesPrecedence(t *testing.T) {
	q := NewQuery("k")
	q.AuthorText("Smith")
	q.BooleanText("a AND b")
	q.AuthorFacetText("Jones")
	q.ArticleNumber("1234567")
	q.ResultsFilter("start_year", "2020")

	got := build(t, q)
	assert.True(t, strings.HasSuffix(got, "&sort_field=article_title&article_number=1234567&start_year=2020"), got)
	assert.NotContains(t, got, "querytext")
	assert.NotContains(t, got, "author=")
}

func TestBuildURLBooleanText(t *testing.T) {
	q := NewQuery("k")
	q.AuthorText("Smith")
	q.BooleanText("a AND b")

	got := build(t, q)
	assert.Contains(t, got, "&querytext=(a%20AND%20b)")
	assert.NotContains(t, got, "author=")
}

func TestBuildURLBooleanTextEscaping(t *testing.T) {
	q := NewQuery("k")
	q.BooleanText(`("Author":Smith OR "Index Terms":graph) & x+y`)

	got := build(t, q)
	idx := strings.Index(got, "&querytext=(")
	require.GreaterOrEqual(t, idx, 0)
	clause := got[idx+len("&querytext=(") : len(got)-1]
	assert.NotContains(t, clause, " ")
	assert.NotContains(t, clause, "&")

	decoded, err := url.PathUnescape(clause)
	require.NoError(t, err)
	assert.Equal(t, `("Author":Smith OR "Index Terms":graph) & x+y`, decoded)
}

func TestBuildURLFacetPairing(t *testing.T) {
	q := NewQuery("k")
	q.AuthorFacetText("Smith")
	q.PublicationFacetText("2020")

	got := build(t, q)
	assert.True(t, strings.HasSuffix(got, "&querytext=Smith&facet=d-au&d-year=2020"), got)
	assert.Equal(t, 1, strings.Count(got, "facet="))
}

func TestBuildURLFacetPairsFirstFacetParameter(t *testing.T) {
	q := NewQuery("k")
	q.ArticleTitle("graph drawing")
	q.PublisherFacetText("IEEE")
	q.AuthorText("Lee")

	got := build(t, q)
	assert.True(t, strings.HasSuffix(got,
		"&article_title=graph%20drawing&querytext=IEEE&facet=d-publisher&author=Lee"), got)
}

func TestBuildURLIsRepeatable(t *testing.T) {
	q := NewQuery("k")
	q.AuthorFacetText("Smith")
	q.PublicationFacetText("2020")

	first := build(t, q)
	second := build(t, q)
	assert.Equal(t, first, second)
}

func TestBuildURLGenericParametersInOrder(t *testing.T) {
	q := NewQuery("k")
	q.PublicationTitle("IEEE Visualization")
	q.PublicationYear("2023")
	q.PublicationTitle("IEEE VIS")

	got := build(t, q)
	assert.True(t, strings.HasSuffix(got, "&publication_title=IEEE%20VIS&publication_year=2023"), got)
}

func TestBuildURLFilters(t *testing.T) {
	q := NewQuery("k")
	q.QueryText("deep learning")
	q.ResultsFilter("start_year", "2019")
	q.ResultsFilter("end_year", "2021")
	q.ResultsFilter("content_type", "Early Access Articles")

	got := build(t, q)
	assert.True(t, strings.HasSuffix(got,
		"&querytext=deep%20learning&start_year=2019&end_year=2021&content_type=Early%20Access%20Articles"), got)
}

func TestBuildURLFiltersOnly(t *testing.T) {
	q := NewQuery("k")
	q.ResultsFilter("content_type", "Standards")

	got := build(t, q)
	assert.Contains(t, got, "&sort_order=asc&sort_field=publication_year")
	assert.True(t, strings.HasSuffix(got, "&content_type=Standards"), got)
}

func TestBuildURLOptions(t *testing.T) {
	q := NewQuery("k")
	q.QueryText("radar")
	require.NoError(t, q.DataType("xml"))
	q.MaximumResults(250)
	q.StartingResult(3.2)
	require.NoError(t, q.ResultsSorting("publication_year", "desc"))

	got := build(t, q)
	assert.Contains(t, got, "?apikey=k&format=xml&max_records=200&start_record=4&sort_order=desc&sort_field=publication_year")
}

func TestBuildOpenAccessURL(t *testing.T) {
	q := NewQuery("k")
	q.AuthorText("ignored")
	q.OpenAccess("8012345")

	got := build(t, q)
	assert.Equal(t, "http://api.test/search/document/8012345/fulltext?apikey=k&format=json", got)
}

func TestBuildOpenAccessURLBlankNumber(t *testing.T) {
	q := NewQuery("k")
	q.OpenAccess("  ")

	assert.False(t, q.IsOpenAccess())
	assert.False(t, q.CriteriaProvided())
	_, err := q.BuildURL()
	assert.ErrorIs(t, err, ErrNoCriteria)

	q.QueryText("radar")
	q.OpenAccess("")
	got := build(t, q)
	assert.True(t, strings.HasPrefix(got, testEndpoint+"?"), got)
	assert.NotContains(t, got, "fulltext")
}

func TestBuildURLDefaultEndpoints(t *testing.T) {
	q := NewQuery("k")
	q.QueryText("radar")

	got, err := q.BuildURL()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "http://ieeexploreapi.ieee.org/api/v1/search/articles?apikey=k"), got)

	q.OpenAccess("42")
	got, err = q.BuildURL()
	require.NoError(t, err)
	assert.Equal(t, "http://ieeexploreapi.ieee.org/api/v1/search/document/42/fulltext?apikey=k&format=json", got)
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"a AND b", "a%20AND%20b"},
		{"plain", "plain"},
		{"x+y", "x%2By"},
		{"a&b=c", "a%26b%3Dc"},
		{"café", "caf%C3%A9"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, escape(tt.in), tt.in)
	}
}
