// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package papers

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/xplore/pkg/types"
)

func decodeArticles(t *testing.T, s string) []map[string]any {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()
	var articles []map[string]any
	require.NoError(t, dec.Decode(&articles))
	return articles
}

func TestExtractFullArticle(t *testing.T) {
	articles := decodeArticles(t, `[{
		"title": "Graph Layouts at Scale",
		"publication_title": "IEEE Transactions on Visualization and Computer Graphics",
		"publication_year": 2023,
		"doi": "10.1109/TVCG.2023.0001",
		"abstract": "We study layouts.",
		"author_terms": "graphs, layouts",
		"authors": {"authors": [
			{"full_name": "Ada Lovelace", "affiliation": "Analytical Engines Ltd", "author_order": 1},
			{"full_name": "Alan Turing"}
		]}
	}]`)

	got := Extract(articles)
	want := []types.Paper{{
		Title:            types.String("Graph Layouts at Scale"),
		PublicationTitle: types.String("IEEE Transactions on Visualization and Computer Graphics"),
		PublicationYear:  types.String("2023"),
		DOI:              types.String("10.1109/TVCG.2023.0001"),
		Abstract:         types.String("We study layouts."),
		Keywords:         types.String("graphs, layouts"),
		Authors: []types.Author{
			{Name: types.String("Ada Lovelace"), Affiliation: types.String("Analytical Engines Ltd")},
			{Name: types.String("Alan Turing")},
		},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractMissingFields(t *testing.T) {
	got := Extract(decodeArticles(t, `[{"title": "Only a title"}, {}]`))
	require.Len(t, got, 2)

	assert.Equal(t, "Only a title", *got[0].Title)
	assert.Nil(t, got[0].DOI)
	assert.Nil(t, got[0].Abstract)
	assert.Nil(t, got[0].Keywords)
	assert.Empty(t, got[0].Authors)
	assert.NotNil(t, got[0].Authors, "authors should be an empty list, not nil")

	assert.Nil(t, got[1].Title)
	assert.Equal(t, types.NotAvailable, types.OrNA(got[1].Title))
}

func TestExtractPreservesOrder(t *testing.T) {
	got := Extract(decodeArticles(t, `[{"title":"c"},{"title":"a"},{"title":"b"}]`))
	var titles []string
	for _, p := range got {
		titles = append(titles, *p.Title)
	}
	assert.Equal(t, []string{"c", "a", "b"}, titles)
}

func TestExtractAuthorShapes(t *testing.T) {
	tests := []struct {
		name    string
		article string
		want    int
	}{
		{"authors missing", `{}`, 0},
		{"authors without inner list", `{"authors": {}}`, 0},
		{"authors not an object", `{"authors": "Smith"}`, 0},
		{"inner list not a list", `{"authors": {"authors": "Smith"}}`, 0},
		{"non-object entries skipped", `{"authors": {"authors": ["Smith", {"full_name": "Jones"}]}}`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(decodeArticles(t, "["+tt.article+"]"))
			require.Len(t, got, 1)
			assert.Len(t, got[0].Authors, tt.want)
		})
	}
}

func TestExtractAuthorDefaults(t *testing.T) {
	got := Extract(decodeArticles(t, `[{"authors": {"authors": [{"affiliation": "MIT"}]}}]`))
	require.Len(t, got[0].Authors, 1)
	a := got[0].Authors[0]
	assert.Nil(t, a.Name)
	assert.Equal(t, "MIT", *a.Affiliation)
}

func TestText(t *testing.T) {
	m := map[string]any{
		"str":    "x",
		"num":    json.Number("2021"),
		"float":  float64(2021),
		"bool":   true,
		"obj":    map[string]any{"terms": []any{"a", "b"}},
		"null":   nil,
		"intval": 7,
	}
	assert.Equal(t, "x", *text(m, "str"))
	assert.Equal(t, "2021", *text(m, "num"))
	assert.Equal(t, "2021", *text(m, "float"))
	assert.Equal(t, "true", *text(m, "bool"))
	assert.Equal(t, `{"terms":["a","b"]}`, *text(m, "obj"))
	assert.Equal(t, "7", *text(m, "intval"))
	assert.Nil(t, text(m, "null"))
	assert.Nil(t, text(m, "missing"))
}
