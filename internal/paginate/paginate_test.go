// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package paginate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/xplore/internal/httputil"
	"github.com/pdiddy/xplore/internal/xplore"
	"github.com/pdiddy/xplore/pkg/types"
)

// fakeFetcher serves canned bodies in order and records the starting
// record of every request.
type fakeFetcher struct {
	bodies []string
	errAt  int
	err    error
	starts []int
}

func (f *fakeFetcher) CallAPI(_ context.Context, q *xplore.Query) (*xplore.Response, error) {
	f.starts = append(f.starts, q.StartRecord())
	call := len(f.starts)
	if f.err != nil && call == f.errAt {
		return nil, f.err
	}
	if call > len(f.bodies) {
		return nil, fmt.Errorf("unexpected call %d", call)
	}
	return &xplore.Response{Raw: []byte(f.bodies[call-1]), OutputType: xplore.OutputJSON}, nil
}

func page(total int, titles ...string) string {
	articles := make([]string, len(titles))
	for i, t := range titles {
		articles[i] = fmt.Sprintf(`{"title": %q}`, t)
	}
	return fmt.Sprintf(`{"total_records": %d, "articles": [%s]}`, total, strings.Join(articles, ","))
}

func newQuery() *xplore.Query {
	q := xplore.NewQuery("KEY")
	q.QueryText("graphs")
	return q
}

func titles(ps []types.Paper) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = types.OrNA(p.Title)
	}
	return out
}

func TestAllFollowsTotal(t *testing.T) {
	f := &fakeFetcher{bodies: []string{page(3, "a", "b"), page(3, "c")}}

	got, err := New(f, newQuery(), WithPageDelay(0)).All(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, titles(got))
	assert.Equal(t, []int{1, 3}, f.starts, "offset advances by the records returned")
}

func TestAllStopsOnEmptyPage(t *testing.T) {
	f := &fakeFetcher{bodies: []string{page(10, "a", "b"), page(10)}}

	got, err := New(f, newQuery(), WithPageDelay(0)).All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, titles(got))
	assert.Len(t, f.starts, 2)
}

func TestAllMissingArticles(t *testing.T) {
	f := &fakeFetcher{bodies: []string{`{"total_records": 0}`}}

	got, err := New(f, newQuery(), WithPageDelay(0)).All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Len(t, f.starts, 1)
}

func TestAllReturnsPartialResultsOnError(t *testing.T) {
	boom := errors.New("connection reset")
	f := &fakeFetcher{bodies: []string{page(6, "a", "b")}, errAt: 2, err: boom}

	got, err := New(f, newQuery(), WithPageDelay(0)).All(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a", "b"}, titles(got))
}

func TestNextErrorDoesNotAdvance(t *testing.T) {
	boom := errors.New("timeout")
	f := &fakeFetcher{bodies: []string{"", page(2, "a", "b")}, errAt: 1, err: boom}
	p := New(f, newQuery(), WithPageDelay(0))

	_, err := p.Next(context.Background())
	require.ErrorIs(t, err, boom)

	step, err := p.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StepPage, step.Kind)
	assert.Equal(t, []int{1, 1}, f.starts, "failed request is retried from the same offset")
}

func TestNextSteps(t *testing.T) {
	f := &fakeFetcher{bodies: []string{page(3, "a", "b"), page(3, "c")}}
	p := New(f, newQuery(), WithPageDelay(0))
	ctx := context.Background()

	step, err := p.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, StepPage, step.Kind)
	assert.Equal(t, 3, step.Total)
	assert.Equal(t, 3, step.Next)
	assert.Len(t, step.Papers, 2)

	step, err = p.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, StepPage, step.Kind)
	assert.Equal(t, 4, step.Next)

	step, err = p.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, StepExhausted, step.Kind)
	assert.Len(t, f.starts, 2, "exhausted step sends no request")
}

func TestWithLimitTruncates(t *testing.T) {
	f := &fakeFetcher{bodies: []string{page(10, "a", "b"), page(10, "c", "d")}}
	p := New(f, newQuery(), WithPageDelay(0), WithLimit(3))

	got, err := p.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, titles(got))
	assert.Equal(t, 3, p.Collected())
	assert.Len(t, f.starts, 2)
}

func TestXMLOutputRejected(t *testing.T) {
	q := newQuery()
	require.NoError(t, q.DataType(xplore.OutputXML))
	f := &fakeFetcher{}

	_, err := New(f, q, WithPageDelay(0)).All(context.Background())
	require.ErrorIs(t, err, ErrJSONRequired)
	assert.Empty(t, f.starts)
}

func TestMalformedPage(t *testing.T) {
	f := &fakeFetcher{bodies: []string{`{"articles": [`}}
	_, err := New(f, newQuery(), WithPageDelay(0)).All(context.Background())
	require.ErrorIs(t, err, xplore.ErrParse)
}

func TestStepKindString(t *testing.T) {
	assert.Equal(t, "page", StepPage.String())
	assert.Equal(t, "exhausted", StepExhausted.String())
	assert.Equal(t, "StepKind(7)", StepKind(7).String())
}

func TestPageDelay(t *testing.T) {
	f := &fakeFetcher{bodies: []string{page(3, "a"), page(3, "b"), page(3, "c")}}
	delay := 40 * time.Millisecond

	start := time.Now()
	_, err := New(f, newQuery(), WithPageDelay(delay)).All(context.Background())
	require.NoError(t, err)

	// Three requests need two pauses; the first request is not delayed.
	assert.GreaterOrEqual(t, time.Since(start), 2*delay-5*time.Millisecond)
	assert.Len(t, f.starts, 3)
}

func TestContextCancelledBetweenPages(t *testing.T) {
	f := &fakeFetcher{bodies: []string{page(4, "a", "b"), page(4, "c", "d")}}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	got, err := New(f, newQuery(), WithPageDelay(time.Hour)).All(ctx)
	require.Error(t, err)
	assert.Equal(t, []string{"a", "b"}, titles(got))
	assert.Len(t, f.starts, 1)
}

func TestAllAgainstServer(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		start, _ := strconv.Atoi(r.URL.Query().Get("start_record"))
		assert.Equal(t, "2", r.URL.Query().Get("max_records"))
		switch start {
		case 1:
			fmt.Fprint(w, page(5, "p1", "p2"))
		case 3:
			fmt.Fprint(w, page(5, "p3", "p4"))
		case 5:
			fmt.Fprint(w, page(5, "p5"))
		default:
			t.Errorf("unexpected start_record %d", start)
		}
	}))
	defer srv.Close()

	c := xplore.NewClient(types.XploreConfig{SearchEndpoint: srv.URL}, srv.Client(), nil)
	q := newQuery()
	q.MaximumResults(2)

	got, err := New(c, q, WithPageDelay(0)).All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2", "p3", "p4", "p5"}, titles(got))
	assert.EqualValues(t, 3, calls.Load())
}

func TestServerErrorSurfacesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("start_record") == "1" {
			fmt.Fprint(w, page(4, "a", "b"))
			return
		}
		http.Error(w, "Developer Over Rate", http.StatusForbidden)
	}))
	defer srv.Close()

	c := xplore.NewClient(types.XploreConfig{SearchEndpoint: srv.URL}, srv.Client(), nil)
	got, err := New(c, newQuery(), WithPageDelay(0)).All(context.Background())

	require.Error(t, err)
	assert.True(t, httputil.IsStatus(err, http.StatusForbidden))
	assert.Len(t, got, 2)
}
