// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package paginate walks every page of an IEEE Xplore search, collecting
// Papers until the reported total is reached or the API returns an empty
// page. Consecutive requests are separated by a fixed pause.
package paginate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pdiddy/xplore/internal/papers"
	"github.com/pdiddy/xplore/internal/xplore"
	"github.com/pdiddy/xplore/pkg/types"
)

// DefaultPageDelay is the pause between consecutive page requests.
const DefaultPageDelay = time.Second

// ErrJSONRequired is returned when the query asks for XML output; page
// totals and article lists are read from JSON.
var ErrJSONRequired = errors.New("pagination requires JSON output")

// Fetcher sends one query. *xplore.Client implements it.
type Fetcher interface {
	CallAPI(ctx context.Context, q *xplore.Query) (*xplore.Response, error)
}

// StepKind tells a page apart from the end of the result set.
type StepKind int

const (
	// StepPage carries the papers of one fetched page.
	StepPage StepKind = iota
	// StepExhausted means there is nothing more to fetch.
	StepExhausted
)

func (k StepKind) String() string {
	switch k {
	case StepPage:
		return "page"
	case StepExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("StepKind(%d)", int(k))
	}
}

// Step is the outcome of one successful call to Next.
type Step struct {
	Kind StepKind

	// Papers holds the page's papers for StepPage.
	Papers []types.Paper

	// Total is the total_records value most recently reported by the API.
	Total int

	// Next is the starting record of the following request.
	Next int
}

// Option configures a Paginator.
type Option func(*Paginator)

// WithPageDelay sets the pause between consecutive requests. Zero or a
// negative value disables the pause.
func WithPageDelay(d time.Duration) Option {
	return func(p *Paginator) {
		p.limiter = newLimiter(d)
	}
}

// WithLimit stops pagination once n papers have been collected. The page
// that crosses the limit is truncated. Zero means no limit.
func WithLimit(n int) Option {
	return func(p *Paginator) {
		if n > 0 {
			p.limit = n
		}
	}
}

// WithLogger sets the logger for per-page progress.
func WithLogger(log *zap.Logger) Option {
	return func(p *Paginator) {
		if log != nil {
			p.log = log
		}
	}
}

// Paginator fetches a search page by page. It owns the query's starting
// record while it runs.
type Paginator struct {
	fetcher Fetcher
	query   *xplore.Query
	limiter *rate.Limiter
	limit   int
	log     *zap.Logger

	offset    int
	total     int
	collected int
	done      bool
}

// New returns a Paginator that starts at record 1.
func New(f Fetcher, q *xplore.Query, opts ...Option) *Paginator {
	p := &Paginator{
		fetcher: f,
		query:   q,
		limiter: newLimiter(DefaultPageDelay),
		log:     zap.NewNop(),
		offset:  xplore.DefaultStartRecord,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// A limiter with a burst of one lets the first request through at once
// and holds each later one until the delay has passed.
func newLimiter(d time.Duration) *rate.Limiter {
	if d <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(d), 1)
}

// Next fetches the next page. A returned error leaves the paginator where
// it was, so the same page is requested again on the following call.
func (p *Paginator) Next(ctx context.Context) (Step, error) {
	if p.done {
		return Step{Kind: StepExhausted, Total: p.total, Next: p.offset}, nil
	}
	if p.query.OutputType() != xplore.OutputJSON {
		return Step{}, ErrJSONRequired
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return Step{}, fmt.Errorf("waiting before record %d: %w", p.offset, err)
	}

	p.query.StartingResult(float64(p.offset))
	resp, err := p.fetcher.CallAPI(ctx, p.query)
	if err != nil {
		return Step{}, fmt.Errorf("fetching records from %d: %w", p.offset, err)
	}
	page, err := resp.SearchPage()
	if err != nil {
		return Step{}, fmt.Errorf("reading records from %d: %w", p.offset, err)
	}

	p.total = page.TotalRecords
	if len(page.Articles) == 0 {
		p.done = true
		p.log.Debug("empty page", zap.Int("start_record", p.offset), zap.Int("total_records", p.total))
		return Step{Kind: StepExhausted, Total: p.total, Next: p.offset}, nil
	}

	batch := papers.Extract(page.Articles)
	if p.limit > 0 && p.collected+len(batch) > p.limit {
		batch = batch[:p.limit-p.collected]
	}
	p.offset += len(page.Articles)
	p.collected += len(batch)

	if p.offset > p.total || (p.limit > 0 && p.collected >= p.limit) {
		p.done = true
	}

	p.log.Info("fetched page",
		zap.Int("papers", len(batch)),
		zap.Int("collected", p.collected),
		zap.Int("total_records", p.total))

	return Step{Kind: StepPage, Papers: batch, Total: p.total, Next: p.offset}, nil
}

// All drains the paginator. On error it returns the papers collected so
// far together with the error.
func (p *Paginator) All(ctx context.Context) ([]types.Paper, error) {
	var out []types.Paper
	for {
		step, err := p.Next(ctx)
		if err != nil {
			return out, err
		}
		if step.Kind == StepExhausted {
			return out, nil
		}
		out = append(out, step.Papers...)
	}
}

// Collected returns the number of papers returned so far.
func (p *Paginator) Collected() int { return p.collected }
