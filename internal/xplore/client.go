// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package xplore

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/xplore/internal/httputil"
	"github.com/pdiddy/xplore/pkg/types"
)

var (
	defaultSearchEndpoint     = types.DefaultSearchEndpoint
	defaultOpenAccessEndpoint = types.DefaultOpenAccessEndpoint
)

// Client sends Queries to the IEEE Xplore API.
type Client struct {
	http               *httputil.Client
	searchEndpoint     string
	openAccessEndpoint string
	log                *zap.Logger
}

// NewClient returns a Client for cfg. A nil hc uses the default transport;
// a nil log discards log output.
func NewClient(cfg types.XploreConfig, hc *http.Client, log *zap.Logger) *Client {
	cfg.ApplyDefaults()
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		http:               httputil.NewClient(hc, cfg.Timeout, cfg.UserAgent),
		searchEndpoint:     cfg.SearchEndpoint,
		openAccessEndpoint: cfg.OpenAccessEndpoint,
		log:                log,
	}
}

// URL returns the URL the client would request for q.
func (c *Client) URL(q *Query) (string, error) {
	return q.buildURL(c.searchEndpoint, c.openAccessEndpoint)
}

// CallAPI builds the URL for q, sends the request, and formats the
// response according to q's output type and data format. A query with no
// criteria fails with ErrNoCriteria before anything is sent.
func (c *Client) CallAPI(ctx context.Context, q *Query) (*Response, error) {
	u, err := c.URL(q)
	if err != nil {
		return nil, err
	}

	c.log.Debug("calling IEEE Xplore",
		zap.String("url", redactKey(u, q.apiKey)),
		zap.Int("start_record", q.startRecord),
		zap.Int("max_records", q.maxRecords))

	body, err := c.http.Get(ctx, u, map[string]string{"Accept": acceptHeader(q.outputType)})
	if err != nil {
		return nil, fmt.Errorf("IEEE Xplore API request: %w", err)
	}

	resp, err := formatResponse(body, q.outputType, q.dataFormat)
	if err != nil {
		return nil, err
	}
	c.log.Debug("IEEE Xplore response", zap.Int("bytes", len(body)))
	return resp, nil
}

func acceptHeader(outputType string) string {
	if outputType == OutputXML {
		return "application/xml"
	}
	return "application/json"
}

// redactKey hides the API key in log output.
func redactKey(u, key string) string {
	if key == "" {
		return u
	}
	return strings.ReplaceAll(u, escape(key), "REDACTED")
}
