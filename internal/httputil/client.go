// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP transport shared by the xplore client.
//
// Requests go through a resty client configured with a timeout and a
// User-Agent. Responses outside the 2xx range are converted into a
// *StatusError so callers can tell a rejected request from a network
// failure. There is no retry: a failed request is reported once.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// maxErrorBody caps how much of a failed response body is kept on a StatusError.
const maxErrorBody = 512

// StatusError reports a response with a non-2xx status code.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// IsStatus reports whether err wraps a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// Client performs GET requests and returns the response body.
type Client struct {
	rc *resty.Client
}

// NewClient returns a Client whose requests time out after timeout and
// carry the given User-Agent. A nil hc uses resty's default transport.
func NewClient(hc *http.Client, timeout time.Duration, userAgent string) *Client {
	var rc *resty.Client
	if hc != nil {
		rc = resty.NewWithClient(hc)
	} else {
		rc = resty.New()
	}
	rc.SetTimeout(timeout)
	if userAgent != "" {
		rc.SetHeader("User-Agent", userAgent)
	}
	return &Client{rc: rc}
}

// Get fetches url and returns the body of a 2xx response. Non-2xx
// responses return a *StatusError; network failures are wrapped.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	req := c.rc.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		body := string(resp.Body())
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &StatusError{StatusCode: resp.StatusCode(), Body: body}
	}
	return resp.Body(), nil
}
