package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/iceforge/skadimon/internal/errors"
	"github.com/iceforge/skadimon/internal/logger"
)

// Endpoint paths, relative to the base URL.
const (
	PathLive       = "/api/metrics/live"
	PathTimeSeries = "/api/metrics/timeseries"
	PathHistory    = "/api/queries/history"
)

// DefaultTimeout bounds a single request.
const DefaultTimeout = 10 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 8 << 20

// Client fetches the monitoring payloads from one Skadi node.
type Client struct {
	base         *url.URL
	http         *http.Client
	historyLimit int
	userAgent    string
	log          logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. A nil client is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHistoryLimit sets the history page size.
func WithHistoryLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.historyLimit = n
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithLogger sets where corrected and dropped history rows are reported.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// NewClient creates a client for the node at baseURL (e.g. http://localhost:8080).
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		if err == nil {
			err = fmt.Errorf("missing scheme or host")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' isn't a usable base URL", baseURL),
			"Use a full URL like http://localhost:8080")
	}

	c := &Client{
		base:         u,
		http:         &http.Client{Timeout: DefaultTimeout},
		historyLimit: DefaultHistoryLimit,
		userAgent:    "skadimon",
		log:          logger.Noop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the node URL the client talks to.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Live fetches the live KPI snapshot.
func (c *Client) Live(ctx context.Context) (LiveMetrics, error) {
	body, err := c.get(ctx, PathLive, nil)
	if err != nil {
		return LiveMetrics{}, err
	}
	return DecodeLive(body)
}

// TimeSeries fetches the duration series for window w.
func (c *Client) TimeSeries(ctx context.Context, w Window) (Series, error) {
	body, err := c.get(ctx, PathTimeSeries, url.Values{"window": {w.String()}})
	if err != nil {
		return nil, err
	}
	return DecodeSeries(body)
}

// History fetches the most recent page of queries.
func (c *Client) History(ctx context.Context) (History, error) {
	body, err := c.get(ctx, PathHistory, url.Values{"limit": {strconv.Itoa(c.historyLimit)}})
	if err != nil {
		return nil, err
	}
	history, issues, err := DecodeHistory(body, c.historyLimit)
	if err != nil {
		return nil, err
	}
	for _, issue := range issues {
		if issue.Dropped {
			c.log.Warn("history %s", issue)
		} else {
			c.log.Debug("history %s", issue)
		}
	}
	return history, nil
}

// get issues one GET and returns the body of a 2xx response.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrTransport,
			"Couldn't build request for "+path, "")
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrTransport,
			"GET "+path+" failed", "Check the node is reachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, errors.New(errors.ErrHTTP,
			fmt.Sprintf("GET %s returned %d", path, resp.StatusCode), "")
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrTransport,
			"Reading "+path+" response failed", "")
	}
	return body, nil
}
