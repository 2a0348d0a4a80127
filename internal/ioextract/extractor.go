// Package ioextract implements the paginated openFDA extractor. Pages
// are fetched strictly one after another, following the `rel="next"`
// link the API returns with every page.
package ioextract

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	faersetl "github.com/faersetl/faersetl/pkg"
	"github.com/faersetl/faersetl/pkg/config"
	"github.com/faersetl/faersetl/pkg/etl"
	"github.com/faersetl/faersetl/pkg/faers"
	"golang.org/x/time/rate"
)

// page is the body of an API response. A nil Results means the body
// had no `results` key at all.
type page struct {
	Results *[]faers.RawReport `json:"results"`
}

type extractor struct {
	cfg      config.ExtractConfig
	client   *http.Client
	limiter  *rate.Limiter
	pageHook func(fetched int)
}

// Option modifies the extractor created by New.
type Option func(*extractor)

// WithPageHook sets a function that is called after every page with
// the number of records fetched so far.
func WithPageHook(fn func(fetched int)) Option {
	return func(e *extractor) {
		e.pageHook = fn
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(e *extractor) {
		e.client = c
	}
}

// New creates an Extractor for the API described by cfg.
func New(cfg config.ExtractConfig, opts ...Option) etl.Extractor {
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	res := &extractor{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		limiter:  rate.NewLimiter(limit, 1),
		pageHook: func(int) {},
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Extract implements etl.Extractor.
func (e *extractor) Extract(
	ctx context.Context,
	query string,
	pageSize, targetCount int,
) ([]faers.RawReport, error) {
	if targetCount < 0 {
		return nil, ArgumentError("target count", targetCount)
	}
	if targetCount == 0 {
		return []faers.RawReport{}, nil
	}
	if pageSize <= 0 {
		return nil, ArgumentError("page size", pageSize)
	}

	next, err := e.firstURL(query, pageSize)
	if err != nil {
		return nil, err
	}

	res := make([]faers.RawReport, 0, min(targetCount, 10*pageSize))
	for pageNum := 1; next != ""; pageNum++ {
		var p page
		p, next, err = e.fetch(ctx, next)
		if err != nil {
			return nil, err
		}
		if p.Results == nil {
			slog.Info("Page has no results, stopping", "page", pageNum)
			break
		}

		res = append(res, *p.Results...)
		if len(res) >= targetCount {
			res = res[:targetCount]
			e.pageHook(len(res))
			break
		}
		e.pageHook(len(res))

		slog.Debug("Page fetched",
			"page", pageNum,
			"records", len(*p.Results),
			"total", len(res),
		)
	}

	return res, nil
}

// Ping implements etl.Extractor. It requests one record.
func (e *extractor) Ping(ctx context.Context) error {
	u, err := e.firstURL(e.cfg.Search, 1)
	if err != nil {
		return err
	}
	_, _, err = e.fetch(ctx, u)
	return err
}

func (e *extractor) firstURL(query string, pageSize int) (string, error) {
	u, err := url.Parse(e.cfg.BaseURL)
	if err != nil {
		return "", BaseURLError(e.cfg.BaseURL, err)
	}
	q := u.Query()
	if query != "" {
		q.Set("search", query)
	}
	q.Set("limit", strconv.Itoa(pageSize))
	if e.cfg.APIKey != "" {
		q.Set("api_key", e.cfg.APIKey)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// fetch requests one page and returns it with the URL of the next one.
func (e *extractor) fetch(
	ctx context.Context,
	u string,
) (page, string, error) {
	var res page
	safeURL := redact(u)

	if err := e.limiter.Wait(ctx); err != nil {
		return res, "", RateLimitError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return res, "", RequestError(safeURL, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "faersetl/"+faersetl.Version)

	resp, err := e.client.Do(req)
	if err != nil {
		return res, "", RequestError(safeURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return res, "", HTTPStatusError(
			safeURL, resp.StatusCode, strings.TrimSpace(string(body)),
		)
	}

	if err = json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return res, "", DecodeError(safeURL, err)
	}

	next, ok := NextLink(strings.Join(resp.Header.Values("Link"), ","))
	if !ok {
		return res, "", nil
	}
	// relative links are resolved against the current page
	ref, err := req.URL.Parse(next)
	if err != nil {
		return res, "", DecodeError(safeURL, err)
	}
	return res, ref.String(), nil
}

// redact hides the API key in URLs that get into logs and errors.
func redact(u string) string {
	parsed, err := url.Parse(u)
	if err != nil {
		return u
	}
	q := parsed.Query()
	if q.Get("api_key") == "" {
		return u
	}
	q.Set("api_key", "REDACTED")
	parsed.RawQuery = q.Encode()
	return parsed.String()
}
