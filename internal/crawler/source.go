package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

var (
	// ErrStatus is returned for a non-200 response.
	ErrStatus = errors.New("unexpected status")
	// ErrDisallowed is returned when robots.txt forbids a page.
	ErrDisallowed = errors.New("disallowed by robots.txt")
)

// LineSource supplies search page i as markup lines.
type LineSource interface {
	FetchLines(ctx context.Context, page int) (Page, error)
}

// JSONSource supplies search page i as a render endpoint document.
type JSONSource interface {
	FetchJSON(ctx context.Context, page int) ([]byte, error)
}

// SearchURLs builds the URLs of popular-items search pages.
type SearchURLs struct {
	BaseURL  string
	Language string
	PerPage  int
}

func (s SearchURLs) query(page int) string {
	perPage := s.PerPage
	if perPage <= 0 {
		perPage = 10
	}
	return fmt.Sprintf("query=&start=%d&count=%d&search_descriptions=0&sort_column=popular&sort_dir=desc&l=%s",
		page*perPage, perPage, url.QueryEscape(s.Language))
}

// Markup is the URL of the HTML search page.
func (s SearchURLs) Markup(page int) string {
	return strings.TrimRight(s.BaseURL, "/") + "/market/search/?" + s.query(page)
}

// Render is the URL of the JSON search render endpoint.
func (s SearchURLs) Render(page int) string {
	return strings.TrimRight(s.BaseURL, "/") + "/market/search/render/?" + s.query(page) + "&norender=1"
}

// HTTPSource fetches search pages over plain HTTP.
type HTTPSource struct {
	URLs      SearchURLs
	UserAgent string
	client    *http.Client
	domainMgr *DomainManager
	logger    *log.Logger
}

func NewHTTPSource(urls SearchURLs, userAgent string, timeout time.Duration, domainMgr *DomainManager, logger *log.Logger) *HTTPSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = log.Default()
	}
	return &HTTPSource{
		URLs:      urls,
		UserAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
		domainMgr: domainMgr,
		logger:    logger,
	}
}

func (s *HTTPSource) FetchLines(ctx context.Context, page int) (Page, error) {
	body, err := s.fetch(ctx, s.URLs.Markup(page), "text/html")
	if err != nil {
		return nil, err
	}
	return SplitLines(string(body)), nil
}

func (s *HTTPSource) FetchJSON(ctx context.Context, page int) ([]byte, error) {
	return s.fetch(ctx, s.URLs.Render(page), "application/json")
}

func (s *HTTPSource) fetch(ctx context.Context, targetURL, accept string) ([]byte, error) {
	if s.domainMgr != nil {
		if !s.domainMgr.IsAllowed(ctx, targetURL) {
			return nil, fmt.Errorf("%s: %w", targetURL, ErrDisallowed)
		}
		if err := s.domainMgr.Wait(ctx, targetURL); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.UserAgent)
	req.Header.Set("Accept", accept)

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	s.logger.Debug("fetched", "url", targetURL, "status", resp.StatusCode, "took", time.Since(start))
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %w %d", targetURL, ErrStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return body, nil
}
