// Package fetcher imports job descriptions from posting pages.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) MockMate/1.0"
	maxPageBytes     = 5 << 20
)

var (
	ErrInvalidURL = errors.New("invalid url")
	ErrNoContent  = errors.New("no job description found on page")
)

type JobPosting struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Text  string `json:"text"`
}

type Fetcher struct {
	http      *http.Client
	userAgent string
}

// New returns a Fetcher that only dials publicly routable addresses.
func New(timeout time.Duration, userAgent string) *Fetcher {
	return newFetcher(timeout, userAgent, publicOnly)
}

func newFetcher(timeout time.Duration, userAgent string, control dialControl) *Fetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Fetcher{http: newHTTPClient(timeout, control), userAgent: userAgent}
}

// Fetch downloads a posting page and extracts its title and description.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*JobPosting, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch posting: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch posting: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("parse posting: %w", err)
	}

	posting := extractPosting(doc, strings.ToLower(u.Host))
	if posting.Text == "" {
		return nil, ErrNoContent
	}
	posting.URL = u.String()
	return posting, nil
}
