// Package wiki talks to the MediaWiki Action API of Wikipedia.
package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultEndpoint is the Action API URL; %s is the language code
	DefaultEndpoint  = "https://%s.wikipedia.org/w/api.php"
	DefaultUserAgent = "six-degrees/1.0 (https://github.com/pfrederiksen/six-degrees)"
	DefaultTimeout   = 10 * time.Second

	// articleNamespace restricts results to encyclopedia articles
	articleNamespace = "0"
	maxBodySize      = 8 << 20
)

// ErrMissingPage is returned when the requested article does not exist
var ErrMissingPage = errors.New("page does not exist")

// StatusError reports a non-200 response
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// Temporary reports whether retrying may succeed
func (e *StatusError) Temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// APIError is an error object returned in a 200 response
type APIError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %s: %s", e.Code, e.Info)
}

// Client fetches article links. It performs no caching or rate limiting.
type Client struct {
	http      *http.Client
	endpoint  string
	userAgent string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets the HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithEndpoint sets the API URL template. It may contain one %s for the
// language code.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient creates a Client
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: DefaultTimeout},
		endpoint:  DefaultEndpoint,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type linkTitle struct {
	Title string `json:"title"`
}

type linksResponse struct {
	Error *APIError `json:"error"`
	Query struct {
		Pages []struct {
			Title   string      `json:"title"`
			Missing bool        `json:"missing"`
			Invalid bool        `json:"invalid"`
			Links   []linkTitle `json:"links"`
		} `json:"pages"`
	} `json:"query"`
}

type backlinksResponse struct {
	Error *APIError `json:"error"`
	Query struct {
		Backlinks []linkTitle `json:"backlinks"`
	} `json:"query"`
}

// Links returns the articles title links to, in API order
func (c *Client) Links(ctx context.Context, title, lang string) ([]string, error) {
	params := url.Values{
		"action":        {"query"},
		"format":        {"json"},
		"formatversion": {"2"},
		"redirects":     {"1"},
		"prop":          {"links"},
		"titles":        {title},
		"plnamespace":   {articleNamespace},
		"pllimit":       {"max"},
	}

	var resp linksResponse
	if err := c.query(ctx, lang, params, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	if len(resp.Query.Pages) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingPage, title)
	}

	page := resp.Query.Pages[0]
	if page.Missing || page.Invalid {
		return nil, fmt.Errorf("%w: %s", ErrMissingPage, title)
	}

	links := make([]string, 0, len(page.Links))
	for _, l := range page.Links {
		links = append(links, l.Title)
	}
	slog.Debug("Fetched links", "title", title, "lang", lang, "count", len(links))
	return links, nil
}

// LinksHere returns the articles linking to title, redirects excluded
func (c *Client) LinksHere(ctx context.Context, title, lang string) ([]string, error) {
	params := url.Values{
		"action":        {"query"},
		"format":        {"json"},
		"formatversion": {"2"},
		"list":          {"backlinks"},
		"bltitle":       {title},
		"blnamespace":   {articleNamespace},
		"blfilterredir": {"nonredirects"},
		"bllimit":       {"max"},
	}

	var resp backlinksResponse
	if err := c.query(ctx, lang, params, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}

	links := make([]string, 0, len(resp.Query.Backlinks))
	for _, l := range resp.Query.Backlinks {
		links = append(links, l.Title)
	}
	slog.Debug("Fetched backlinks", "title", title, "lang", lang, "count", len(links))
	return links, nil
}

func (c *Client) query(ctx context.Context, lang string, params url.Values, out any) error {
	endpoint := c.endpoint
	if strings.Contains(endpoint, "%s") {
		endpoint = fmt.Sprintf(endpoint, lang)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return &StatusError{Code: resp.StatusCode}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
