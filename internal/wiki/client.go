// Package wiki fetches article candidates from the MediaWiki API.
package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 30 * time.Second
	maxRetries     = 3
	initialBackoff = 500 * time.Millisecond
)

// ErrNoExtract is returned when a page exists but has no plain-text extract
// (redirects, media pages, deleted articles).
var ErrNoExtract = errors.New("no extract available")

// Article is one fetched article body with its source reference.
type Article struct {
	Title string
	Text  string
	URL   string
}

// Client talks to the MediaWiki action API. All requests pass through a
// shared rate limiter so callers cannot exceed the configured request
// interval no matter how they interleave Search and Extract calls.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a client for the API endpoint at baseURL
// (e.g. https://en.wikipedia.org/w/api.php). interval is the minimum delay
// between any two requests.
func NewClient(baseURL, userAgent string, interval time.Duration) *Client {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Search returns up to limit article titles matching the query, using the
// opensearch endpoint.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]string, error) {
	params := url.Values{}
	params.Set("action", "opensearch")
	params.Set("search", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("namespace", "0")
	params.Set("format", "json")

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}

	// Opensearch responds with a positional array:
	// [query, [titles], [descriptions], [urls]].
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parsing opensearch response: %w", err)
	}
	if len(raw) < 2 {
		return nil, nil
	}

	var titles []string
	if err := json.Unmarshal(raw[1], &titles); err != nil {
		return nil, fmt.Errorf("parsing opensearch titles: %w", err)
	}
	return titles, nil
}

// Extract fetches the plain-text introduction of an article.
func (c *Client) Extract(ctx context.Context, title string) (*Article, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("titles", title)
	params.Set("prop", "extracts")
	params.Set("exintro", "")
	params.Set("explaintext", "")
	params.Set("exsectionformat", "plain")
	params.Set("format", "json")

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("fetching %q: %w", title, err)
	}

	var resp struct {
		Query struct {
			Pages map[string]struct {
				Title   string `json:"title"`
				Extract string `json:"extract"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing extract response: %w", err)
	}

	for _, page := range resp.Query.Pages {
		if strings.TrimSpace(page.Extract) == "" {
			continue
		}
		name := page.Title
		if name == "" {
			name = title
		}
		return &Article{
			Title: name,
			Text:  page.Extract,
			URL:   c.PageURL(name),
		}, nil
	}
	return nil, ErrNoExtract
}

// PageURL builds the canonical page URL from the API endpoint. Ingestion
// uses it to deduplicate articles before spending a fetch on them.
func (c *Client) PageURL(title string) string {
	base := strings.TrimSuffix(c.baseURL, "/w/api.php")
	return base + "/wiki/" + url.PathEscape(strings.ReplaceAll(title, " ", "_"))
}

// get performs one rate-limited API request, retrying transient failures
// with exponential backoff. A request that keeps failing gives up after
// maxRetries attempts; the caller skips that article, not the whole run.
func (c *Client) get(ctx context.Context, params url.Values) ([]byte, error) {
	var lastErr error
	for attempt := range maxRetries {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		body, err := c.doGet(ctx, params)
		if err == nil {
			return body, nil
		}
		if !isTransient(err) {
			return nil, err
		}

		lastErr = err
		if attempt < maxRetries-1 {
			backoff := time.Duration(float64(initialBackoff) * math.Pow(2, float64(attempt)))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}
	return nil, fmt.Errorf("giving up after %d attempts: %w", maxRetries, lastErr)
}

func (c *Client) doGet(ctx context.Context, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &transientError{err: fmt.Errorf("executing request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		io.Copy(io.Discard, resp.Body)
		return nil, &transientError{err: fmt.Errorf("server returned HTTP %d", resp.StatusCode)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &transientError{err: fmt.Errorf("reading response: %w", err)}
	}
	return body, nil
}

// transientError marks failures worth retrying (network errors, 5xx, 429).
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func isTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}
