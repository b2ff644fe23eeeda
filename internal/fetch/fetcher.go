// Package fetch reads stories from the Hacker News Firebase database.
//
// Fetcher speaks the REST protocol (one JSON document per key). Gateway sits
// on top of it, answering repeat reads from the item cache and fanning page
// reads out concurrently.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"github.com/abelbrown/hncli/internal/hn"
	"github.com/abelbrown/hncli/internal/httpclient"
)

// DefaultBaseURL is the public Hacker News Firebase endpoint.
const DefaultBaseURL = "https://hacker-news.firebaseio.com/v0"

// UserAgent is sent with every request.
const UserAgent = "hncli/1.0 (+https://github.com/abelbrown/hncli)"

// Options configures a Fetcher. Zero values select the defaults.
type Options struct {
	BaseURL       string
	Timeout       time.Duration
	Retries       int     // extra attempts after a retryable failure
	RatePerSecond float64 // <= 0 disables client-side limiting
}

// Fetcher retrieves the story list and single items over HTTP.
type Fetcher struct {
	base    string
	client  *http.Client
	limiter *rate.Limiter
	retries int
}

// NewFetcher creates a Fetcher on the shared pooled transport.
func NewFetcher(opts Options) *Fetcher {
	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	limit := rate.Inf
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
	}
	retries := opts.Retries
	if retries < 0 {
		retries = 0
	}
	return &Fetcher{
		base:    strings.TrimRight(base, "/"),
		client:  httpclient.New(opts.Timeout),
		limiter: rate.NewLimiter(limit, 1),
		retries: retries,
	}
}

// List fetches a ranked id list such as "topstories".
func (f *Fetcher) List(ctx context.Context, name string) ([]hn.StoryID, error) {
	var ids []hn.StoryID
	if err := f.getJSON(ctx, fmt.Sprintf("%s/%s.json", f.base, name), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Item fetches one item. A null document yields (nil, nil).
func (f *Fetcher) Item(ctx context.Context, id hn.StoryID) (*hn.Item, error) {
	var it *hn.Item
	if err := f.getJSON(ctx, fmt.Sprintf("%s/item/%d.json", f.base, id), &it); err != nil {
		return nil, err
	}
	return it, nil
}

// statusError is returned for non-200 responses.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP error: %d %s", e.code, http.StatusText(e.code))
}

// getJSON GETs url and decodes the body into v, retrying transport
// failures and 5xx responses with exponential backoff.
func (f *Fetcher) getJSON(ctx context.Context, url string, v any) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	policy.MaxInterval = 2 * time.Second
	policy.Multiplier = 2

	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(f.retries)), ctx)

	return backoff.Retry(func() error {
		err := f.do(ctx, url, v)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		var se *statusError
		if errors.As(err, &se) && se.code < 500 {
			return backoff.Permanent(err)
		}
		var de *decodeError
		if errors.As(err, &de) {
			return backoff.Permanent(err)
		}
		return err
	}, b)
}

// decodeError marks a malformed response body. It is never retried.
type decodeError struct {
	err error
}

func (e *decodeError) Error() string { return "failed to decode response: " + e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

func (f *Fetcher) do(ctx context.Context, url string, v any) error {
	if err := f.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return &statusError{code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &decodeError{err: err}
	}
	return nil
}
