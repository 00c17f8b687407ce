package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/app-sre/chartcsv/pkg/version"
)

const connectTimeout = 5 * time.Second

// TransportError reports a response with a status other than 200 OK.
type TransportError struct {
	URL        string
	StatusCode int
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("unable to fetch %s: unexpected status code: %d", e.URL, e.StatusCode)
}

// Fetcher retrieves raw chart data. It holds no mutable state and is safe
// for concurrent use.
type Fetcher struct {
	client *http.Client
}

type Option func(*Fetcher)

func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.SetHTTPClient(client)
	}
}

// NewFetcher returns a Fetcher whose client verifies TLS, follows up to ten
// redirects and bounds only the dial; the caller's context bounds the rest.
func NewFetcher(options ...Option) *Fetcher {
	f := &Fetcher{}

	f.client = &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout: connectTimeout,
			}).DialContext,
		},
	}

	for _, option := range options {
		option(f)
	}

	return f
}

func (f *Fetcher) SetHTTPClient(client *http.Client) {
	f.client = client
}

// Fetch performs a single GET against url, sending cookies as one Cookie
// header. It returns nil and no error when the response body is empty.
func (f *Fetcher) Fetch(ctx context.Context, url string, cookies map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to create request to %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", fmt.Sprintf("chartcsv/%s", version.Version()))
	if len(cookies) > 0 {
		req.Header.Set("Cookie", JoinCookies(cookies))
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to send request to %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read response body from %s: %w", url, err)
	}
	if len(body) == 0 {
		return nil, nil
	}

	return body, nil
}

// JoinCookies renders cookies as a Cookie header value, "k1=v1; k2=v2",
// sorted by name.
func JoinCookies(cookies map[string]string) string {
	names := make([]string, 0, len(cookies))
	for name := range cookies {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, len(names))
	for i, name := range names {
		pairs[i] = name + "=" + cookies[name]
	}
	return strings.Join(pairs, "; ")
}
