package adapter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// UserAgent is sent to JSON APIs.
	UserAgent = "teetime-scanner/1.0 (github.com/pfrederiksen/teetime-scanner)"

	// BrowserUserAgent is sent to booking pages that reject non-browser clients.
	BrowserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"

	// DefaultTimeout applies to each upstream HTTP call.
	DefaultTimeout = 15 * time.Second

	maxBodyBytes = 4 << 20
)

// newHTTPClient returns client, or a client with the given timeout when client is nil.
func newHTTPClient(client *http.Client, timeout time.Duration) *http.Client {
	if client != nil {
		return client
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

func newRequest(ctx context.Context, method, url string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

// fetch executes req and returns the body of a 2xx response.
// Every failure comes back as an *UpstreamError.
func fetch(client *http.Client, adapter string, req *http.Request) ([]byte, error) {
	url := req.URL.String()

	resp, err := client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Adapter: adapter, URL: url, Err: fmt.Errorf("fetching page: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &UpstreamError{
			Adapter:    adapter,
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status code: %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &UpstreamError{Adapter: adapter, URL: url, Err: fmt.Errorf("reading body: %w", err)}
	}
	return body, nil
}
