package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultDownloadTimeout = 120 * time.Second
	// generated clips are a few megabytes; anything larger is refused
	MaxAssetSize = 200 << 20
)

// HTTPAssetFetcher downloads provider assets with a bounded timeout and size.
// It does not follow redirects so an allowed host cannot bounce the request
// to an internal address.
type HTTPAssetFetcher struct {
	httpClient *http.Client
	maxSize    int64
}

func NewHTTPAssetFetcher(timeout time.Duration) *HTTPAssetFetcher {
	if timeout <= 0 {
		timeout = defaultDownloadTimeout
	}
	return &HTTPAssetFetcher{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		maxSize: MaxAssetSize,
	}
}

func (f *HTTPAssetFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download asset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	if resp.ContentLength > f.maxSize {
		return nil, fmt.Errorf("asset too large: %d bytes", resp.ContentLength)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read asset: %w", err)
	}
	if int64(len(data)) > f.maxSize {
		return nil, fmt.Errorf("asset exceeds %d bytes", f.maxSize)
	}
	return data, nil
}
