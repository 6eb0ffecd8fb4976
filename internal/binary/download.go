package binary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/zedfetch/zedfetch/internal/fault"
	"github.com/zedfetch/zedfetch/internal/logging"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 5 * time.Minute
	// DefaultUserAgent is the User-Agent header sent with requests
	DefaultUserAgent = "zedfetch/1.0"
	// maxRedirects bounds redirect chains (release downloads bounce through a CDN)
	maxRedirects = 10
)

// Downloader fetches release assets over HTTP. It makes exactly one attempt
// per call.
type Downloader struct {
	client    *http.Client
	userAgent string
	log       logging.Logger
}

// DownloaderOption configures a Downloader
type DownloaderOption func(*Downloader)

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) DownloaderOption {
	return func(d *Downloader) {
		if ua != "" {
			d.userAgent = ua
		}
	}
}

// WithDownloadLogger sets the logger
func WithDownloadLogger(l logging.Logger) DownloaderOption {
	return func(d *Downloader) { d.log = logging.OrNop(l) }
}

// NewDownloader creates a new downloader
func NewDownloader(opts ...DownloaderOption) *Downloader {
	d := &Downloader{
		client:    NewHTTPClient(),
		userAgent: DefaultUserAgent,
		log:       logging.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewHTTPClient returns the HTTP client used for API calls and downloads
func NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout: DefaultTimeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}
}

// Client returns the underlying HTTP client so other API callers can share it
func (d *Downloader) Client() *http.Client {
	return d.client
}

// Download fetches url and returns the full response body.
// Any transport failure or non-200 status wraps fault.ErrNetwork.
func (d *Downloader) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w: %w", fault.ErrNetwork, err)
	}

	req.Header.Set("User-Agent", d.userAgent)
	req.Header.Set("Accept", "application/octet-stream")

	d.log.Debug("downloading asset", "url", url)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w: %w", fault.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %s: unexpected status code %d: %w", url, resp.StatusCode, fault.ErrNetwork)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w: %w", fault.ErrNetwork, err)
	}

	d.log.Debug("download complete", "url", url, "bytes", len(data))
	return data, nil
}
