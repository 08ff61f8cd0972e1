// Package fetch reads image sources for the image substitution engine:
// http(s) URLs, data URIs and local files.
package fetch

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/dynoslide/internal/logging"
	"github.com/aretw0/dynoslide/pkg/domain"
	"golang.org/x/time/rate"
)

// Defaults for outbound fetches.
const (
	DefaultTimeout  = 10 * time.Second
	DefaultMaxBytes = 25 << 20
)

// Fetcher implements ports.ImageFetcher.
type Fetcher struct {
	client     *http.Client
	timeout    time.Duration
	maxBytes   int64
	limiter    *rate.Limiter
	retries    int
	backoff    time.Duration
	baseDir    string
	allowFiles bool
	logger     *slog.Logger
}

// Option configures the Fetcher.
type Option func(*Fetcher)

// WithTimeout bounds each source read, retries included.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithMaxBytes caps the size of a fetched image.
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBytes = n
		}
	}
}

// WithRateLimit throttles outbound HTTP requests. A non-positive rps disables it.
func WithRateLimit(rps float64, burst int) Option {
	return func(f *Fetcher) {
		if rps <= 0 {
			f.limiter = nil
			return
		}
		f.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
	}
}

// WithRetries retries transient HTTP failures with exponential backoff.
func WithRetries(n int, backoff time.Duration) Option {
	return func(f *Fetcher) {
		f.retries = max(n, 0)
		f.backoff = backoff
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithBaseDir resolves relative paths against dir.
func WithBaseDir(dir string) Option {
	return func(f *Fetcher) {
		f.baseDir = dir
	}
}

// WithLocalFiles enables or disables reading local paths.
func WithLocalFiles(allow bool) Option {
	return func(f *Fetcher) {
		f.allowFiles = allow
	}
}

// WithLogger configures a logger for the Fetcher.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// New creates a Fetcher with a 10s timeout and local files enabled.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:     &http.Client{},
		timeout:    DefaultTimeout,
		maxBytes:   DefaultMaxBytes,
		retries:    1,
		backoff:    200 * time.Millisecond,
		allowFiles: true,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch reads the source. Every failure wraps domain.ErrImageFetchFailed;
// a timeout is reported the same way as any other per-image failure.
func (f *Fetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	data, err := f.fetch(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrImageFetchFailed, redact(source), err)
	}
	return data, nil
}

func (f *Fetcher) fetch(ctx context.Context, source string) ([]byte, error) {
	switch {
	case strings.HasPrefix(source, "data:"):
		return decodeDataURI(source, f.maxBytes)
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return f.fetchHTTP(ctx, source)
	case strings.HasPrefix(source, "file://"):
		u, err := url.Parse(source)
		if err != nil {
			return nil, err
		}
		return f.readFile(u.Path)
	default:
		return f.readFile(source)
	}
}

func (f *Fetcher) readFile(path string) ([]byte, error) {
	if !f.allowFiles {
		return nil, errors.New("local files are disabled")
	}
	if f.baseDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(f.baseDir, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > f.maxBytes {
		return nil, fmt.Errorf("file exceeds %d bytes", f.maxBytes)
	}
	return os.ReadFile(path)
}

// errTransient marks failures worth retrying.
var errTransient = errors.New("transient")

func (f *Fetcher) fetchHTTP(ctx context.Context, source string) ([]byte, error) {
	delay := f.backoff
	for attempt := 0; ; attempt++ {
		data, err := f.get(ctx, source)
		if err == nil || !errors.Is(err, errTransient) || attempt >= f.retries {
			return data, err
		}
		f.logger.Debug("retrying image fetch", "attempt", attempt+1, "err", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}

func (f *Fetcher) get(ctx context.Context, source string) ([]byte, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "image/*")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", errTransient, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: status %d", errTransient, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("response exceeds %d bytes", f.maxBytes)
	}
	return data, nil
}

func decodeDataURI(uri string, maxBytes int64) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, errors.New("malformed data URI")
	}
	if int64(len(payload)) > maxBytes*4/3+4 {
		return nil, fmt.Errorf("data URI exceeds %d bytes", maxBytes)
	}
	if strings.HasSuffix(meta, ";base64") {
		return base64.StdEncoding.DecodeString(payload)
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// redact keeps data URIs out of error messages and logs.
func redact(source string) string {
	if strings.HasPrefix(source, "data:") {
		meta, _, _ := strings.Cut(source, ",")
		return meta + ",..."
	}
	return source
}
