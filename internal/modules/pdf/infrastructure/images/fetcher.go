// Package images loads profile images for embedding in rendered documents.
package images

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/doyensec/safeurl"
)

const (
	DefaultTimeout  = 5 * time.Second
	DefaultMaxBytes = 5 << 20
)

var (
	ErrTooLarge = errors.New("image exceeds size limit")
	ErrNotImage = errors.New("content is not an image")
)

type Config struct {
	Timeout  time.Duration
	MaxBytes int64
	// URLs starting with LocalPrefix are read from LocalDir instead of fetched.
	LocalPrefix string
	LocalDir    string
	// Client replaces the SSRF-guarded client. Tests only.
	Client *http.Client
}

type Fetcher struct {
	client      *http.Client
	maxBytes    int64
	localPrefix string
	localDir    string
}

// NewFetcher builds a fetcher whose HTTP client refuses private, loopback and
// link-local destinations after DNS resolution.
func NewFetcher(cfg Config) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}

	client := cfg.Client
	if client == nil {
		sc := safeurl.GetConfigBuilder().
			SetTimeout(cfg.Timeout).
			SetAllowedSchemes("http", "https").
			SetAllowedPorts(80, 443).
			Build()
		client = safeurl.Client(sc).Client
	}

	f := &Fetcher{client: client, maxBytes: cfg.MaxBytes, localDir: cfg.LocalDir}
	if cfg.LocalDir != "" && cfg.LocalPrefix != "" {
		f.localPrefix = strings.TrimRight(cfg.LocalPrefix, "/") + "/"
	}
	return f
}

// FetchDataURI returns the image at rawURL as a base64 data URI.
func (f *Fetcher) FetchDataURI(ctx context.Context, rawURL string) (string, error) {
	var (
		body []byte
		err  error
	)
	if key, ok := f.localKey(rawURL); ok {
		body, err = f.readLocal(key)
	} else {
		body, err = f.fetch(ctx, rawURL)
	}
	if err != nil {
		return "", err
	}

	contentType := http.DetectContentType(body)
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotImage, contentType)
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(body), nil
}

func (f *Fetcher) localKey(rawURL string) (string, bool) {
	if f.localPrefix == "" {
		return "", false
	}
	key, ok := strings.CutPrefix(rawURL, f.localPrefix)
	return key, ok && key != ""
}

func (f *Fetcher) readLocal(key string) ([]byte, error) {
	if !filepath.IsLocal(filepath.FromSlash(key)) {
		return nil, fmt.Errorf("invalid image key %q", key)
	}
	file, err := os.Open(filepath.Join(f.localDir, filepath.FromSlash(key)))
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return f.readLimited(file)
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image fetch returned status %d", resp.StatusCode)
	}
	return f.readLimited(resp.Body)
}

func (f *Fetcher) readLimited(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, f.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > f.maxBytes {
		return nil, ErrTooLarge
	}
	return body, nil
}
