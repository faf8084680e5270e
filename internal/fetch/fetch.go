// Package fetch fournit des utilitaires légers et testables pour télécharger
// des ressources HTTP (pistes de sous-titres).
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultTimeout   = 15 * time.Second
	DefaultMaxBytes  = 10_000_000
	DefaultUserAgent = "shadowscribe/1.0"
)

// Erreurs exportées
var (
	ErrStatus   = errors.New("unexpected HTTP status")
	ErrTooLarge = errors.New("response body too large")
)

// Fetcher télécharge en mémoire. Client nil -> http.DefaultClient.
type Fetcher struct {
	Client    *http.Client
	UserAgent string
}

// Default est utilisé par FetchBytesWithTimeout.
var Default = &Fetcher{}

// FetchBytesWithTimeout télécharge l'URL avec le Fetcher par défaut.
func FetchBytesWithTimeout(ctx context.Context, rawURL string, timeout time.Duration, maxBytes int64) ([]byte, error) {
	return Default.Bytes(ctx, rawURL, timeout, maxBytes)
}

// Bytes télécharge l'URL et retourne les octets.
// - ctx peut être nil.
// - timeout : si <=0 on utilise DefaultTimeout.
// - maxBytes : si <=0 on utilise DefaultMaxBytes.
// Tout est lu en mémoire (OK pour des sous-titres json3).
func (f *Fetcher) Bytes(ctx context.Context, rawURL string, timeout time.Duration, maxBytes int64) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, fmt.Errorf("fetch: invalid url %q: %w", rawURL, err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: new request: %w", err)
	}
	ua := f.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch: %w: %s", ErrStatus, resp.Status)
	}

	// Content-Length connu et trop grand -> échouer vite
	if resp.ContentLength > maxBytes {
		return nil, fmt.Errorf("fetch: content-length %d exceeds limit %d: %w", resp.ContentLength, maxBytes, ErrTooLarge)
	}

	r := io.LimitReader(resp.Body, maxBytes+1) // +1 pour détecter dépassement
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("fetch: read body: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("fetch: body larger than %d bytes: %w", maxBytes, ErrTooLarge)
	}
	return data, nil
}
