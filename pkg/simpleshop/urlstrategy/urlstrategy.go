// Package urlstrategy decides which link is handed out for a stored export.
package urlstrategy

import (
	"context"
	"net/url"
	"strings"
)

// URLStrategy builds the download link for an export key. An empty string
// means no link can be offered and clients stream the file through the API.
type URLStrategy interface {
	DownloadURL(ctx context.Context, key string) (string, error)
}

// Linker is the part of a report store that can link to its own files.
type Linker interface {
	URL(ctx context.Context, key string) (string, error)
}

// StorageDelegatedStrategy asks the report store for the link, such as a
// presigned S3 URL.
type StorageDelegatedStrategy struct {
	Store Linker
}

// NewStorageDelegatedStrategy creates a strategy that delegates to store
func NewStorageDelegatedStrategy(store Linker) *StorageDelegatedStrategy {
	return &StorageDelegatedStrategy{Store: store}
}

func (s *StorageDelegatedStrategy) DownloadURL(ctx context.Context, key string) (string, error) {
	if s.Store == nil {
		return "", nil
	}
	return s.Store.URL(ctx, key)
}

// APIRoutedStrategy points at the server's own export download route.
type APIRoutedStrategy struct {
	APIBaseURL string // e.g. "https://shop.example.com/api/v1" or "/api/v1"
}

// NewAPIRoutedStrategy creates an API-routed strategy
func NewAPIRoutedStrategy(apiBaseURL string) *APIRoutedStrategy {
	return &APIRoutedStrategy{APIBaseURL: strings.TrimSuffix(apiBaseURL, "/")}
}

func (s *APIRoutedStrategy) DownloadURL(_ context.Context, key string) (string, error) {
	return s.APIBaseURL + "/exports/" + escapeKey(key), nil
}

// CDNStrategy links straight to a CDN that fronts the report bucket.
type CDNStrategy struct {
	BaseURL string
}

// NewCDNStrategy creates a CDN strategy
func NewCDNStrategy(baseURL string) *CDNStrategy {
	return &CDNStrategy{BaseURL: strings.TrimSuffix(baseURL, "/")}
}

func (s *CDNStrategy) DownloadURL(_ context.Context, key string) (string, error) {
	return s.BaseURL + "/" + escapeKey(key), nil
}

// FallbackStrategy uses Primary and falls back to Secondary when Primary
// returns no link or fails.
type FallbackStrategy struct {
	Primary   URLStrategy
	Secondary URLStrategy
}

func (s *FallbackStrategy) DownloadURL(ctx context.Context, key string) (string, error) {
	link, err := s.Primary.DownloadURL(ctx, key)
	if err == nil && link != "" {
		return link, nil
	}
	return s.Secondary.DownloadURL(ctx, key)
}

// escapeKey escapes each path segment of key and keeps the slashes.
func escapeKey(key string) string {
	parts := strings.Split(strings.TrimPrefix(key, "/"), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
