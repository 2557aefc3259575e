package memory

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/tendant/simple-shop/pkg/simpleshop"
)

// Backend is an in-memory implementation of the simpleshop.ReportStore interface
type Backend struct {
	mu           sync.RWMutex
	objects      map[string][]byte
	contentTypes map[string]string
}

// New creates a new in-memory report store
func New() *Backend {
	return &Backend{
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
	}
}

// Put stores the reader's content under key, replacing any previous file
func (b *Backend) Put(ctx context.Context, key, contentType string, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.objects[key] = data
	b.contentTypes[key] = contentType
	return nil
}

// Open returns the content stored under key
func (b *Backend) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[key]
	if !exists {
		return nil, simpleshop.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// URL always returns "": files are only reachable through Open.
func (b *Backend) URL(ctx context.Context, key string) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if _, exists := b.objects[key]; !exists {
		return "", simpleshop.ErrNotFound
	}
	return "", nil
}

// ContentType reports the type a file was stored with.
func (b *Backend) ContentType(key string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	contentType, ok := b.contentTypes[key]
	return contentType, ok
}

// Keys lists every stored key, in no particular order.
func (b *Backend) Keys() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	keys := make([]string, 0, len(b.objects))
	for key := range b.objects {
		keys = append(keys, key)
	}
	return keys
}

// Delete removes the file stored under key
func (b *Backend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.objects[key]; !exists {
		return simpleshop.ErrNotFound
	}
	delete(b.objects, key)
	delete(b.contentTypes, key)
	return nil
}
