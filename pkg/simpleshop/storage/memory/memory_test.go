package memory_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-shop/pkg/simpleshop"
	memorystorage "github.com/tendant/simple-shop/pkg/simpleshop/storage/memory"
)

var _ simpleshop.ReportStore = (*memorystorage.Backend)(nil)

func TestMemoryBackend(t *testing.T) {
	backend := memorystorage.New()
	ctx := context.Background()
	key := "exports/customers/2024/06/20240615T120000-abcd1234.csv"
	data := "name,city\nAda,London\n"

	t.Run("Put", func(t *testing.T) {
		require.NoError(t, backend.Put(ctx, key, "text/csv", strings.NewReader(data)))
		contentType, ok := backend.ContentType(key)
		assert.True(t, ok)
		assert.Equal(t, "text/csv", contentType)
		assert.Equal(t, []string{key}, backend.Keys())
	})

	t.Run("Open", func(t *testing.T) {
		reader, err := backend.Open(ctx, key)
		require.NoError(t, err)
		defer reader.Close()

		got, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, data, string(got))
	})

	t.Run("URL", func(t *testing.T) {
		url, err := backend.URL(ctx, key)
		require.NoError(t, err)
		assert.Empty(t, url)

		_, err = backend.URL(ctx, "missing")
		assert.ErrorIs(t, err, simpleshop.ErrNotFound)
	})

	t.Run("Default content type", func(t *testing.T) {
		require.NoError(t, backend.Put(ctx, "other", "", strings.NewReader("x")))
		contentType, _ := backend.ContentType("other")
		assert.Equal(t, "application/octet-stream", contentType)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, backend.Delete(ctx, key))
		_, err := backend.Open(ctx, key)
		assert.ErrorIs(t, err, simpleshop.ErrNotFound)
		assert.ErrorIs(t, backend.Delete(ctx, key), simpleshop.ErrNotFound)
	})
}
