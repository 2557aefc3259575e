package fs_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-shop/pkg/simpleshop"
	"github.com/tendant/simple-shop/pkg/simpleshop/storage/fs"
)

var _ simpleshop.ReportStore = (*fs.Backend)(nil)

func TestFSBackend(t *testing.T) {
	baseDir := t.TempDir()
	backend, err := fs.New(fs.Config{BaseDir: baseDir, URLPrefix: "http://localhost:8080/files/"})
	require.NoError(t, err)

	ctx := context.Background()
	key := "exports/payments/2024/06/20240615T120000-abcd1234.csv"
	data := "amount\n10.00\n"

	t.Run("Put and Open", func(t *testing.T) {
		require.NoError(t, backend.Put(ctx, key, "text/csv", strings.NewReader(data)))
		assert.FileExists(t, filepath.Join(baseDir, filepath.FromSlash(key)))

		reader, err := backend.Open(ctx, key)
		require.NoError(t, err)
		defer reader.Close()
		got, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, data, string(got))
	})

	t.Run("Put replaces", func(t *testing.T) {
		require.NoError(t, backend.Put(ctx, key, "text/csv", strings.NewReader("amount\n")))
		got, err := os.ReadFile(filepath.Join(baseDir, filepath.FromSlash(key)))
		require.NoError(t, err)
		assert.Equal(t, "amount\n", string(got))
	})

	t.Run("URL", func(t *testing.T) {
		url, err := backend.URL(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/files/"+key, url)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := backend.Open(ctx, "exports/none.csv")
		assert.ErrorIs(t, err, simpleshop.ErrNotFound)
	})

	t.Run("Delete cleans up directories", func(t *testing.T) {
		require.NoError(t, backend.Delete(ctx, key))
		assert.NoDirExists(t, filepath.Join(baseDir, "exports"))
		assert.ErrorIs(t, backend.Delete(ctx, key), simpleshop.ErrNotFound)
	})
}

func TestFSBackend_RejectsEscapingKeys(t *testing.T) {
	backend, err := fs.New(fs.Config{BaseDir: t.TempDir()})
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"", "../outside.csv", "exports/../../outside.csv", "/etc/passwd"} {
		t.Run(key, func(t *testing.T) {
			err := backend.Put(ctx, key, "text/csv", strings.NewReader("x"))
			assert.ErrorIs(t, err, fs.ErrInvalidKey)
		})
	}
}

func TestFSBackend_URLWithoutPrefix(t *testing.T) {
	backend, err := fs.New(fs.Config{BaseDir: t.TempDir()})
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, backend.Put(ctx, "a.csv", "text/csv", strings.NewReader("x")))
	url, err := backend.URL(ctx, "a.csv")
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestNew_RequiresBaseDir(t *testing.T) {
	_, err := fs.New(fs.Config{})
	assert.Error(t, err)
}
