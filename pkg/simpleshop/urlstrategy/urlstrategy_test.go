package urlstrategy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLinker struct {
	url string
	err error
}

func (f fakeLinker) URL(context.Context, string) (string, error) {
	return f.url, f.err
}

func TestAPIRoutedStrategy(t *testing.T) {
	s := NewAPIRoutedStrategy("https://shop.example.com/api/v1/")
	url, err := s.DownloadURL(context.Background(), "exports/customers/2024/06/15/a b.csv")
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/api/v1/exports/exports/customers/2024/06/15/a%20b.csv", url)
}

func TestCDNStrategy(t *testing.T) {
	s := NewCDNStrategy("https://cdn.example.com")
	url, err := s.DownloadURL(context.Background(), "/exports/x.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/exports/x.xlsx", url)
}

func TestStorageDelegatedFallback(t *testing.T) {
	ctx := context.Background()

	s, err := NewURLStrategy(Config{Store: fakeLinker{url: "https://bucket/presigned"}})
	require.NoError(t, err)
	url, err := s.DownloadURL(ctx, "exports/x.csv")
	require.NoError(t, err)
	assert.Equal(t, "https://bucket/presigned", url)

	s, err = NewURLStrategy(Config{Type: StrategyTypeStorageDelegated, Store: fakeLinker{}})
	require.NoError(t, err)
	url, err = s.DownloadURL(ctx, "exports/x.csv")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/exports/exports/x.csv", url)

	s, err = NewURLStrategy(Config{Store: fakeLinker{err: errors.New("boom")}, APIBaseURL: "/shop"})
	require.NoError(t, err)
	url, err = s.DownloadURL(ctx, "x.csv")
	require.NoError(t, err)
	assert.Equal(t, "/shop/exports/x.csv", url)
}

func TestNewURLStrategy_Errors(t *testing.T) {
	_, err := NewURLStrategy(Config{Type: StrategyTypeCDN})
	assert.ErrorContains(t, err, "CDN base URL")

	_, err = NewURLStrategy(Config{Type: StrategyTypeStorageDelegated})
	assert.ErrorContains(t, err, "report store")

	_, err = NewURLStrategy(Config{Type: "ftp"})
	assert.ErrorContains(t, err, "unknown URL strategy")
}

func TestParseType(t *testing.T) {
	tests := map[string]URLStrategyType{
		"":                  StrategyTypeStorageDelegated,
		"storage-delegated": StrategyTypeStorageDelegated,
		"api":               StrategyTypeAPIRouted,
		"cdn":               StrategyTypeCDN,
	}
	for in, want := range tests {
		got, err := ParseType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseType("content-based")
	assert.Error(t, err)
}
