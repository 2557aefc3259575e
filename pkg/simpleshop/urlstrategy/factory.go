package urlstrategy

import (
	"fmt"
	"net/url"
)

// URLStrategyType represents the type of URL strategy
type URLStrategyType string

const (
	// StrategyTypeStorageDelegated lets the report store build the link
	StrategyTypeStorageDelegated URLStrategyType = "storage-delegated"

	// StrategyTypeAPIRouted routes downloads through the shop API
	StrategyTypeAPIRouted URLStrategyType = "api"

	// StrategyTypeCDN links to a CDN in front of the report bucket
	StrategyTypeCDN URLStrategyType = "cdn"
)

// DefaultAPIBaseURL is the API prefix used when none is configured.
const DefaultAPIBaseURL = "/api/v1"

// Config holds configuration for URL strategy creation
type Config struct {
	Type       URLStrategyType
	CDNBaseURL string // For CDN strategy
	APIBaseURL string // For API-routed strategy and as the storage fallback
	Store      Linker // For storage-delegated strategy
}

// NewURLStrategy creates a URL strategy based on the configuration.
// The storage-delegated strategy falls back to API routing for stores that
// cannot link to their files.
func NewURLStrategy(config Config) (URLStrategy, error) {
	apiBase := config.APIBaseURL
	if apiBase == "" {
		apiBase = DefaultAPIBaseURL
	}

	switch config.Type {
	case StrategyTypeCDN:
		if config.CDNBaseURL == "" {
			return nil, fmt.Errorf("CDN base URL is required for CDN strategy")
		}
		if _, err := url.Parse(config.CDNBaseURL); err != nil {
			return nil, fmt.Errorf("invalid CDN base URL: %w", err)
		}
		return NewCDNStrategy(config.CDNBaseURL), nil

	case StrategyTypeAPIRouted:
		return NewAPIRoutedStrategy(apiBase), nil

	case StrategyTypeStorageDelegated, "":
		if config.Store == nil {
			return nil, fmt.Errorf("report store is required for storage-delegated strategy")
		}
		return &FallbackStrategy{
			Primary:   NewStorageDelegatedStrategy(config.Store),
			Secondary: NewAPIRoutedStrategy(apiBase),
		}, nil

	default:
		return nil, fmt.Errorf("unknown URL strategy type: %s", config.Type)
	}
}

// ParseType validates a strategy name read from configuration
func ParseType(s string) (URLStrategyType, error) {
	switch t := URLStrategyType(s); t {
	case StrategyTypeStorageDelegated, StrategyTypeAPIRouted, StrategyTypeCDN:
		return t, nil
	case "":
		return StrategyTypeStorageDelegated, nil
	}
	return "", fmt.Errorf("url strategy must be 'storage-delegated', 'api' or 'cdn', got: %s", s)
}
