package simpleshop

import (
	"time"
)

// Settings is shop-wide configuration built once at startup and handed to
// the service. Nothing in the package reads global state.
type Settings struct {
	ShopName string
	Currency string
	// Location is the shop's time zone. Calendar days for route planning
	// and statistics windows are taken in it.
	Location *time.Location
	// LowStockThreshold applies to inventory items without a reorder level.
	LowStockThreshold int
}

// DefaultSettings returns settings for a shop in UTC.
func DefaultSettings() Settings {
	return Settings{
		ShopName:          "Simple Shop",
		Currency:          "USD",
		Location:          time.UTC,
		LowStockThreshold: 5,
	}
}

// Zone returns Location, defaulting to UTC.
func (s Settings) Zone() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}
