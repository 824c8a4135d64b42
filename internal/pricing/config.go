package pricing

import (
	"github.com/shopspring/decimal"
)

// Mode selects how rent-service prices are computed.
type Mode string

const (
	ModeHourly Mode = "hourly"
	ModeFixed  Mode = "fixed"
	ModeHybrid Mode = "hybrid"
)

// ServiceType distinguishes regular rentals from guided rafting trips.
type ServiceType string

const (
	ServiceRent    ServiceType = "rent"
	ServiceRafting ServiceType = "rafting"
)

// RaftingHours is the conventional duration of a rafting trip. Rafting is
// priced flat, so the value never affects the quote.
const RaftingHours = 4

// Bucket is a duration tier for fixed-price mode.
type Bucket string

const (
	Bucket24h  Bucket = "24h"
	Bucket48h  Bucket = "48h"
	Bucket72h  Bucket = "72h"
	BucketWeek Bucket = "week"
)

// BucketFor returns the smallest bucket covering the given duration in hours.
// Anything beyond 72 hours falls into the week bucket regardless of length.
func BucketFor(hours float64) Bucket {
	switch {
	case hours <= 24:
		return Bucket24h
	case hours <= 48:
		return Bucket48h
	case hours <= 72:
		return Bucket72h
	default:
		return BucketWeek
	}
}

// TypePricing holds the price configuration for one inventory type.
type TypePricing struct {
	HourlyRate     decimal.Decimal            `json:"hourly_rate"`
	FixedPrices    map[Bucket]decimal.Decimal `json:"fixed_prices"`
	RaftingPrice   decimal.Decimal            `json:"rafting_price"`
	Deposit        decimal.Decimal            `json:"deposit"`
	RequireDeposit bool                       `json:"require_deposit"`
}

// DiscountConfig controls the automatic discount triggers.
type DiscountConfig struct {
	Enabled bool `json:"enabled"`
	// Percentage rates for each trigger; zero disables the trigger.
	VIPPercent    float64 `json:"vip_percent"`
	GroupPercent  float64 `json:"group_percent"`
	RepeatPercent float64 `json:"repeat_percent"`
}

// GroupMinUnits is the number of selected units from which the group
// discount applies.
const GroupMinUnits = 5

// Config is the complete pricing configuration for the business.
// Callers load it and pass it down explicitly; nothing in this package keeps
// process-wide state.
type Config struct {
	Mode      Mode                   `json:"mode"`
	Types     map[string]TypePricing `json:"types"`
	Discounts DiscountConfig         `json:"discounts"`
}

// DefaultConfig returns the configuration used until staff save their own.
func DefaultConfig() Config {
	return Config{
		Mode:  ModeHourly,
		Types: map[string]TypePricing{},
		Discounts: DiscountConfig{
			Enabled:       true,
			VIPPercent:    10,
			GroupPercent:  15,
			RepeatPercent: 5,
		},
	}
}
