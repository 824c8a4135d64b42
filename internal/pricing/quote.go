package pricing

import (
	"errors"
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidDuration = errors.New("duration must be a positive number of hours")
	ErrUnknownService  = errors.New("unknown service type")
)

// CatalogEntry carries the display attributes of an inventory type for the
// cost breakdown.
type CatalogEntry struct {
	DisplayName string
	Icon        string
}

// LineItem is the cost breakdown for one selected inventory type.
type LineItem struct {
	TypeID      string          `json:"type_id"`
	DisplayName string          `json:"display_name"`
	Icon        string          `json:"icon"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
	// Skipped marks a type id with no catalog or pricing entry. It
	// contributes nothing to the subtotal, matching the historical
	// behavior, but stays visible so a zero can be told apart from a
	// misconfigured id.
	Skipped bool `json:"skipped"`
}

// Quote is the full cost breakdown for a selection.
type Quote struct {
	Items    []LineItem      `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Calculate computes the cost of the selected inventory under the given
// configuration.
//
// Rafting is priced flat per unit; duration does not matter. Rent pricing
// follows the mode: hourly multiplies rate by hours, fixed looks up the
// duration bucket, hybrid charges the cheaper of the two.
func Calculate(cfg Config, service ServiceType, hours float64, selected map[string]int, catalog map[string]CatalogEntry) (Quote, error) {
	if service != ServiceRent && service != ServiceRafting {
		return Quote{}, ErrUnknownService
	}
	if service == ServiceRent {
		if math.IsNaN(hours) || math.IsInf(hours, 0) || hours <= 0 {
			return Quote{}, ErrInvalidDuration
		}
	}

	typeIDs := make([]string, 0, len(selected))
	for typeID := range selected {
		typeIDs = append(typeIDs, typeID)
	}
	sort.Strings(typeIDs)

	quote := Quote{
		Items:    make([]LineItem, 0, len(typeIDs)),
		Subtotal: decimal.Zero,
	}

	for _, typeID := range typeIDs {
		qty := selected[typeID]
		if qty <= 0 {
			continue
		}

		entry, hasEntry := catalog[typeID]
		tp, hasPricing := cfg.Types[typeID]

		item := LineItem{
			TypeID:      typeID,
			DisplayName: entry.DisplayName,
			Icon:        entry.Icon,
			Quantity:    qty,
			UnitPrice:   decimal.Zero,
			Total:       decimal.Zero,
		}

		if !hasEntry || !hasPricing {
			item.Skipped = true
			quote.Items = append(quote.Items, item)
			continue
		}

		item.UnitPrice = unitPrice(cfg.Mode, service, hours, tp)
		item.Total = item.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
		quote.Subtotal = quote.Subtotal.Add(item.Total)
		quote.Items = append(quote.Items, item)
	}

	return quote, nil
}

func unitPrice(mode Mode, service ServiceType, hours float64, tp TypePricing) decimal.Decimal {
	if service == ServiceRafting {
		return tp.RaftingPrice
	}

	hourly := tp.HourlyRate.Mul(decimal.NewFromFloat(hours))
	fixed, hasFixed := tp.FixedPrices[BucketFor(hours)]

	switch mode {
	case ModeFixed:
		if !hasFixed {
			return decimal.Zero
		}
		return fixed
	case ModeHybrid:
		// The cheaper of the two; a missing bucket falls back to hourly.
		if hasFixed && fixed.LessThan(hourly) {
			return fixed
		}
		return hourly
	default:
		return hourly
	}
}
