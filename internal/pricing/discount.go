package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DiscountInput describes the triggers supplied by the caller.
type DiscountInput struct {
	// CustomPercent is a manual discount entered by staff.
	CustomPercent float64
	IsVIP         bool
	TotalUnits    int
}

// DiscountResult is the applied discount and its qualifying triggers.
type DiscountResult struct {
	Percent float64         `json:"percent"`
	Amount  decimal.Decimal `json:"amount"`
	// Reasons lists every trigger that qualified, including ones below the
	// applied rate. Only the maximum rate is charged.
	Reasons []string `json:"reasons"`
}

// CalculateDiscount determines the discount for a subtotal. When discounts
// are disabled the result is zero regardless of the other inputs. Otherwise
// the applied percentage is the maximum of the qualifying triggers, never
// their sum.
func CalculateDiscount(cfg DiscountConfig, in DiscountInput, subtotal decimal.Decimal) DiscountResult {
	result := DiscountResult{Amount: decimal.Zero}

	if !cfg.Enabled {
		return result
	}

	if in.CustomPercent > 0 {
		result.Reasons = append(result.Reasons, fmt.Sprintf("manual discount (%g%%)", in.CustomPercent))
		if in.CustomPercent > result.Percent {
			result.Percent = in.CustomPercent
		}
	}
	if in.IsVIP && cfg.VIPPercent > 0 {
		result.Reasons = append(result.Reasons, fmt.Sprintf("VIP client (%g%%)", cfg.VIPPercent))
		if cfg.VIPPercent > result.Percent {
			result.Percent = cfg.VIPPercent
		}
	}
	if in.TotalUnits >= GroupMinUnits && cfg.GroupPercent > 0 {
		result.Reasons = append(result.Reasons, fmt.Sprintf("group of %d+ units (%g%%)", GroupMinUnits, cfg.GroupPercent))
		if cfg.GroupPercent > result.Percent {
			result.Percent = cfg.GroupPercent
		}
	}

	if result.Percent > 0 {
		result.Amount = subtotal.
			Mul(decimal.NewFromFloat(result.Percent)).
			Div(decimal.NewFromInt(100))
	}

	return result
}
