package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Andrej19990506/supboard-booking-backend/internal/pricing"
)

func discountConfig() pricing.DiscountConfig {
	return pricing.DiscountConfig{
		Enabled:       true,
		VIPPercent:    10,
		GroupPercent:  15,
		RepeatPercent: 5,
	}
}

func TestCalculateDiscountDisabled(t *testing.T) {
	cfg := discountConfig()
	cfg.Enabled = false

	result := pricing.CalculateDiscount(cfg, pricing.DiscountInput{IsVIP: true, TotalUnits: 10, CustomPercent: 20}, decimal.NewFromInt(1000))
	require.Zero(t, result.Percent)
	require.True(t, result.Amount.IsZero())
	require.Empty(t, result.Reasons)
}

func TestCalculateDiscountTakesMaxNotSum(t *testing.T) {
	// VIP 10% and group 15% both qualify; 15% applies, not 25%.
	result := pricing.CalculateDiscount(discountConfig(), pricing.DiscountInput{IsVIP: true, TotalUnits: 5}, decimal.NewFromInt(1000))
	require.Equal(t, 15.0, result.Percent)
	require.True(t, result.Amount.Equal(decimal.NewFromInt(150)), "amount: %s", result.Amount)
	require.Len(t, result.Reasons, 2)
}

func TestCalculateDiscountSingleTriggers(t *testing.T) {
	tests := []struct {
		name    string
		in      pricing.DiscountInput
		percent float64
	}{
		{"vip only", pricing.DiscountInput{IsVIP: true}, 10},
		{"group only", pricing.DiscountInput{TotalUnits: 6}, 15},
		{"just below group size", pricing.DiscountInput{TotalUnits: 4}, 0},
		{"manual beats vip", pricing.DiscountInput{IsVIP: true, CustomPercent: 30}, 30},
		{"vip beats small manual", pricing.DiscountInput{IsVIP: true, CustomPercent: 3}, 10},
		{"nothing", pricing.DiscountInput{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pricing.CalculateDiscount(discountConfig(), tt.in, decimal.NewFromInt(200))
			require.Equal(t, tt.percent, result.Percent)
		})
	}
}

func TestCalculateDiscountReasonsListEveryTrigger(t *testing.T) {
	result := pricing.CalculateDiscount(discountConfig(), pricing.DiscountInput{IsVIP: true, TotalUnits: 7, CustomPercent: 5}, decimal.NewFromInt(100))
	require.Equal(t, 15.0, result.Percent)
	require.Len(t, result.Reasons, 3)
}
