package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Andrej19990506/supboard-booking-backend/internal/pricing"
)

func testConfig(mode pricing.Mode) pricing.Config {
	return pricing.Config{
		Mode: mode,
		Types: map[string]pricing.TypePricing{
			"board": {
				HourlyRate: decimal.NewFromInt(300),
				FixedPrices: map[pricing.Bucket]decimal.Decimal{
					pricing.Bucket24h:  decimal.NewFromInt(2000),
					pricing.Bucket48h:  decimal.NewFromInt(3500),
					pricing.Bucket72h:  decimal.NewFromInt(4800),
					pricing.BucketWeek: decimal.NewFromInt(9000),
				},
				RaftingPrice:   decimal.NewFromInt(1500),
				Deposit:        decimal.NewFromInt(1000),
				RequireDeposit: true,
			},
			"raft": {
				HourlyRate:   decimal.NewFromInt(800),
				RaftingPrice: decimal.NewFromInt(4000),
			},
		},
	}
}

func testCatalog() map[string]pricing.CatalogEntry {
	return map[string]pricing.CatalogEntry{
		"board": {DisplayName: "Board", Icon: "icons/board.png"},
		"raft":  {DisplayName: "Raft", Icon: "icons/raft.png"},
	}
}

func TestCalculateHourly(t *testing.T) {
	quote, err := pricing.Calculate(testConfig(pricing.ModeHourly), pricing.ServiceRent, 4, map[string]int{"board": 2}, testCatalog())
	require.NoError(t, err)
	require.Len(t, quote.Items, 1)
	require.True(t, quote.Items[0].UnitPrice.Equal(decimal.NewFromInt(1200)), "unit price: %s", quote.Items[0].UnitPrice)
	require.True(t, quote.Subtotal.Equal(decimal.NewFromInt(2400)), "subtotal: %s", quote.Subtotal)
}

func TestCalculateHourlyMonotone(t *testing.T) {
	cfg := testConfig(pricing.ModeHourly)
	prev := decimal.Zero
	for hours := 1.0; hours <= 200; hours++ {
		quote, err := pricing.Calculate(cfg, pricing.ServiceRent, hours, map[string]int{"board": 1}, testCatalog())
		require.NoError(t, err)
		require.True(t, quote.Subtotal.GreaterThanOrEqual(prev), "cost dropped at %v hours", hours)
		prev = quote.Subtotal
	}
}

func TestCalculateFixedBuckets(t *testing.T) {
	cfg := testConfig(pricing.ModeFixed)

	tests := []struct {
		name  string
		hours float64
		want  int64
	}{
		{"within a day", 5, 2000},
		{"exactly a day", 24, 2000},
		{"two days", 30, 3500},
		{"three days", 72, 4800},
		{"a week", 120, 9000},
		{"beyond a week", 500, 9000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := pricing.Calculate(cfg, pricing.ServiceRent, tt.hours, map[string]int{"board": 1}, testCatalog())
			require.NoError(t, err)
			require.True(t, quote.Subtotal.Equal(decimal.NewFromInt(tt.want)), "subtotal: %s", quote.Subtotal)
		})
	}
}

func TestCalculateHybridPicksCheaper(t *testing.T) {
	cfg := testConfig(pricing.ModeHybrid)

	// 30 hours at 300/h is 9000; the 48h bucket price 3500 wins.
	quote, err := pricing.Calculate(cfg, pricing.ServiceRent, 30, map[string]int{"board": 1}, testCatalog())
	require.NoError(t, err)
	require.True(t, quote.Subtotal.Equal(decimal.NewFromInt(3500)), "subtotal: %s", quote.Subtotal)

	// 3 hours at 300/h is 900; cheaper than the 24h bucket.
	quote, err = pricing.Calculate(cfg, pricing.ServiceRent, 3, map[string]int{"board": 1}, testCatalog())
	require.NoError(t, err)
	require.True(t, quote.Subtotal.Equal(decimal.NewFromInt(900)), "subtotal: %s", quote.Subtotal)
}

func TestCalculateHybridNeverExceedsEither(t *testing.T) {
	cfg := testConfig(pricing.ModeHybrid)
	for hours := 1.0; hours <= 200; hours++ {
		hybrid, err := pricing.Calculate(cfg, pricing.ServiceRent, hours, map[string]int{"board": 1}, testCatalog())
		require.NoError(t, err)
		hourly, err := pricing.Calculate(testConfig(pricing.ModeHourly), pricing.ServiceRent, hours, map[string]int{"board": 1}, testCatalog())
		require.NoError(t, err)
		fixed, err := pricing.Calculate(testConfig(pricing.ModeFixed), pricing.ServiceRent, hours, map[string]int{"board": 1}, testCatalog())
		require.NoError(t, err)

		require.True(t, hybrid.Subtotal.LessThanOrEqual(hourly.Subtotal), "hybrid above hourly at %v hours", hours)
		require.True(t, hybrid.Subtotal.LessThanOrEqual(fixed.Subtotal), "hybrid above fixed at %v hours", hours)
	}
}

func TestCalculateHybridMissingBucketFallsBackToHourly(t *testing.T) {
	cfg := testConfig(pricing.ModeHybrid)
	// The raft entry has no fixed prices at all.
	quote, err := pricing.Calculate(cfg, pricing.ServiceRent, 2, map[string]int{"raft": 1}, testCatalog())
	require.NoError(t, err)
	require.True(t, quote.Subtotal.Equal(decimal.NewFromInt(1600)), "subtotal: %s", quote.Subtotal)
}

func TestCalculateRaftingFlatRate(t *testing.T) {
	// Rafting ignores duration entirely: two boards at 1500 each.
	for _, hours := range []float64{1, 4, 100} {
		quote, err := pricing.Calculate(testConfig(pricing.ModeHourly), pricing.ServiceRafting, hours, map[string]int{"board": 2}, testCatalog())
		require.NoError(t, err)
		require.True(t, quote.Subtotal.Equal(decimal.NewFromInt(3000)), "subtotal at %v hours: %s", hours, quote.Subtotal)
	}
}

func TestCalculateSkipsUnknownType(t *testing.T) {
	quote, err := pricing.Calculate(testConfig(pricing.ModeHourly), pricing.ServiceRent, 2, map[string]int{"board": 1, "ghost": 3}, testCatalog())
	require.NoError(t, err)
	require.Len(t, quote.Items, 2)

	var ghost pricing.LineItem
	for _, item := range quote.Items {
		if item.TypeID == "ghost" {
			ghost = item
		}
	}
	require.True(t, ghost.Skipped)
	require.True(t, ghost.Total.IsZero())
	require.True(t, quote.Subtotal.Equal(decimal.NewFromInt(600)), "subtotal: %s", quote.Subtotal)
}

func TestCalculateInvalidDuration(t *testing.T) {
	for _, hours := range []float64{0, -3} {
		_, err := pricing.Calculate(testConfig(pricing.ModeHourly), pricing.ServiceRent, hours, map[string]int{"board": 1}, testCatalog())
		require.ErrorIs(t, err, pricing.ErrInvalidDuration)
	}

	_, err := pricing.Calculate(testConfig(pricing.ModeHourly), "diving", 2, map[string]int{"board": 1}, testCatalog())
	require.ErrorIs(t, err, pricing.ErrUnknownService)
}

func TestDepositTotal(t *testing.T) {
	cfg := testConfig(pricing.ModeHourly)

	// Only the board entry requires a deposit.
	total := pricing.DepositTotal(cfg, map[string]int{"board": 3, "raft": 2})
	require.True(t, total.Equal(decimal.NewFromInt(3000)), "deposit: %s", total)

	require.True(t, pricing.DepositTotal(cfg, map[string]int{"raft": 2}).IsZero())
	require.True(t, pricing.DepositTotal(cfg, nil).IsZero())
}
