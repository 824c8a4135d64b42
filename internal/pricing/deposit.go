package pricing

import "github.com/shopspring/decimal"

// DepositTotal sums the per-unit deposits for every selected inventory type
// whose configuration requires a deposit. Types without a pricing entry or
// without the deposit flag contribute zero.
func DepositTotal(cfg Config, selected map[string]int) decimal.Decimal {
	total := decimal.Zero
	for typeID, qty := range selected {
		if qty <= 0 {
			continue
		}
		tp, ok := cfg.Types[typeID]
		if !ok || !tp.RequireDeposit {
			continue
		}
		total = total.Add(tp.Deposit.Mul(decimal.NewFromInt(int64(qty))))
	}
	return total
}
