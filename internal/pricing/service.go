package pricing

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownMode    = errors.New("unknown pricing mode")
	ErrInvalidPercent = errors.New("discount percent must be between 0 and 100")
	ErrNegativeRate   = errors.New("rates and deposits must not be negative")
)

// CatalogProvider supplies display attributes for inventory types. The
// inventory module implements it; the indirection keeps this package free of
// a dependency on it.
type CatalogProvider interface {
	Catalog(ctx context.Context) (map[string]CatalogEntry, error)
}

// QuoteInput is a full quote request: the selection plus the discount
// triggers known to the caller.
type QuoteInput struct {
	Service       ServiceType
	Hours         float64
	Selected      map[string]int
	CustomPercent float64
	IsVIP         bool
}

// QuoteResult is the complete cost picture presented to staff before a
// booking is saved.
type QuoteResult struct {
	Items    []LineItem      `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount DiscountResult  `json:"discount"`
	Deposit  decimal.Decimal `json:"deposit"`
	Total    decimal.Decimal `json:"total"`
}

type Service struct {
	repo    Repository
	catalog CatalogProvider
}

func NewService(repo Repository, catalog CatalogProvider) *Service {
	return &Service{repo: repo, catalog: catalog}
}

func (s *Service) GetConfig(ctx context.Context) (Config, error) {
	return s.repo.Load(ctx)
}

func (s *Service) UpdateConfig(ctx context.Context, cfg Config) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}
	if cfg.Types == nil {
		cfg.Types = map[string]TypePricing{}
	}
	return s.repo.Save(ctx, cfg)
}

// Quote prices a selection with the saved configuration. The total is the
// discounted subtotal; the deposit is reported separately because it is
// refundable and never discounted.
func (s *Service) Quote(ctx context.Context, in QuoteInput) (QuoteResult, error) {
	cfg, err := s.repo.Load(ctx)
	if err != nil {
		return QuoteResult{}, err
	}
	catalog, err := s.catalog.Catalog(ctx)
	if err != nil {
		return QuoteResult{}, err
	}

	quote, err := Calculate(cfg, in.Service, in.Hours, in.Selected, catalog)
	if err != nil {
		return QuoteResult{}, err
	}

	units := 0
	for _, qty := range in.Selected {
		if qty > 0 {
			units += qty
		}
	}
	discount := CalculateDiscount(cfg.Discounts, DiscountInput{
		CustomPercent: in.CustomPercent,
		IsVIP:         in.IsVIP,
		TotalUnits:    units,
	}, quote.Subtotal)

	return QuoteResult{
		Items:    quote.Items,
		Subtotal: quote.Subtotal,
		Discount: discount,
		Deposit:  DepositTotal(cfg, in.Selected),
		Total:    quote.Subtotal.Sub(discount.Amount),
	}, nil
}

func validateConfig(cfg Config) error {
	switch cfg.Mode {
	case ModeHourly, ModeFixed, ModeHybrid:
	default:
		return ErrUnknownMode
	}

	for _, pct := range []float64{cfg.Discounts.VIPPercent, cfg.Discounts.GroupPercent, cfg.Discounts.RepeatPercent} {
		if pct < 0 || pct > 100 {
			return ErrInvalidPercent
		}
	}

	for _, tp := range cfg.Types {
		if tp.HourlyRate.IsNegative() || tp.RaftingPrice.IsNegative() || tp.Deposit.IsNegative() {
			return ErrNegativeRate
		}
		for _, price := range tp.FixedPrices {
			if price.IsNegative() {
				return ErrNegativeRate
			}
		}
	}
	return nil
}
