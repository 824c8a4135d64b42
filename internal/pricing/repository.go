package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository loads and stores the pricing configuration. A single row holds
// the whole config as JSONB; callers receive a fresh copy on every load so
// no shared mutable state leaks out.
type Repository interface {
	Load(ctx context.Context) (Config, error)
	Save(ctx context.Context, cfg Config) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Load(ctx context.Context) (Config, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("config").
		From("public.pricing_config").
		Where(squirrel.Eq{"id": 1}).
		ToSql()
	if err != nil {
		return Config{}, fmt.Errorf("build load pricing config query failed: %w", err)
	}

	var raw []byte
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Nothing saved yet; fall back to defaults.
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("load pricing config failed: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode pricing config failed: %w", err)
	}
	if cfg.Types == nil {
		cfg.Types = map[string]TypePricing{}
	}
	return cfg, nil
}

func (r *pgxRepository) Save(ctx context.Context, cfg Config) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode pricing config failed: %w", err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.pricing_config").
		Columns("id", "config").
		Values(1, raw).
		Suffix("ON CONFLICT (id) DO UPDATE SET config = EXCLUDED.config, updated_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("build save pricing config query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("save pricing config failed: %w", err)
	}
	return nil
}
