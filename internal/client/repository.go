package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, cl *Client) error
	GetByID(ctx context.Context, id string) (*Client, error)
	GetByPhone(ctx context.Context, phone string) (*Client, error)
	List(ctx context.Context, filter Filter) ([]*Client, int, error)
	Update(ctx context.Context, cl *Client) error
	IncrementVisits(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const clientColumns = "id, name, phone, is_vip, visits, comment, created_at, updated_at"

func (r *pgxRepository) Create(ctx context.Context, cl *Client) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.clients").
		Columns("name", "phone", "is_vip", "comment").
		Values(cl.Name, cl.Phone, cl.IsVIP, cl.Comment).
		Suffix("RETURNING id, visits, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create client query failed: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&cl.ID, &cl.Visits, &cl.CreatedAt, &cl.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrPhoneTaken
		}
		return fmt.Errorf("create client failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Client, error) {
	return r.getByColumn(ctx, "id", id)
}

func (r *pgxRepository) GetByPhone(ctx context.Context, phone string) (*Client, error) {
	return r.getByColumn(ctx, "phone", phone)
}

func (r *pgxRepository) getByColumn(ctx context.Context, column, value string) (*Client, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(clientColumns).
		From("public.clients").
		Where(squirrel.Eq{column: value}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get client query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var cl Client
	if err := row.Scan(
		&cl.ID, &cl.Name, &cl.Phone, &cl.IsVIP, &cl.Visits, &cl.Comment, &cl.CreatedAt, &cl.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get client failed: %w", err)
	}
	return &cl, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Client, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	queryBuilder := psql.Select(
		"id", "name", "phone", "is_vip", "visits", "comment", "created_at", "updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.clients")

	if filter.Query != "" {
		pattern := filter.Query + "%"
		queryBuilder = queryBuilder.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"phone": pattern},
		})
	}
	if filter.VIPOnly {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"is_vip": true})
	}

	queryBuilder = queryBuilder.OrderBy("name ASC")

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	queryBuilder = queryBuilder.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list clients query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list clients failed: %w", err)
	}
	defer rows.Close()

	var clients []*Client
	var total int

	for rows.Next() {
		var cl Client
		if err := rows.Scan(
			&cl.ID, &cl.Name, &cl.Phone, &cl.IsVIP, &cl.Visits, &cl.Comment,
			&cl.CreatedAt, &cl.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan client failed: %w", err)
		}
		clients = append(clients, &cl)
	}

	return clients, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, cl *Client) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.clients").
		Set("name", cl.Name).
		Set("phone", cl.Phone).
		Set("is_vip", cl.IsVIP).
		Set("comment", cl.Comment).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": cl.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update client query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrPhoneTaken
		}
		return fmt.Errorf("update client failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) IncrementVisits(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.clients").
		Set("visits", squirrel.Expr("visits + 1")).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build increment visits query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("increment visits failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
