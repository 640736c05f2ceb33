package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wingsengineering/wingsweb/models"
)

const selectActiveParts = `
	SELECT
		id::text,
		COALESCE(name, ''),
		COALESCE(brand, ''),
		COALESCE(model, ''),
		COALESCE(part_number, ''),
		COALESCE(category, ''),
		COALESCE(subcategory, ''),
		price::float8,
		COALESCE(currency, ''),
		COALESCE(stock_quantity, 0),
		lead_time_days,
		COALESCE(compatible_with, '{}'),
		COALESCE(short_description, ''),
		COALESCE(primary_image_url, ''),
		created_at
	FROM product_catalog
	WHERE status = 'active' AND category = ANY($1)
	ORDER BY created_at DESC
`

// PostgresCatalog reads active parts from a product_catalog table.
type PostgresCatalog struct {
	pool       *pgxpool.Pool
	categories []string
}

func NewPostgresCatalog(ctx context.Context, dsn string, categories []string) (*PostgresCatalog, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %w", err)
	}
	cfg.MaxConns = 4
	cfg.MinConns = 1
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresCatalog{pool: pool, categories: categories}, nil
}

func (s *PostgresCatalog) Name() string { return "postgres" }

func (s *PostgresCatalog) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresCatalog) FetchParts(ctx context.Context) ([]models.Part, error) {
	rows, err := s.pool.Query(ctx, selectActiveParts, s.categories)
	if err != nil {
		return nil, fmt.Errorf("failed to query parts: %w", err)
	}
	defer rows.Close()

	parts := make([]models.Part, 0)
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan part: %w", err)
		}
		parts = append(parts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating parts: %w", err)
	}
	return parts, nil
}

func scanPart(row pgx.Row) (models.Part, error) {
	var (
		p        models.Part
		price    *float64
		leadTime *int32
	)
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Brand,
		&p.Model,
		&p.PartNumber,
		&p.Category,
		&p.Subcategory,
		&price,
		&p.Currency,
		&p.StockQuantity,
		&leadTime,
		&p.CompatibleWith,
		&p.ShortDescription,
		&p.ImageURL,
		&p.CreatedAt,
	)
	if err != nil {
		return p, err
	}
	p.Price = price
	if leadTime != nil {
		days := int(*leadTime)
		p.LeadTimeDays = &days
	}
	return p, nil
}
