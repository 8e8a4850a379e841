package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore reads the product catalog from PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, strings.TrimSpace(databaseURL))
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresStore{pool: pool}, nil
}

func initSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			sku TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			price NUMERIC(10,2) NOT NULL,
			currency TEXT NOT NULL DEFAULT '$',
			active BOOLEAN NOT NULL DEFAULT TRUE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_products_category_price ON products (category, price);`,
	}
	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init catalog schema failed on %q: %w", stmt, err)
		}
	}
	return nil
}

func (s *PostgresStore) Query(ctx context.Context, q Query) ([]Item, error) {
	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(`SELECT id, sku, name, description, category, price, currency, active
		FROM products WHERE active`)

	if q.Category != "" {
		args = append(args, q.Category)
		fmt.Fprintf(&sb, " AND lower(category) = lower($%d)", len(args))
	}
	if q.MaxPrice != nil {
		args = append(args, *q.MaxPrice)
		fmt.Fprintf(&sb, " AND price <= $%d", len(args))
	}
	if len(q.Keywords) > 0 {
		clauses := make([]string, 0, len(q.Keywords))
		for _, kw := range q.Keywords {
			if kw == "" {
				continue
			}
			args = append(args, "%"+kw+"%")
			clauses = append(clauses, fmt.Sprintf("name ILIKE $%d OR description ILIKE $%d", len(args), len(args)))
		}
		if len(clauses) > 0 {
			sb.WriteString(" AND (" + strings.Join(clauses, " OR ") + ")")
		}
	}
	if q.CheapestFirst {
		sb.WriteString(" ORDER BY price ASC")
	} else {
		sb.WriteString(" ORDER BY id")
	}
	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}

	rows, err := s.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.SKU, &it.Name, &it.Description, &it.Category, &it.Price, &it.Currency, &it.Active); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
