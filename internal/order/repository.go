package order

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type Repository interface {
	Insert(ctx context.Context, itemsJSON string, total float64) (int64, time.Time, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Insert persists the whole order as one row. There is nothing to roll back
// on failure and nothing partial to leave behind.
func (r *repository) Insert(ctx context.Context, itemsJSON string, total float64) (int64, time.Time, error) {
	query := `
		INSERT INTO orders (items, total)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	var (
		id        int64
		createdAt time.Time
	)
	if err := r.db.QueryRowContext(ctx, query, itemsJSON, total).Scan(&id, &createdAt); err != nil {
		return 0, time.Time{}, fmt.Errorf("insert order: %w", err)
	}

	return id, createdAt, nil
}
