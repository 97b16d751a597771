package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

type Repository interface {
	ListProducts(ctx context.Context) ([]Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListProducts(ctx context.Context) ([]Product, error) {
	query := `
		SELECT id, name, description, category, price, gallery, in_stock, attributes
		FROM products
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var (
			p           Product
			description sql.NullString
			price       sql.NullString
			inStock     sql.NullBool
			galleryRaw  []byte
			attrsRaw    []byte
		)

		if err := rows.Scan(&p.ID, &p.Name, &description, &p.Category, &price, &galleryRaw, &inStock, &attrsRaw); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}

		p.Description = description.String

		// Missing price reads as "0.00", matching the storefront contract.
		p.Price = "0.00"
		if price.Valid && price.String != "" {
			p.Price = price.String
		}

		p.InStock = inStock.Valid && inStock.Bool

		if len(galleryRaw) > 0 {
			if err := json.Unmarshal(galleryRaw, &p.Gallery); err != nil {
				return nil, fmt.Errorf("decode gallery for product %s: %w", p.ID, err)
			}
		}

		if len(attrsRaw) > 0 {
			if err := json.Unmarshal(attrsRaw, &p.Attributes); err != nil {
				return nil, fmt.Errorf("decode attributes for product %s: %w", p.ID, err)
			}
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}
