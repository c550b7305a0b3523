package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("product not found")

type Repository interface {
	GetByID(ctx context.Context, productID string) (*Product, error)
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

func (r *repo) GetByID(ctx context.Context, productID string) (*Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, category, price, offer_price, in_stock
         FROM products WHERE id = $1`,
		productID,
	).Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.OfferPrice, &p.InStock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, productID)
		}
		return nil, fmt.Errorf("select product: %w", err)
	}

	return &p, nil
}
