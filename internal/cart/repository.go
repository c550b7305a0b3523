package cart

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository clears a buyer's cart once an online payment confirms.
// The rest of cart management lives upstream; this service only needs
// the one mutation.
type Repository interface {
	Clear(ctx context.Context, userID string) error
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

func (r *repo) Clear(ctx context.Context, userID string) error {
	// cart_items cascade with the cart row
	if _, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
