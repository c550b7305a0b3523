package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tusharrdev/greencart-backend/internal/address"
	"github.com/tusharrdev/greencart-backend/internal/catalog"
)

var ErrNotFound = errors.New("order not found")

type Repository interface {
	Create(ctx context.Context, o *Order) error
	MarkPaid(ctx context.Context, orderID string) error
	Delete(ctx context.Context, orderID string) error
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, o *Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, user_id, address_id, amount, payment_type, is_paid, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		o.ID, o.UserID, o.AddressID, o.Amount, o.PaymentType, o.IsPaid, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, it := range o.Items {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_items (id, order_id, product_id, quantity)
             VALUES ($1, $2, $3, $4)`,
			uuid.NewString(), o.ID, it.ProductID, it.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *repo) MarkPaid(ctx context.Context, orderID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET is_paid = TRUE WHERE id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("mark paid: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, orderID)
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, orderID string) error {
	// order_items cascade with the order row
	if _, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, orderID); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// visibleFilter hides online orders whose payment has not come back yet.
const visibleFilter = `(o.payment_type = 'COD' OR o.is_paid = TRUE)`

func (r *repo) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return r.list(ctx,
		`SELECT o.id, o.user_id, o.address_id, o.amount, o.payment_type, o.is_paid, o.created_at,
		        a.id, a.user_id, a.first_name, a.last_name, a.email, a.street, a.city, a.state, a.zipcode, a.country, a.phone
		 FROM orders o
		 LEFT JOIN addresses a ON a.id = o.address_id
		 WHERE o.user_id = $1 AND `+visibleFilter+`
		 ORDER BY o.created_at DESC`,
		userID,
	)
}

func (r *repo) ListAll(ctx context.Context) ([]Order, error) {
	return r.list(ctx,
		`SELECT o.id, o.user_id, o.address_id, o.amount, o.payment_type, o.is_paid, o.created_at,
		        a.id, a.user_id, a.first_name, a.last_name, a.email, a.street, a.city, a.state, a.zipcode, a.country, a.phone
		 FROM orders o
		 LEFT JOIN addresses a ON a.id = o.address_id
		 WHERE `+visibleFilter+`
		 ORDER BY o.created_at DESC`,
	)
}

func (r *repo) list(ctx context.Context, query string, args ...any) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		o, err := scanOrderWithAddress(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	for i := range orders {
		items, err := r.loadItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

func scanOrderWithAddress(rows *sql.Rows) (*Order, error) {
	var o Order
	var addrID sql.NullString
	var addr [10]sql.NullString

	err := rows.Scan(
		&o.ID, &o.UserID, &o.AddressID, &o.Amount, &o.PaymentType, &o.IsPaid, &o.CreatedAt,
		&addrID, &addr[0], &addr[1], &addr[2], &addr[3], &addr[4],
		&addr[5], &addr[6], &addr[7], &addr[8], &addr[9],
	)
	if err != nil {
		return nil, fmt.Errorf("scan order: %w", err)
	}

	if addrID.Valid {
		o.Address = &address.Address{
			ID:        addrID.String,
			UserID:    addr[0].String,
			FirstName: addr[1].String,
			LastName:  addr[2].String,
			Email:     addr[3].String,
			Street:    addr[4].String,
			City:      addr[5].String,
			State:     addr[6].String,
			Zipcode:   addr[7].String,
			Country:   addr[8].String,
			Phone:     addr[9].String,
		}
	}

	return &o, nil
}

func (r *repo) loadItems(ctx context.Context, orderID string) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT oi.product_id, oi.quantity,
		        p.id, p.name, p.category, p.price, p.offer_price, p.in_stock
		 FROM order_items oi
		 LEFT JOIN products p ON p.id = oi.product_id
		 WHERE oi.order_id = $1`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("select order_items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		var pID, pName, pCategory sql.NullString
		var pPrice, pOffer sql.NullInt64
		var pInStock sql.NullBool

		if err := rows.Scan(&it.ProductID, &it.Quantity,
			&pID, &pName, &pCategory, &pPrice, &pOffer, &pInStock); err != nil {
			return nil, fmt.Errorf("scan order_item: %w", err)
		}

		if pID.Valid {
			it.Product = &catalog.Product{
				ID:         pID.String,
				Name:       pName.String,
				Category:   pCategory.String,
				Price:      pPrice.Int64,
				OfferPrice: pOffer.Int64,
				InStock:    pInStock.Bool,
			}
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return items, nil
}
