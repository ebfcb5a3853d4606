// internal/adapters/out/db/cart_repository_pg.go
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	cartdom "qkart/internal/domain/cart"
	userdom "qkart/internal/domain/user"
)

// CartRepositoryPG stores one row per cart; cartItems live in a JSONB column
// so the document shape (ordered snapshots) survives unchanged.
type CartRepositoryPG struct {
	DB *sql.DB
}

func NewCartRepositoryPG(db *sql.DB) *CartRepositoryPG {
	return &CartRepositoryPG{DB: db}
}

const cartColumns = `email, cart_items, payment_option, created_at, updated_at`

func (r *CartRepositoryPG) GetByEmail(ctx context.Context, email string) (*cartdom.Cart, error) {
	run := getRunner(ctx, r.DB)
	row := run.QueryRowContext(ctx, `SELECT `+cartColumns+` FROM carts WHERE email = $1`, userdom.NormalizeEmail(email))
	return scanCartRow(row)
}

func (r *CartRepositoryPG) Create(ctx context.Context, c *cartdom.Cart) error {
	items, err := encodeCartItems(c.Items)
	if err != nil {
		return err
	}
	run := getRunner(ctx, r.DB)
	_, err = run.ExecContext(ctx,
		`INSERT INTO carts (`+cartColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		c.Email, items, c.PaymentOption, c.CreatedAt.UTC(), c.UpdatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return cartdom.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Save upserts the whole cart row.
func (r *CartRepositoryPG) Save(ctx context.Context, c *cartdom.Cart) error {
	items, err := encodeCartItems(c.Items)
	if err != nil {
		return err
	}
	run := getRunner(ctx, r.DB)
	const q = `
INSERT INTO carts (` + cartColumns + `) VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (email) DO UPDATE SET
  cart_items = EXCLUDED.cart_items,
  payment_option = EXCLUDED.payment_option,
  updated_at = EXCLUDED.updated_at`
	_, err = run.ExecContext(ctx, q, c.Email, items, c.PaymentOption, c.CreatedAt.UTC(), c.UpdatedAt.UTC())
	return err
}

func scanCartRow(row RowScanner) (*cartdom.Cart, error) {
	var (
		c   cartdom.Cart
		raw []byte
	)
	if err := row.Scan(&c.Email, &raw, &c.PaymentOption, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cartdom.ErrNotFound
		}
		return nil, err
	}
	items, err := decodeCartItems(raw)
	if err != nil {
		return nil, err
	}
	c.Items = items
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return &c, nil
}

func encodeCartItems(items []cartdom.Item) ([]byte, error) {
	if items == nil {
		items = []cartdom.Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("cart_repository_pg: encode items: %w", err)
	}
	return b, nil
}

func decodeCartItems(raw []byte) ([]cartdom.Item, error) {
	items := []cartdom.Item{}
	if len(raw) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("cart_repository_pg: decode items: %w", err)
	}
	return items, nil
}
