// internal/adapters/out/db/checkout_pg.go
package db

import (
	"context"
	"database/sql"

	cartdom "qkart/internal/domain/cart"
	userdom "qkart/internal/domain/user"
)

// CheckoutStorePG locks the user row and the cart row with FOR UPDATE,
// so concurrent checkouts for one user serialize on the database.
type CheckoutStorePG struct {
	DB    *sql.DB
	users *UserRepositoryPG
	carts *CartRepositoryPG
}

func NewCheckoutStorePG(db *sql.DB) *CheckoutStorePG {
	return &CheckoutStorePG{
		DB:    db,
		users: NewUserRepositoryPG(db),
		carts: NewCartRepositoryPG(db),
	}
}

func (s *CheckoutStorePG) CommitCheckout(ctx context.Context, userID, email string, fn cartdom.CheckoutFunc) (*userdom.User, *cartdom.Cart, error) {
	var (
		outU *userdom.User
		outC *cartdom.Cart
	)

	err := withTx(ctx, s.DB, func(ctx context.Context) error {
		run := getRunner(ctx, s.DB)

		u, err := scanUserRow(run.QueryRowContext(ctx,
			`SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, userID))
		if err != nil {
			return err
		}
		c, err := scanCartRow(run.QueryRowContext(ctx,
			`SELECT `+cartColumns+` FROM carts WHERE email = $1 FOR UPDATE`, userdom.NormalizeEmail(email)))
		if err != nil {
			return err
		}

		if err := fn(u, c); err != nil {
			return err
		}

		if err := s.users.Save(ctx, u); err != nil {
			return err
		}
		if err := s.carts.Save(ctx, c); err != nil {
			return err
		}
		outU, outC = u, c
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return outU, outC, nil
}
