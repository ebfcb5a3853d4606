// internal/adapters/out/db/user_repository_pg.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	userdom "qkart/internal/domain/user"
)

type UserRepositoryPG struct {
	DB *sql.DB
}

func NewUserRepositoryPG(db *sql.DB) *UserRepositoryPG {
	return &UserRepositoryPG{DB: db}
}

const userColumns = `id, name, email, password, wallet_money, address, created_at, updated_at`

func (r *UserRepositoryPG) GetByID(ctx context.Context, id string) (*userdom.User, error) {
	run := getRunner(ctx, r.DB)
	row := run.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, strings.TrimSpace(id))
	return scanUserRow(row)
}

func (r *UserRepositoryPG) GetByEmail(ctx context.Context, email string) (*userdom.User, error) {
	run := getRunner(ctx, r.DB)
	row := run.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, userdom.NormalizeEmail(email))
	return scanUserRow(row)
}

func (r *UserRepositoryPG) GetAddressByID(ctx context.Context, id string) (*userdom.AddressView, error) {
	run := getRunner(ctx, r.DB)
	var v userdom.AddressView
	err := run.QueryRowContext(ctx, `SELECT id, email, address FROM users WHERE id = $1`, strings.TrimSpace(id)).
		Scan(&v.ID, &v.Email, &v.Address)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, userdom.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// Create relies on the UNIQUE(email) constraint for uniqueness.
func (r *UserRepositoryPG) Create(ctx context.Context, u *userdom.User) error {
	run := getRunner(ctx, r.DB)
	const q = `
INSERT INTO users (` + userColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := run.ExecContext(ctx, q,
		u.ID, u.Name, userdom.NormalizeEmail(u.Email), u.Password,
		u.WalletMoney, u.Address, u.CreatedAt.UTC(), u.UpdatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return userdom.ErrConflict
		}
		return err
	}
	return nil
}

func (r *UserRepositoryPG) Save(ctx context.Context, u *userdom.User) error {
	run := getRunner(ctx, r.DB)
	const q = `
UPDATE users SET
  name = $2, email = $3, password = $4, wallet_money = $5, address = $6, updated_at = $7
WHERE id = $1`
	res, err := run.ExecContext(ctx, q,
		u.ID, u.Name, userdom.NormalizeEmail(u.Email), u.Password,
		u.WalletMoney, u.Address, u.UpdatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return userdom.ErrConflict
		}
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return userdom.ErrNotFound
	}
	return nil
}

func scanUserRow(row RowScanner) (*userdom.User, error) {
	var u userdom.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.WalletMoney, &u.Address, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, userdom.ErrNotFound
		}
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return &u, nil
}
