// internal/adapters/out/db/product_repository_pg.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	productdom "qkart/internal/domain/product"
)

type ProductRepositoryPG struct {
	DB *sql.DB
}

func NewProductRepositoryPG(db *sql.DB) *ProductRepositoryPG {
	return &ProductRepositoryPG{DB: db}
}

const productColumns = `id, name, category, cost, rating, image`

func (r *ProductRepositoryPG) GetByID(ctx context.Context, id string) (*productdom.Product, error) {
	run := getRunner(ctx, r.DB)
	row := run.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, strings.TrimSpace(id))
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, productdom.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepositoryPG) List(ctx context.Context) ([]productdom.Product, error) {
	run := getRunner(ctx, r.DB)
	rows, err := run.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []productdom.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProduct(row RowScanner) (productdom.Product, error) {
	var p productdom.Product
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Cost, &p.Rating, &p.Image)
	return p, err
}
