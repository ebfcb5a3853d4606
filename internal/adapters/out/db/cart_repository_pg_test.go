package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "qkart/internal/domain/cart"
	productdom "qkart/internal/domain/product"
)

func TestCartItemsRoundTripKeepsOrder(t *testing.T) {
	in := []cartdom.Item{
		{Product: productdom.Product{ID: "b", Name: "B", Cost: 2.5}, Quantity: 3},
		{Product: productdom.Product{ID: "a", Name: "A", Cost: 100}, Quantity: 1},
	}

	raw, err := encodeCartItems(in)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"product"`)
	assert.Contains(t, string(raw), `"quantity":3`)

	out, err := decodeCartItems(raw)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestCartItemsNilEncodesAsEmptyArray(t *testing.T) {
	raw, err := encodeCartItems(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	out, err := decodeCartItems(nil)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestIsUniqueViolation(t *testing.T) {
	dup := &pq.Error{Code: "23505"}
	assert.True(t, isUniqueViolation(dup))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", dup)))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}

type rowFunc func(dest ...any) error

func (f rowFunc) Scan(dest ...any) error { return f(dest...) }

func TestScanCartRowNotFound(t *testing.T) {
	_, err := scanCartRow(rowFunc(func(...any) error { return sql.ErrNoRows }))
	assert.ErrorIs(t, err, cartdom.ErrNotFound)
}

func TestGetRunnerPrefersTx(t *testing.T) {
	var db *sql.DB
	assert.Equal(t, Runner(db), getRunner(context.Background(), db))

	tx := &sql.Tx{}
	ctx := ctxWithTx(context.Background(), tx)
	assert.Same(t, tx, getRunner(ctx, db))
}
