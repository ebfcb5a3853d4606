package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qkart/internal/adapters/out/memory"
	"qkart/internal/application/usecase"
	"qkart/internal/domain/common"
	userdom "qkart/internal/domain/user"
)

func newCartFixture(t *testing.T) (*memory.Store, *usecase.CartUsecase, *userdom.User) {
	t.Helper()
	store := newStore()
	users := usecase.NewUserUsecaseWithClock(store.Users(), testDefaults, testClock)
	carts := usecase.NewCartUsecaseWithClock(store.Carts(), store.Products(), testDefaults, testClock)
	return store, carts, registerUser(t, users, "cart@example.com", false)
}

func TestCartGetByUserWithoutCart(t *testing.T) {
	_, carts, u := newCartFixture(t)

	_, err := carts.GetByUser(context.Background(), u)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, "User does not have a cart", common.MessageOf(err))
}

func TestCartAddCreatesCartLazily(t *testing.T) {
	_, carts, u := newCartFixture(t)
	ctx := context.Background()

	c, err := carts.AddProduct(ctx, u, "p100", 2)
	require.NoError(t, err)

	assert.Equal(t, u.Email, c.Email)
	assert.Equal(t, "PAYMENT_OPTION_DEFAULT", c.PaymentOption)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "UNIFACTOR Mens Running Shoes", c.Items[0].Product.Name)
	assert.Equal(t, 2, c.Items[0].Quantity)

	got, err := carts.GetByUser(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, c.Items, got.Items)
}

func TestCartAddSameProductTwice(t *testing.T) {
	_, carts, u := newCartFixture(t)
	ctx := context.Background()

	_, err := carts.AddProduct(ctx, u, "p100", 1)
	require.NoError(t, err)

	_, err = carts.AddProduct(ctx, u, "p100", 3)
	assert.ErrorIs(t, err, common.ErrBadRequest)

	c, err := carts.GetByUser(ctx, u)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 1, c.Items[0].Quantity)
}

func TestCartAddUnknownProduct(t *testing.T) {
	_, carts, u := newCartFixture(t)

	_, err := carts.AddProduct(context.Background(), u, "ghost", 1)
	assert.ErrorIs(t, err, common.ErrBadRequest)
	assert.Equal(t, "Product doesn't exist in database", common.MessageOf(err))
}

func TestCartUpdateProduct(t *testing.T) {
	_, carts, u := newCartFixture(t)
	ctx := context.Background()

	_, err := carts.UpdateProduct(ctx, u, "p100", 2)
	assert.ErrorIs(t, err, common.ErrBadRequest, "no cart yet")

	_, err = carts.AddProduct(ctx, u, "p100", 1)
	require.NoError(t, err)

	_, err = carts.UpdateProduct(ctx, u, "p50", 2)
	assert.Equal(t, "Product not in cart", common.MessageOf(err))

	_, err = carts.UpdateProduct(ctx, u, "ghost", 2)
	assert.Equal(t, "Product doesn't exist in database", common.MessageOf(err))

	c, err := carts.UpdateProduct(ctx, u, "p100", 9)
	require.NoError(t, err)
	assert.Equal(t, 9, c.Items[0].Quantity)
}

func TestCartDeleteAbsentProductLeavesItems(t *testing.T) {
	_, carts, u := newCartFixture(t)
	ctx := context.Background()

	_, err := carts.AddProduct(ctx, u, "p100", 1)
	require.NoError(t, err)
	_, err = carts.AddProduct(ctx, u, "p50", 1)
	require.NoError(t, err)

	err = carts.DeleteProduct(ctx, u, "p7")
	assert.ErrorIs(t, err, common.ErrBadRequest)

	c, err := carts.GetByUser(ctx, u)
	require.NoError(t, err)
	assert.Len(t, c.Items, 2)

	require.NoError(t, carts.DeleteProduct(ctx, u, "p100"))
	c, err = carts.GetByUser(ctx, u)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "p50", c.Items[0].Product.ID)
}

func TestCartDeleteWithoutCart(t *testing.T) {
	_, carts, u := newCartFixture(t)

	err := carts.DeleteProduct(context.Background(), u, "p100")
	assert.ErrorIs(t, err, common.ErrBadRequest)
}

func TestCartMutationFromInstanceWithLaggingClock(t *testing.T) {
	store := newStore()
	users := usecase.NewUserUsecaseWithClock(store.Users(), testDefaults, testClock)
	u := registerUser(t, users, "skew@example.com", false)

	ahead := usecase.NewCartUsecaseWithClock(store.Carts(), store.Products(), testDefaults, testClock)
	behind := usecase.NewCartUsecaseWithClock(store.Carts(), store.Products(), testDefaults,
		fixedClock{t: testClock.t.Add(-50 * time.Millisecond)})
	ctx := context.Background()

	_, err := ahead.AddProduct(ctx, u, "p100", 1)
	require.NoError(t, err)

	c, err := behind.AddProduct(ctx, u, "p50", 1)
	require.NoError(t, err)
	assert.Len(t, c.Items, 2)

	_, err = behind.UpdateProduct(ctx, u, "p100", 2)
	require.NoError(t, err)
	require.NoError(t, behind.DeleteProduct(ctx, u, "p50"))
}
