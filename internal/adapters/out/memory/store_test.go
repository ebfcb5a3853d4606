package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "qkart/internal/domain/cart"
	productdom "qkart/internal/domain/product"
	userdom "qkart/internal/domain/user"
)

var now = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func seed(t *testing.T) (*Store, *userdom.User) {
	t.Helper()
	s := NewStore(productdom.Product{ID: "p1", Name: "Shoe", Cost: 100})
	u := &userdom.User{ID: "u1", Name: "crio", Email: "crio@example.com", WalletMoney: 300}
	require.NoError(t, s.Users().Create(context.Background(), u))

	c, err := cartdom.NewCart(u.Email, "PAYMENT_OPTION_DEFAULT", now)
	require.NoError(t, err)
	require.NoError(t, c.AddItem(productdom.Product{ID: "p1", Name: "Shoe", Cost: 100}, 2, now))
	require.NoError(t, s.Carts().Create(context.Background(), c))
	return s, u
}

func TestCommitCheckoutWritesBothOnSuccess(t *testing.T) {
	s, u := seed(t)

	gotU, gotC, err := s.CommitCheckout(context.Background(), u.ID, "CRIO@example.com", func(usr *userdom.User, c *cartdom.Cart) error {
		usr.WalletMoney -= 200
		c.Clear(now)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, gotU.WalletMoney)
	assert.Empty(t, gotC.Items)

	stored, err := s.Users().GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, stored.WalletMoney)

	cart, err := s.Carts().GetByEmail(context.Background(), u.Email)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCommitCheckoutLeavesStateOnFailure(t *testing.T) {
	s, u := seed(t)
	boom := errors.New("rejected")

	_, _, err := s.CommitCheckout(context.Background(), u.ID, u.Email, func(usr *userdom.User, c *cartdom.Cart) error {
		usr.WalletMoney = 0
		c.Clear(now)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	stored, _ := s.Users().GetByID(context.Background(), u.ID)
	assert.Equal(t, 300.0, stored.WalletMoney)
	cart, _ := s.Carts().GetByEmail(context.Background(), u.Email)
	assert.Len(t, cart.Items, 1)
}

func TestCommitCheckoutMissingDocuments(t *testing.T) {
	s, u := seed(t)
	noop := func(*userdom.User, *cartdom.Cart) error { return nil }

	_, _, err := s.CommitCheckout(context.Background(), "nobody", u.Email, noop)
	assert.ErrorIs(t, err, userdom.ErrNotFound)

	_, _, err = s.CommitCheckout(context.Background(), u.ID, "other@example.com", noop)
	assert.ErrorIs(t, err, cartdom.ErrNotFound)
}

func TestCartsAreCopiedOnReadAndWrite(t *testing.T) {
	s, u := seed(t)

	c, err := s.Carts().GetByEmail(context.Background(), u.Email)
	require.NoError(t, err)
	c.Items[0].Quantity = 99

	again, err := s.Carts().GetByEmail(context.Background(), u.Email)
	require.NoError(t, err)
	assert.Equal(t, 2, again.Items[0].Quantity)

	assert.ErrorIs(t, s.Carts().Create(context.Background(), again), cartdom.ErrAlreadyExists)
}

func TestUserEmailUniqueness(t *testing.T) {
	s, _ := seed(t)
	err := s.Users().Create(context.Background(), &userdom.User{ID: "u2", Email: "crio@example.com"})
	assert.ErrorIs(t, err, userdom.ErrConflict)
}
