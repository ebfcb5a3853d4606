package firestore

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "qkart/internal/domain/cart"
	productdom "qkart/internal/domain/product"
	userdom "qkart/internal/domain/user"
)

var emulatorNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

// emulatorClient connects to the emulator named by FIRESTORE_EMULATOR_HOST.
func emulatorClient(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	client, err := firestore.NewClient(context.Background(), "qkart-test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// seedCheckout writes a user with 300 in the wallet and a cart holding 2 x 100.
func seedCheckout(t *testing.T, client *firestore.Client) *userdom.User {
	t.Helper()
	ctx := context.Background()
	id := uuid.NewString()

	u, err := userdom.New(id, "crio", id+"@example.com", "$2a$10$hash", 300, "ADDRESS_NOT_SET", emulatorNow)
	require.NoError(t, err)
	require.NoError(t, NewUserRepositoryFS(client).Create(ctx, &u))

	c, err := cartdom.NewCart(u.Email, "PAYMENT_OPTION_DEFAULT", emulatorNow)
	require.NoError(t, err)
	require.NoError(t, c.AddItem(productdom.Product{ID: "p1", Name: "Shoe", Cost: 100}, 2, emulatorNow))
	require.NoError(t, NewCartRepositoryFS(client).Create(ctx, c))
	return &u
}

func TestCheckoutFSWritesBothOnSuccess(t *testing.T) {
	client := emulatorClient(t)
	u := seedCheckout(t, client)
	ctx := context.Background()

	gotU, gotC, err := NewCheckoutStoreFS(client).CommitCheckout(ctx, u.ID, u.Email, func(usr *userdom.User, c *cartdom.Cart) error {
		usr.WalletMoney -= 200
		c.Clear(emulatorNow)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, gotU.WalletMoney)
	assert.Empty(t, gotC.Items)

	stored, err := NewUserRepositoryFS(client).GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, stored.WalletMoney)

	cart, err := NewCartRepositoryFS(client).GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCheckoutFSLeavesStateOnFailure(t *testing.T) {
	client := emulatorClient(t)
	u := seedCheckout(t, client)
	ctx := context.Background()
	boom := errors.New("rejected")

	_, _, err := NewCheckoutStoreFS(client).CommitCheckout(ctx, u.ID, u.Email, func(usr *userdom.User, c *cartdom.Cart) error {
		usr.WalletMoney = 0
		c.Clear(emulatorNow)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	stored, err := NewUserRepositoryFS(client).GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 300.0, stored.WalletMoney)

	cart, err := NewCartRepositoryFS(client).GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestCheckoutFSMissingDocuments(t *testing.T) {
	client := emulatorClient(t)
	u := seedCheckout(t, client)
	store := NewCheckoutStoreFS(client)
	noop := func(*userdom.User, *cartdom.Cart) error { return nil }

	_, _, err := store.CommitCheckout(context.Background(), uuid.NewString(), u.Email, noop)
	assert.ErrorIs(t, err, userdom.ErrNotFound)

	_, _, err = store.CommitCheckout(context.Background(), u.ID, uuid.NewString()+"@example.com", noop)
	assert.ErrorIs(t, err, cartdom.ErrNotFound)
}
