// internal/domain/cart/repository_port.go
package cart

import (
	"context"
	"errors"

	userdom "qkart/internal/domain/user"
)

// Repository is a persistence port for Cart.
//
// Storage (Firestore):
//   - collection: carts
//   - docId: owner email
//   - fields: email, cartItems[], paymentOption, createdAt, updatedAt
type Repository interface {
	// GetByEmail MUST return ErrNotFound when the user has no cart.
	GetByEmail(ctx context.Context, email string) (*Cart, error)

	// Create MUST return ErrAlreadyExists when a cart exists for the email.
	Create(ctx context.Context, c *Cart) error

	// Save overwrites the cart document.
	Save(ctx context.Context, c *Cart) error
}

// CheckoutFunc mutates u and c in memory. Returning an error aborts the commit.
type CheckoutFunc func(u *userdom.User, c *Cart) error

// CheckoutStore persists a checkout as one atomic unit.
//
// Implementations read the user (by id) and the cart (by email) inside a
// transaction, call fn, and write both documents only if fn returns nil.
// fn may be invoked more than once when the store retries on contention,
// so it must only touch u, c and values the caller discards on error.
type CheckoutStore interface {
	CommitCheckout(ctx context.Context, userID, email string, fn CheckoutFunc) (*userdom.User, *Cart, error)
}

var (
	ErrNotFound      = errors.New("cart: not found")
	ErrAlreadyExists = errors.New("cart: already exists")
)
