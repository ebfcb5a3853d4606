// internal/adapters/out/firestore/checkout_fs.go
package firestore

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartdom "qkart/internal/domain/cart"
	userdom "qkart/internal/domain/user"
)

// CheckoutStoreFS commits a checkout with RunTransaction.
// Firestore retries the function when either document changed under it.
type CheckoutStoreFS struct {
	Client *firestore.Client
}

func NewCheckoutStoreFS(client *firestore.Client) *CheckoutStoreFS {
	return &CheckoutStoreFS{Client: client}
}

func (s *CheckoutStoreFS) CommitCheckout(ctx context.Context, userID, email string, fn cartdom.CheckoutFunc) (*userdom.User, *cartdom.Cart, error) {
	if s == nil || s.Client == nil {
		return nil, nil, errors.New("checkout_fs: firestore client is nil")
	}

	userRef := s.Client.Collection(usersCollection).Doc(userID)
	cartRef := s.Client.Collection(cartsCollection).Doc(userdom.NormalizeEmail(email))

	var (
		outU *userdom.User
		outC *cartdom.Cart
	)

	err := s.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		uSnap, err := tx.Get(userRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return userdom.ErrNotFound
			}
			return err
		}
		cSnap, err := tx.Get(cartRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return cartdom.ErrNotFound
			}
			return err
		}

		u, err := decodeUser(uSnap)
		if err != nil {
			return err
		}
		c, err := decodeCart(cSnap)
		if err != nil {
			return err
		}

		if err := fn(u, c); err != nil {
			return err
		}

		if err := tx.Set(userRef, userDocFromDomain(u)); err != nil {
			return err
		}
		if err := tx.Set(cartRef, cartDocFromDomain(c)); err != nil {
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
