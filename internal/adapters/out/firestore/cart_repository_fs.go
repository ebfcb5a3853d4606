// internal/adapters/out/firestore/cart_repository_fs.go
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

// CartRepositoryFS implements cart.Repository using Firestore.
//
// Collection design:
//   - collection: carts
//   - docId: owner email (docId is the source of truth)
//   - fields: email, cartItems[{product, quantity}], paymentOption, createdAt, updatedAt
type CartRepositoryFS struct {
	Client *firestore.Client
}

func NewCartRepositoryFS(client *firestore.Client) *CartRepositoryFS {
	return &CartRepositoryFS{Client: client}
}

func (r *CartRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(cartsCollection)
}

func (r *CartRepositoryFS) GetByEmail(ctx context.Context, email string) (*cartdom.Cart, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("cart_repository_fs: firestore client is nil")
	}
	e := userdom.NormalizeEmail(email)
	if e == "" {
		return nil, cartdom.ErrNotFound
	}

	snap, err := r.col().Doc(e).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, cartdom.ErrNotFound
		}
		return nil, err
	}
	return decodeCart(snap)
}

// Create fails with ErrAlreadyExists when the email already owns a cart.
func (r *CartRepositoryFS) Create(ctx context.Context, c *cartdom.Cart) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}
	if c == nil || c.Email == "" {
		return errors.New("cart_repository_fs: Create requires cart.Email as docId")
	}

	_, err := r.col().Doc(c.Email).Create(ctx, cartDocFromDomain(c))
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return cartdom.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Save overwrites the full doc (simple & predictable).
func (r *CartRepositoryFS) Save(ctx context.Context, c *cartdom.Cart) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}
	if c == nil || c.Email == "" {
		return errors.New("cart_repository_fs: Save requires cart.Email as docId")
	}
	_, err := r.col().Doc(c.Email).Set(ctx, cartDocFromDomain(c))
	return err
}

func decodeCart(snap *firestore.DocumentSnapshot) (*cartdom.Cart, error) {
	var d cartDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, err
	}
	return d.toDomain(snap.Ref.ID), nil
}
