// internal/adapters/out/mongo/checkout_mongo.go
package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	cartdom "qkart/internal/domain/cart"
	userdom "qkart/internal/domain/user"
)

// CheckoutStoreMongo commits a checkout in a multi-document transaction.
// A concurrent checkout on the same user hits a write conflict and
// WithTransaction retries fn on fresh reads.
type CheckoutStoreMongo struct {
	client *mongo.Client
	users  *UserRepositoryMongo
	carts  *CartRepositoryMongo
}

func NewCheckoutStoreMongo(client *mongo.Client, db *mongo.Database) *CheckoutStoreMongo {
	return &CheckoutStoreMongo{
		client: client,
		users:  NewUserRepositoryMongo(db),
		carts:  NewCartRepositoryMongo(db),
	}
}

func (s *CheckoutStoreMongo) CommitCheckout(ctx context.Context, userID, email string, fn cartdom.CheckoutFunc) (*userdom.User, *cartdom.Cart, error) {
	sess, err := s.client.StartSession()
	if err != nil {
		return nil, nil, err
	}
	defer sess.EndSession(ctx)

	type result struct {
		u *userdom.User
		c *cartdom.Cart
	}

	out, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		u, err := s.users.GetByID(sc, userID)
		if err != nil {
			return nil, err
		}
		c, err := s.carts.GetByEmail(sc, email)
		if err != nil {
			return nil, err
		}

		if err := fn(u, c); err != nil {
			return nil, err
		}

		if err := s.users.Save(sc, u); err != nil {
			return nil, err
		}
		if err := s.carts.Save(sc, c); err != nil {
			return nil, err
		}
		return result{u: u, c: c}, nil
	})
	if err != nil {
		return nil, nil, err
	}

	r := out.(result)
	return r.u, r.c, nil
}
