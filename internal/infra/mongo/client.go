// internal/infra/mongo/client.go
package mongoinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	UsersCollection    = "users"
	CartsCollection    = "carts"
	ProductsCollection = "products"
)

// ClientWrapper owns the Mongo client and the selected database.
type ClientWrapper struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewClient connects, pings the primary and ensures indexes.
// Checkout needs multi-document transactions, so the deployment must be a replica set.
func NewClient(ctx context.Context, uri, database string, log zerolog.Logger) (*ClientWrapper, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect mongo: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	cw := &ClientWrapper{Client: client, DB: client.Database(database)}
	if err := cw.EnsureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Info().Str("component", "mongo").Str("database", database).Msg("mongo connected")
	return cw, nil
}

// EnsureIndexes creates the unique email indexes. Idempotent.
func (cw *ClientWrapper) EnsureIndexes(ctx context.Context) error {
	_, err := cw.DB.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_unique"),
	})
	if err != nil {
		return fmt.Errorf("mongo: users email index: %w", err)
	}
	return nil
}

func (cw *ClientWrapper) Close() error {
	if cw == nil || cw.Client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return cw.Client.Disconnect(ctx)
}
