// internal/adapters/out/mongo/repositories.go
package mongo

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	cartdom "qkart/internal/domain/cart"
	productdom "qkart/internal/domain/product"
	userdom "qkart/internal/domain/user"
	mongoinfra "qkart/internal/infra/mongo"
)

// ========================
// Users
// ========================

type UserRepositoryMongo struct {
	col *mongo.Collection
}

func NewUserRepositoryMongo(db *mongo.Database) *UserRepositoryMongo {
	return &UserRepositoryMongo{col: db.Collection(mongoinfra.UsersCollection)}
}

func (r *UserRepositoryMongo) GetByID(ctx context.Context, id string) (*userdom.User, error) {
	return r.findOne(ctx, bson.M{"_id": strings.TrimSpace(id)})
}

func (r *UserRepositoryMongo) GetByEmail(ctx context.Context, email string) (*userdom.User, error) {
	return r.findOne(ctx, bson.M{"email": userdom.NormalizeEmail(email)})
}

func (r *UserRepositoryMongo) GetAddressByID(ctx context.Context, id string) (*userdom.AddressView, error) {
	var d struct {
		ID      string `bson:"_id"`
		Email   string `bson:"email"`
		Address string `bson:"address"`
	}
	opts := options.FindOne().SetProjection(bson.M{"email": 1, "address": 1})
	err := r.col.FindOne(ctx, bson.M{"_id": strings.TrimSpace(id)}, opts).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, userdom.ErrNotFound
		}
		return nil, err
	}
	return &userdom.AddressView{ID: d.ID, Email: d.Email, Address: d.Address}, nil
}

// Create relies on the unique email index.
func (r *UserRepositoryMongo) Create(ctx context.Context, u *userdom.User) error {
	if _, err := r.col.InsertOne(ctx, userDocFromDomain(u)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return userdom.ErrConflict
		}
		return err
	}
	return nil
}

func (r *UserRepositoryMongo) Save(ctx context.Context, u *userdom.User) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": u.ID}, userDocFromDomain(u))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return userdom.ErrConflict
		}
		return err
	}
	if res.MatchedCount == 0 {
		return userdom.ErrNotFound
	}
	return nil
}

func (r *UserRepositoryMongo) findOne(ctx context.Context, filter bson.M) (*userdom.User, error) {
	var d userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, userdom.ErrNotFound
		}
		return nil, err
	}
	return d.toDomain(), nil
}

// ========================
// Carts
// ========================

type CartRepositoryMongo struct {
	col *mongo.Collection
}

func NewCartRepositoryMongo(db *mongo.Database) *CartRepositoryMongo {
	return &CartRepositoryMongo{col: db.Collection(mongoinfra.CartsCollection)}
}

func (r *CartRepositoryMongo) GetByEmail(ctx context.Context, email string) (*cartdom.Cart, error) {
	var d cartDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": userdom.NormalizeEmail(email)}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cartdom.ErrNotFound
		}
		return nil, err
	}
	return d.toDomain(), nil
}

func (r *CartRepositoryMongo) Create(ctx context.Context, c *cartdom.Cart) error {
	if _, err := r.col.InsertOne(ctx, cartDocFromDomain(c)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return cartdom.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *CartRepositoryMongo) Save(ctx context.Context, c *cartdom.Cart) error {
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": c.Email}, cartDocFromDomain(c), options.Replace().SetUpsert(true))
	return err
}

// ========================
// Products
// ========================

type ProductRepositoryMongo struct {
	col *mongo.Collection
}

func NewProductRepositoryMongo(db *mongo.Database) *ProductRepositoryMongo {
	return &ProductRepositoryMongo{col: db.Collection(mongoinfra.ProductsCollection)}
}

func (r *ProductRepositoryMongo) GetByID(ctx context.Context, id string) (*productdom.Product, error) {
	var d productDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": strings.TrimSpace(id)}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, productdom.ErrNotFound
		}
		return nil, err
	}
	p := d.toDomain()
	return &p, nil
}

func (r *ProductRepositoryMongo) List(ctx context.Context) ([]productdom.Product, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []productdom.Product{}
	for cur.Next(ctx) {
		var d productDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toDomain())
	}
	return out, cur.Err()
}
