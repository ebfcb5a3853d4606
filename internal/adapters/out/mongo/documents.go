// internal/adapters/out/mongo/documents.go
package mongo

import (
	"time"

	cartdom "qkart/internal/domain/cart"
	productdom "qkart/internal/domain/product"
	userdom "qkart/internal/domain/user"
)

// Mongo DTOs. Domain structs are never stored directly.

type userDoc struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Email       string    `bson:"email"`
	Password    string    `bson:"password"`
	WalletMoney float64   `bson:"walletMoney"`
	Address     string    `bson:"address"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

type productDoc struct {
	ID       string  `bson:"_id"`
	Name     string  `bson:"name"`
	Category string  `bson:"category"`
	Cost     float64 `bson:"cost"`
	Rating   float64 `bson:"rating"`
	Image    string  `bson:"image"`
}

type cartItemDoc struct {
	Product  productDoc `bson:"product"`
	Quantity int        `bson:"quantity"`
}

// cartDoc uses the owner email as _id.
type cartDoc struct {
	Email         string        `bson:"_id"`
	CartItems     []cartItemDoc `bson:"cartItems"`
	PaymentOption string        `bson:"paymentOption"`
	CreatedAt     time.Time     `bson:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt"`
}

func userDocFromDomain(u *userdom.User) userDoc {
	return userDoc{
		ID:          u.ID,
		Name:        u.Name,
		Email:       userdom.NormalizeEmail(u.Email),
		Password:    u.Password,
		WalletMoney: u.WalletMoney,
		Address:     u.Address,
		CreatedAt:   u.CreatedAt.UTC(),
		UpdatedAt:   u.UpdatedAt.UTC(),
	}
}

func (d userDoc) toDomain() *userdom.User {
	return &userdom.User{
		ID:          d.ID,
		Name:        d.Name,
		Email:       d.Email,
		Password:    d.Password,
		WalletMoney: d.WalletMoney,
		Address:     d.Address,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

func productDocFromDomain(p productdom.Product) productDoc {
	return productDoc(p)
}

func (d productDoc) toDomain() productdom.Product {
	return productdom.Product(d)
}

func cartDocFromDomain(c *cartdom.Cart) cartDoc {
	items := make([]cartItemDoc, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, cartItemDoc{Product: productDocFromDomain(it.Product), Quantity: it.Quantity})
	}
	return cartDoc{
		Email:         c.Email,
		CartItems:     items,
		PaymentOption: c.PaymentOption,
		CreatedAt:     c.CreatedAt.UTC(),
		UpdatedAt:     c.UpdatedAt.UTC(),
	}
}

func (d cartDoc) toDomain() *cartdom.Cart {
	items := make([]cartdom.Item, 0, len(d.CartItems))
	for _, it := range d.CartItems {
		items = append(items, cartdom.Item{Product: it.Product.toDomain(), Quantity: it.Quantity})
	}
	return &cartdom.Cart{
		Email:         d.Email,
		Items:         items,
		PaymentOption: d.PaymentOption,
		CreatedAt:     d.CreatedAt.UTC(),
		UpdatedAt:     d.UpdatedAt.UTC(),
	}
}
