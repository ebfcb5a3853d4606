// internal/adapters/out/firestore/documents_fs.go
package firestore

import (
	"time"

	cartdom "qkart/internal/domain/cart"
	productdom "qkart/internal/domain/product"
	userdom "qkart/internal/domain/user"
)

// Collection names.
const (
	usersCollection      = "users"
	userEmailsCollection = "userEmails"
	cartsCollection      = "carts"
	productsCollection   = "products"
)

// -----------------------------------------
// Firestore DTO
// NOTE: domain structs are not stored directly.
// -----------------------------------------

type userDoc struct {
	Name        string    `firestore:"name"`
	Email       string    `firestore:"email"`
	Password    string    `firestore:"password"`
	WalletMoney float64   `firestore:"walletMoney"`
	Address     string    `firestore:"address"`
	CreatedAt   time.Time `firestore:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt"`
}

// userEmailDoc reserves an email: docId = normalised email.
type userEmailDoc struct {
	UserID string `firestore:"userId"`
}

type productDoc struct {
	Name     string  `firestore:"name"`
	Category string  `firestore:"category"`
	Cost     float64 `firestore:"cost"`
	Rating   float64 `firestore:"rating"`
	Image    string  `firestore:"image"`
}

type cartItemDoc struct {
	Product  cartProductDoc `firestore:"product"`
	Quantity int            `firestore:"quantity"`
}

// cartProductDoc is a product snapshot; it carries its id since it is not a document.
type cartProductDoc struct {
	ID       string  `firestore:"id"`
	Name     string  `firestore:"name"`
	Category string  `firestore:"category"`
	Cost     float64 `firestore:"cost"`
	Rating   float64 `firestore:"rating"`
	Image    string  `firestore:"image"`
}

type cartDoc struct {
	Email         string        `firestore:"email"`
	CartItems     []cartItemDoc `firestore:"cartItems"`
	PaymentOption string        `firestore:"paymentOption"`
	CreatedAt     time.Time     `firestore:"createdAt"`
	UpdatedAt     time.Time     `firestore:"updatedAt"`
}

func userDocFromDomain(u *userdom.User) userDoc {
	return userDoc{
		Name:        u.Name,
		Email:       userdom.NormalizeEmail(u.Email),
		Password:    u.Password,
		WalletMoney: u.WalletMoney,
		Address:     u.Address,
		CreatedAt:   u.CreatedAt.UTC(),
		UpdatedAt:   u.UpdatedAt.UTC(),
	}
}

// toDomain: docId is the source of truth for id.
func (d userDoc) toDomain(id string) *userdom.User {
	return &userdom.User{
		ID:          id,
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
	return productDoc{Name: p.Name, Category: p.Category, Cost: p.Cost, Rating: p.Rating, Image: p.Image}
}

func (d productDoc) toDomain(id string) productdom.Product {
	return productdom.Product{ID: id, Name: d.Name, Category: d.Category, Cost: d.Cost, Rating: d.Rating, Image: d.Image}
}

func cartDocFromDomain(c *cartdom.Cart) cartDoc {
	items := make([]cartItemDoc, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, cartItemDoc{
			Product:  cartProductDoc(it.Product),
			Quantity: it.Quantity,
		})
	}
	return cartDoc{
		Email:         c.Email,
		CartItems:     items,
		PaymentOption: c.PaymentOption,
		CreatedAt:     c.CreatedAt.UTC(),
		UpdatedAt:     c.UpdatedAt.UTC(),
	}
}

func (d cartDoc) toDomain(docID string) *cartdom.Cart {
	items := make([]cartdom.Item, 0, len(d.CartItems))
	for _, it := range d.CartItems {
		items = append(items, cartdom.Item{
			Product:  productdom.Product(it.Product),
			Quantity: it.Quantity,
		})
	}
	email := d.Email
	if email == "" {
		email = docID
	}
	return &cartdom.Cart{
		Email:         email,
		Items:         items,
		PaymentOption: d.PaymentOption,
		CreatedAt:     d.CreatedAt.UTC(),
		UpdatedAt:     d.UpdatedAt.UTC(),
	}
}
