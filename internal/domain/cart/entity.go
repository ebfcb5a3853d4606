// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	productdom "qkart/internal/domain/product"
)

var (
	ErrInvalidCart     = errors.New("cart: invalid")
	ErrInvalidQuantity = errors.New("cart: quantity must be a positive integer")
	ErrItemExists      = errors.New("cart: product already in cart")
	ErrItemNotInCart   = errors.New("cart: product not in cart")
)

// Item is one line of a cart.
// Product is a snapshot copied when the item was added, not a live reference.
type Item struct {
	Product  productdom.Product `json:"product"`
	Quantity int                `json:"quantity"`
}

// Cart is the per-user cart document.
//   - Email is the owning user's email (one cart per email).
//   - Items keep insertion order; a product id appears at most once.
//   - The cart is emptied on checkout, never deleted.
type Cart struct {
	Email         string    `json:"email"`
	Items         []Item    `json:"cartItems"`
	PaymentOption string    `json:"paymentOption"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewCart creates an empty cart for email.
func NewCart(email, paymentOption string, now time.Time) (*Cart, error) {
	now = now.UTC()
	c := &Cart{
		Email:         strings.ToLower(strings.TrimSpace(email)),
		Items:         []Item{},
		PaymentOption: strings.TrimSpace(paymentOption),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// IndexOf returns the position of productID, or -1.
func (c *Cart) IndexOf(productID string) int {
	if c == nil {
		return -1
	}
	return findItemIndex(c.Items, strings.TrimSpace(productID))
}

// AddItem appends a snapshot of p.
// A product already present is rejected, never merged.
func (c *Cart) AddItem(p productdom.Product, qty int, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if c.IndexOf(p.ID) >= 0 {
		return ErrItemExists
	}
	if c.Items == nil {
		c.Items = []Item{}
	}
	c.Items = append(c.Items, Item{Product: p, Quantity: qty})
	c.touch(now)
	return c.validate()
}

// SetQuantity overwrites the quantity of an existing line in place.
func (c *Cart) SetQuantity(productID string, qty int, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	idx := c.IndexOf(productID)
	if idx < 0 {
		return ErrItemNotInCart
	}
	c.Items[idx].Quantity = qty
	c.touch(now)
	return c.validate()
}

// RemoveItem drops the line for productID, preserving the order of the rest.
func (c *Cart) RemoveItem(productID string, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	idx := c.IndexOf(productID)
	if idx < 0 {
		return ErrItemNotInCart
	}
	c.Items = removeIndex(c.Items, idx)
	c.touch(now)
	return c.validate()
}

// Total is Σ product.cost * quantity.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	if c == nil {
		return total
	}
	for _, it := range c.Items {
		line := decimal.NewFromFloat(it.Product.Cost).Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(line)
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// Clear empties the cart and returns the removed items.
func (c *Cart) Clear(now time.Time) []Item {
	if c == nil {
		return nil
	}
	snap := cloneItems(c.Items)
	c.Items = []Item{}
	c.touch(now)
	return snap
}

// touch never moves UpdatedAt before CreatedAt; instances' clocks may disagree.
func (c *Cart) touch(now time.Time) {
	now = now.UTC()
	if now.Before(c.CreatedAt) {
		now = c.CreatedAt
	}
	c.UpdatedAt = now
}

func (c *Cart) validate() error {
	if c == nil {
		return ErrInvalidCart
	}
	if c.Email == "" {
		return ErrInvalidCart
	}
	if c.CreatedAt.IsZero() || c.UpdatedAt.IsZero() || c.UpdatedAt.Before(c.CreatedAt) {
		return ErrInvalidCart
	}

	seen := make(map[string]struct{}, len(c.Items))
	for _, it := range c.Items {
		pid := strings.TrimSpace(it.Product.ID)
		if pid == "" || it.Quantity <= 0 {
			return ErrInvalidCart
		}
		if _, dup := seen[pid]; dup {
			return ErrInvalidCart
		}
		seen[pid] = struct{}{}
	}
	return nil
}

// ----------------------------
// Helpers
// ----------------------------

func findItemIndex(items []Item, productID string) int {
	if productID == "" {
		return -1
	}
	for i := range items {
		if items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

func removeIndex(items []Item, idx int) []Item {
	if idx < 0 || idx >= len(items) {
		return items
	}
	out := make([]Item, 0, len(items)-1)
	out = append(out, items[:idx]...)
	return append(out, items[idx+1:]...)
}

func cloneItems(src []Item) []Item {
	if len(src) == 0 {
		return []Item{}
	}
	cp := make([]Item, len(src))
	copy(cp, src)
	return cp
}
