// internal/domain/product/entity.go
package product

import (
	"context"
	"errors"
	"strings"
)

// Product is a catalogue entry. Carts embed a copy taken at add-time.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Cost     float64 `json:"cost"`
	Rating   float64 `json:"rating"`
	Image    string  `json:"image"`
}

var (
	ErrNotFound    = errors.New("product: not found")
	ErrInvalidID   = errors.New("product: invalid id")
	ErrInvalidCost = errors.New("product: invalid cost")
)

// Repository is a read-only port; products are managed outside this service.
type Repository interface {
	// GetByID MUST return ErrNotFound when the product does not exist.
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]Product, error)
}

// Matches reports a case-insensitive hit on name or category.
func (p Product) Matches(text string) bool {
	q := strings.ToLower(strings.TrimSpace(text))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Category), q)
}

func (p Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrInvalidID
	}
	if p.Cost < 0 {
		return ErrInvalidCost
	}
	return nil
}
