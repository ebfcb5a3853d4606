// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"

	cartdom "qkart/internal/domain/cart"
	"qkart/internal/domain/common"
	productdom "qkart/internal/domain/product"
	userdom "qkart/internal/domain/user"
)

// Client-facing cart messages.
const (
	msgNoCart           = "User does not have a cart"
	msgNoCartForUpdate  = "User does not have a cart. Use POST to create cart and add a product"
	msgProductInCart    = "Product already in cart. Use the cart sidebar to update or remove product from cart"
	msgProductNotInDB   = "Product doesn't exist in database"
	msgProductNotInCart = "Product not in cart"
	msgCartCreateFailed = "User cart Creation failed."
	msgInvalidQuantity  = "\"quantity\" must be a positive integer"
)

// CartUsecase coordinates cart item operations for the authenticated user.
// Item mutations are last-writer-wins; checkout is handled by CheckoutUsecase.
type CartUsecase struct {
	carts    cartdom.Repository
	products productdom.Repository
	defaults Defaults
	clock    Clock
}

func NewCartUsecase(carts cartdom.Repository, products productdom.Repository, defaults Defaults) *CartUsecase {
	return NewCartUsecaseWithClock(carts, products, defaults, nil)
}

// NewCartUsecaseWithClock is useful for tests.
func NewCartUsecaseWithClock(carts cartdom.Repository, products productdom.Repository, defaults Defaults, clock Clock) *CartUsecase {
	return &CartUsecase{
		carts:    carts,
		products: products,
		defaults: defaults,
		clock:    clockOrSystem(clock),
	}
}

// GetByUser returns the caller's cart, NotFound when it was never created.
func (uc *CartUsecase) GetByUser(ctx context.Context, u *userdom.User) (*cartdom.Cart, error) {
	c, err := uc.load(ctx, u)
	if err != nil {
		if errors.Is(err, cartdom.ErrNotFound) {
			return nil, common.NotFound(msgNoCart)
		}
		return nil, err
	}
	return c, nil
}

// AddProduct appends a product snapshot, creating the cart on first use.
func (uc *CartUsecase) AddProduct(ctx context.Context, u *userdom.User, productID string, qty int) (*cartdom.Cart, error) {
	pid := strings.TrimSpace(productID)
	if pid == "" {
		return nil, common.BadRequest("\"productId\" is required")
	}
	if qty <= 0 {
		return nil, common.BadRequest(msgInvalidQuantity)
	}

	c, err := uc.loadOrCreate(ctx, u)
	if err != nil {
		return nil, err
	}

	if c.IndexOf(pid) >= 0 {
		return nil, common.BadRequest(msgProductInCart)
	}

	p, err := uc.lookupProduct(ctx, pid)
	if err != nil {
		return nil, err
	}

	if err := c.AddItem(*p, qty, uc.clock.Now()); err != nil {
		return nil, mapCartErr(err)
	}
	if err := uc.carts.Save(ctx, c); err != nil {
		return nil, common.Internal("cart save failed", err)
	}
	return c, nil
}

// UpdateProduct overwrites the quantity of a product already in the cart.
func (uc *CartUsecase) UpdateProduct(ctx context.Context, u *userdom.User, productID string, qty int) (*cartdom.Cart, error) {
	pid := strings.TrimSpace(productID)
	if pid == "" {
		return nil, common.BadRequest("\"productId\" is required")
	}
	if qty <= 0 {
		return nil, common.BadRequest(msgInvalidQuantity)
	}

	c, err := uc.load(ctx, u)
	if err != nil {
		if errors.Is(err, cartdom.ErrNotFound) {
			return nil, common.BadRequest(msgNoCartForUpdate)
		}
		return nil, err
	}

	if _, err := uc.lookupProduct(ctx, pid); err != nil {
		return nil, err
	}

	if err := c.SetQuantity(pid, qty, uc.clock.Now()); err != nil {
		return nil, mapCartErr(err)
	}
	if err := uc.carts.Save(ctx, c); err != nil {
		return nil, common.Internal("cart save failed", err)
	}
	return c, nil
}

// DeleteProduct removes a product from the cart.
func (uc *CartUsecase) DeleteProduct(ctx context.Context, u *userdom.User, productID string) error {
	pid := strings.TrimSpace(productID)
	if pid == "" {
		return common.BadRequest("\"productId\" is required")
	}

	c, err := uc.load(ctx, u)
	if err != nil {
		if errors.Is(err, cartdom.ErrNotFound) {
			return common.BadRequest(msgNoCart)
		}
		return err
	}

	if err := c.RemoveItem(pid, uc.clock.Now()); err != nil {
		return mapCartErr(err)
	}
	if err := uc.carts.Save(ctx, c); err != nil {
		return common.Internal("cart save failed", err)
	}
	return nil
}

// ----------------------------
// Helpers
// ----------------------------

// load returns cartdom.ErrNotFound untouched so callers can pick the status.
func (uc *CartUsecase) load(ctx context.Context, u *userdom.User) (*cartdom.Cart, error) {
	if u == nil || strings.TrimSpace(u.Email) == "" {
		return nil, common.Unauthorized("Please authenticate")
	}
	c, err := uc.carts.GetByEmail(ctx, userdom.NormalizeEmail(u.Email))
	if err != nil {
		if errors.Is(err, cartdom.ErrNotFound) {
			return nil, err
		}
		return nil, common.Internal("cart lookup failed", err)
	}
	return c, nil
}

func (uc *CartUsecase) loadOrCreate(ctx context.Context, u *userdom.User) (*cartdom.Cart, error) {
	c, err := uc.load(ctx, u)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, cartdom.ErrNotFound) {
		return nil, err
	}

	c, err = cartdom.NewCart(u.Email, uc.defaults.PaymentOption, uc.clock.Now())
	if err != nil {
		return nil, common.Internal(msgCartCreateFailed, err)
	}
	if err := uc.carts.Create(ctx, c); err != nil {
		// Lost a creation race: use the winner's cart.
		if errors.Is(err, cartdom.ErrAlreadyExists) {
			return uc.load(ctx, u)
		}
		return nil, common.Internal(msgCartCreateFailed, err)
	}
	return c, nil
}

func (uc *CartUsecase) lookupProduct(ctx context.Context, id string) (*productdom.Product, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, productdom.ErrNotFound) {
			return nil, common.BadRequest(msgProductNotInDB)
		}
		return nil, common.Internal("product lookup failed", err)
	}
	return p, nil
}

func mapCartErr(err error) error {
	switch {
	case errors.Is(err, cartdom.ErrItemExists):
		return common.BadRequest(msgProductInCart)
	case errors.Is(err, cartdom.ErrItemNotInCart):
		return common.BadRequest(msgProductNotInCart)
	case errors.Is(err, cartdom.ErrInvalidQuantity):
		return common.BadRequest(msgInvalidQuantity)
	case errors.Is(err, cartdom.ErrNotFound):
		return common.BadRequest(msgNoCart)
	default:
		return common.Internal("cart update failed", err)
	}
}
