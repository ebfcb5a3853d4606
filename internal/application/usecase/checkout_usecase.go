// internal/application/usecase/checkout_usecase.go
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	cartdom "qkart/internal/domain/cart"
	"qkart/internal/domain/common"
	userdom "qkart/internal/domain/user"
)

// Receipt is what the mailer gets after a successful checkout.
type Receipt struct {
	UserID        string
	Name          string
	Email         string
	Items         []cartdom.Item
	Total         decimal.Decimal
	WalletBalance float64
	PaidAt        time.Time
}

// ReceiptMailer is an outbound port. Implementations must be safe to call
// after the checkout has already committed.
type ReceiptMailer interface {
	SendReceipt(ctx context.Context, r Receipt) error
}

var (
	errCheckoutEmptyCart = errors.New("checkout: cart is empty")
	errCheckoutNoAddress = errors.New("checkout: address not set")
	errCheckoutNoMailer  = errors.New("checkout: mailer not configured")
)

// CheckoutUsecase validates and commits a checkout.
// The store runs the validations on values read inside its transaction.
type CheckoutUsecase struct {
	store    cartdom.CheckoutStore
	mailer   ReceiptMailer
	defaults Defaults
	clock    Clock
	log      zerolog.Logger
}

func NewCheckoutUsecase(store cartdom.CheckoutStore, mailer ReceiptMailer, defaults Defaults, log zerolog.Logger) *CheckoutUsecase {
	return NewCheckoutUsecaseWithClock(store, mailer, defaults, log, nil)
}

// NewCheckoutUsecaseWithClock is useful for tests.
func NewCheckoutUsecaseWithClock(store cartdom.CheckoutStore, mailer ReceiptMailer, defaults Defaults, log zerolog.Logger, clock Clock) *CheckoutUsecase {
	return &CheckoutUsecase{
		store:    store,
		mailer:   mailer,
		defaults: defaults,
		clock:    clockOrSystem(clock),
		log:      log.With().Str("component", "checkout").Logger(),
	}
}

// Checkout empties the cart and debits its total from the wallet, or changes nothing.
//
// Order of checks:
//  1. cart exists
//  2. cart is not empty
//  3. address differs from the sentinel
//  4. total <= walletMoney
func (uc *CheckoutUsecase) Checkout(ctx context.Context, u *userdom.User) error {
	if u == nil || u.ID == "" {
		return common.Unauthorized("Please authenticate")
	}

	now := uc.clock.Now()
	var (
		items []cartdom.Item
		total decimal.Decimal
	)

	updated, _, err := uc.store.CommitCheckout(ctx, u.ID, userdom.NormalizeEmail(u.Email), func(usr *userdom.User, c *cartdom.Cart) error {
		if c.IsEmpty() {
			return errCheckoutEmptyCart
		}
		if !usr.HasNonDefaultAddress(uc.defaults.Address) {
			return errCheckoutNoAddress
		}
		t := c.Total()
		if err := usr.Debit(t, now); err != nil {
			return err
		}
		total = t
		items = c.Clear(now)
		return nil
	})
	if err != nil {
		return mapCheckoutErr(err)
	}

	uc.log.Info().
		Str("userId", updated.ID).
		Str("total", total.StringFixed(2)).
		Int("items", len(items)).
		Msg("checkout committed")

	uc.sendReceipt(ctx, Receipt{
		UserID:        updated.ID,
		Name:          updated.Name,
		Email:         updated.Email,
		Items:         items,
		Total:         total,
		WalletBalance: updated.WalletMoney,
		PaidAt:        now.UTC(),
	})

	*u = *updated
	return nil
}

// sendReceipt is best-effort; the checkout is already committed.
func (uc *CheckoutUsecase) sendReceipt(ctx context.Context, r Receipt) {
	if uc.mailer == nil {
		uc.log.Debug().Err(errCheckoutNoMailer).Str("userId", r.UserID).Msg("receipt skipped")
		return
	}
	if err := uc.mailer.SendReceipt(ctx, r); err != nil {
		uc.log.Warn().Err(err).Str("userId", r.UserID).Msg("receipt mail failed")
	}
}

func mapCheckoutErr(err error) error {
	switch {
	case errors.Is(err, cartdom.ErrNotFound):
		return common.BadRequest(msgNoCart)
	case errors.Is(err, errCheckoutEmptyCart):
		return common.BadRequest("Cart is empty")
	case errors.Is(err, errCheckoutNoAddress):
		return common.BadRequest("Address not set")
	case errors.Is(err, userdom.ErrInsufficientFunds):
		return common.BadRequest("Insufficient balance")
	case errors.Is(err, userdom.ErrNotFound):
		return common.NotFound("User not found")
	default:
		var ce *common.Error
		if errors.As(err, &ce) {
			return ce
		}
		return common.Internal("checkout failed", err)
	}
}
