// internal/domain/user/entity.go
package user

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var rules = validator.New()

// User is a registered shopper.
// Password holds the bcrypt hash and is never serialised to clients.
type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Password    string    `json:"-"`
	WalletMoney float64   `json:"walletMoney"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AddressView is the {id, email, address} projection of a user.
type AddressView struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

var (
	ErrInvalidID          = errors.New("user: invalid id")
	ErrInvalidName        = errors.New("user: invalid name")
	ErrInvalidEmail       = errors.New("user: invalid email")
	ErrInvalidPassword    = errors.New("user: password must be at least 8 characters and contain at least one letter and one number")
	ErrInvalidAddress     = errors.New("user: invalid address")
	ErrInvalidWalletMoney = errors.New("user: invalid walletMoney")
	ErrInsufficientFunds  = errors.New("user: insufficient wallet balance")
)

// Policy
var (
	MinPasswordLength = 8
	MinAddressLength  = 20
	MaxAddressLength  = 1024
	MaxNameLength     = 100
)

// New builds a validated user. passwordHash must already be hashed.
func New(id, name, email, passwordHash string, walletMoney float64, address string, now time.Time) (User, error) {
	now = now.UTC()
	u := User{
		ID:          strings.TrimSpace(id),
		Name:        strings.TrimSpace(name),
		Email:       NormalizeEmail(email),
		Password:    passwordHash,
		WalletMoney: walletMoney,
		Address:     strings.TrimSpace(address),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.validate(); err != nil {
		return User{}, err
	}
	return u, nil
}

// HasNonDefaultAddress reports whether the user replaced the sentinel address.
func (u User) HasNonDefaultAddress(sentinel string) bool {
	return u.Address != sentinel
}

// Projection returns the address view of u.
func (u User) Projection() AddressView {
	return AddressView{ID: u.ID, Email: u.Email, Address: u.Address}
}

// SetAddress replaces the shipping address.
func (u *User) SetAddress(address string, now time.Time) error {
	a := strings.TrimSpace(address)
	if err := ValidateAddress(a); err != nil {
		return err
	}
	u.Address = a
	u.UpdatedAt = now.UTC()
	return nil
}

// Debit subtracts amount from the wallet.
// The wallet never goes negative; ErrInsufficientFunds leaves u untouched.
func (u *User) Debit(amount decimal.Decimal, now time.Time) error {
	if amount.IsNegative() {
		return ErrInvalidWalletMoney
	}
	balance := decimal.NewFromFloat(u.WalletMoney)
	if amount.GreaterThan(balance) {
		return ErrInsufficientFunds
	}
	u.WalletMoney = balance.Sub(amount).InexactFloat64()
	u.UpdatedAt = now.UTC()
	return nil
}

func (u User) validate() error {
	if u.ID == "" {
		return ErrInvalidID
	}
	if u.Name == "" || len([]rune(u.Name)) > MaxNameLength {
		return ErrInvalidName
	}
	if err := ValidateEmail(u.Email); err != nil {
		return err
	}
	if strings.TrimSpace(u.Password) == "" {
		return ErrInvalidPassword
	}
	if u.WalletMoney < 0 {
		return ErrInvalidWalletMoney
	}
	return nil
}

// NormalizeEmail trims and lowercases an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail accepts a bare address (no display name) with a dotted domain.
// The email keys user and cart documents, so "/" is rejected.
func ValidateEmail(email string) error {
	e := strings.TrimSpace(email)
	if err := rules.Var(e, "required,email,excludes=/"); err != nil {
		return ErrInvalidEmail
	}
	at := strings.LastIndex(e, "@")
	if at <= 0 || !strings.Contains(e[at+1:], ".") {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword checks the plaintext policy: min length, a letter and a digit.
func ValidatePassword(plain string) error {
	if len(plain) < MinPasswordLength {
		return ErrInvalidPassword
	}
	var letter, digit bool
	for _, r := range plain {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !letter || !digit {
		return ErrInvalidPassword
	}
	return nil
}

func ValidateAddress(address string) error {
	if err := rules.Var(strings.TrimSpace(address), fmt.Sprintf("min=%d,max=%d", MinAddressLength, MaxAddressLength)); err != nil {
		return ErrInvalidAddress
	}
	return nil
}
