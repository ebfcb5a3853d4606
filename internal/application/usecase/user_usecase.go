// internal/application/usecase/user_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"qkart/internal/domain/common"
	userdom "qkart/internal/domain/user"
)

// PasswordHashCost is the bcrypt work factor for stored passwords.
const PasswordHashCost = 10

// CreateUserInput is the registration payload after boundary validation.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

// UserUsecase owns user lookups, registration and address updates.
type UserUsecase struct {
	repo     userdom.Repository
	defaults Defaults
	clock    Clock
	newID    func() string
}

func NewUserUsecase(repo userdom.Repository, defaults Defaults) *UserUsecase {
	return NewUserUsecaseWithClock(repo, defaults, nil)
}

// NewUserUsecaseWithClock is useful for tests.
func NewUserUsecaseWithClock(repo userdom.Repository, defaults Defaults, clock Clock) *UserUsecase {
	return &UserUsecase{
		repo:     repo,
		defaults: defaults,
		clock:    clockOrSystem(clock),
		newID:    uuid.NewString,
	}
}

func (uc *UserUsecase) GetByID(ctx context.Context, id string) (*userdom.User, error) {
	uid := strings.TrimSpace(id)
	if uid == "" {
		return nil, common.BadRequest("\"userId\" is required")
	}

	u, err := uc.repo.GetByID(ctx, uid)
	if err != nil {
		return nil, mapUserErr(err)
	}
	return u, nil
}

// GetByEmail is case-insensitive.
func (uc *UserUsecase) GetByEmail(ctx context.Context, email string) (*userdom.User, error) {
	e := userdom.NormalizeEmail(email)
	if e == "" {
		return nil, common.BadRequest("\"email\" is required")
	}

	u, err := uc.repo.GetByEmail(ctx, e)
	if err != nil {
		return nil, mapUserErr(err)
	}
	return u, nil
}

// Create registers a user with the configured wallet and address defaults.
// A taken email yields a Conflict and nothing is written.
func (uc *UserUsecase) Create(ctx context.Context, in CreateUserInput) (*userdom.User, error) {
	email := userdom.NormalizeEmail(in.Email)
	if err := userdom.ValidateEmail(email); err != nil {
		return nil, common.BadRequest("\"email\" must be a valid email")
	}
	if err := userdom.ValidatePassword(in.Password); err != nil {
		return nil, common.BadRequest("password must be at least 8 characters and contain at least 1 letter and 1 number")
	}

	if _, err := uc.repo.GetByEmail(ctx, email); err == nil {
		return nil, common.Conflict("Email already taken")
	} else if !errors.Is(err, userdom.ErrNotFound) {
		return nil, common.Internal("user lookup failed", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), PasswordHashCost)
	if err != nil {
		return nil, common.Internal("password hashing failed", err)
	}

	u, err := userdom.New(
		uc.newID(),
		in.Name,
		email,
		string(hash),
		uc.defaults.WalletMoney,
		uc.defaults.Address,
		uc.clock.Now(),
	)
	if err != nil {
		return nil, common.BadRequest(validationMessage(err))
	}

	if err := uc.repo.Create(ctx, &u); err != nil {
		return nil, mapUserErr(err)
	}
	return &u, nil
}

// GetAddressByID returns the {id, email, address} projection.
func (uc *UserUsecase) GetAddressByID(ctx context.Context, id string) (*userdom.AddressView, error) {
	uid := strings.TrimSpace(id)
	if uid == "" {
		return nil, common.BadRequest("\"userId\" is required")
	}

	v, err := uc.repo.GetAddressByID(ctx, uid)
	if err != nil {
		return nil, mapUserErr(err)
	}
	return v, nil
}

// SetAddress persists a new address on u and returns it.
func (uc *UserUsecase) SetAddress(ctx context.Context, u *userdom.User, address string) (string, error) {
	if u == nil {
		return "", common.NotFound("User not found")
	}

	next := *u
	if err := next.SetAddress(address, uc.clock.Now()); err != nil {
		return "", common.BadRequest(validationMessage(err))
	}
	if err := uc.repo.Save(ctx, &next); err != nil {
		return "", mapUserErr(err)
	}

	*u = next
	return u.Address, nil
}

// IsPasswordMatch never errors; any mismatch or bad hash is false.
func (uc *UserUsecase) IsPasswordMatch(u *userdom.User, plain string) bool {
	if u == nil || u.Password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

func (uc *UserUsecase) HasNonDefaultAddress(u *userdom.User) bool {
	return u != nil && u.HasNonDefaultAddress(uc.defaults.Address)
}

// ----------------------------
// Helpers
// ----------------------------

func mapUserErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, userdom.ErrNotFound):
		return common.NotFound("User not found")
	case errors.Is(err, userdom.ErrConflict):
		return common.Conflict("Email already taken")
	default:
		var ce *common.Error
		if errors.As(err, &ce) {
			return ce
		}
		return common.Internal("user store failure", err)
	}
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, userdom.ErrInvalidName):
		return "\"name\" is required"
	case errors.Is(err, userdom.ErrInvalidEmail):
		return "\"email\" must be a valid email"
	case errors.Is(err, userdom.ErrInvalidPassword):
		return "password must be at least 8 characters and contain at least 1 letter and 1 number"
	case errors.Is(err, userdom.ErrInvalidAddress):
		return "\"address\" length must be between 20 and 1024 characters"
	case errors.Is(err, userdom.ErrInvalidWalletMoney):
		return "\"walletMoney\" must not be negative"
	default:
		return err.Error()
	}
}
