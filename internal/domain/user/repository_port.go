package user

import (
	"context"
	"errors"
)

// Repository is the persistence port for users.
//
// Adapters:
//   - Firestore (users collection, docId = user id, email index collection for uniqueness)
//   - MongoDB (unique index on email)
//   - PostgreSQL (UNIQUE constraint on email)
//   - in-memory
type Repository interface {
	// GetByID MUST return ErrNotFound when the user does not exist.
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByEmail expects a normalised email and MUST return ErrNotFound when absent.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetAddressByID reads only id, email and address.
	GetAddressByID(ctx context.Context, id string) (*AddressView, error)

	// Create MUST return ErrConflict when the email is already registered.
	Create(ctx context.Context, u *User) error

	// Save overwrites the whole document.
	Save(ctx context.Context, u *User) error
}

var (
	ErrNotFound = errors.New("user: not found")
	ErrConflict = errors.New("user: conflict")
)
