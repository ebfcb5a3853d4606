// internal/adapters/out/firestore/user_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	userdom "qkart/internal/domain/user"
)

// UserRepositoryFS implements user.Repository using Firestore.
//
// Collection design:
//   - users/{userId}: the user document
//   - userEmails/{email}: {userId}, reserved in the same transaction as the user
//     so two registrations with one email cannot both commit.
type UserRepositoryFS struct {
	Client *firestore.Client
}

func NewUserRepositoryFS(client *firestore.Client) *UserRepositoryFS {
	return &UserRepositoryFS{Client: client}
}

func (r *UserRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(usersCollection)
}

func (r *UserRepositoryFS) emails() *firestore.CollectionRef {
	return r.Client.Collection(userEmailsCollection)
}

func (r *UserRepositoryFS) GetByID(ctx context.Context, id string) (*userdom.User, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("user_repository_fs: firestore client is nil")
	}
	uid := strings.TrimSpace(id)
	if uid == "" {
		return nil, userdom.ErrNotFound
	}

	snap, err := r.col().Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, userdom.ErrNotFound
		}
		return nil, err
	}
	return decodeUser(snap)
}

func (r *UserRepositoryFS) GetByEmail(ctx context.Context, email string) (*userdom.User, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("user_repository_fs: firestore client is nil")
	}
	e := userdom.NormalizeEmail(email)
	if e == "" {
		return nil, userdom.ErrNotFound
	}

	it := r.col().Where("email", "==", e).Limit(1).Documents(ctx)
	defer it.Stop()

	snap, err := it.Next()
	if errors.Is(err, iterator.Done) {
		return nil, userdom.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeUser(snap)
}

func (r *UserRepositoryFS) GetAddressByID(ctx context.Context, id string) (*userdom.AddressView, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v := u.Projection()
	return &v, nil
}

// Create reserves the email and writes the user atomically.
func (r *UserRepositoryFS) Create(ctx context.Context, u *userdom.User) error {
	if r == nil || r.Client == nil {
		return errors.New("user_repository_fs: firestore client is nil")
	}
	if u == nil || strings.TrimSpace(u.ID) == "" {
		return errors.New("user_repository_fs: Create requires user.ID as docId")
	}

	email := userdom.NormalizeEmail(u.Email)
	emailRef := r.emails().Doc(email)
	userRef := r.col().Doc(u.ID)

	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(emailRef); err == nil {
			return userdom.ErrConflict
		} else if status.Code(err) != codes.NotFound {
			return err
		}
		if err := tx.Create(emailRef, userEmailDoc{UserID: u.ID}); err != nil {
			return err
		}
		return tx.Create(userRef, userDocFromDomain(u))
	})
	if err != nil {
		if errors.Is(err, userdom.ErrConflict) || status.Code(err) == codes.AlreadyExists {
			return userdom.ErrConflict
		}
		return err
	}
	return nil
}

// Save overwrites the user document. Email changes are not supported here.
func (r *UserRepositoryFS) Save(ctx context.Context, u *userdom.User) error {
	if r == nil || r.Client == nil {
		return errors.New("user_repository_fs: firestore client is nil")
	}
	if u == nil || strings.TrimSpace(u.ID) == "" {
		return errors.New("user_repository_fs: Save requires user.ID as docId")
	}
	_, err := r.col().Doc(u.ID).Set(ctx, userDocFromDomain(u))
	return err
}

func decodeUser(snap *firestore.DocumentSnapshot) (*userdom.User, error) {
	var d userDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, err
	}
	return d.toDomain(snap.Ref.ID), nil
}
