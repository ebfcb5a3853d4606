// internal/adapters/in/http/middleware/token_verifiers.go
package middleware

import (
	"context"
	"errors"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"

	"qkart/internal/application/usecase"
	"qkart/internal/application/usecase/auth"
	userdom "qkart/internal/domain/user"
)

var errNoEmailClaim = errors.New("firebase token has no email claim")

// JWTVerifier accepts access tokens issued by auth.Service.
type JWTVerifier struct {
	Auth  *auth.Service
	Users *usecase.UserUsecase
}

func NewJWTVerifier(a *auth.Service, users *usecase.UserUsecase) *JWTVerifier {
	return &JWTVerifier{Auth: a, Users: users}
}

func (v *JWTVerifier) VerifyUser(ctx context.Context, token string) (*userdom.User, error) {
	uid, err := v.Auth.UserIDFromToken(token)
	if err != nil {
		return nil, err
	}
	return v.Users.GetByID(ctx, uid)
}

// IDTokenVerifier is the subset of *auth.Client (Firebase) used here.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// FirebaseVerifier accepts Firebase ID tokens and maps them to users by email.
type FirebaseVerifier struct {
	Client IDTokenVerifier
	Users  *usecase.UserUsecase
}

func NewFirebaseVerifier(client IDTokenVerifier, users *usecase.UserUsecase) *FirebaseVerifier {
	return &FirebaseVerifier{Client: client, Users: users}
}

func (v *FirebaseVerifier) VerifyUser(ctx context.Context, idToken string) (*userdom.User, error) {
	token, err := v.Client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	email := ""
	if raw, ok := token.Claims["email"]; ok {
		if s, ok2 := raw.(string); ok2 {
			email = strings.TrimSpace(s)
		}
	}
	if email == "" {
		return nil, errNoEmailClaim
	}
	return v.Users.GetByEmail(ctx, email)
}
