// internal/application/usecase/auth/service.go
package auth

import (
	"context"
	"errors"
	"time"

	"qkart/internal/application/usecase"
	"qkart/internal/domain/common"
	userdom "qkart/internal/domain/user"
)

const msgBadCredentials = "Incorrect email or password"

// Result is returned by Register and Login.
type Result struct {
	User   *userdom.User `json:"user"`
	Tokens Tokens        `json:"tokens"`
}

// Service registers and logs in users on top of UserUsecase.
type Service struct {
	Users  *usecase.UserUsecase
	Tokens *TokenMaker
	Now    func() time.Time
}

func NewService(users *usecase.UserUsecase, tokens *TokenMaker) *Service {
	return &Service{Users: users, Tokens: tokens, Now: time.Now}
}

func (s *Service) Register(ctx context.Context, in usecase.CreateUserInput) (*Result, error) {
	u, err := s.Users.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.issue(u)
}

// Login never reveals whether the email or the password was wrong.
func (s *Service) Login(ctx context.Context, email, password string) (*Result, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrBadRequest) {
			return nil, common.Unauthorized(msgBadCredentials)
		}
		return nil, err
	}
	if !s.Users.IsPasswordMatch(u, password) {
		return nil, common.Unauthorized(msgBadCredentials)
	}
	return s.issue(u)
}

// UserIDFromToken resolves an access token to its user id.
func (s *Service) UserIDFromToken(raw string) (string, error) {
	uid, err := s.Tokens.Verify(raw)
	if err != nil {
		return "", common.Unauthorized("Please authenticate")
	}
	return uid, nil
}

func (s *Service) issue(u *userdom.User) (*Result, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	access, err := s.Tokens.Issue(u.ID, now())
	if err != nil {
		return nil, common.Internal("token issue failed", err)
	}
	return &Result{User: u, Tokens: Tokens{Access: access}}, nil
}
