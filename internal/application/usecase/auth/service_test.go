package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qkart/internal/adapters/out/memory"
	"qkart/internal/application/usecase"
	"qkart/internal/application/usecase/auth"
	"qkart/internal/domain/common"
)

func newService(t *testing.T) *auth.Service {
	t.Helper()
	users := usecase.NewUserUsecase(memory.NewStore().Users(), usecase.Defaults{
		WalletMoney: 500, Address: "ADDRESS_NOT_SET", PaymentOption: "PAYMENT_OPTION_DEFAULT",
	})
	tokens, err := auth.NewTokenMaker("thisisasamplesecret", time.Hour)
	require.NoError(t, err)
	return auth.NewService(users, tokens)
}

func TestRegisterThenLogin(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, usecase.CreateUserInput{Name: "crio", Email: "crio@example.com", Password: "learnwithcrio1"})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Tokens.Access.Token)

	uid, err := svc.UserIDFromToken(reg.Tokens.Access.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, uid)

	in, err := svc.Login(ctx, "CRIO@example.com", "learnwithcrio1")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, in.User.ID)
}

func TestLoginBadCredentials(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, usecase.CreateUserInput{Name: "crio", Email: "crio@example.com", Password: "learnwithcrio1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "crio@example.com", "wrongpass1")
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	_, err = svc.Login(ctx, "nobody@example.com", "learnwithcrio1")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Equal(t, "Incorrect email or password", common.MessageOf(err))
}

func TestTokenMakerRejectsTampering(t *testing.T) {
	m, err := auth.NewTokenMaker("secret-a", time.Hour)
	require.NoError(t, err)
	other, err := auth.NewTokenMaker("secret-b", time.Hour)
	require.NoError(t, err)

	tok, err := m.Issue("user-1", time.Now())
	require.NoError(t, err)

	_, err = other.Verify(tok.Token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = m.Verify(tok.Token + "x")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenMakerRejectsExpired(t *testing.T) {
	m, err := auth.NewTokenMaker("secret", time.Minute)
	require.NoError(t, err)

	tok, err := m.Issue("user-1", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = m.Verify(tok.Token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenMakerRejectsWrongType(t *testing.T) {
	m, err := auth.NewTokenMaker("secret", time.Minute)
	require.NoError(t, err)

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		Type: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = m.Verify(raw)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestNewTokenMakerRequiresSecret(t *testing.T) {
	_, err := auth.NewTokenMaker("  ", time.Minute)
	assert.ErrorIs(t, err, auth.ErrEmptySecret)
}
