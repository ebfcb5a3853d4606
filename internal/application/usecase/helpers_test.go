package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"qkart/internal/adapters/out/memory"
	"qkart/internal/application/usecase"
	productdom "qkart/internal/domain/product"
	userdom "qkart/internal/domain/user"
)

const testAddress = "221B Baker Street, London NW1 6XE"

var testDefaults = usecase.Defaults{
	WalletMoney:   500,
	Address:       "ADDRESS_NOT_SET",
	PaymentOption: "PAYMENT_OPTION_DEFAULT",
}

var testProducts = []productdom.Product{
	{ID: "p100", Name: "UNIFACTOR Mens Running Shoes", Category: "Fashion", Cost: 100, Rating: 5, Image: "https://example.com/shoe.png"},
	{ID: "p50", Name: "YONEX Smash Badminton Racquet", Category: "Sports", Cost: 50, Rating: 4, Image: "https://example.com/racquet.png"},
	{ID: "p7", Name: "Tan Leatherette Weekender Duffle", Category: "Fashion", Cost: 7.25, Rating: 4, Image: "https://example.com/bag.png"},
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testClock = fixedClock{t: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}

type recordingMailer struct {
	mu       sync.Mutex
	receipts []usecase.Receipt
	err      error
}

func (m *recordingMailer) SendReceipt(_ context.Context, r usecase.Receipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receipts = append(m.receipts, r)
	return m.err
}

func newStore() *memory.Store {
	return memory.NewStore(testProducts...)
}

// registerUser creates a user and optionally sets a shipping address.
func registerUser(t *testing.T, users *usecase.UserUsecase, email string, withAddress bool) *userdom.User {
	t.Helper()
	u, err := users.Create(context.Background(), usecase.CreateUserInput{
		Name:     "crio-user",
		Email:    email,
		Password: "learnwithcrio1",
	})
	require.NoError(t, err)
	if withAddress {
		_, err = users.SetAddress(context.Background(), u, testAddress)
		require.NoError(t, err)
	}
	return u
}
