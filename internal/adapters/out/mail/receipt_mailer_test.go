package mail

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qkart/internal/application/usecase"
	cartdom "qkart/internal/domain/cart"
	productdom "qkart/internal/domain/product"
)

type captureClient struct {
	from, to, subject, plain, html string
}

func (c *captureClient) Send(_ context.Context, from, to, subject, plain, html string) error {
	c.from, c.to, c.subject, c.plain, c.html = from, to, subject, plain, html
	return nil
}

func TestReceiptMailerRendersLines(t *testing.T) {
	client := &captureClient{}
	m := NewReceiptMailer(client, " shop@qkart.example ")

	err := m.SendReceipt(context.Background(), usecase.Receipt{
		Name:  "Crio <User>",
		Email: "crio@example.com",
		Items: []cartdom.Item{
			{Product: productdom.Product{Name: "Shoe", Cost: 100}, Quantity: 2},
			{Product: productdom.Product{Name: "Bat", Cost: 50}, Quantity: 1},
		},
		Total:         decimal.NewFromInt(250),
		WalletBalance: 50,
		PaidAt:        time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "shop@qkart.example", client.from)
	assert.Equal(t, "crio@example.com", client.to)
	assert.Contains(t, client.plain, "2 x Shoe  200.00")
	assert.Contains(t, client.plain, "Total: 250.00")
	assert.Contains(t, client.plain, "Wallet balance: 50.00")
	assert.Contains(t, client.html, "Crio &lt;User&gt;")
}

func TestSendGridClientRejectsMissingKey(t *testing.T) {
	c := &SendGridClient{}
	err := c.Send(context.Background(), "a@b.com", "c@d.com", "s", "p", "h")
	assert.Error(t, err)
}
