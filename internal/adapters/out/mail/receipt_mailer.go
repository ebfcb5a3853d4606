// internal/adapters/out/mail/receipt_mailer.go
package mail

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"qkart/internal/application/usecase"
)

// ReceiptMailer implements usecase.ReceiptMailer on top of an EmailClient.
type ReceiptMailer struct {
	client EmailClient
	from   string
}

func NewReceiptMailer(client EmailClient, from string) *ReceiptMailer {
	return &ReceiptMailer{client: client, from: strings.TrimSpace(from)}
}

func (m *ReceiptMailer) SendReceipt(ctx context.Context, r usecase.Receipt) error {
	subject, plain, htmlBody := renderReceipt(r)
	return m.client.Send(ctx, m.from, r.Email, subject, plain, htmlBody)
}

func renderReceipt(r usecase.Receipt) (subject, plain, htmlBody string) {
	subject = "Your QKart order is confirmed"

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nThanks for shopping with QKart. Your order:\n\n", r.Name)
	for _, it := range r.Items {
		line := decimal.NewFromFloat(it.Product.Cost).Mul(decimal.NewFromInt(int64(it.Quantity)))
		fmt.Fprintf(&b, "  %d x %s  %s\n", it.Quantity, it.Product.Name, line.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: %s\nWallet balance: %s\n", r.Total.StringFixed(2), decimal.NewFromFloat(r.WalletBalance).StringFixed(2))
	fmt.Fprintf(&b, "Paid at: %s\n", r.PaidAt.Format("2006-01-02 15:04 MST"))

	plain = b.String()
	htmlBody = "<pre>" + html.EscapeString(plain) + "</pre>"
	return subject, plain, htmlBody
}

// LogMailer writes receipts to the log when no mail provider is configured.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log.With().Str("component", "mail").Logger()}
}

func (m *LogMailer) SendReceipt(_ context.Context, r usecase.Receipt) error {
	m.log.Info().
		Str("to", r.Email).
		Str("total", r.Total.StringFixed(2)).
		Int("items", len(r.Items)).
		Msg("receipt (not sent: no mail provider configured)")
	return nil
}
