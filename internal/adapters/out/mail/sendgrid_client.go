// internal/adapters/out/mail/sendgrid_client.go
package mail

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailClient abstracts the delivery backend.
type EmailClient interface {
	Send(ctx context.Context, from, to, subject, plain, html string) error
}

// SendGridClient implements EmailClient.
type SendGridClient struct {
	apiKey string
	log    zerolog.Logger
}

func NewSendGridClient(apiKey string, log zerolog.Logger) *SendGridClient {
	return &SendGridClient{apiKey: apiKey, log: log.With().Str("component", "sendgrid").Logger()}
}

func (c *SendGridClient) Send(ctx context.Context, from, to, subject, plain, html string) error {
	if c.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if from == "" {
		return fmt.Errorf("from address is empty")
	}
	if to == "" {
		return fmt.Errorf("to address is empty")
	}

	message := mail.NewSingleEmail(
		mail.NewEmail("QKart", from),
		subject,
		mail.NewEmail("", to),
		plain,
		html,
	)

	response, err := sendgrid.NewSendClient(c.apiKey).SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		c.log.Error().Int("status", response.StatusCode).Str("body", response.Body).Msg("sendgrid rejected mail")
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", response.StatusCode, response.Body)
	}

	c.log.Debug().Int("status", response.StatusCode).Str("to", to).Str("subject", subject).Msg("mail sent")
	return nil
}
