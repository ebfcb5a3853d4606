// internal/application/usecase/clock.go
package usecase

import "time"

// Clock provides current time (for testability).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func clockOrSystem(c Clock) Clock {
	if c == nil {
		return systemClock{}
	}
	return c
}

// Defaults are the configured starting values for new users and carts.
type Defaults struct {
	WalletMoney   float64
	Address       string
	PaymentOption string
}
