// Package mailer sends discount alert emails over SMTP.
package mailer

import (
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"
)

const storeBaseURL = "https://store.steampowered.com/app"

// DiscountEmail carries everything needed to render one discount notification.
type DiscountEmail struct {
	To              string
	GameName        string
	AppID           int64
	DiscountPercent int64
	PriceCents      *int64
	Currency        *string
}

// Mailer dispatches plain-text discount alerts through an SMTP relay.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	logger *slog.Logger
}

// Config holds SMTP settings for the mailer.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// New creates a mailer. The dialer connects lazily on the first send.
func New(cfg Config, logger *slog.Logger) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger,
	}
}

// SendDiscountAlert renders and sends one discount notification.
func (m *Mailer) SendDiscountAlert(email DiscountEmail) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email.To)
	msg.SetHeader("Subject", Subject(email))
	msg.SetBody("text/plain", Body(email))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send discount alert: %w", err)
	}

	m.logger.Info("discount alert sent",
		"to", email.To,
		"appid", email.AppID,
		"discount_percent", email.DiscountPercent,
	)
	return nil
}

// Subject renders the inbox preview line.
func Subject(email DiscountEmail) string {
	return fmt.Sprintf("%s is %d%% off on Steam", email.GameName, email.DiscountPercent)
}

// Body renders the fixed plain-text template.
func Body(email DiscountEmail) string {
	return fmt.Sprintf(`Deal alert!

%s (%d) is now %d%% off.
Current price: %s

Steam link: %s/%d
`,
		email.GameName, email.AppID, email.DiscountPercent,
		FormatPrice(email.PriceCents, email.Currency),
		storeBaseURL, email.AppID,
	)
}

// FormatPrice renders minor currency units as a human price string,
// or "Free" when there is no price.
func FormatPrice(priceCents *int64, currency *string) string {
	if priceCents == nil {
		return "Free"
	}
	s := fmt.Sprintf("%.2f", float64(*priceCents)/100)
	if currency != nil && *currency != "" {
		return s + " " + *currency
	}
	return s
}
