package providers

import (
	"github.com/samber/do/v2"

	"github.com/steamwatch/steamwatch-server/internal/config"
	"github.com/steamwatch/steamwatch-server/internal/logger"
	"github.com/steamwatch/steamwatch-server/internal/mailer"
)

// MailerHandle wraps the SMTP mailer for lifecycle consistency.
type MailerHandle struct {
	*mailer.Mailer
}

// ProvideMailer provides the SMTP notification sender.
func ProvideMailer(i do.Injector) (*MailerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	m := mailer.New(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}, log.Logger)

	if cfg.SMTP.Host == "" {
		log.Warn("SMTP host not configured; alert emails will fail until it is set")
	}

	return &MailerHandle{Mailer: m}, nil
}
