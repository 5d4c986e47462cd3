// internal/app/system/mailer/mailer.go

// Package mailer sends transactional email over SMTP. The only message
// in use today is the registration one-time code.
package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Email is a fully built message ready to send.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers email. Implemented by Mailer; tests substitute fakes.
type Sender interface {
	Send(ctx context.Context, e Email) error
}

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string // from address, e.g. noreply@potluck.app
	FromName string // display name, e.g. Potluck
}

// Mailer sends email via SMTP using go-mail.
type Mailer struct {
	cfg Config
	log *zap.Logger
}

// New validates cfg and returns a Mailer.
func New(cfg Config, logger *zap.Logger) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("from address is required")
	}
	return &Mailer{cfg: cfg, log: logger}, nil
}

// Send delivers e, honoring ctx for cancellation. The caller decides
// whether a failure is fatal; nothing is retried here.
func (m *Mailer) Send(ctx context.Context, e Email) error {
	msg := mail.NewMsg()

	if m.cfg.FromName != "" {
		if err := msg.FromFormat(m.cfg.FromName, m.cfg.From); err != nil {
			return fmt.Errorf("set from: %w", err)
		}
	} else {
		if err := msg.From(m.cfg.From); err != nil {
			return fmt.Errorf("set from: %w", err)
		}
	}
	if err := msg.To(e.To); err != nil {
		return fmt.Errorf("set to: %w", err)
	}

	msg.Subject(e.Subject)
	msg.SetBodyString(mail.TypeTextPlain, e.TextBody)
	if e.HTMLBody != "" {
		msg.AddAlternativeString(mail.TypeTextHTML, e.HTMLBody)
	}

	opts := []mail.Option{mail.WithPort(m.cfg.Port)}
	if m.cfg.Username != "" && m.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	} else {
		// Local dev against Mailpit: no auth, no TLS.
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		m.log.Warn("mail send failed",
			zap.String("to", e.To),
			zap.String("subject", e.Subject),
			zap.Error(err))
		return err
	}
	return nil
}
