package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

// Notifier sends formatted HTML messages
type Notifier interface {
	Send(ctx context.Context, from string, to []string, subject, html string) error
}

// SMTPConfig holds connection settings for the mail relay
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// SMTPNotifier implements Notifier over an authenticated SMTP relay
type SMTPNotifier struct {
	client *mail.Client
}

// NewSMTPNotifier creates a new SMTP notifier
func NewSMTPNotifier(cfg SMTPConfig) (*SMTPNotifier, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &SMTPNotifier{client: client}, nil
}

// Send delivers one HTML message to the given recipients
func (n *SMTPNotifier) Send(ctx context.Context, from string, to []string, subject, html string) error {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to...); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, html)

	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

// LogNotifier implements Notifier by logging instead of sending, used when
// no SMTP relay is configured (local development).
type LogNotifier struct {
	Log zerolog.Logger
}

// Send logs the message it would have delivered
func (n *LogNotifier) Send(ctx context.Context, from string, to []string, subject, html string) error {
	n.Log.Info().
		Str("from", from).
		Strs("to", to).
		Str("subject", subject).
		Int("body_bytes", len(html)).
		Msg("mail delivery skipped, no SMTP relay configured")
	return nil
}
