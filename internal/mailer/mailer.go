package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/ecfilm/catalog-api/internal/config"
)

// Logger is the minimal logging surface the dispatcher needs.
type Logger interface {
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Email is a single outbound message.
type Email struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Dispatcher sends mail best-effort. Verification and recovery emails must
// never block or fail the HTTP response that triggered them, so callers use
// SendAsync and failures only reach the log.
type Dispatcher interface {
	Send(ctx context.Context, email Email) error
	SendAsync(email Email)
}

// SMTPDispatcher delivers through an SMTP relay.
type SMTPDispatcher struct {
	client *mail.Client
	from   string
	logger Logger
}

var _ Dispatcher = (*SMTPDispatcher)(nil)

// NewSMTPDispatcher builds the dispatcher from SMTP settings.
func NewSMTPDispatcher(cfg config.SMTP, logger Logger) (*SMTPDispatcher, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	}
	if cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	return &SMTPDispatcher{client: client, from: from, logger: logger}, nil
}

// Send delivers the email synchronously.
func (d *SMTPDispatcher) Send(ctx context.Context, email Email) error {
	msg := mail.NewMsg()
	if err := msg.From(d.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(email.To); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject(email.Subject)
	msg.SetBodyString(mail.TypeTextPlain, email.Text)
	if email.HTML != "" {
		msg.AddAlternativeString(mail.TypeTextHTML, email.HTML)
	}

	if err := d.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	d.logger.Info("email sent to %s: %s", email.To, email.Subject)
	return nil
}

// SendAsync delivers on a goroutine; errors are logged and dropped.
func (d *SMTPDispatcher) SendAsync(email Email) {
	go func() {
		if err := d.Send(context.Background(), email); err != nil {
			d.logger.Error("email delivery to %s failed: %v", email.To, err)
		}
	}()
}
