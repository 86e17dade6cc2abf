package mailer

import (
	"context"

	"github.com/wneessen/go-mail"

	"atlas/pkg/errors"
	"atlas/pkg/logger"
)

// Sender delivers outbound email.
type Sender interface {
	// Send delivers a plain-text message. Returns ErrMailerNotConfigured
	// when no credentials were provided at startup.
	Send(ctx context.Context, to, subject, body string) error

	// Configured reports whether the sender has credentials
	Configured() bool
}

// Config carries SMTP connection settings
type Config struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

// SMTPSender implements Sender over SMTP with implicit TLS on port 465
// and STARTTLS otherwise
type SMTPSender struct {
	cfg    Config
	client *mail.Client
	log    *logger.Logger
}

// NewSMTPSender creates an SMTP sender. A config without credentials is
// accepted; Send then fails with ErrMailerNotConfigured so callers can
// surface the condition instead of crashing.
func NewSMTPSender(cfg Config) (*SMTPSender, error) {
	s := &SMTPSender{
		cfg: cfg,
		log: logger.Get().With("component", "smtp_mailer", "host", cfg.Host),
	}

	if !s.Configured() {
		return s, nil
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Sender),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	}
	if cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create smtp client")
	}

	s.client = client
	return s, nil
}

// Configured reports whether credentials are present
func (s *SMTPSender) Configured() bool {
	return s.cfg.Sender != "" && s.cfg.Password != ""
}

// Send delivers a plain-text message to a single recipient
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	if !s.Configured() {
		return errors.Wrap(errors.ErrMailerNotConfigured, "sender credentials missing")
	}
	if to == "" {
		return errors.Wrap(errors.ErrInvalidInput, "recipient is required")
	}
	if subject == "" {
		return errors.Wrap(errors.ErrInvalidInput, "subject is required")
	}

	msg := mail.NewMsg()
	if err := msg.From(s.cfg.Sender); err != nil {
		return errors.Wrap(err, "set sender")
	}
	if err := msg.To(to); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "invalid recipient %q: %v", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return errors.Wrap(err, "smtp delivery failed")
	}

	s.log.Infow("Email sent", "to", to, "subject", subject)
	return nil
}

// Compile-time check
var _ Sender = (*SMTPSender)(nil)
