package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-hr-ticketing/internal/config"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

const smtpTimeout = 15 * time.Second

// ErrUndeliverable marks mail that no retry can send, such as a malformed
// address.
var ErrUndeliverable = errors.New("mail undeliverable")

// Mailer delivers one message. The consumer treats an error as retryable.
type Mailer interface {
	Send(ctx context.Context, m Mail) error
}

type SMTPMailer struct {
	from   string
	send   func(ctx context.Context, msgs ...*gomail.Msg) error
	now    func() time.Time
	logger *zap.Logger
}

// NewSMTPMailer builds a client that upgrades to TLS when the server offers
// it and authenticates with PLAIN when a username is configured.
func NewSMTPMailer(cfg config.SMTPConfig, logger ...*zap.Logger) (*SMTPMailer, error) {
	l := zap.L().Named("notification.mailer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.mailer")
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(smtpTimeout),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}
	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &SMTPMailer{
		from:   cfg.From,
		send:   client.DialAndSendWithContext,
		now:    func() time.Time { return time.Now().UTC() },
		logger: l,
	}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, mail Mail) error {
	if len(mail.To) == 0 {
		return fmt.Errorf("%w: no recipients", ErrUndeliverable)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := m.buildMessage(mail)
	if err != nil {
		return err
	}
	if err := m.send(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	m.logger.Info("mail sent",
		zap.Strings("to", mail.To),
		zap.String("subject", mail.Subject),
	)
	return nil
}

// buildMessage rejects malformed addresses; the subject is RFC 2047 encoded
// and the body quoted-printable as needed.
func (m *SMTPMailer) buildMessage(mail Mail) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return nil, fmt.Errorf("%w: mail from: %w", ErrUndeliverable, err)
	}
	if err := msg.To(mail.To...); err != nil {
		return nil, fmt.Errorf("%w: mail to: %w", ErrUndeliverable, err)
	}
	msg.Subject(mail.Subject)
	msg.SetDateWithValue(m.now())
	msg.SetBodyString(gomail.TypeTextPlain, mail.Body)
	return msg, nil
}
