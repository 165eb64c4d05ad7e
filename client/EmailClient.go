package client

import (
	"github.com/Tayttopaikka/tayttopaikka-backend/config"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"
)

// EmailClient is the external mail transport. Each send is a single
// best-effort call; delivery failures are returned to the caller and never
// retried here.
type EmailClient interface {
	SendEmail(to string, subject string, text string) error
}

func NewEmailClient(cfg config.EmailConfig) EmailClient {
	return &emailClientImpl{cfg: cfg}
}

type emailClientImpl struct {
	cfg config.EmailConfig
}

func (e *emailClientImpl) SendEmail(to string, subject string, text string) error {
	msg := mail.NewMsg()
	if err := msg.From(e.cfg.FromAddress); err != nil {
		return errors.Wrap(err, "invalid sender address")
	}
	if err := msg.To(to); err != nil {
		return errors.Wrapf(err, "invalid recipient address %s", to)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, text)

	opts := []mail.Option{
		mail.WithPort(e.cfg.SmtpPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if e.cfg.SmtpUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(e.cfg.SmtpUsername),
			mail.WithPassword(e.cfg.SmtpPassword),
		)
	}

	smtpClient, err := mail.NewClient(e.cfg.SmtpHost, opts...)
	if err != nil {
		return errors.Wrap(err, "failed to create smtp client")
	}
	if err := smtpClient.DialAndSend(msg); err != nil {
		return errors.Wrapf(err, "failed to send email to %s", to)
	}
	log.Debugf("Sent email '%s' to %s", subject, to)
	return nil
}
