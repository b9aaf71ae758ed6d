package mailer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"course-platform/internal/config"
	"course-platform/pkg/logger"
	pkgmailer "course-platform/pkg/mailer"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// SendGridSender отправляет письма через HTTP API SendGrid.
type SendGridSender struct {
	key    string
	from   *sgmail.Email
	logger logger.Logger
}

var _ pkgmailer.Sender = (*SendGridSender)(nil)

// NewSendGridSender создаёт отправителя SendGrid.
func NewSendGridSender(cfg *config.EmailConfig, logger logger.Logger) *SendGridSender {
	return &SendGridSender{
		key:    cfg.SendGridAPIKey,
		from:   sgmail.NewEmail(cfg.FromName, cfg.FromEmail),
		logger: logger,
	}
}

// prepare собирает тело запроса SendGrid v3.
func (s *SendGridSender) prepare(msg pkgmailer.Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.To))

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)

	// SendGrid требует, чтобы text/plain шёл перед text/html
	if msg.Text != "" {
		m.AddContent(sgmail.NewContent("text/plain", msg.Text))
	}
	if msg.HTML != "" {
		m.AddContent(sgmail.NewContent("text/html", msg.HTML))
	}
	return m
}

// Send отправляет письмо. Клиент SendGrid не принимает контекст, поэтому ctx не используется.
func (s *SendGridSender) Send(_ context.Context, msg pkgmailer.Message) error {
	req := sendgrid.GetRequest(s.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(s.prepare(msg))

	res, err := sendgrid.API(req)
	if err == nil && res.StatusCode >= http.StatusBadRequest {
		err = fmt.Errorf("sendgrid: status %d: %s", res.StatusCode, res.Body)
	}
	if err != nil {
		s.logger.Error("failed to send email", map[string]any{
			"to":       msg.To,
			"subject":  msg.Subject,
			"provider": "sendgrid",
			"err":      err.Error(),
		})
		return err
	}

	s.logger.Info("email sent", map[string]any{
		"to":       msg.To,
		"subject":  msg.Subject,
		"provider": "sendgrid",
	})
	return nil
}
