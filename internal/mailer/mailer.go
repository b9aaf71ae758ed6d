package mailer

import (
	"context"
	"fmt"
	"time"

	"course-platform/internal/config"
	"course-platform/pkg/logger"
	pkgmailer "course-platform/pkg/mailer"
)

// NewSender выбирает транспорт писем по EMAIL_PROVIDER.
func NewSender(cfg *config.EmailConfig, log logger.Logger) (pkgmailer.Sender, error) {
	switch cfg.Provider {
	case "", "smtp":
		return NewSMTPSender(cfg, log), nil
	case "sendgrid":
		return NewSendGridSender(cfg, log), nil
	default:
		return nil, fmt.Errorf("неизвестный провайдер почты: %s", cfg.Provider)
	}
}

// Service рендерит шаблоны писем и передаёт их транспорту.
type Service struct {
	renderer *Renderer
	sender   pkgmailer.Sender
}

// NewService создаёт почтовый сервис.
func NewService(renderer *Renderer, sender pkgmailer.Sender) *Service {
	return &Service{renderer: renderer, sender: sender}
}

// VerificationData содержит данные письма подтверждения email.
type VerificationData struct {
	Username       string
	Link           string
	ExpiresInHours int
}

// SendVerificationEmail отправляет письмо со ссылкой подтверждения email.
// resend выбирает шаблон повторной отправки.
func (s *Service) SendVerificationEmail(ctx context.Context, to, username, link string, expiresIn time.Duration, resend bool) error {
	name, subject := TemplateEmailVerification, "Confirm your email"
	if resend {
		name, subject = TemplateResendVerification, "Your new email verification link"
	}
	data := VerificationData{
		Username:       username,
		Link:           link,
		ExpiresInHours: int(expiresIn.Hours()),
	}
	return s.SendTemplate(ctx, name, to, subject, data)
}

// SendTemplate рендерит шаблон name и отправляет письмо.
func (s *Service) SendTemplate(ctx context.Context, name, to, subject string, data any) error {
	html, err := s.renderer.Render(name, data)
	if err != nil {
		return err
	}
	return s.sender.Send(ctx, pkgmailer.Message{
		To:      to,
		Subject: subject,
		HTML:    html,
	})
}
