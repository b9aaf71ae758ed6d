package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"course-platform/internal/config"
	"course-platform/pkg/logger"
	pkgmailer "course-platform/pkg/mailer"
)

const smtpDialTimeout = 15 * time.Second

// SMTPSender отправляет письма через net/smtp.
// При SMTPImplicitTLS соединение сразу открывается по TLS (порт 465), иначе используется STARTTLS, если сервер его поддерживает.
type SMTPSender struct {
	cfg    *config.EmailConfig
	logger logger.Logger
}

var _ pkgmailer.Sender = (*SMTPSender)(nil)

// NewSMTPSender создаёт новый SMTP-отправитель на основе EmailConfig.
func NewSMTPSender(cfg *config.EmailConfig, logger logger.Logger) *SMTPSender {
	return &SMTPSender{
		cfg:    cfg,
		logger: logger,
	}
}

// Send отправляет письмо. Контекст ограничивает установку соединения и весь обмен с сервером.
func (s *SMTPSender) Send(ctx context.Context, msg pkgmailer.Message) error {
	if err := s.send(ctx, msg); err != nil {
		s.logger.Error("failed to send email", map[string]any{
			"to":      msg.To,
			"subject": msg.Subject,
			"err":     err.Error(),
		})
		return err
	}

	s.logger.Info("email sent", map[string]any{
		"to":      msg.To,
		"subject": msg.Subject,
	})
	return nil
}

func (s *SMTPSender) send(ctx context.Context, msg pkgmailer.Message) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	tlsCfg := &tls.Config{ServerName: s.cfg.SMTPHost, MinVersion: tls.VersionTLS12}

	dialer := &net.Dialer{Timeout: smtpDialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	if s.cfg.SMTPImplicitTLS {
		conn = tls.Client(conn, tlsCfg)
	}

	client, err := smtp.NewClient(conn, s.cfg.SMTPHost)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	if !s.cfg.SMTPImplicitTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(tlsCfg); err != nil {
				return fmt.Errorf("smtp starttls: %w", err)
			}
		}
	}

	if s.cfg.SMTPUsername != "" {
		auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(s.cfg.FromEmail); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write([]byte(buildMessage(s.cfg.FromName, s.cfg.FromEmail, msg))); err != nil {
		w.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp data close: %w", err)
	}
	return client.Quit()
}

// buildMessage собирает MIME-письмо. Если есть HTML, отправляется HTML, иначе простой текст.
func buildMessage(fromName, fromEmail string, msg pkgmailer.Message) string {
	contentType, body := "text/plain", msg.Text
	if msg.HTML != "" {
		contentType, body = "text/html", msg.HTML
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s\r\n", formatAddress(fromName, fromEmail)))
	b.WriteString(fmt.Sprintf("To: %s\r\n", formatAddress(msg.ToName, msg.To)))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject)))
	b.WriteString(fmt.Sprintf("Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z)))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString(fmt.Sprintf("Content-Type: %s; charset=\"utf-8\"\r\n", contentType))
	b.WriteString("\r\n")
	b.WriteString(body)
	return b.String()
}

func formatAddress(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", name), email)
}
