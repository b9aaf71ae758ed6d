package mailer

import "context"

// Message — готовое к отправке письмо.
type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
}

// Sender описывает контракт транспорта писем (SMTP, SendGrid и т.п.).
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
