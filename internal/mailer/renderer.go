package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

// Имена шаблонов писем.
const (
	TemplateEmailVerification  = "email_verification"
	TemplateResendVerification = "resend_verification"
	TemplateCourseNotification = "course_notification"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer рендерит HTML-шаблоны писем, встроенные в бинарник.
type Renderer struct {
	tpl *template.Template
}

// NewRenderer разбирает встроенные шаблоны.
func NewRenderer() (*Renderer, error) {
	tpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора шаблонов писем: %w", err)
	}
	return &Renderer{tpl: tpl}, nil
}

// Render рендерит шаблон name с данными data.
func (r *Renderer) Render(name string, data any) (string, error) {
	if r.tpl.Lookup(name) == nil {
		return "", fmt.Errorf("шаблон письма %q не найден", name)
	}
	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("ошибка рендеринга шаблона %q: %w", name, err)
	}
	return buf.String(), nil
}
