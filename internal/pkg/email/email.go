package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"github.com/ai-finance/finance-backend-go/internal/config"
	"github.com/ai-finance/finance-backend-go/internal/domain/alert"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// AlertMailer emails alerts to the configured finance recipients
type AlertMailer struct {
	cfg       config.SMTPConfig
	appName   string
	templates *template.Template

	send    sendFunc
	backoff func(attempt int) time.Duration
}

// NewAlertMailer parses the embedded templates. Sending is a no-op while
// SMTP host or recipients are unset.
func NewAlertMailer(cfg config.SMTPConfig, appName string) (*AlertMailer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &AlertMailer{
		cfg:       cfg,
		appName:   appName,
		templates: tmpl,
		send:      smtp.SendMail,
		backoff: func(attempt int) time.Duration {
			// 1s, 2s, 4s
			return time.Duration(1<<(attempt-1)) * time.Second
		},
	}, nil
}

type alertEmailData struct {
	AppName   string
	Title     string
	Color     string
	Type      string
	Severity  string
	Message   string
	Reference string
	CreatedAt string
}

var severityColors = map[string]string{
	string(alert.SeverityHigh):   "#dc2626",
	string(alert.SeverityMedium): "#d97706",
	string(alert.SeverityLow):    "#2563eb",
}

// SendAlert renders the alert template and sends it to every recipient.
func (m *AlertMailer) SendAlert(ctx context.Context, a alert.AlertResponse) error {
	data := alertEmailData{
		AppName:   m.appName,
		Title:     fmt.Sprintf("[%s] %s alert", a.Severity, a.Type),
		Color:     severityColors[a.Severity],
		Type:      a.Type,
		Severity:  a.Severity,
		Message:   a.Message,
		CreatedAt: a.CreatedAt,
	}
	if a.Reference != nil {
		data.Reference = *a.Reference
	}

	var body bytes.Buffer
	if err := m.templates.ExecuteTemplate(&body, "alert.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return m.sendHTML(ctx, m.cfg.AlertTo, data.Title, body.String())
}

func (m *AlertMailer) sendHTML(ctx context.Context, to []string, subject, htmlBody string) error {
	if m.cfg.Host == "" || len(to) == 0 {
		slog.Warn("SMTP not configured, skipping email send", "subject", subject)
		return nil
	}

	from := m.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", m.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", strings.Join(to, ", "))
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := m.send(addr, auth, from, to, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(m.backoff(attempt)):
			}
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
