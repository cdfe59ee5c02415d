// Package mailer delivers the contact-form emails: a notification to the
// site owner and an auto-reply to the submitter.
package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"time"

	mail "github.com/wneessen/go-mail"

	"portfolio-backend/pkg/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Sender delivers the two emails for one contact-form submission.
type Sender interface {
	SendContactEmails(ctx context.Context, req models.ContactRequest) error
}

// Mailer sends contact emails through an SMTP relay.
type Mailer struct {
	client  *mail.Client
	account string
	logger  *log.Logger
}

// New creates a Mailer for the given SMTP account.
func New(host string, port int, account, password string, logger *log.Logger) (*Mailer, error) {
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(account),
		mail.WithPassword(password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("creating mail client: %w", err)
	}

	return &Mailer{
		client:  client,
		account: account,
		logger:  logger,
	}, nil
}

type templateData struct {
	models.ContactRequest
	SentAt string
}

// SendContactEmails sends the owner notification followed by the submitter
// auto-reply. Either send failing fails the whole submission, even when the
// notification already went out.
func (m *Mailer) SendContactEmails(ctx context.Context, req models.ContactRequest) error {
	data := templateData{
		ContactRequest: req,
		SentAt:         time.Now().UTC().Format("Jan 2, 2006 15:04 MST"),
	}

	notification, err := m.buildNotification(data)
	if err != nil {
		return err
	}
	if err := m.client.DialAndSendWithContext(ctx, notification); err != nil {
		return fmt.Errorf("sending notification: %w", err)
	}

	autoReply, err := m.buildAutoReply(data)
	if err != nil {
		return err
	}
	if err := m.client.DialAndSendWithContext(ctx, autoReply); err != nil {
		return fmt.Errorf("sending auto-reply: %w", err)
	}

	m.logger.Printf("Contact emails sent for submission from %s", req.Email)
	return nil
}

func (m *Mailer) buildNotification(data templateData) (*mail.Msg, error) {
	body, err := renderTemplate("notification.html", data)
	if err != nil {
		return nil, err
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat("Portfolio Contact", m.account); err != nil {
		return nil, fmt.Errorf("setting notification sender: %w", err)
	}
	if err := msg.To(m.account); err != nil {
		return nil, fmt.Errorf("setting notification recipient: %w", err)
	}
	// Reply-To the submitter so a plain reply reaches them directly
	if err := msg.ReplyTo(data.Email); err != nil {
		return nil, fmt.Errorf("setting reply-to: %w", err)
	}
	msg.Subject(fmt.Sprintf("[Portfolio] New message from %s — %s", data.Name, data.ProjectType))
	msg.SetBodyString(mail.TypeTextHTML, body)
	return msg, nil
}

func (m *Mailer) buildAutoReply(data templateData) (*mail.Msg, error) {
	body, err := renderTemplate("autoreply.html", data)
	if err != nil {
		return nil, err
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat("Himanshu Chauhan", m.account); err != nil {
		return nil, fmt.Errorf("setting auto-reply sender: %w", err)
	}
	if err := msg.To(data.Email); err != nil {
		return nil, fmt.Errorf("setting auto-reply recipient: %w", err)
	}
	msg.Subject(fmt.Sprintf("Thanks for reaching out, %s!", data.Name))
	msg.SetBodyString(mail.TypeTextHTML, body)
	return msg, nil
}

func renderTemplate(name string, data templateData) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return body.String(), nil
}
