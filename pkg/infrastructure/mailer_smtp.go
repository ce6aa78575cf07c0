package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"html"
	"os"

	"gopkg.in/gomail.v2"

	"resume-builder/internal/model"
	"resume-builder/internal/render"
)

var ErrMailNotConfigured = errors.New("mail transport not configured")

// SMTPSettings selects the transport. Explicit SMTP host credentials win;
// otherwise a Gmail account with an app password is used.
type SMTPSettings struct {
	Host      string
	Port      int
	User      string
	Pass      string
	From      string
	GmailUser string
	GmailPass string
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(s SMTPSettings) (*SMTPMailer, error) {
	var d *gomail.Dialer
	from := s.From
	switch {
	case s.Host != "" && s.User != "" && s.Pass != "":
		port := s.Port
		if port == 0 {
			port = 587
		}
		d = gomail.NewDialer(s.Host, port, s.User, s.Pass)
		if from == "" {
			from = s.User
		}
	case s.GmailUser != "" && s.GmailPass != "":
		d = gomail.NewDialer("smtp.gmail.com", 587, s.GmailUser, s.GmailPass)
		if from == "" {
			from = s.GmailUser
		}
	default:
		return nil, ErrMailNotConfigured
	}
	if from == "" {
		from = `"Resume Builder" <no-reply@resume-builder.local>`
	}
	return &SMTPMailer{dialer: d, from: from}, nil
}

// SendResume mails the compiled PDF to its owner.
func (m *SMTPMailer) SendResume(ctx context.Context, to, name string, tpl model.TemplateID, pdfPath string) error {
	msg, err := resumeMessage(m.from, to, name, tpl, pdfPath)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

func resumeMessage(from, to, name string, tpl model.TemplateID, pdfPath string) (*gomail.Message, error) {
	if to == "" {
		return nil, errors.New("no recipient address")
	}
	if _, err := os.Stat(pdfPath); err != nil {
		return nil, fmt.Errorf("attachment: %w", err)
	}
	display := name
	if display == "" {
		display = "Resume"
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Your Resume ( %s ) — %s", tpl, display))
	msg.SetBody("text/plain", fmt.Sprintf("Hi %s,\n\nAttached is your resume (template: %s).\n\nThanks for using Resume Builder!\n", name, tpl))
	msg.AddAlternative("text/html", fmt.Sprintf("<p>Hi %s,</p>\n<p>Attached is your resume (template: <strong>%s</strong>).</p>\n<p>Thanks for using <strong>Resume Builder</strong>!</p>", html.EscapeString(name), tpl))
	msg.Attach(pdfPath, gomail.Rename(fmt.Sprintf("%s_%s_Resume.pdf", render.SafeName(name), tpl)))
	return msg, nil
}
