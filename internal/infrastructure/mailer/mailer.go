package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/RealSujal/community-app/internal/infrastructure/config"
)

// Purpose selects the template of an OTP mail
type Purpose string

const (
	PurposeRegister Purpose = "register"
	PurposeReset    Purpose = "reset"
)

// Mailer delivers one-time codes to users
type Mailer interface {
	SendOTP(to, otp string, purpose Purpose, expiry time.Duration) error
}

// Message is a rendered OTP mail
type Message struct {
	Subject string
	HTML    string
}

var otpTemplate = template.Must(template.New("otp").Parse(`<p>Hi there,</p>
<p>{{.Intro}}</p>
<h2>{{.OTP}}</h2>
<p>This OTP will expire in {{.Minutes}} minutes.</p>
<p>The Community App Team</p>
`))

// RenderOTP builds the subject and body for purpose
func RenderOTP(otp string, purpose Purpose, expiry time.Duration) (Message, error) {
	subject := "Your OTP for Registration"
	intro := "Thanks for registering. Use the following OTP to verify your email:"
	if purpose == PurposeReset {
		subject = "Your OTP to Reset Password"
		intro = "You requested to reset your password. Use the following OTP:"
	}

	var buf bytes.Buffer
	err := otpTemplate.Execute(&buf, map[string]interface{}{
		"Intro":   intro,
		"OTP":     otp,
		"Minutes": int(expiry.Minutes()),
	})
	if err != nil {
		return Message{}, err
	}
	return Message{Subject: subject, HTML: buf.String()}, nil
}

// SMTPMailer sends mail through an SMTP relay
type SMTPMailer struct {
	dialer   *gomail.Dialer
	fromName string
	fromAddr string
}

// NewSMTPMailer creates a mailer from the SMTP_* settings of cfg
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		dialer:   gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		fromName: cfg.EmailFromName,
		fromAddr: cfg.EmailFromAddress,
	}
}

// SendOTP renders and sends an OTP mail
func (m *SMTPMailer) SendOTP(to, otp string, purpose Purpose, expiry time.Duration) error {
	msg, err := RenderOTP(otp, purpose, expiry)
	if err != nil {
		return err
	}

	from := m.fromAddr
	if from == "" {
		from = m.dialer.Username
	}

	mail := gomail.NewMessage()
	mail.SetAddressHeader("From", from, m.fromName)
	mail.SetHeader("To", to)
	mail.SetHeader("Subject", msg.Subject)
	mail.SetBody("text/html", msg.HTML)

	if err := m.dialer.DialAndSend(mail); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
