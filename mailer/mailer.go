// Package mailer delivers password-reset tokens over SMTP. When no SMTP
// host is configured the mailer reports itself disabled and callers fall
// back to returning the token in the API response.
package mailer

import (
	"fmt"
	"os"

	"github.com/spf13/cast"
	"gopkg.in/gomail.v2"
)

type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func FromEnv() *Mailer {
	return &Mailer{
		host:     os.Getenv("SMTP_HOST"),
		port:     cast.ToInt(os.Getenv("SMTP_PORT")),
		username: os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     os.Getenv("SMTP_FROM"),
	}
}

func (m *Mailer) Enabled() bool {
	return m != nil && m.host != ""
}

func (m *Mailer) SendResetToken(to, token string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Kassua - Réinitialisation du mot de passe")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Votre token de réinitialisation (valable 1 heure) : %s", token))

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	return dialer.DialAndSend(msg)
}
