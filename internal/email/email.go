package email

import (
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/azir-ecommerce/azir-golang/internal/config"
)

// Mailer sends transactional mail over SMTP. It is constructed once at
// startup from the loaded configuration and shared by all handlers; the
// dialer opens a fresh connection per send.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	sender string
}

// NewMailer builds a Mailer from the mail section of the configuration.
func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password),
		from:   cfg.Mail.From,
		sender: cfg.Mail.Username,
	}
}

// renderPasswordReset substitutes the username and one-time code into the
// fixed HTML template.
func renderPasswordReset(username, resetCode string) string {
	html := strings.Replace(passwordResetTemplate, "{username}", username, 1)
	return strings.Replace(html, "{resetCode}", resetCode, 1)
}

// SendPasswordResetEmail mails the one-time reset code to the user.
// Unlike a fire-and-forget dispatch, the transport error is RETURNED: the
// caller decides whether to log it, roll back the stored code, or surface
// a failure to the client.
func (m *Mailer) SendPasswordResetEmail(to, username, resetCode string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.sender, m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password Reset Code (Valid for 10 min)")
	msg.SetHeader("X-Category", "Password Reset")
	msg.SetBody("text/html", renderPasswordReset(username, resetCode))

	return m.dialer.DialAndSend(msg)
}
