package infra

import (
	"fmt"
	"net/smtp"

	"tienda/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for outbound mail. When no SMTP host is
// configured SendResetLink is a logged no-op — local development has no relay.
type Mailer struct {
	host        string
	port        int
	user        string
	password    string
	from        string
	addr        string
	frontendURL string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:        cfg.SMTPHost,
		port:        cfg.SMTPPort,
		user:        cfg.SMTPUser,
		password:    cfg.SMTPPassword,
		from:        cfg.SMTPFrom,
		addr:        fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		frontendURL: cfg.FrontendURL,
	}
}

// Configured reports whether an SMTP relay is available.
func (m *Mailer) Configured() bool { return m.host != "" && m.port != 0 }

// SendResetLink mails the password-reset link carrying the raw token. The
// token exists only here and in the requester's inbox — the store keeps a hash.
func (m *Mailer) SendResetLink(to, nombre, token string) error {
	if !m.Configured() {
		return fmt.Errorf("mailer: SMTP not configured")
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", m.frontendURL, token)

	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = "Restablece tu contraseña en Tienda"
	e.Text = []byte(fmt.Sprintf(
		"Hola %s,\n\nPara restablecer tu contraseña haz clic en el siguiente enlace: %s\n\n"+
			"Si no solicitaste este cambio, ignora este email.\n\nGracias,\nEquipo Tienda",
		nombre, resetLink))

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
