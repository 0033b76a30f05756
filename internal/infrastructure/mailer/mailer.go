package mailer

import (
	"fmt"

	mail "github.com/go-mail/mail/v2"

	"github.com/jhoicas/SecureVault-api/internal/application/review"
	"github.com/jhoicas/SecureVault-api/pkg/config"
	"github.com/jhoicas/SecureVault-api/pkg/logger"
)

var _ review.Notifier = (*Mailer)(nil)

// Mailer notifica por correo al aprobador cuando se le enruta un documento.
// Si el SMTP no está configurado, se comporta como no-op.
type Mailer struct {
	dialer *mail.Dialer
	from   string
	log    *logger.Logger
}

// New construye el mailer a partir de la configuración SMTP.
func New(cfg config.SMTPConfig, log *logger.Logger) *Mailer {
	m := &Mailer{from: cfg.From, log: log}
	if cfg.Host == "" || cfg.From == "" {
		log.Warn().Msg("SMTP sin configurar, notificaciones por correo deshabilitadas")
		return m
	}
	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	m.dialer = d
	return m
}

// NotifyDocumentRouted envía el aviso de forma asíncrona. Los fallos de envío
// se registran pero nunca afectan la operación que los originó.
func (m *Mailer) NotifyDocumentRouted(toEmail, title string, versionNum int) {
	if m.dialer == nil {
		return
	}
	go func() {
		msg := mail.NewMessage()
		msg.SetHeader("From", m.from)
		msg.SetHeader("To", toEmail)
		msg.SetHeader("Subject", fmt.Sprintf("Documento pendiente de revisión: %s", title))
		msg.SetBody("text/plain", fmt.Sprintf(
			"El documento %q (versión %d) fue enrutado a tu bandeja y espera revisión.", title, versionNum))
		if err := m.dialer.DialAndSend(msg); err != nil {
			m.log.Error().Err(err).Str("to", toEmail).Msg("Error enviando notificación de revisión")
		}
	}()
}
