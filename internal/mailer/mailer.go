// Package mailer delivers invitation emails. Delivery is best-effort:
// callers treat a send failure as retryable, never as a reason to roll
// back the invitation.
package mailer

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/puentehua/centro-admin/pkg/config"
)

// Sender delivers a staff invitation out-of-band.
type Sender interface {
	SendInvitation(email, role, token string, expiresAt time.Time) error
}

type SMTPSender struct {
	cfg       *config.SMTPConfig
	publicURL string
}

func NewSMTPSender(cfg *config.SMTPConfig, publicURL string) *SMTPSender {
	return &SMTPSender{cfg: cfg, publicURL: publicURL}
}

func (s *SMTPSender) SendInvitation(email, role, token string, expiresAt time.Time) error {
	acceptURL := fmt.Sprintf("%s/invite/%s", s.publicURL, token)

	body := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: You have been invited to the Puente Hua admin\r\n\r\n"+
			"You have been invited to join as %s.\r\n\r\n"+
			"Accept your invitation here: %s\r\n\r\n"+
			"The link expires at %s.\r\n",
		s.cfg.From, email, role, acceptURL, expiresAt.Format(time.RFC1123),
	)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var a smtp.Auth
	if s.cfg.User != "" {
		a = smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	}

	return smtp.SendMail(addr, a, s.cfg.From, []string{email}, []byte(body))
}

var _ Sender = (*SMTPSender)(nil)
