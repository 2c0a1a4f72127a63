package mailer

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/tradelink/marketplace/internal/config"
)

type provider struct {
	host     string
	port     string
	user     string
	password string
}

var (
	from      string
	appURL    string
	primary   provider
	secondary provider
)

func Init(cfg *config.Config) {
	from = cfg.SMTPFrom
	appURL = cfg.AppURL
	primary = provider{cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword}
	secondary = provider{cfg.SMTPFallbackHost, cfg.SMTPFallbackPort, cfg.SMTPFallbackUser, cfg.SMTPFallbackPassword}
}

// send tries the primary provider, then the secondary once. A failure is
// logged and returned as a warning string; callers never fail the request on it.
func send(to, subject, htmlBody string) string {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		from, to, subject, htmlBody,
	))

	providers := []provider{primary, secondary}
	var lastErr error
	for _, p := range providers {
		if p.host == "" {
			continue
		}
		auth := smtp.PlainAuth("", p.user, p.password, p.host)
		if err := smtp.SendMail(p.host+":"+p.port, auth, from, []string{to}, msg); err != nil {
			log.Printf("⚠️  Email delivery via %s failed: %v", p.host, err)
			lastErr = err
			continue
		}
		return ""
	}

	if lastErr != nil {
		return fmt.Sprintf("email could not be delivered: %v", lastErr)
	}
	return "email delivery is not configured"
}

// SendVerificationEmail returns a warning string when delivery failed, "" on success.
func SendVerificationEmail(to, token string) string {
	link := fmt.Sprintf("%s/verify-email?token=%s", appURL, token)
	body := fmt.Sprintf(`
		<h2>Verify your email</h2>
		<p>Welcome to TradeLink. Click the link below to verify your email address.</p>
		<p><a href="%s">Verify Email</a></p>
		<p>This link expires in 24 hours.</p>`, link)
	return send(to, "Verify your email address", body)
}

func SendResetEmail(to, token string) string {
	link := fmt.Sprintf("%s/reset-password?token=%s", appURL, token)
	body := fmt.Sprintf(`
		<h2>Password reset</h2>
		<p>Click the link below to choose a new password.</p>
		<p><a href="%s">Reset Password</a></p>
		<p>This link expires in 1 hour.</p>`, link)
	return send(to, "Reset your password", body)
}
