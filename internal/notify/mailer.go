// Package notify delivers order notifications by mail and by broadcasting
// events to the admin channel.
package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"storefront/internal/config"

	"github.com/rs/zerolog"
)

// Message is a plain-text email.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Mailer sends email.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer sends mail through an SMTP relay.
type SMTPMailer struct {
	addr    string
	host    string
	from    string
	auth    smtp.Auth
	tlsConf *tls.Config
	logger  zerolog.Logger
}

// NewSMTPMailer creates a mailer for the configured relay. STARTTLS is used
// whenever the relay offers it, and PLAIN auth when a username is set.
func NewSMTPMailer(cfg config.SMTPConfig, logger zerolog.Logger) *SMTPMailer {
	m := &SMTPMailer{
		addr:    cfg.Address(),
		host:    cfg.Host,
		from:    cfg.From,
		tlsConf: &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12},
		logger:  logger.With().Str("component", "smtp_mailer").Logger(),
	}
	if cfg.Username != "" {
		m.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return m
}

// Send delivers msg, honouring the context deadline for the whole exchange.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("mail has no recipients")
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", m.addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to start SMTP session: %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(m.tlsConf.Clone()); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}
	if m.auth != nil {
		if err := c.Auth(m.auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err := c.Mail(m.from); err != nil {
		return fmt.Errorf("SMTP MAIL FROM failed: %w", err)
	}
	for _, rcpt := range msg.To {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("SMTP RCPT TO %s failed: %w", rcpt, err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("SMTP DATA failed: %w", err)
	}
	if _, err := w.Write(buildMessage(m.from, msg, time.Now())); err != nil {
		return fmt.Errorf("failed to write mail body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish mail body: %w", err)
	}

	m.logger.Debug().Strs("to", msg.To).Str("subject", msg.Subject).Msg("mail sent")
	return c.Quit()
}

// buildMessage renders msg as a UTF-8 plain-text RFC 5322 message.
func buildMessage(from string, msg Message, date time.Time) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", date.Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	return buf.Bytes()
}

// LogMailer writes mail to the log instead of sending it. It is used when
// SMTP is disabled.
type LogMailer struct {
	logger zerolog.Logger
}

// NewLogMailer creates a mailer that only logs.
func NewLogMailer(logger zerolog.Logger) *LogMailer {
	return &LogMailer{logger: logger.With().Str("component", "log_mailer").Logger()}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info().
		Strs("to", msg.To).
		Str("subject", msg.Subject).
		Str("body", msg.Body).
		Msg("mail not sent, SMTP disabled")
	return nil
}

// NewMailer returns an SMTP mailer when SMTP is enabled, otherwise a
// logging mailer.
func NewMailer(cfg config.SMTPConfig, logger zerolog.Logger) Mailer {
	if !cfg.Enabled {
		logger.Info().Msg("SMTP disabled, mail will be logged only")
		return NewLogMailer(logger)
	}
	return NewSMTPMailer(cfg, logger)
}
