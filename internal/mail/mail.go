// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package mail delivers lead notifications to the service teams. Delivery is
// behind the Mailer interface so handlers and the scheduler never care whether
// mail is real SMTP or a development log.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/homehni/homehni-web/internal/geoip"
	"github.com/homehni/homehni-web/internal/model"
)

// Mailer sends one message. Implementations must be safe for concurrent use.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPConfig holds SMTP connection settings.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// SMTPMailer delivers mail over SMTP with PLAIN auth.
type SMTPMailer struct {
	cfg SMTPConfig
}

// NewSMTPMailer returns a Mailer backed by the given SMTP server.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send delivers one message. The context is checked before dialing; net/smtp
// does not support mid-send cancellation.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := buildMessage(m.cfg.From, to, subject, body)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}
	return nil
}

// LogMailer writes messages to the log instead of sending them. Used in
// development and as the fallback when SMTP is not configured.
type LogMailer struct{}

// Send logs the message.
func (LogMailer) Send(_ context.Context, to, subject, body string) error {
	slog.Info("mail (not sent, SMTP disabled)",
		"to", to,
		"subject", subject,
		"bytes", len(body),
	)
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var sb strings.Builder
	sb.WriteString("From: " + from + "\r\n")
	sb.WriteString("To: " + to + "\r\n")
	sb.WriteString("Subject: " + subject + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)
	return []byte(sb.String())
}

// LeadSubject builds the notification subject for a captured lead.
func LeadSubject(lead model.Lead, serviceName string) string {
	if serviceName == "" {
		serviceName = "General Enquiry"
	}
	return fmt.Sprintf("New %s lead: %s", serviceName, lead.Name)
}

// LeadBody builds the plain-text notification body for a captured lead.
func LeadBody(lead model.Lead, serviceName string) string {
	var sb strings.Builder
	sb.WriteString("A new enquiry was submitted on the website.\n\n")
	writeField(&sb, "Service", serviceName)
	writeField(&sb, "Name", lead.Name)
	writeField(&sb, "Email", lead.Email)
	writeField(&sb, "Phone", lead.Phone)
	writeField(&sb, "Message", lead.Message)
	if lead.Country != "" {
		writeField(&sb, "Country", geoip.CountryName(lead.Country))
	}
	writeField(&sb, "Browser", lead.Browser)
	writeField(&sb, "Device", lead.Device)
	sb.WriteString("\nSubmitted at: " + lead.CreatedAt.Format("02 Jan 2006 15:04 MST") + "\n")
	return sb.String()
}

func writeField(sb *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	sb.WriteString(label + ": " + value + "\n")
}
