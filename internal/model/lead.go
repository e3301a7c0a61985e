// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"regexp"
	"strings"
	"time"
)

// emailRegex is a pragmatic address check; deliverability is the mail
// collaborator's problem.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Lead is one captured service enquiry from a landing page form.
type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Service   string    `json:"service"`
	Message   string    `json:"message,omitempty"`
	Country   string    `json:"country,omitempty"`
	Browser   string    `json:"browser,omitempty"`
	Device    string    `json:"device,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the lead's required fields and returns a map of
// field name to error message. An empty map means the lead is valid.
func (l *Lead) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(l.Name) == "" {
		errs["name"] = "Name is required"
	}
	if strings.TrimSpace(l.Email) == "" {
		errs["email"] = "Email is required"
	} else if !emailRegex.MatchString(l.Email) {
		errs["email"] = "Invalid email address"
	}
	if strings.TrimSpace(l.Service) == "" {
		errs["service"] = "Service is required"
	}
	return errs
}
