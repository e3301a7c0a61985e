// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"fmt"
	"strings"
	"time"
)

// GenerateSecurityTxt renders an RFC 9116 security.txt with the disclosure
// contact and an expiry date. A zero expires defaults to a year out so the
// file never ships stale by accident.
func GenerateSecurityTxt(contact string, expires time.Time) string {
	if expires.IsZero() {
		expires = time.Now().AddDate(1, 0, 0)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Contact: %s\n", contact)
	fmt.Fprintf(&sb, "Expires: %s\n", expires.UTC().Format(time.RFC3339))
	sb.WriteString("Preferred-Languages: en\n")
	return sb.String()
}
