// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// ContentPage is a marketing page assembled out of ordered sections.
// A page with ID zero has not been persisted yet.
type ContentPage struct {
	ID              int64        `json:"id"`
	Title           string       `json:"title"`
	Slug            string       `json:"slug"`
	Description     string       `json:"description"`
	MetaTitle       string       `json:"meta_title,omitempty"`
	MetaDescription string       `json:"meta_description,omitempty"`
	MetaKeywords    []string     `json:"meta_keywords,omitempty"`
	IsPublished     bool         `json:"is_published"`
	ScheduledAt     sql.NullTime `json:"scheduled_at,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// IsPersisted reports whether the page has been written to the store.
func (p *ContentPage) IsPersisted() bool {
	return p.ID != 0
}
