// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Event log levels
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event log categories
const (
	EventCategoryContent   = "content"
	EventCategoryLead      = "lead"
	EventCategoryScheduler = "scheduler"
	EventCategoryCache     = "cache"
	EventCategorySystem    = "system"
)

// Event is one audit log entry. Warnings and errors emitted through slog are
// mirrored here so operators can review them from the admin surface.
type Event struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	Metadata  string    `json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}
