// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging mirrors WARN and ERROR slog records into the events table
// so operational problems are queryable next to content and lead history.
package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/homehni/homehni-web/internal/model"
	"github.com/homehni/homehni-web/internal/store"
)

// EventLogHandler decorates another slog.Handler. Records at or above the
// threshold are additionally written to the events table.
type EventLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level
}

// NewEventLogHandler wraps inner, recording WARN and above.
func NewEventLogHandler(inner slog.Handler, db *sql.DB) *EventLogHandler {
	return NewEventLogHandlerWithLevel(inner, db, slog.LevelWarn)
}

// NewEventLogHandlerWithLevel wraps inner with a custom recording threshold.
func NewEventLogHandlerWithLevel(inner slog.Handler, db *sql.DB, level slog.Level) *EventLogHandler {
	return &EventLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   level,
	}
}

func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	err := h.inner.Handle(ctx, r)

	if r.Level >= h.level {
		// Background context: the event should land even when the request
		// that produced it was already cancelled.
		_ = h.queries.CreateEvent(context.Background(), store.CreateEventParams{
			Level:    eventLevel(r.Level),
			Category: categoryFor(r),
			Message:  r.Message,
			Meta:     metadataJSON(r),
		})
	}

	return err
}

func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EventLogHandler{inner: h.inner.WithAttrs(attrs), queries: h.queries, level: h.level}
}

func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{inner: h.inner.WithGroup(name), queries: h.queries, level: h.level}
}

func eventLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return model.EventLevelError
	case level >= slog.LevelWarn:
		return model.EventLevelWarning
	default:
		return model.EventLevelInfo
	}
}

// categoryKeywords routes records without an explicit "category" attribute by
// message content.
var categoryKeywords = []struct {
	category string
	words    []string
}{
	{model.EventCategoryLead, []string{"lead", "enquiry"}},
	{model.EventCategoryContent, []string{"page", "section", "content"}},
	{model.EventCategoryScheduler, []string{"schedul", "cron", "publish"}},
	{model.EventCategoryCache, []string{"cache"}},
}

func categoryFor(r slog.Record) string {
	var explicit string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			explicit = a.Value.String()
			return false
		}
		return true
	})
	if explicit != "" {
		return explicit
	}

	msg := strings.ToLower(r.Message)
	for _, entry := range categoryKeywords {
		for _, word := range entry.words {
			if strings.Contains(msg, word) {
				return entry.category
			}
		}
	}
	return model.EventCategorySystem
}

func metadataJSON(r slog.Record) string {
	fields := make(map[string]string)
	r.Attrs(func(a slog.Attr) bool {
		if a.Key != "category" {
			fields[a.Key] = a.Value.String()
		}
		return true
	})
	if len(fields) == 0 {
		return "{}"
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return "{}"
	}
	return string(data)
}
