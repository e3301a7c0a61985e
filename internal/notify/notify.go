// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package notify is the user-facing notification collaborator. Every success
// and failure of an editing operation produces one toast-style notification;
// delivery is fire-and-forget.
package notify

import (
	"context"
	"log/slog"
	"sync"
)

// Notification variants
const (
	VariantSuccess = "success"
	VariantError   = "error"
	VariantInfo    = "info"
)

// Notification is one toast message shown to the user.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

// Notifier delivers notifications. Implementations must not block.
type Notifier interface {
	Notify(n Notification)
}

// Func adapts a function to the Notifier interface.
type Func func(Notification)

// Notify implements Notifier.
func (f Func) Notify(n Notification) { f(n) }

// Slog returns a Notifier that writes notifications to the structured log.
func Slog() Notifier {
	return Func(func(n Notification) {
		level := slog.LevelInfo
		if n.Variant == VariantError {
			level = slog.LevelWarn
		}
		slog.Log(context.Background(), level, "notification", "title", n.Title, "description", n.Description, "variant", n.Variant)
	})
}

// Recorder collects notifications so a handler can drain them into the
// response. Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	pending []Notification
}

// Notify implements Notifier.
func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, n)
}

// Drain returns and clears all pending notifications.
func (r *Recorder) Drain() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.pending
	r.pending = nil
	return out
}

// Multi fans a notification out to several notifiers.
func Multi(notifiers ...Notifier) Notifier {
	return Func(func(n Notification) {
		for _, notifier := range notifiers {
			notifier.Notify(n)
		}
	})
}
