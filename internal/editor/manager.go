// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package editor

import (
	"sync"

	"github.com/homehni/homehni-web/internal/notify"
)

// Session binds one editor to the recorder its handler drains notifications
// from. One session per admin browser session.
type Session struct {
	Editor   *Editor
	Recorder *notify.Recorder
}

// Manager owns the live editor sessions, keyed by session token. There is no
// cross-session coordination; two sessions editing the same page race with
// last-write-wins semantics at the store.
type Manager struct {
	mu       sync.Mutex
	storage  Storage
	sessions map[string]*Session
}

// NewManager creates a session manager backed by the given storage.
func NewManager(storage Storage) *Manager {
	return &Manager{
		storage:  storage,
		sessions: make(map[string]*Session),
	}
}

// Open returns the session for a token, creating it on first use.
func (m *Manager) Open(token string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[token]; ok {
		return s
	}
	recorder := &notify.Recorder{}
	s := &Session{
		Editor:   New(m.storage, notify.Multi(recorder, notify.Slog())),
		Recorder: recorder,
	}
	m.sessions[token] = s
	return s
}

// Get returns the session for a token if one is open.
func (m *Manager) Get(token string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	return s, ok
}

// Discard drops a session and its unsaved state.
func (m *Manager) Discard(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}
