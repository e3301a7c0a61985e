// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the admin and public JSON handlers.
package handler

import (
	"database/sql"

	"github.com/alexedwards/scs/v2"

	"github.com/homehni/homehni-web/internal/cache"
	"github.com/homehni/homehni-web/internal/editor"
	"github.com/homehni/homehni-web/internal/geoip"
	"github.com/homehni/homehni-web/internal/mail"
	"github.com/homehni/homehni-web/internal/scheduler"
	"github.com/homehni/homehni-web/internal/seo"
	"github.com/homehni/homehni-web/internal/store"
	"github.com/homehni/homehni-web/internal/suggest"
)

// Handler bundles the dependencies shared by the HTTP handlers.
type Handler struct {
	db        *sql.DB
	queries   *store.Queries
	sm        *scs.SessionManager
	editors   *editor.Manager
	pageCache *cache.PageCache
	geo       *geoip.Lookup
	mailer    mail.Mailer
	suggester *suggest.Service
	jobs      *scheduler.Registry
	site      *seo.SiteConfig
	leadInbox string
	version   string
}

// Options carries the collaborators for New. Nil fields disable the feature
// they back (geoip enrichment, mail delivery, suggestions, jobs admin).
type Options struct {
	Sessions  *scs.SessionManager
	Editors   *editor.Manager
	PageCache *cache.PageCache
	Geo       *geoip.Lookup
	Mailer    mail.Mailer
	Suggester *suggest.Service
	Jobs      *scheduler.Registry
	Site      *seo.SiteConfig
	LeadInbox string
	Version   string
}

// New creates the handler set.
func New(db *sql.DB, opts Options) *Handler {
	return &Handler{
		db:        db,
		queries:   store.New(db),
		sm:        opts.Sessions,
		editors:   opts.Editors,
		pageCache: opts.PageCache,
		geo:       opts.Geo,
		mailer:    opts.Mailer,
		suggester: opts.Suggester,
		jobs:      opts.Jobs,
		site:      opts.Site,
		leadInbox: opts.LeadInbox,
		version:   opts.Version,
	}
}
