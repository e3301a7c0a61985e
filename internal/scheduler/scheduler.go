// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the recurring background jobs: publishing scheduled
// pages, mailing the daily lead digest, reloading the GeoIP database, and
// pruning old event log entries.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/homehni/homehni-web/internal/geoip"
	"github.com/homehni/homehni-web/internal/mail"
	"github.com/homehni/homehni-web/internal/store"
)

// eventRetention is how long event log entries are kept before pruning.
const eventRetention = 90 * 24 * time.Hour

// PageInvalidator clears cached rendered pages after scheduled publishes.
type PageInvalidator interface {
	InvalidateAll(ctx context.Context) error
}

// Scheduler handles the recurring background jobs.
type Scheduler struct {
	db        *sql.DB
	queries   *store.Queries
	cron      *cron.Cron
	registry  *Registry
	logger    *slog.Logger
	geo       *geoip.Lookup
	mailer    mail.Mailer
	leadInbox string
	pages     PageInvalidator
}

// Options carries the optional collaborators for New. Nil fields disable the
// corresponding job.
type Options struct {
	Geo       *geoip.Lookup
	Mailer    mail.Mailer
	LeadInbox string
	Pages     PageInvalidator
}

// New creates a new scheduler instance.
func New(db *sql.DB, logger *slog.Logger, opts Options) *Scheduler {
	return &Scheduler{
		db:        db,
		queries:   store.New(db),
		cron:      cron.New(),
		registry:  NewRegistry(logger),
		logger:    logger,
		geo:       opts.Geo,
		mailer:    opts.Mailer,
		leadInbox: opts.LeadInbox,
		pages:     opts.Pages,
	}
}

// Registry exposes the job registry for the admin jobs endpoint.
func (s *Scheduler) Registry() *Registry {
	return s.registry
}

// Start registers all jobs and begins the cron loop.
func (s *Scheduler) Start() error {
	if err := s.addJob("publish_scheduled_pages", "Publish pages whose scheduled time has passed", "* * * * *", s.publishScheduledPages); err != nil {
		return err
	}
	if err := s.addJob("prune_events", "Delete event log entries older than 90 days", "30 2 * * *", s.pruneEvents); err != nil {
		return err
	}
	if s.geo != nil {
		if err := s.addJob("geoip_reload", "Reload the GeoIP database if the file changed", "17 3 * * *", s.reloadGeoIP); err != nil {
			return err
		}
	}
	if s.mailer != nil && s.leadInbox != "" {
		if err := s.addJob("lead_digest", "Mail yesterday's leads to the lead inbox", "0 8 * * *", s.sendLeadDigest); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// addJob wires a job into both the cron instance and the registry.
func (s *Scheduler) addJob(name, description, schedule string, fn func() error) error {
	jobFunc := func() {
		if err := fn(); err != nil {
			s.logger.Error("scheduled job failed", "job", name, "error", err)
		}
	}

	entryID, err := s.cron.AddFunc(schedule, jobFunc)
	if err != nil {
		return err
	}

	s.registry.Register(name, description, schedule, s.cron, entryID, jobFunc, fn)
	return nil
}

// publishScheduledPages flips pages whose scheduled time has passed to
// published and invalidates the page cache so the new content is served.
func (s *Scheduler) publishScheduledPages() error {
	ctx := context.Background()
	now := time.Now()

	published, err := s.queries.PublishDuePages(ctx, now)
	if err != nil {
		return err
	}
	if published == 0 {
		return nil
	}

	s.logger.Info("published scheduled pages", "count", published, "category", "scheduler")

	if s.pages != nil {
		if err := s.pages.InvalidateAll(ctx); err != nil {
			s.logger.Warn("failed to invalidate page cache after scheduled publish", "error", err)
		}
	}
	return nil
}

// pruneEvents deletes event log entries past the retention window.
func (s *Scheduler) pruneEvents() error {
	ctx := context.Background()
	pruned, err := s.queries.PruneEvents(ctx, time.Now().Add(-eventRetention))
	if err != nil {
		return err
	}
	if pruned > 0 {
		s.logger.Info("pruned event log", "count", pruned, "category", "scheduler")
	}
	return nil
}

// reloadGeoIP reloads the MaxMind database if the file changed on disk.
func (s *Scheduler) reloadGeoIP() error {
	if err := s.geo.Reload(); err != nil {
		return err
	}
	s.logger.Debug("geoip database checked for reload")
	return nil
}

// sendLeadDigest mails a summary of the last 24 hours of leads to the lead
// inbox. Days with no leads send nothing.
func (s *Scheduler) sendLeadDigest() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	leads, err := s.queries.ListLeadsSince(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		return err
	}
	if len(leads) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("Leads captured in the last 24 hours:\n\n")
	for _, lead := range leads {
		sb.WriteString(lead.CreatedAt.Format("02 Jan 15:04"))
		sb.WriteString("  ")
		sb.WriteString(lead.Name)
		if lead.Service != "" {
			sb.WriteString(" (")
			sb.WriteString(lead.Service)
			sb.WriteString(")")
		}
		sb.WriteString("  ")
		sb.WriteString(lead.Email)
		if lead.Phone != "" {
			sb.WriteString("  ")
			sb.WriteString(lead.Phone)
		}
		sb.WriteString("\n")
	}

	subject := "Daily lead digest: " + time.Now().Format("02 Jan 2006")
	if err := s.mailer.Send(ctx, s.leadInbox, subject, sb.String()); err != nil {
		return err
	}

	s.logger.Info("sent lead digest", "leads", len(leads), "category", "lead")
	return nil
}
