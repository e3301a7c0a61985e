// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/homehni/homehni-web/internal/middleware"
)

// RouterConfig carries the knobs the router needs from the app config.
type RouterConfig struct {
	SessionSecret string
	IsDevelopment bool
}

// Router builds the chi router with the full middleware chain and all
// public and admin routes.
func (h *Handler) Router(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CompressSelective(5, 1024))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment)))
	r.Use(h.sm.LoadAndSave)

	csrfMiddleware := middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment))

	// Leads come from public landing page forms; rate limit by client IP so
	// one submitter cannot flood the inbox.
	leadLimiter := middleware.NewIPRateLimiter(1.0, 5)

	r.Get("/health", h.Health)
	r.Get("/health/live", h.Liveness)
	r.Get("/health/ready", h.Readiness)

	r.Get("/sitemap.xml", h.Sitemap)
	r.Get("/robots.txt", h.Robots)
	r.Get("/.well-known/security.txt", h.SecurityTxt)

	// Public JSON API. No CSRF: these endpoints are either read-only or, for
	// the lead form, deliberately open to cross-origin embeds.
	r.Route("/api", func(r chi.Router) {
		r.Get("/pages/{slug}", h.GetPublicPage)
		r.Get("/plans", h.ListPlans)
		r.Get("/services", h.ListServices)
		r.Get("/services/{tag}", h.GetService)

		r.With(leadLimiter.Middleware()).Post("/leads", h.CreateLead)

		// Admin surface. State-changing routes sit behind CSRF; upstream
		// access control is the reverse proxy's job.
		r.Route("/admin", func(r chi.Router) {
			r.Use(csrfMiddleware)

			r.Get("/pages", h.ListPages)
			r.Get("/pages/{id}", h.GetPage)
			r.Delete("/pages/{id}", h.DeletePage)

			r.Post("/editor/open", h.OpenEditor)
			r.Get("/editor", h.GetEditorState)
			r.Delete("/editor", h.DiscardEditor)
			r.Put("/editor/page", h.UpdateEditorPage)
			r.Post("/editor/sections", h.AddEditorSection)
			r.Put("/editor/sections/{id}", h.UpdateEditorSection)
			r.Delete("/editor/sections/{id}", h.RemoveEditorSection)
			r.Post("/editor/save", h.SaveEditor)
			r.Get("/editor/notifications", h.EditorNotifications)

			r.Get("/catalog", h.GetCatalog)
			r.Get("/catalog/layouts/{type}", h.GetSectionLayout)

			r.Get("/leads", h.ListLeads)

			r.Post("/suggest", h.SuggestContent)

			r.Get("/jobs", h.ListJobs)
			r.Post("/jobs/{name}/trigger", h.TriggerJob)
			r.Put("/jobs/{name}/schedule", h.UpdateJobSchedule)
			r.Delete("/jobs/{name}/schedule", h.ResetJobSchedule)
		})
	})

	return r
}
