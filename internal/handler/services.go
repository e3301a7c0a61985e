// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/homehni/homehni-web/internal/catalog"
	"github.com/homehni/homehni-web/internal/seo"
)

// ListServices handles GET /api/services.
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	writeJSONSuccess(w, map[string]any{"services": catalog.Services()})
}

// GetService handles GET /api/services/{tag}, the data behind one service
// landing page. The response carries the JSON-LD schema for the page head.
func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	tag := chi.URLParam(r, "tag")

	svc, ok := catalog.FindService(tag)
	if !ok {
		writeJSONError(w, http.StatusNotFound, "Service not found")
		return
	}

	resp := map[string]any{"service": svc}
	if h.site != nil {
		resp["schema"] = seo.BuildServiceSchema(svc.Title, svc.Description, svc.Tag, h.site)
		resp["breadcrumbs"] = seo.BuildBreadcrumbSchema(h.site,
			seo.BreadcrumbItem{Name: "Services", Item: h.site.SiteURL + "/services"},
			seo.BreadcrumbItem{Name: svc.Title},
		)
	}
	writeJSONSuccess(w, resp)
}
