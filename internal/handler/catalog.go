// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/homehni/homehni-web/internal/catalog"
	"github.com/homehni/homehni-web/internal/editor"
	"github.com/homehni/homehni-web/internal/model"
)

// GetCatalog handles GET /api/admin/catalog: the section types the editor can
// offer, with labels and default content.
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	types := catalog.Types()
	entries := make([]map[string]any, 0, len(types))
	for _, t := range types {
		entries = append(entries, map[string]any{
			"section_type":    t,
			"label":           model.HumanizeSectionType(t),
			"default_content": catalog.FindDefaultContent(t),
		})
	}
	writeJSONSuccess(w, map[string]any{"types": entries})
}

// GetSectionLayout handles GET /api/admin/catalog/layouts/{type}, the form
// layout the section editor renders for a section type.
func (h *Handler) GetSectionLayout(w http.ResponseWriter, r *http.Request) {
	sectionType := chi.URLParam(r, "type")
	writeJSONSuccess(w, map[string]any{
		"section_type": sectionType,
		"label":        model.HumanizeSectionType(sectionType),
		"layout":       editor.LayoutFor(sectionType),
	})
}
