// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/homehni/homehni-web/internal/editor"
	"github.com/homehni/homehni-web/internal/suggest"
)

// SuggestContent handles POST /api/admin/suggest. When no field list is
// given it falls back to the text fields of the section type's form layout.
func (h *Handler) SuggestContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.suggester == nil || !h.suggester.Enabled() {
		writeJSONError(w, http.StatusServiceUnavailable, "Suggestions are not configured")
		return
	}

	var req struct {
		SectionType string   `json:"section_type"`
		PageTitle   string   `json:"page_title"`
		Service     string   `json:"service"`
		Tone        string   `json:"tone"`
		Fields      []string `json:"fields"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.SectionType == "" {
		writeJSONValidationError(w, map[string]string{"section_type": "Section type is required"})
		return
	}

	fields := req.Fields
	if len(fields) == 0 {
		fields = layoutTextFields(req.SectionType)
	}
	if len(fields) == 0 {
		writeJSONValidationError(w, map[string]string{"fields": "No suggestable fields for this section type"})
		return
	}

	content, err := h.suggester.Suggest(ctx, suggest.Request{
		SectionType: req.SectionType,
		PageTitle:   req.PageTitle,
		Service:     req.Service,
		Tone:        req.Tone,
		Fields:      fields,
	})
	if err != nil {
		if errors.Is(err, suggest.ErrDisabled) {
			writeJSONError(w, http.StatusServiceUnavailable, "Suggestions are not configured")
			return
		}
		slog.Error("content suggestion failed", "error", err, "section_type", req.SectionType)
		writeJSONError(w, http.StatusBadGateway, "Suggestion failed")
		return
	}

	writeJSONSuccess(w, map[string]any{"content": content})
}

// layoutTextFields returns the flat text fields of a section type's layout.
// List fields are skipped; suggestions fill headings and copy, not item grids.
func layoutTextFields(sectionType string) []string {
	layout := editor.LayoutFor(sectionType)
	var fields []string
	for _, f := range layout.Fields {
		if f.Kind == editor.FieldText || f.Kind == editor.FieldTextarea {
			fields = append(fields, f.Key)
		}
	}
	return fields
}
