// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/homehni/homehni-web/internal/editor"
	"github.com/homehni/homehni-web/internal/model"
	"github.com/homehni/homehni-web/internal/render"
)

// editorSessionKey names the session value holding the editor session token.
// The scs token itself rotates on renewal, so editor state is keyed by a
// separate stable ID stored inside the session.
const editorSessionKey = "editor_session_id"

// editorToken returns the stable editor session ID for this browser session,
// minting one on first use.
func (h *Handler) editorToken(r *http.Request) string {
	token := h.sm.GetString(r.Context(), editorSessionKey)
	if token == "" {
		token = uuid.NewString()
		h.sm.Put(r.Context(), editorSessionKey, token)
	}
	return token
}

// session returns the editor session bound to this request.
func (h *Handler) session(r *http.Request) *editor.Session {
	return h.editors.Open(h.editorToken(r))
}

// editorStateResponse renders the full editor state: the page draft, its
// sections, and rendered previews keyed by section ID.
func editorStateResponse(ed *editor.Editor) map[string]any {
	sections := ed.Sections()
	previews := make(map[string]render.Preview, len(sections))
	for _, sec := range sections {
		previews[sec.ID.String()] = render.Section(sec)
	}
	page := ed.Page()
	return map[string]any{
		"page":     pageToResponse(page),
		"creating": !page.IsPersisted(),
		"sections": sectionsToResponse(sections),
		"previews": previews,
	}
}

// OpenEditor handles POST /api/admin/editor/open. With a page_id it loads
// that page for editing; without one it resets the editor to creation mode.
func (h *Handler) OpenEditor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		PageID *int64 `json:"page_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	sess := h.session(r)

	if req.PageID != nil {
		page, ok := h.requirePage(ctx, w, *req.PageID)
		if !ok {
			return
		}
		if err := sess.Editor.Initialize(ctx, &page, false); err != nil {
			slog.Error("failed to initialize editor", "error", err, "page_id", page.ID)
			writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
	} else {
		if err := sess.Editor.Initialize(ctx, nil, true); err != nil {
			slog.Error("failed to initialize editor", "error", err)
			writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
	}

	writeJSONSuccess(w, editorStateResponse(sess.Editor))
}

// GetEditorState handles GET /api/admin/editor.
func (h *Handler) GetEditorState(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	writeJSONSuccess(w, editorStateResponse(sess.Editor))
}

// UpdateEditorPage handles PUT /api/admin/editor/page. All fields are
// optional; only the ones present in the body are applied to the draft.
func (h *Handler) UpdateEditorPage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title           *string  `json:"title"`
		Slug            *string  `json:"slug"`
		Description     *string  `json:"description"`
		MetaTitle       *string  `json:"meta_title"`
		MetaDescription *string  `json:"meta_description"`
		MetaKeywords    []string `json:"meta_keywords"`
		IsPublished     *bool    `json:"is_published"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	sess := h.session(r)
	ed := sess.Editor

	if req.Title != nil {
		ed.SetTitle(*req.Title)
	}
	if req.Slug != nil {
		ed.SetSlug(*req.Slug)
	}
	if req.Description != nil {
		ed.SetDescription(*req.Description)
	}
	if req.MetaTitle != nil || req.MetaDescription != nil || req.MetaKeywords != nil {
		page := ed.Page()
		metaTitle := page.MetaTitle
		metaDescription := page.MetaDescription
		keywords := page.MetaKeywords
		if req.MetaTitle != nil {
			metaTitle = *req.MetaTitle
		}
		if req.MetaDescription != nil {
			metaDescription = *req.MetaDescription
		}
		if req.MetaKeywords != nil {
			keywords = req.MetaKeywords
		}
		ed.SetMeta(metaTitle, metaDescription, keywords)
	}
	if req.IsPublished != nil {
		ed.SetPublished(*req.IsPublished)
	}

	writeJSONSuccess(w, map[string]any{"page": pageToResponse(ed.Page())})
}

// AddEditorSection handles POST /api/admin/editor/sections.
func (h *Handler) AddEditorSection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SectionType string `json:"section_type"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	sess := h.session(r)
	section, err := sess.Editor.AddSection(req.SectionType)
	if err != nil {
		writeJSONValidationError(w, map[string]string{"section_type": "Section type is required"})
		return
	}

	writeJSONSuccess(w, map[string]any{
		"section": sectionToResponse(section),
		"preview": render.Section(section),
	})
}

// UpdateEditorSection handles PUT /api/admin/editor/sections/{id}. The ID may
// be a pending token for a section not yet saved.
func (h *Handler) UpdateEditorSection(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseSectionID(chi.URLParam(r, "id"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid section ID")
		return
	}

	var req struct {
		Content  model.SectionContent `json:"content"`
		IsActive *bool                `json:"is_active"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	sess := h.session(r)
	section, ok := findSection(sess.Editor.Sections(), id)
	if !ok {
		writeJSONError(w, http.StatusNotFound, "Section not found")
		return
	}

	if req.Content != nil {
		section.Content = req.Content
	}
	if req.IsActive != nil {
		section.IsActive = *req.IsActive
	}

	if err := sess.Editor.UpdateSection(section); err != nil {
		writeJSONError(w, http.StatusNotFound, "Section not found")
		return
	}

	writeJSONSuccess(w, map[string]any{
		"section": sectionToResponse(section),
		"preview": render.Section(section),
	})
}

// RemoveEditorSection handles DELETE /api/admin/editor/sections/{id}.
func (h *Handler) RemoveEditorSection(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseSectionID(chi.URLParam(r, "id"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid section ID")
		return
	}

	sess := h.session(r)
	if err := sess.Editor.RemoveSection(id); err != nil {
		writeJSONError(w, http.StatusNotFound, "Section not found")
		return
	}

	writeJSONSuccess(w, nil)
}

// SaveEditor handles POST /api/admin/editor/save.
func (h *Handler) SaveEditor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := h.session(r)

	page, err := sess.Editor.Save(ctx)
	if err != nil {
		if errors.Is(err, editor.ErrValidation) {
			field := "title"
			if strings.Contains(err.Error(), "slug") {
				field = "slug"
			}
			writeJSONValidationError(w, map[string]string{field: "Page " + field + " is required"})
			return
		}
		slog.Error("failed to save page", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to save page")
		return
	}

	h.invalidatePage(ctx, page.Slug)
	slog.Info("page saved", "page_id", page.ID, "slug", page.Slug)

	writeJSONSuccess(w, map[string]any{
		"page":     pageToResponse(page),
		"sections": sectionsToResponse(sess.Editor.Sections()),
	})
}

// DiscardEditor handles DELETE /api/admin/editor. Unsaved draft state is gone.
func (h *Handler) DiscardEditor(w http.ResponseWriter, r *http.Request) {
	h.editors.Discard(h.editorToken(r))
	writeJSONSuccess(w, nil)
}

// EditorNotifications handles GET /api/admin/editor/notifications, draining
// the notifications recorded since the last poll.
func (h *Handler) EditorNotifications(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)

	drained := sess.Recorder.Drain()
	notifications := make([]map[string]string, 0, len(drained))
	for _, n := range drained {
		notifications = append(notifications, map[string]string{
			"title":       n.Title,
			"description": n.Description,
			"variant":     string(n.Variant),
		})
	}

	writeJSONSuccess(w, map[string]any{"notifications": notifications})
}

func findSection(sections []model.PageSection, id model.SectionID) (model.PageSection, bool) {
	for _, sec := range sections {
		if sec.ID == id {
			return sec, true
		}
	}
	return model.PageSection{}, false
}
