// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mileusna/useragent"

	"github.com/homehni/homehni-web/internal/catalog"
	"github.com/homehni/homehni-web/internal/mail"
	"github.com/homehni/homehni-web/internal/middleware"
	"github.com/homehni/homehni-web/internal/model"
	"github.com/homehni/homehni-web/internal/store"
)

// CreateLead handles POST /api/leads, the public enquiry form on service
// landing pages. Validation failures come back as a 422 with per-field
// messages; a lead is stored before any mail goes out, so a broken mailer
// never loses an enquiry.
func (h *Handler) CreateLead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Service string `json:"service"`
		Message string `json:"message"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	lead := model.Lead{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Service: req.Service,
		Message: req.Message,
	}

	fields := lead.Validate()
	if lead.Service != "" && !catalog.IsValidServiceTag(lead.Service) {
		fields["service"] = "Unknown service"
	}
	if len(fields) > 0 {
		writeJSONValidationError(w, fields)
		return
	}

	// Enrichment is best effort; an empty country or browser never blocks
	// the enquiry.
	var country string
	if h.geo != nil {
		country = h.geo.LookupCountry(middleware.GetClientIP(r))
	}
	ua := useragent.Parse(r.UserAgent())

	created, err := h.queries.CreateLead(ctx, store.CreateLeadParams{
		ID:      uuid.NewString(),
		Name:    lead.Name,
		Email:   lead.Email,
		Phone:   lead.Phone,
		Service: lead.Service,
		Message: lead.Message,
		Country: country,
		Browser: ua.Name,
		Device:  deviceKind(ua),
	})
	if err != nil {
		slog.Error("failed to store lead", "error", err, "service", lead.Service)
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	slog.Info("lead captured",
		"category", "lead",
		"lead_id", created.ID,
		"service", created.Service,
		"country", created.Country,
	)

	h.notifyLead(created)

	writeJSONSuccess(w, map[string]any{"lead": created})
}

// notifyLead mails the enquiry to the service team, falling back to the
// shared lead inbox for services without a dedicated recipient.
func (h *Handler) notifyLead(lead model.Lead) {
	if h.mailer == nil {
		return
	}

	serviceName := lead.Service
	recipient := h.leadInbox
	if svc, ok := catalog.FindService(lead.Service); ok {
		serviceName = svc.Title
		if svc.Email != "" {
			recipient = svc.Email
		}
	}
	if recipient == "" {
		return
	}

	// Mail delivery runs outside the request so a slow SMTP server cannot
	// hold up the form response.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := h.mailer.Send(ctx, recipient, mail.LeadSubject(lead, serviceName), mail.LeadBody(lead, serviceName)); err != nil {
			slog.Error("failed to send lead notification",
				"category", "lead", "lead_id", lead.ID, "recipient", recipient, "error", err)
		}
	}()
}

// ListLeads handles GET /api/admin/leads.
func (h *Handler) ListLeads(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit, offset := parsePagination(r)

	leads, err := h.queries.ListLeads(ctx, store.ListLeadsParams{Limit: limit, Offset: offset})
	if err != nil {
		slog.Error("failed to list leads", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	total, err := h.queries.CountLeads(ctx)
	if err != nil {
		slog.Error("failed to count leads", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSONSuccess(w, map[string]any{
		"leads": leads,
		"total": total,
	})
}

// deviceKind collapses the user agent into desktop, mobile, tablet or bot.
func deviceKind(ua useragent.UserAgent) string {
	switch {
	case ua.Bot:
		return "bot"
	case ua.Tablet:
		return "tablet"
	case ua.Mobile:
		return "mobile"
	case ua.Desktop:
		return "desktop"
	default:
		return ""
	}
}
