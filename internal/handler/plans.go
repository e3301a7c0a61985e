// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/homehni/homehni-web/internal/pricing"
)

// planResponse is one plan with its price breakdown attached.
type planResponse struct {
	pricing.Plan
	Price  pricing.Breakdown `json:"price"`
	IsFree bool              `json:"is_free"`
}

func plansToResponse(plans []pricing.Plan) []planResponse {
	result := make([]planResponse, 0, len(plans))
	for _, p := range plans {
		result = append(result, planResponse{
			Plan:   p,
			Price:  p.PriceBreakdown(),
			IsFree: p.IsFree(),
		})
	}
	return result
}

// ListPlans handles GET /api/plans. Without an audience parameter it returns
// the plans for every audience keyed by audience name.
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	audience := r.URL.Query().Get("audience")

	if audience != "" {
		if !pricing.ValidAudience(audience) {
			writeJSONError(w, http.StatusNotFound, "Unknown audience")
			return
		}
		writeJSONSuccess(w, map[string]any{
			"audience": audience,
			"plans":    plansToResponse(pricing.PlansFor(pricing.Audience(audience))),
		})
		return
	}

	all := make(map[string][]planResponse, len(pricing.Audiences()))
	for _, aud := range pricing.Audiences() {
		all[string(aud)] = plansToResponse(pricing.PlansFor(aud))
	}
	writeJSONSuccess(w, map[string]any{"audiences": all})
}
