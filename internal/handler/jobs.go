// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// ListJobs handles GET /api/admin/jobs.
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	if h.jobs == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "Scheduler is not running")
		return
	}
	writeJSONSuccess(w, map[string]any{"jobs": h.jobs.List()})
}

// TriggerJob handles POST /api/admin/jobs/{name}/trigger.
func (h *Handler) TriggerJob(w http.ResponseWriter, r *http.Request) {
	if h.jobs == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "Scheduler is not running")
		return
	}
	name := chi.URLParam(r, "name")

	if err := h.jobs.TriggerNow(name); err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeJSONError(w, http.StatusNotFound, "Job not found")
			return
		}
		slog.Error("manual job run failed", "category", "scheduler", "job", name, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Job failed")
		return
	}

	slog.Info("job triggered manually", "category", "scheduler", "job", name)
	writeJSONSuccess(w, nil)
}

// UpdateJobSchedule handles PUT /api/admin/jobs/{name}/schedule.
func (h *Handler) UpdateJobSchedule(w http.ResponseWriter, r *http.Request) {
	if h.jobs == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "Scheduler is not running")
		return
	}
	name := chi.URLParam(r, "name")

	var req struct {
		Schedule string `json:"schedule"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Schedule) == "" {
		writeJSONValidationError(w, map[string]string{"schedule": "Schedule is required"})
		return
	}

	if err := h.jobs.UpdateSchedule(name, req.Schedule); err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			writeJSONError(w, http.StatusNotFound, "Job not found")
		case strings.Contains(err.Error(), "invalid cron expression"):
			writeJSONValidationError(w, map[string]string{"schedule": "Invalid cron expression"})
		default:
			slog.Error("failed to update job schedule", "category", "scheduler", "job", name, "error", err)
			writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	writeJSONSuccess(w, nil)
}

// ResetJobSchedule handles DELETE /api/admin/jobs/{name}/schedule.
func (h *Handler) ResetJobSchedule(w http.ResponseWriter, r *http.Request) {
	if h.jobs == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "Scheduler is not running")
		return
	}
	name := chi.URLParam(r, "name")

	if err := h.jobs.ResetSchedule(name); err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeJSONError(w, http.StatusNotFound, "Job not found")
			return
		}
		slog.Error("failed to reset job schedule", "category", "scheduler", "job", name, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSONSuccess(w, nil)
}
