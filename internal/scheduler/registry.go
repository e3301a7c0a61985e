// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// scheduleParser accepts the standard five-field form plus @-descriptors,
// matching what cron.New without options accepts at AddFunc time.
var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// jobEntry pairs a registered job with its live cron entry.
type jobEntry struct {
	description     string
	defaultSchedule string
	schedule        string
	cron            *cron.Cron
	entryID         cron.EntryID
	run             func()
	trigger         func() error // nil when the job cannot run on demand
}

// JobInfo is one job as the admin jobs API reports it.
type JobInfo struct {
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	DefaultSchedule string    `json:"default_schedule"`
	Schedule        string    `json:"schedule"`
	IsOverridden    bool      `json:"is_overridden"`
	LastRun         time.Time `json:"last_run"`
	NextRun         time.Time `json:"next_run"`
	CanTrigger      bool      `json:"can_trigger"`
}

// Registry tracks the scheduled jobs so the admin surface can list, retune,
// and manually trigger them. Schedule overrides live in memory only and reset
// on restart.
type Registry struct {
	logger *slog.Logger
	mu     sync.RWMutex
	jobs   map[string]*jobEntry
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger: logger,
		jobs:   make(map[string]*jobEntry),
	}
}

// Register records a job already added to cronInst under entryID. trigger may
// be nil for jobs that only make sense on their schedule.
func (r *Registry) Register(name, description, defaultSchedule string, cronInst *cron.Cron, entryID cron.EntryID, run func(), trigger func() error) {
	r.mu.Lock()
	r.jobs[name] = &jobEntry{
		description:     description,
		defaultSchedule: defaultSchedule,
		schedule:        defaultSchedule,
		cron:            cronInst,
		entryID:         entryID,
		run:             run,
		trigger:         trigger,
	}
	r.mu.Unlock()

	r.logger.Debug("registered scheduled job", "name", name, "schedule", defaultSchedule)
}

// List returns every registered job sorted by name.
func (r *Registry) List() []JobInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]JobInfo, 0, len(r.jobs))
	for name, job := range r.jobs {
		info := JobInfo{
			Name:            name,
			Description:     job.description,
			DefaultSchedule: job.defaultSchedule,
			Schedule:        job.schedule,
			IsOverridden:    job.schedule != job.defaultSchedule,
			CanTrigger:      job.trigger != nil,
		}
		if job.cron != nil {
			entry := job.cron.Entry(job.entryID)
			info.LastRun = entry.Prev
			info.NextRun = entry.Next
		}
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// TriggerNow runs a job immediately, outside its schedule.
func (r *Registry) TriggerNow(name string) error {
	r.mu.RLock()
	job, ok := r.jobs[name]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("job not found: %s", name)
	}
	if job.trigger == nil {
		return fmt.Errorf("manual trigger not available for: %s", name)
	}

	r.logger.Info("manually triggering job", "name", name)
	return job.trigger()
}

// UpdateSchedule replaces a job's cron entry with one on newSchedule. The
// expression is validated up front so a bad one never drops the job.
func (r *Registry) UpdateSchedule(name, newSchedule string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[name]
	if !ok {
		return fmt.Errorf("job not found: %s", name)
	}
	if _, err := scheduleParser.Parse(newSchedule); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", newSchedule, err)
	}
	return r.reschedule(name, job, newSchedule)
}

// ResetSchedule restores a job's default schedule. A no-op when no override
// is in effect.
func (r *Registry) ResetSchedule(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[name]
	if !ok {
		return fmt.Errorf("job not found: %s", name)
	}
	if job.schedule == job.defaultSchedule {
		return nil
	}
	return r.reschedule(name, job, job.defaultSchedule)
}

// reschedule swaps the cron entry to the given schedule, restoring the old
// entry if the swap fails. Caller holds the write lock.
func (r *Registry) reschedule(name string, job *jobEntry, schedule string) error {
	if job.cron == nil || job.run == nil {
		return fmt.Errorf("job cannot be rescheduled: %s", name)
	}

	job.cron.Remove(job.entryID)
	entryID, err := job.cron.AddFunc(schedule, job.run)
	if err != nil {
		restoredID, restoreErr := job.cron.AddFunc(job.schedule, job.run)
		if restoreErr != nil {
			return fmt.Errorf("failed to restore schedule after update failure: %w (original: %w)", restoreErr, err)
		}
		job.entryID = restoredID
		return fmt.Errorf("failed to apply new schedule: %w", err)
	}

	job.entryID = entryID
	job.schedule = schedule

	r.logger.Info("job schedule changed", "name", name, "schedule", schedule)
	return nil
}
