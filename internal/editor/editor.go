// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package editor orchestrates the editing of one content page and its ordered
// section list. The page editor is the sole owner of both during a session;
// section drafts and previews receive sections by value and report changes
// back through it.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/homehni/homehni-web/internal/catalog"
	"github.com/homehni/homehni-web/internal/model"
	"github.com/homehni/homehni-web/internal/notify"
	"github.com/homehni/homehni-web/internal/util"
)

// ErrValidation marks failures caught before any storage call.
var ErrValidation = errors.New("validation failed")

// ErrSectionNotFound is returned when an update or removal names a section
// that is not in the editor's list.
var ErrSectionNotFound = errors.New("section not found")

// Storage is the narrow persistence collaborator the editor depends on.
// The two calls inside Save are sequenced, not transactional: a section
// insert failure leaves the page write intact by design.
type Storage interface {
	// SectionsForPage returns a page's sections ordered by sort_order ascending.
	SectionsForPage(ctx context.Context, pageID int64) ([]model.PageSection, error)
	// InsertPage persists a new page and returns it with its assigned ID.
	InsertPage(ctx context.Context, page model.ContentPage) (model.ContentPage, error)
	// UpdatePage updates an existing page keyed by its ID.
	UpdatePage(ctx context.Context, page model.ContentPage) error
	// InsertSections batch-inserts sections and returns them with assigned IDs.
	InsertSections(ctx context.Context, sections []model.PageSection) ([]model.PageSection, error)
}

// Option configures an Editor.
type Option func(*Editor)

// WithOnSave registers a completion callback invoked after the page-level
// save step succeeds. Callers must not assume all sections persisted.
func WithOnSave(fn func(model.ContentPage)) Option {
	return func(e *Editor) { e.onSave = fn }
}

// WithOnSectionsUpdate registers a callback invoked with a copy of the
// section list every time it changes, so a hosting view can show counts or
// previews without owning the data.
func WithOnSectionsUpdate(fn func([]model.PageSection)) Option {
	return func(e *Editor) { e.onSectionsUpdate = fn }
}

// Editor edits one content page and its section list. Safe for concurrent
// use; no coordination happens across editors (last write wins at the store).
type Editor struct {
	mu       sync.Mutex
	storage  Storage
	notifier notify.Notifier

	creating bool
	page     model.ContentPage
	sections []model.PageSection

	onSave           func(model.ContentPage)
	onSectionsUpdate func([]model.PageSection)
}

// New creates an editor in creation mode with empty page fields.
func New(storage Storage, notifier notify.Notifier, opts ...Option) *Editor {
	e := &Editor{
		storage:  storage,
		notifier: notifier,
		creating: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize populates the editor. With an existing page (not in creation
// mode) it loads the page's fields and fetches its sections from storage.
// In creation mode the page fields reset to empty defaults but any sections
// already accumulated in this session are preserved, so users can assemble
// sections before providing page metadata.
func (e *Editor) Initialize(ctx context.Context, page *model.ContentPage, isCreating bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if page != nil && !isCreating {
		sections, err := e.storage.SectionsForPage(ctx, page.ID)
		if err != nil {
			e.notifier.Notify(notify.Notification{
				Title:       "Error",
				Description: "Failed to load page sections",
				Variant:     notify.VariantError,
			})
			return fmt.Errorf("loading sections for page %d: %w", page.ID, err)
		}
		e.page = *page
		e.sections = sections
		e.creating = false
		e.sectionsChangedLocked()
		return nil
	}

	e.page = model.ContentPage{}
	e.creating = true
	e.sectionsChangedLocked()
	return nil
}

// Page returns the current page draft.
func (e *Editor) Page() model.ContentPage {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.page
}

// Sections returns a copy of the current section list.
func (e *Editor) Sections() []model.PageSection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sectionsCopyLocked()
}

// SetTitle sets the page title. When the slug field is still empty it is
// auto-derived from the new title; a slug the user has already set is never
// overwritten.
func (e *Editor) SetTitle(title string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.page.Title = title
	if strings.TrimSpace(e.page.Slug) == "" {
		e.page.Slug = util.Slugify(title)
	}
}

// SetSlug sets the page slug explicitly.
func (e *Editor) SetSlug(slug string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.page.Slug = strings.TrimSpace(slug)
}

// SetDescription sets the page's free-form description content.
func (e *Editor) SetDescription(description string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.page.Description = description
}

// SetMeta sets the page's SEO metadata.
func (e *Editor) SetMeta(metaTitle, metaDescription string, keywords []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.page.MetaTitle = metaTitle
	e.page.MetaDescription = metaDescription
	e.page.MetaKeywords = keywords
}

// SetPublished sets the publish flag.
func (e *Editor) SetPublished(published bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.page.IsPublished = published
}

// AddSection appends a new section of the given type to the in-memory list.
// Default content comes from the section catalog, with the generic
// title/description fallback for unknown types. Adding never contacts
// storage: users can assemble a full page before the first round-trip.
func (e *Editor) AddSection(sectionType string) (model.PageSection, error) {
	sectionType = strings.TrimSpace(sectionType)
	if sectionType == "" {
		e.notifier.Notify(notify.Notification{
			Title:       "Error",
			Description: "Please select a section type",
			Variant:     notify.VariantError,
		})
		return model.PageSection{}, fmt.Errorf("%w: section type is required", ErrValidation)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now()
	section := model.PageSection{
		ID:        model.NewPendingID(),
		PageID:    e.page.ID,
		Type:      sectionType,
		Content:   catalog.FindDefaultContent(sectionType),
		SortOrder: int64(len(e.sections)),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	e.sections = append(e.sections, section)
	e.sectionsChangedLocked()
	return section, nil
}

// UpdateSection replaces the section matching the update's ID, as the
// completion path of a section draft edit.
func (e *Editor) UpdateSection(updated model.PageSection) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, sec := range e.sections {
		if sec.ID == updated.ID {
			updated.UpdatedAt = time.Now()
			e.sections[i] = updated
			e.sectionsChangedLocked()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrSectionNotFound, updated.ID)
}

// RemoveSection removes the section with the given ID from the in-memory
// list. No confirmation, no undo, no tombstoning.
func (e *Editor) RemoveSection(id model.SectionID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, sec := range e.sections {
		if sec.ID == id {
			e.sections = append(e.sections[:i], e.sections[i+1:]...)
			e.sectionsChangedLocked()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrSectionNotFound, id)
}

// Save validates and persists the page, then batch-inserts any sections
// still carrying pending IDs. The two storage calls are sequenced and
// independently reported; a section insert failure does not roll back the
// page write. Sections already persisted are not resubmitted here: this
// screen is append-only with respect to stored sections.
func (e *Editor) Save(ctx context.Context) (model.ContentPage, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	title := strings.TrimSpace(e.page.Title)
	slug := strings.TrimSpace(e.page.Slug)
	if title == "" || slug == "" {
		missing := "title"
		if title != "" {
			missing = "slug"
		}
		e.notifier.Notify(notify.Notification{
			Title:       "Validation Error",
			Description: "Page " + missing + " is required",
			Variant:     notify.VariantError,
		})
		return model.ContentPage{}, fmt.Errorf("%w: page %s is required", ErrValidation, missing)
	}

	e.page.Title = title
	e.page.Slug = slug
	now := time.Now()
	e.page.UpdatedAt = now

	if e.creating || !e.page.IsPersisted() {
		e.page.CreatedAt = now
		inserted, err := e.storage.InsertPage(ctx, e.page)
		if err != nil {
			e.notifier.Notify(notify.Notification{
				Title:       "Error",
				Description: "Failed to create page",
				Variant:     notify.VariantError,
			})
			return model.ContentPage{}, fmt.Errorf("inserting page: %w", err)
		}
		e.page = inserted
		e.creating = false
		e.notifier.Notify(notify.Notification{
			Title:       "Success",
			Description: "Page created",
			Variant:     notify.VariantSuccess,
		})
	} else {
		if err := e.storage.UpdatePage(ctx, e.page); err != nil {
			e.notifier.Notify(notify.Notification{
				Title:       "Error",
				Description: "Failed to update page",
				Variant:     notify.VariantError,
			})
			return model.ContentPage{}, fmt.Errorf("updating page %d: %w", e.page.ID, err)
		}
		e.notifier.Notify(notify.Notification{
			Title:       "Success",
			Description: "Page updated",
			Variant:     notify.VariantSuccess,
		})
	}

	e.saveSectionsLocked(ctx)

	if e.onSave != nil {
		e.onSave(e.page)
	}
	return e.page, nil
}

// saveSectionsLocked batch-inserts pending sections with sort_order
// re-sequenced over the pending subset. Reported independently of the page
// save; a failure here leaves the page write intact.
func (e *Editor) saveSectionsLocked(ctx context.Context) {
	pending := make([]model.PageSection, 0, len(e.sections))
	for _, sec := range e.sections {
		if sec.ID.IsPending() {
			sec.PageID = e.page.ID
			sec.SortOrder = int64(len(pending))
			pending = append(pending, sec)
		}
	}
	if len(pending) == 0 {
		return
	}

	inserted, err := e.storage.InsertSections(ctx, pending)
	if err != nil {
		slog.Error("failed to insert page sections", "error", err, "page_id", e.page.ID, "count", len(pending))
		e.notifier.Notify(notify.Notification{
			Title:       "Error",
			Description: "Page saved, but some sections could not be saved",
			Variant:     notify.VariantError,
		})
		return
	}

	// Swap the pending entries for their persisted counterparts in place.
	next := 0
	for i, sec := range e.sections {
		if sec.ID.IsPending() && next < len(inserted) {
			e.sections[i] = inserted[next]
			next++
		}
	}
	e.notifier.Notify(notify.Notification{
		Title:       "Success",
		Description: fmt.Sprintf("%d sections saved", len(inserted)),
		Variant:     notify.VariantSuccess,
	})
	e.sectionsChangedLocked()
}

func (e *Editor) sectionsCopyLocked() []model.PageSection {
	out := make([]model.PageSection, len(e.sections))
	copy(out, e.sections)
	return out
}

func (e *Editor) sectionsChangedLocked() {
	if e.onSectionsUpdate != nil {
		e.onSectionsUpdate(e.sectionsCopyLocked())
	}
}
