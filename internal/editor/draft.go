// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package editor

import "github.com/homehni/homehni-web/internal/model"

// Draft is the section editor's local working copy of one section's content
// and active flag. Edits stay local until Save; discarding the draft commits
// nothing. The field helpers are generic over section types so each form
// layout only decides which fields to expose.
type Draft struct {
	section model.PageSection
	content model.SectionContent
	active  bool
}

// NewDraft seeds a draft from a section.
func NewDraft(section model.PageSection) *Draft {
	return &Draft{
		section: section,
		content: section.Content.Clone(),
		active:  section.IsActive,
	}
}

// SetField sets a scalar content field.
func (d *Draft) SetField(key string, value any) {
	d.content[key] = value
}

// SetActive sets the draft's visibility flag, uniform across section types.
func (d *Draft) SetActive(active bool) {
	d.active = active
}

// Active returns the draft's visibility flag.
func (d *Draft) Active() bool {
	return d.active
}

// Content returns the draft content for rendering the form.
func (d *Draft) Content() model.SectionContent {
	return d.content
}

// AppendItem appends an item to an array-valued field, creating the list
// when absent. The caller supplies the default item shape for its type.
func (d *Draft) AppendItem(field string, item map[string]any) {
	list, _ := d.content[field].([]any)
	d.content[field] = append(list, item)
}

// RemoveItem removes the item at index from an array-valued field.
// Out-of-range indexes are ignored.
func (d *Draft) RemoveItem(field string, index int) {
	list, ok := d.content[field].([]any)
	if !ok || index < 0 || index >= len(list) {
		return
	}
	d.content[field] = append(list[:index], list[index+1:]...)
}

// PatchItem shallow-merges partial updates into the item at index.
// Out-of-range indexes and non-map items are ignored.
func (d *Draft) PatchItem(field string, index int, patch map[string]any) {
	list, ok := d.content[field].([]any)
	if !ok || index < 0 || index >= len(list) {
		return
	}
	item, ok := list[index].(map[string]any)
	if !ok {
		return
	}
	for k, v := range patch {
		item[k] = v
	}
	list[index] = item
	d.content[field] = list
}

// Save returns the section with the draft's content and active flag applied.
// It does not touch storage; persistence happens through the page editor's
// batch save or a direct section update.
func (d *Draft) Save() model.PageSection {
	section := d.section
	section.Content = d.content.Clone()
	section.IsActive = d.active
	return section
}
