// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package editor

import "github.com/homehni/homehni-web/internal/model"

// Field kinds understood by the admin form renderer.
const (
	FieldText     = "text"
	FieldTextarea = "textarea"
	FieldList     = "list"
)

// FormField describes one editable content field. List fields carry the
// shape of their items.
type FormField struct {
	Key        string      `json:"key"`
	Label      string      `json:"label"`
	Kind       string      `json:"kind"`
	ItemFields []FormField `json:"item_fields,omitempty"`
}

// FormLayout is the type-specific form for a section's content shape,
// exposing only the fields meaningful to that type.
type FormLayout struct {
	Type   string      `json:"section_type"`
	Fields []FormField `json:"fields"`
}

// LayoutFor returns the form layout for a section type. The dispatch is
// closed but extensible: a new section type gets a new branch; existing
// branches stay untouched. Unrecognized types get the generic layout
// offering only title and description.
func LayoutFor(sectionType string) FormLayout {
	switch sectionType {
	case model.SectionHero, model.SectionHeroSearch:
		return FormLayout{Type: sectionType, Fields: []FormField{
			{Key: "title", Label: "Heading", Kind: FieldText},
			{Key: "subtitle", Label: "Subheading", Kind: FieldText},
			{Key: "background_image", Label: "Background Image URL", Kind: FieldText},
			{Key: "placeholder", Label: "Search Placeholder", Kind: FieldText},
			{Key: "cta_text", Label: "Button Text", Kind: FieldText},
			{Key: "cta_link", Label: "Button Link", Kind: FieldText},
		}}
	case model.SectionFeaturedProperties:
		return FormLayout{Type: sectionType, Fields: []FormField{
			{Key: "title", Label: "Heading", Kind: FieldText},
			{Key: "subtitle", Label: "Subheading", Kind: FieldText},
			{Key: "properties", Label: "Properties", Kind: FieldList, ItemFields: []FormField{
				{Key: "name", Label: "Name", Kind: FieldText},
				{Key: "location", Label: "Location", Kind: FieldText},
				{Key: "price", Label: "Price", Kind: FieldText},
				{Key: "image", Label: "Image URL", Kind: FieldText},
			}},
		}}
	case model.SectionServices, model.SectionServicesGrid, model.SectionHomeServices:
		return FormLayout{Type: sectionType, Fields: []FormField{
			{Key: "title", Label: "Heading", Kind: FieldText},
			{Key: "services", Label: "Services", Kind: FieldList, ItemFields: []FormField{
				{Key: "name", Label: "Name", Kind: FieldText},
				{Key: "description", Label: "Description", Kind: FieldTextarea},
				{Key: "icon", Label: "Icon", Kind: FieldText},
				{Key: "link", Label: "Link", Kind: FieldText},
			}},
		}}
	case model.SectionStats:
		return FormLayout{Type: sectionType, Fields: []FormField{
			{Key: "title", Label: "Heading", Kind: FieldText},
			{Key: "stats", Label: "Stats", Kind: FieldList, ItemFields: []FormField{
				{Key: "value", Label: "Value", Kind: FieldText},
				{Key: "label", Label: "Label", Kind: FieldText},
			}},
		}}
	case model.SectionTestimonials:
		return FormLayout{Type: sectionType, Fields: []FormField{
			{Key: "title", Label: "Heading", Kind: FieldText},
			{Key: "testimonials", Label: "Testimonials", Kind: FieldList, ItemFields: []FormField{
				{Key: "name", Label: "Name", Kind: FieldText},
				{Key: "role", Label: "Role", Kind: FieldText},
				{Key: "quote", Label: "Quote", Kind: FieldTextarea},
			}},
		}}
	case model.SectionSteps:
		return FormLayout{Type: sectionType, Fields: []FormField{
			{Key: "title", Label: "Heading", Kind: FieldText},
			{Key: "steps", Label: "Steps", Kind: FieldList, ItemFields: []FormField{
				{Key: "title", Label: "Title", Kind: FieldText},
				{Key: "description", Label: "Description", Kind: FieldTextarea},
			}},
		}}
	default:
		return FormLayout{Type: sectionType, Fields: []FormField{
			{Key: "title", Label: "Title", Kind: FieldText},
			{Key: "description", Label: "Description", Kind: FieldTextarea},
		}}
	}
}
