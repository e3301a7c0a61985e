// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render builds read-only, type-specific previews of page sections
// for the admin page builder and the public content API. Rendering never
// mutates a section; every optional content field has a safe fallback.
package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/homehni/homehni-web/internal/model"
)

// Preview is the summary view of one section. List-valued fields are capped
// to a small per-type count with More carrying the overflow, which is a
// display-density decision, not a data constraint.
type Preview struct {
	Type     string        `json:"section_type"`
	Title    string        `json:"title"`
	Subtitle string        `json:"subtitle,omitempty"`
	Lines    []string      `json:"lines,omitempty"`
	Items    []string      `json:"items,omitempty"`
	More     int           `json:"more,omitempty"`
	Body     template.HTML `json:"body,omitempty"`
	Inactive bool          `json:"inactive,omitempty"`
}

// itemCaps is the per-type preview cap for list-valued fields.
var itemCaps = map[string]int{
	model.SectionHeroSearch:         4,
	model.SectionServices:           3,
	model.SectionServicesGrid:       3,
	model.SectionHomeServices:       3,
	model.SectionStats:              4,
	model.SectionTestimonials:       2,
	model.SectionDirectory:          6,
	model.SectionBuilderSlider:      4,
	model.SectionFeaturedProperties: 3,
	model.SectionWhyUse:             4,
	model.SectionFeaturesGrid:       4,
	model.SectionBenefitsList:       4,
	model.SectionComparisonTable:    3,
	model.SectionFAQ:                3,
	model.SectionAudienceGrid:       6,
	model.SectionSteps:              3,
}

const defaultItemCap = 4

// Section builds the preview for a section, dispatching on its type.
// Unrecognized types get the generic preview.
func Section(sec model.PageSection) Preview {
	p := buildPreview(sec.Type, sec.Content)
	p.Type = sec.Type
	p.Inactive = !sec.IsActive
	return p
}

func buildPreview(sectionType string, c model.SectionContent) Preview {
	switch sectionType {
	case model.SectionHero:
		return Preview{
			Title:    c.StringOr("title", "Hero Section"),
			Subtitle: c.String("subtitle"),
			Lines:    ctaLine(c),
		}
	case model.SectionHeroSearch:
		p := Preview{
			Title:    c.StringOr("title", "Hero Search Section"),
			Subtitle: c.String("subtitle"),
		}
		p.Items, p.More = capStrings(stringList(c, "tabs"), sectionType)
		return p
	case model.SectionServices, model.SectionServicesGrid, model.SectionHomeServices:
		p := Preview{Title: c.StringOr("title", "Services Section")}
		p.Items, p.More = capItems(c.Items("services"), sectionType, "name", "description")
		return p
	case model.SectionStats:
		p := Preview{Title: c.StringOr("title", "Stats Section")}
		p.Items, p.More = capItems(c.Items("stats"), sectionType, "value", "label")
		return p
	case model.SectionTestimonials:
		p := Preview{Title: c.StringOr("title", "Testimonials Section")}
		p.Items, p.More = capItems(c.Items("testimonials"), sectionType, "name", "quote")
		return p
	case model.SectionDirectory:
		p := Preview{Title: c.StringOr("title", "Directory Section")}
		p.Items, p.More = capItems(c.Items("locations"), sectionType, "name", "count")
		return p
	case model.SectionBuilderSlider:
		p := Preview{Title: c.StringOr("title", "Builders Section")}
		p.Items, p.More = capItems(c.Items("builders"), sectionType, "name", "projects")
		return p
	case model.SectionFeaturedProperties:
		p := Preview{
			Title:    c.StringOr("title", "Featured Properties"),
			Subtitle: c.String("subtitle"),
		}
		properties := c.Items("properties")
		p.Lines = []string{fmt.Sprintf("%d properties configured", len(properties))}
		p.Items, p.More = capItems(properties, sectionType, "name", "location")
		return p
	case model.SectionWhyUse:
		p := Preview{Title: c.StringOr("title", "Why Use Section")}
		p.Items, p.More = capItems(c.Items("reasons"), sectionType, "title", "description")
		return p
	case model.SectionFeaturesGrid:
		p := Preview{Title: c.StringOr("title", "Features Section")}
		p.Items, p.More = capItems(c.Items("features"), sectionType, "title", "description")
		return p
	case model.SectionBenefitsList:
		p := Preview{Title: c.StringOr("title", "Benefits Section")}
		p.Items, p.More = capItems(c.Items("benefits"), sectionType, "title", "description")
		return p
	case model.SectionMobileApp:
		p := Preview{
			Title:    c.StringOr("title", "Mobile App Section"),
			Subtitle: c.String("subtitle"),
		}
		if c.String("app_store") != "" {
			p.Lines = append(p.Lines, "App Store: "+c.String("app_store"))
		}
		if c.String("play_store") != "" {
			p.Lines = append(p.Lines, "Play Store: "+c.String("play_store"))
		}
		return p
	case model.SectionContactForm:
		p := Preview{Title: c.StringOr("title", "Contact Form Section")}
		fields := stringList(c, "fields")
		if len(fields) > 0 {
			p.Lines = []string{"Fields: " + strings.Join(fields, ", ")}
		}
		return p
	case model.SectionContactInfo:
		p := Preview{Title: c.StringOr("title", "Contact Info Section")}
		for _, key := range []string{"email", "phone", "address"} {
			if v := c.String(key); v != "" {
				p.Lines = append(p.Lines, v)
			}
		}
		return p
	case model.SectionMap:
		p := Preview{Title: c.StringOr("title", "Map Section")}
		if loc := c.String("location"); loc != "" {
			p.Lines = []string{loc}
		}
		return p
	case model.SectionContentBlock:
		return Preview{
			Title: c.StringOr("title", "Content Section"),
			Body:  RenderBody(c.String("body")),
		}
	case model.SectionCTABanner:
		return Preview{
			Title:    c.StringOr("title", "CTA Banner"),
			Subtitle: c.String("subtitle"),
			Lines:    ctaLine(c),
		}
	case model.SectionComparisonTable:
		p := Preview{Title: c.StringOr("title", "Comparison Section")}
		rows := c.Items("rows")
		if len(rows) > 0 {
			p.Lines = []string{fmt.Sprintf("%d comparison rows", len(rows))}
		}
		p.Items, p.More = capStrings(stringList(c, "columns"), sectionType)
		return p
	case model.SectionFAQ:
		p := Preview{Title: c.StringOr("title", "FAQ Section")}
		p.Items, p.More = capItems(c.Items("faqs"), sectionType, "question", "")
		return p
	case model.SectionAudienceGrid:
		p := Preview{Title: c.StringOr("title", "Audience Section")}
		p.Items, p.More = capItems(c.Items("audiences"), sectionType, "name", "description")
		return p
	case model.SectionSteps:
		p := Preview{Title: c.StringOr("title", "Steps Section")}
		p.Items, p.More = capItems(c.Items("steps"), sectionType, "title", "description")
		return p
	default:
		return genericPreview(sectionType, c)
	}
}

// genericPreview handles section types introduced without code changes:
// title/description when present, otherwise a populated-key count.
func genericPreview(sectionType string, c model.SectionContent) Preview {
	p := Preview{Title: c.StringOr("title", model.HumanizeSectionType(sectionType)+" Section")}
	if desc := c.String("description"); desc != "" {
		p.Lines = []string{desc}
	} else {
		p.Lines = []string{fmt.Sprintf("%d properties configured", len(c))}
	}
	return p
}

// ctaLine returns a single "label → link" line when a CTA is configured.
func ctaLine(c model.SectionContent) []string {
	text := c.String("cta_text")
	if text == "" {
		return nil
	}
	if link := c.String("cta_link"); link != "" {
		return []string{text + " -> " + link}
	}
	return []string{text}
}

// capItems formats item maps as "primary - secondary" labels, capped per type.
func capItems(items []map[string]any, sectionType, primaryKey, secondaryKey string) ([]string, int) {
	labels := make([]string, 0, len(items))
	for _, item := range items {
		primary, _ := item[primaryKey].(string)
		if primary == "" {
			continue
		}
		if secondaryKey != "" {
			if secondary, _ := item[secondaryKey].(string); secondary != "" {
				primary += " - " + secondary
			}
		}
		labels = append(labels, primary)
	}
	return capStrings(labels, sectionType)
}

// capStrings truncates labels to the type's preview cap, returning the
// overflow count for the "+N more" indicator.
func capStrings(labels []string, sectionType string) ([]string, int) {
	if len(labels) == 0 {
		return nil, 0
	}
	limit := itemCaps[sectionType]
	if limit == 0 {
		limit = defaultItemCap
	}
	if len(labels) <= limit {
		return labels, 0
	}
	return labels[:limit], len(labels) - limit
}

// stringList returns the list value for key keeping only string elements.
func stringList(c model.SectionContent, key string) []string {
	raw, ok := c[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
