// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model contains domain models and constants for the application.
package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Section types recognized by the renderer and editor. Any non-empty string is
// accepted as a section type; unknown values get the generic preview and form.
const (
	SectionHero               = "hero"
	SectionHeroSearch         = "hero_search"
	SectionServices           = "services"
	SectionServicesGrid       = "services_grid"
	SectionStats              = "stats"
	SectionTestimonials       = "testimonials"
	SectionDirectory          = "directory"
	SectionBuilderSlider      = "builder_slider"
	SectionHomeServices       = "home_services"
	SectionFeaturedProperties = "featured_properties"
	SectionWhyUse             = "why_use"
	SectionMobileApp          = "mobile_app_promo"
	SectionContactForm        = "contact_form"
	SectionContactInfo        = "contact_info"
	SectionMap                = "map"
	SectionContentBlock       = "content_block"
	SectionFeaturesGrid       = "features_grid"
	SectionBenefitsList       = "benefits_list"
	SectionCTABanner          = "cta_banner"
	SectionComparisonTable    = "comparison_table"
	SectionFAQ                = "faq"
	SectionAudienceGrid       = "audience_grid"
	SectionSteps              = "steps"
)

// pendingPrefix marks section identifiers that have not been written to the
// store yet. The string form is kept for wire compatibility with older clients.
const pendingPrefix = "temp_"

// SectionID identifies a page section. A section is either persisted (carries
// the store row ID) or pending (carries a client-generated local key). Whether
// a section has been saved is a fact of the type, not a string heuristic.
type SectionID struct {
	storageID int64
	localKey  string
}

// PersistedID returns a SectionID for a stored section row.
func PersistedID(id int64) SectionID {
	return SectionID{storageID: id}
}

// NewPendingID returns a fresh pending SectionID keyed by the current time.
func NewPendingID() SectionID {
	return SectionID{localKey: fmt.Sprintf("%s%d", pendingPrefix, time.Now().UnixNano())}
}

// ParseSectionID parses the wire form of a section ID.
func ParseSectionID(s string) (SectionID, error) {
	if strings.HasPrefix(s, pendingPrefix) {
		return SectionID{localKey: s}, nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return SectionID{}, fmt.Errorf("parsing section id %q: %w", s, err)
	}
	return PersistedID(id), nil
}

// IsPending reports whether the section has not been persisted yet.
func (id SectionID) IsPending() bool {
	return id.localKey != ""
}

// IsZero reports whether the ID is unset.
func (id SectionID) IsZero() bool {
	return id.localKey == "" && id.storageID == 0
}

// StorageID returns the store row ID and whether the section is persisted.
func (id SectionID) StorageID() (int64, bool) {
	if id.IsPending() {
		return 0, false
	}
	return id.storageID, true
}

// String returns the wire form: "temp_<key>" for pending IDs, the decimal row
// ID otherwise.
func (id SectionID) String() string {
	if id.IsPending() {
		return id.localKey
	}
	return strconv.FormatInt(id.storageID, 10)
}

// MarshalJSON implements json.Marshaler.
func (id SectionID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *SectionID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseSectionID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// SectionContent is the structured payload of a section. Its real shape is
// governed by the section type; renderers and editors default every optional
// field at access time rather than enforcing a schema.
type SectionContent map[string]any

// String returns the string value for key, or "" when absent or not a string.
func (c SectionContent) String(key string) string {
	if c == nil {
		return ""
	}
	s, _ := c[key].(string)
	return s
}

// StringOr returns the string value for key, or fallback when absent.
func (c SectionContent) StringOr(key, fallback string) string {
	if s := c.String(key); s != "" {
		return s
	}
	return fallback
}

// Items returns the list value for key as item maps. Non-list values and
// non-map elements are ignored.
func (c SectionContent) Items(key string) []map[string]any {
	if c == nil {
		return nil
	}
	raw, ok := c[key].([]any)
	if !ok {
		return nil
	}
	items := make([]map[string]any, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(map[string]any); ok {
			items = append(items, m)
		}
	}
	return items
}

// Clone returns a deep copy of the content.
func (c SectionContent) Clone() SectionContent {
	if c == nil {
		return SectionContent{}
	}
	out := make(SectionContent, len(c))
	for k, v := range c {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, v := range t {
			m[k] = cloneValue(v)
		}
		return m
	case []any:
		l := make([]any, len(t))
		for i, v := range t {
			l[i] = cloneValue(v)
		}
		return l
	default:
		return v
	}
}

// PageSection is one typed content block within a content page. Sections are
// displayed in ascending SortOrder, which is dense and zero-based within a
// page at display time.
type PageSection struct {
	ID        SectionID      `json:"id"`
	PageID    int64          `json:"page_id"`
	Type      string         `json:"section_type"`
	Content   SectionContent `json:"content"`
	SortOrder int64          `json:"sort_order"`
	IsActive  bool           `json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// sectionAcronyms are label words rendered in full caps.
var sectionAcronyms = map[string]string{
	"faq": "FAQ",
	"cta": "CTA",
}

// HumanizeSectionType turns a section type identifier into a display label,
// e.g. "hero_search" becomes "Hero Search" and "cta_banner" "CTA Banner".
func HumanizeSectionType(sectionType string) string {
	words := strings.Fields(strings.ReplaceAll(sectionType, "_", " "))
	for i, w := range words {
		if acronym, ok := sectionAcronyms[w]; ok {
			words[i] = acronym
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
