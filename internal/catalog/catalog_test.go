// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"testing"

	"github.com/homehni/homehni-web/internal/model"
)

func TestFindDefaultContentPrototype(t *testing.T) {
	content := FindDefaultContent(model.SectionHero)
	if content.String("title") != "Find Your Dream Home" {
		t.Errorf("unexpected hero title: %q", content.String("title"))
	}

	// The returned payload must be a copy; mutating it must not leak into
	// the catalog.
	content["title"] = "mutated"
	again := FindDefaultContent(model.SectionHero)
	if again.String("title") != "Find Your Dream Home" {
		t.Error("catalog prototype was mutated through a returned copy")
	}
}

func TestFindDefaultContentGenericFallback(t *testing.T) {
	tests := []struct {
		sectionType string
		wantTitle   string
	}{
		{"price_table", "New price table Section"},
		{"unknown", "New unknown Section"},
		{"multi_word_type", "New multi word type Section"},
	}

	for _, tt := range tests {
		t.Run(tt.sectionType, func(t *testing.T) {
			content := FindDefaultContent(tt.sectionType)
			if got := content.String("title"); got != tt.wantTitle {
				t.Errorf("title = %q, want %q", got, tt.wantTitle)
			}
			if got := content.String("description"); got != "Section description" {
				t.Errorf("description = %q, want %q", got, "Section description")
			}
		})
	}
}

func TestFindDefaultContentDeterministic(t *testing.T) {
	first := FindDefaultContent("nonexistent_type")
	second := FindDefaultContent("nonexistent_type")
	if first.String("title") != second.String("title") || first.String("description") != second.String("description") {
		t.Error("generic fallback is not deterministic")
	}
}

func TestServiceDirectory(t *testing.T) {
	if len(Services()) != 9 {
		t.Fatalf("expected 9 services, got %d", len(Services()))
	}

	svc, ok := FindService(ServiceMovers)
	if !ok {
		t.Fatal("movers service missing")
	}
	if svc.Email == "" {
		t.Error("service has no enquiry recipient")
	}

	if IsValidServiceTag("plumbing") {
		t.Error("unknown tag reported valid")
	}
}
