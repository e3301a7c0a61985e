// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package catalog supplies default content payloads for newly added page
// sections, harvested from real production pages, plus the static directory
// of service landing pages.
package catalog

import (
	"strings"

	"github.com/homehni/homehni-web/internal/model"
)

// prototypes maps a section type to a representative content payload so that
// editors never start from a blank form. Types without an entry fall back to
// the generic title/description shape.
var prototypes = map[string]model.SectionContent{
	model.SectionHero: {
		"title":            "Find Your Dream Home",
		"subtitle":         "Zero brokerage. Verified listings. Direct owners.",
		"background_image": "/images/hero-skyline.jpg",
		"cta_text":         "Explore Properties",
		"cta_link":         "/properties",
	},
	model.SectionHeroSearch: {
		"title":       "Search Properties Across India",
		"subtitle":    "Buy, rent, or invest without paying brokerage",
		"placeholder": "Enter city, locality, or project",
		"tabs":        []any{"Buy", "Rent", "Commercial", "Plots"},
	},
	model.SectionFeaturedProperties: {
		"title":    "Featured Properties",
		"subtitle": "Handpicked homes from verified owners",
		"properties": []any{
			map[string]any{"name": "Luxury Villas", "location": "Sector 150, Noida", "price": "2.1 Cr"},
			map[string]any{"name": "Skyline Residency", "location": "Whitefield, Bengaluru", "price": "95 L"},
		},
	},
	model.SectionServicesGrid: {
		"title": "Our Services",
		"services": []any{
			map[string]any{"name": "Home Loans", "description": "Pre-approved offers from 30+ banks", "icon": "bank"},
			map[string]any{"name": "Packers & Movers", "description": "Door-to-door shifting with insurance", "icon": "truck"},
			map[string]any{"name": "Legal Services", "description": "Title checks and agreement drafting", "icon": "scale"},
		},
	},
	model.SectionStats: {
		"title": "Trusted Across India",
		"stats": []any{
			map[string]any{"value": "10 Lakh+", "label": "Happy Customers"},
			map[string]any{"value": "50,000+", "label": "Verified Listings"},
			map[string]any{"value": "40+", "label": "Cities"},
		},
	},
	model.SectionTestimonials: {
		"title": "What Our Customers Say",
		"testimonials": []any{
			map[string]any{"name": "Ramesh Kumar", "role": "Home Buyer", "quote": "Saved over a lakh in brokerage."},
			map[string]any{"name": "Priya Sharma", "role": "Owner", "quote": "Found a tenant in four days."},
		},
	},
	model.SectionSteps: {
		"title": "How It Works",
		"steps": []any{
			map[string]any{"title": "Post Your Property", "description": "Free listing in under five minutes"},
			map[string]any{"title": "Get Verified Leads", "description": "We screen every enquiry"},
			map[string]any{"title": "Close the Deal", "description": "Zero brokerage, full support"},
		},
	},
	model.SectionFAQ: {
		"title": "Frequently Asked Questions",
		"faqs": []any{
			map[string]any{"question": "Is listing really free?", "answer": "Yes, owner listings are free forever."},
			map[string]any{"question": "How are listings verified?", "answer": "Every listing is phone and document verified."},
		},
	},
	model.SectionCTABanner: {
		"title":    "Ready to find your next home?",
		"subtitle": "Join 10 lakh+ users who skipped the broker",
		"cta_text": "Get Started",
		"cta_link": "/signup",
	},
	model.SectionContentBlock: {
		"title": "About HomeHNI",
		"body":  "HomeHNI connects owners, buyers, and tenants directly. No brokers, no hidden fees.",
	},
	model.SectionMobileApp: {
		"title":     "Take HomeHNI Anywhere",
		"subtitle":  "Property alerts, chat, and site-visit booking on the go",
		"app_store": "https://apps.apple.com/app/homehni",
		"play_store": "https://play.google.com/store/apps/details?id=com.homehni",
	},
	model.SectionContactInfo: {
		"title":   "Get in Touch",
		"email":   "support@homehni.com",
		"phone":   "+91 80 4719 2222",
		"address": "HomeHNI Towers, Outer Ring Road, Bengaluru 560103",
	},
}

// FindDefaultContent returns the default content payload for the given
// section type. Types without a catalog entry deterministically get the
// generic fallback shape, never an error.
func FindDefaultContent(sectionType string) model.SectionContent {
	if proto, ok := prototypes[sectionType]; ok {
		return proto.Clone()
	}
	return GenericContent(sectionType)
}

// HasPrototype reports whether the catalog carries example content for a type.
func HasPrototype(sectionType string) bool {
	_, ok := prototypes[sectionType]
	return ok
}

// GenericContent returns the fallback content shape for unrecognized types:
// a title derived from the type identifier plus a placeholder description.
func GenericContent(sectionType string) model.SectionContent {
	return model.SectionContent{
		"title":       "New " + strings.ReplaceAll(sectionType, "_", " ") + " Section",
		"description": "Section description",
	}
}

// Types returns all section types with catalog prototypes.
func Types() []string {
	types := make([]string, 0, len(prototypes))
	for t := range prototypes {
		types = append(types, t)
	}
	return types
}
