package seo

import (
	"strings"
	"testing"
	"time"
)

func TestSitemapBuilder(t *testing.T) {
	b := NewSitemapBuilder("https://www.homehni.com")
	b.AddHomepage()
	b.AddPricing()
	b.AddPage(SitemapPage{Slug: "about", UpdatedAt: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)})
	b.AddServicePage("loans")

	out, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	xml := string(out)

	for _, want := range []string{
		"<?xml",
		XMLNamespace,
		"<loc>https://www.homehni.com</loc>",
		"<loc>https://www.homehni.com/pricing</loc>",
		"<loc>https://www.homehni.com/about</loc>",
		"<loc>https://www.homehni.com/services/loans</loc>",
		"<lastmod>2026-01-15T00:00:00Z</lastmod>",
		"<priority>1.0</priority>",
	} {
		if !strings.Contains(xml, want) {
			t.Errorf("sitemap missing %s:\n%s", want, xml)
		}
	}
}

func TestSitemapPageWithoutTimestampOmitsLastMod(t *testing.T) {
	b := NewSitemapBuilder("https://www.homehni.com")
	b.AddPage(SitemapPage{Slug: "contact"})

	out, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if strings.Contains(string(out), "<lastmod>") {
		t.Error("zero UpdatedAt should omit lastmod")
	}
}

func TestGenerateSitemap(t *testing.T) {
	out, err := GenerateSitemap("https://www.homehni.com",
		[]SitemapPage{{Slug: "home"}, {Slug: "about"}},
		[]string{"loans", "movers"},
	)
	if err != nil {
		t.Fatalf("GenerateSitemap: %v", err)
	}
	xml := string(out)

	if count := strings.Count(xml, "<url>"); count != 6 {
		t.Errorf("url count = %d, want 6 (home, pricing, 2 pages, 2 services)", count)
	}
}
