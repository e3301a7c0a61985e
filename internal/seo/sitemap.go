// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/xml"
	"time"
)

// XMLNamespace is the sitemap protocol namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// SitemapURL is one <url> entry.
type SitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapPage is the slice of a content page the sitemap needs.
type SitemapPage struct {
	Slug      string
	UpdatedAt time.Time
}

// SitemapBuilder collects the site's public surfaces into one sitemap. The
// priorities encode how the marketing site actually ranks: homepage first,
// pricing close behind, content pages, then the service directory.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder starts an empty sitemap rooted at siteURL.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{siteURL: siteURL}
}

func (b *SitemapBuilder) add(path, lastMod, changeFreq, priority string) {
	b.urls = append(b.urls, SitemapURL{
		Loc:        b.siteURL + path,
		LastMod:    lastMod,
		ChangeFreq: changeFreq,
		Priority:   priority,
	})
}

// AddHomepage adds the site root.
func (b *SitemapBuilder) AddHomepage() {
	b.add("", "", "daily", "1.0")
}

// AddPricing adds the pricing page.
func (b *SitemapBuilder) AddPricing() {
	b.add("/pricing", "", "monthly", "0.9")
}

// AddPage adds one published content page.
func (b *SitemapBuilder) AddPage(page SitemapPage) {
	b.add("/"+page.Slug, lastModified(page.UpdatedAt), "weekly", "0.8")
}

// AddServicePage adds one service landing page by catalog tag.
func (b *SitemapBuilder) AddServicePage(tag string) {
	b.add("/services/"+tag, "", "monthly", "0.7")
}

// Build renders the sitemap document.
func (b *SitemapBuilder) Build() ([]byte, error) {
	body, err := xml.MarshalIndent(urlset{XMLNS: XMLNamespace, URLs: b.urls}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// GenerateSitemap builds the full sitemap for the site in one call.
func GenerateSitemap(siteURL string, pages []SitemapPage, serviceTags []string) ([]byte, error) {
	b := NewSitemapBuilder(siteURL)
	b.AddHomepage()
	b.AddPricing()
	for _, page := range pages {
		b.AddPage(page)
	}
	for _, tag := range serviceTags {
		b.AddServicePage(tag)
	}
	return b.Build()
}
