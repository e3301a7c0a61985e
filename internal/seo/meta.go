// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds the meta, structured-data, and crawler artifacts the
// frontend renders into page heads.
package seo

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/homehni/homehni-web/internal/model"
)

// Meta is the head metadata for one page, serialized into the public page
// response for the frontend to render.
type Meta struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Keywords      string `json:"keywords,omitempty"`
	Canonical     string `json:"canonical"`
	Robots        string `json:"robots"`
	OGTitle       string `json:"og_title"`
	OGDescription string `json:"og_description"`
	OGImage       string `json:"og_image,omitempty"`
	OGType        string `json:"og_type"`
	OGSiteName    string `json:"og_site_name"`
	OGURL         string `json:"og_url"`
	TwitterCard   string `json:"twitter_card"`
	TwitterSite   string `json:"twitter_site,omitempty"`
}

// SiteConfig carries the site-wide identity used across meta building.
type SiteConfig struct {
	SiteName        string
	SiteURL         string
	SiteDescription string
	DefaultOGImage  string
	TwitterHandle   string
}

// BuildMeta assembles head metadata for page. The meta_* columns win when
// set; otherwise the title and description fall back to the page content.
// A nil page produces the homepage defaults.
func BuildMeta(page *model.ContentPage, site *SiteConfig) *Meta {
	meta := &Meta{
		OGType:      "website",
		OGSiteName:  site.SiteName,
		TwitterCard: "summary_large_image",
		TwitterSite: site.TwitterHandle,
		OGImage:     makeAbsoluteURL(site.DefaultOGImage, site.SiteURL),
	}

	if page == nil {
		meta.Title = site.SiteName
		meta.OGTitle = site.SiteName
		meta.Description = site.SiteDescription
		meta.OGDescription = site.SiteDescription
		meta.Canonical = site.SiteURL
		meta.OGURL = site.SiteURL
		meta.Robots = "index,follow"
		return meta
	}

	switch {
	case page.MetaTitle != "":
		meta.Title = page.MetaTitle
		meta.OGTitle = page.MetaTitle
	case page.Title != "":
		meta.Title = page.Title + " | " + site.SiteName
		meta.OGTitle = page.Title
	}

	switch {
	case page.MetaDescription != "":
		meta.Description = page.MetaDescription
	case page.Description != "":
		meta.Description = truncateText(stripHTML(page.Description), 160)
	}
	meta.OGDescription = meta.Description

	meta.Keywords = strings.Join(page.MetaKeywords, ", ")
	meta.Canonical = site.SiteURL + "/" + page.Slug
	meta.OGURL = meta.Canonical

	// Drafts a crawler stumbles on must stay out of the index.
	if page.IsPublished {
		meta.Robots = "index,follow"
	} else {
		meta.Robots = "noindex,nofollow"
	}

	return meta
}

// OrgSchema is a JSON-LD Organization node.
type OrgSchema struct {
	Context string `json:"@context,omitempty"`
	Type    string `json:"@type"`
	Name    string `json:"name"`
	URL     string `json:"url,omitempty"`
}

// ServiceSchema is the JSON-LD Service node for a service landing page.
type ServiceSchema struct {
	Context     string     `json:"@context"`
	Type        string     `json:"@type"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	ServiceType string     `json:"serviceType,omitempty"`
	AreaServed  string     `json:"areaServed,omitempty"`
	Provider    *OrgSchema `json:"provider,omitempty"`
	URL         string     `json:"url,omitempty"`
}

// WebSiteSchema is the JSON-LD WebSite node for the homepage.
type WebSiteSchema struct {
	Context      string        `json:"@context"`
	Type         string        `json:"@type"`
	Name         string        `json:"name"`
	URL          string        `json:"url"`
	Description  string        `json:"description,omitempty"`
	Publisher    *OrgSchema    `json:"publisher,omitempty"`
	SearchAction *SearchAction `json:"potentialAction,omitempty"`
}

// SearchAction advertises the site search to crawlers.
type SearchAction struct {
	Type       string `json:"@type"`
	Target     string `json:"target"`
	QueryInput string `json:"query-input"`
}

// BreadcrumbSchema is a JSON-LD BreadcrumbList.
type BreadcrumbSchema struct {
	Context  string           `json:"@context"`
	Type     string           `json:"@type"`
	ItemList []BreadcrumbItem `json:"itemListElement"`
}

// BreadcrumbItem is one trail entry. Type and Position are filled in by
// BuildBreadcrumbSchema.
type BreadcrumbItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item,omitempty"`
}

// BuildServiceSchema builds the Service node for the service with the given
// catalog tag.
func BuildServiceSchema(name, description, tag string, site *SiteConfig) json.RawMessage {
	return marshalJSONLD(ServiceSchema{
		Context:     "https://schema.org",
		Type:        "Service",
		Name:        name,
		Description: description,
		ServiceType: name,
		AreaServed:  "India",
		URL:         site.SiteURL + "/services/" + tag,
		Provider: &OrgSchema{
			Type: "Organization",
			Name: site.SiteName,
			URL:  site.SiteURL,
		},
	})
}

// BuildWebSiteSchema builds the WebSite node served with the homepage.
func BuildWebSiteSchema(site *SiteConfig) json.RawMessage {
	return marshalJSONLD(WebSiteSchema{
		Context:     "https://schema.org",
		Type:        "WebSite",
		Name:        site.SiteName,
		URL:         site.SiteURL,
		Description: site.SiteDescription,
		Publisher: &OrgSchema{
			Type: "Organization",
			Name: site.SiteName,
		},
		SearchAction: &SearchAction{
			Type:       "SearchAction",
			Target:     site.SiteURL + "/search?q={search_term_string}",
			QueryInput: "required name=search_term_string",
		},
	})
}

// BuildBreadcrumbSchema builds a BreadcrumbList starting at the site root and
// continuing through crumbs in order.
func BuildBreadcrumbSchema(site *SiteConfig, crumbs ...BreadcrumbItem) json.RawMessage {
	items := make([]BreadcrumbItem, 0, len(crumbs)+1)
	items = append(items, BreadcrumbItem{
		Type:     "ListItem",
		Position: 1,
		Name:     site.SiteName,
		Item:     site.SiteURL,
	})
	for i, crumb := range crumbs {
		crumb.Type = "ListItem"
		crumb.Position = i + 2
		items = append(items, crumb)
	}
	return marshalJSONLD(BreadcrumbSchema{
		Context:  "https://schema.org",
		Type:     "BreadcrumbList",
		ItemList: items,
	})
}

func marshalJSONLD(v any) json.RawMessage {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return json.RawMessage("{}")
	}
	return data
}

// stripHTML drops tags and collapses the remaining whitespace.
func stripHTML(html string) string {
	var sb strings.Builder
	inTag := false
	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			sb.WriteRune(' ')
		case !inTag:
			sb.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// truncateText cuts text to maxLen, preferring a word boundary in the second
// half, and appends an ellipsis.
func truncateText(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	if len(text) <= maxLen {
		return text
	}

	cut := text[:maxLen]
	if idx := strings.LastIndex(cut, " "); idx > maxLen/2 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut) + "..."
}

// makeAbsoluteURL resolves url against siteURL unless it is already absolute.
func makeAbsoluteURL(url, siteURL string) string {
	if url == "" || strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return strings.TrimSuffix(siteURL, "/") + url
}

// lastModified formats a sitemap lastmod stamp.
func lastModified(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
