// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package geoip resolves lead IPs to ISO country codes with a MaxMind
// GeoLite2-Country database.
package geoip

import (
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/oschwald/maxminddb-golang"
)

// Lookup wraps a GeoLite2-Country reader. The zero value (or an empty path)
// answers every query with an empty code, so callers never branch on whether
// geo enrichment is configured.
type Lookup struct {
	mu      sync.RWMutex
	reader  *maxminddb.Reader
	path    string
	modTime time.Time
}

type countryRecord struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
}

// NewLookup returns an empty Lookup. Call Init to load a database.
func NewLookup() *Lookup {
	return &Lookup{}
}

// Init loads the database at path. An empty path disables lookups without
// error; the lead pipeline then records no country.
func (g *Lookup) Init(path string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.path = path
	if path == "" {
		return nil
	}
	return g.reloadLocked()
}

// Reload reopens the database when the file on disk changed. The geoip
// refresh job calls this after the weekly GeoLite2 download.
func (g *Lookup) Reload() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.path == "" {
		return nil
	}
	return g.reloadLocked()
}

func (g *Lookup) reloadLocked() error {
	info, err := os.Stat(g.path)
	if err != nil {
		return fmt.Errorf("geoip database %s: %w", g.path, err)
	}
	if g.reader != nil && info.ModTime().Equal(g.modTime) {
		return nil
	}

	reader, err := maxminddb.Open(g.path)
	if err != nil {
		return fmt.Errorf("opening geoip database: %w", err)
	}

	if g.reader != nil {
		_ = g.reader.Close()
	}
	g.reader = reader
	g.modTime = info.ModTime()
	return nil
}

// LookupCountry returns the ISO 3166-1 alpha-2 code for ip, "LOCAL" for
// private and loopback addresses, or "" when the address is unparseable,
// unknown, or no database is loaded.
func (g *Lookup) LookupCountry(ip string) string {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ""
	}
	if parsed.IsPrivate() || parsed.IsLoopback() || parsed.IsLinkLocalUnicast() {
		return "LOCAL"
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.reader == nil {
		return ""
	}

	var rec countryRecord
	if err := g.reader.Lookup(parsed, &rec); err != nil {
		return ""
	}
	return rec.Country.ISOCode
}

// IsEnabled reports whether a database is loaded.
func (g *Lookup) IsEnabled() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.reader != nil
}

// Close releases the open database. Lookups afterwards return "".
func (g *Lookup) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.reader == nil {
		return nil
	}
	err := g.reader.Close()
	g.reader = nil
	return err
}

// countryNames covers the markets HomeHNI leads actually come from. Codes
// outside the map render as-is.
var countryNames = map[string]string{
	"LOCAL": "Local Network",
	"IN":    "India",
	"AE":    "United Arab Emirates",
	"SA":    "Saudi Arabia",
	"QA":    "Qatar",
	"KW":    "Kuwait",
	"OM":    "Oman",
	"BH":    "Bahrain",
	"SG":    "Singapore",
	"MY":    "Malaysia",
	"HK":    "Hong Kong",
	"US":    "United States",
	"CA":    "Canada",
	"GB":    "United Kingdom",
	"DE":    "Germany",
	"FR":    "France",
	"NL":    "Netherlands",
	"AU":    "Australia",
	"NZ":    "New Zealand",
	"LK":    "Sri Lanka",
	"NP":    "Nepal",
	"BD":    "Bangladesh",
}

// CountryName renders a country code for humans, e.g. in lead mails.
func CountryName(code string) string {
	if name, ok := countryNames[code]; ok {
		return name
	}
	if code == "" {
		return "Unknown"
	}
	return code
}
