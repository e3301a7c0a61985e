// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package geoip

import "testing"

func TestLookupCountryWithoutDatabase(t *testing.T) {
	g := NewLookup()
	if err := g.Init(""); err != nil {
		t.Fatalf("Init: %v", err)
	}

	tests := []struct {
		ip   string
		want string
	}{
		{"192.168.1.10", "LOCAL"},
		{"10.0.0.1", "LOCAL"},
		{"127.0.0.1", "LOCAL"},
		{"8.8.8.8", ""}, // No database loaded
		{"not-an-ip", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := g.LookupCountry(tt.ip); got != tt.want {
			t.Errorf("LookupCountry(%q) = %q, want %q", tt.ip, got, tt.want)
		}
	}

	if g.IsEnabled() {
		t.Error("lookup should be disabled without a database path")
	}
}

func TestInitMissingDatabaseFile(t *testing.T) {
	g := NewLookup()
	if err := g.Init("/nonexistent/GeoLite2-Country.mmdb"); err == nil {
		t.Fatal("Init should fail for a missing database file")
	}
	if g.IsEnabled() {
		t.Error("lookup should stay disabled after a failed load")
	}
}

func TestCountryName(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"IN", "India"},
		{"AE", "United Arab Emirates"},
		{"LOCAL", "Local Network"},
		{"ZZ", "ZZ"},
		{"", "Unknown"},
	}

	for _, tt := range tests {
		if got := CountryName(tt.code); got != tt.want {
			t.Errorf("CountryName(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
