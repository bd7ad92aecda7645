// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package geoip

import (
	"path/filepath"
	"testing"
)

func TestLookup_WithoutDatabase(t *testing.T) {
	g, err := Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = g.Close() }()

	if g.Enabled() {
		t.Error("lookup without a database must be disabled")
	}

	tests := []struct {
		ip   string
		want string
	}{
		{"127.0.0.1", LocalCode},
		{"::1", LocalCode},
		{"10.1.2.3", LocalCode},
		{"172.20.0.1", LocalCode},
		{"192.168.1.10", LocalCode},
		{"fd00::1", LocalCode},
		{"8.8.8.8", ""},
		{"not-an-ip", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := g.Country(tt.ip); got != tt.want {
			t.Errorf("Country(%q) = %q, want %q", tt.ip, got, tt.want)
		}
	}
}

func TestOpen_MissingFile(t *testing.T) {
	g, err := Open(filepath.Join(t.TempDir(), "missing.mmdb"))
	if err == nil {
		t.Fatal("expected an error for a missing database")
	}
	if g == nil || g.Enabled() {
		t.Error("a failed Open must still return a usable disabled lookup")
	}
	if got := g.Country("192.168.0.1"); got != LocalCode {
		t.Errorf("Country() = %q, want %q", got, LocalCode)
	}
}

func TestNilLookup(t *testing.T) {
	var g *Lookup
	if g.Enabled() {
		t.Error("nil lookup must be disabled")
	}
	if got := g.Country("1.1.1.1"); got != "" {
		t.Errorf("Country() = %q, want empty", got)
	}
}

func TestCountryName(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"US", "United States"},
		{"DE", "Germany"},
		{LocalCode, "Local Network"},
		{"", "Unknown"},
		{"Q1", "Q1"},
	}
	for _, tt := range tests {
		if got := CountryName(tt.code); got != tt.want {
			t.Errorf("CountryName(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
