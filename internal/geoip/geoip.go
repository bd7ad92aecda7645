// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package geoip resolves audit log IP addresses to countries using a
// MaxMind GeoLite2-Country database.
package geoip

import (
	"fmt"
	"net"
	"sync"

	"github.com/oschwald/maxminddb-golang"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// LocalCode is returned for private and loopback addresses.
const LocalCode = "LOCAL"

var privateCIDRs []*net.IPNet

func init() {
	for _, block := range []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"fc00::/7",  // IPv6 unique local
		"fe80::/10", // IPv6 link-local
	} {
		if _, cidr, err := net.ParseCIDR(block); err == nil {
			privateCIDRs = append(privateCIDRs, cidr)
		}
	}
}

// Lookup maps IP addresses to ISO country codes. A Lookup without a
// database still recognises local addresses and answers "" for the rest.
type Lookup struct {
	mu sync.RWMutex
	db *maxminddb.Reader
}

type countryRecord struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
}

// Open loads the database at path. An empty path gives a disabled Lookup.
func Open(path string) (*Lookup, error) {
	if path == "" {
		return &Lookup{}, nil
	}

	db, err := maxminddb.Open(path)
	if err != nil {
		return &Lookup{}, fmt.Errorf("opening GeoIP database %s: %w", path, err)
	}
	return &Lookup{db: db}, nil
}

// Enabled reports whether a database is loaded.
func (g *Lookup) Enabled() bool {
	if g == nil {
		return false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.db != nil
}

// Country returns the 2-letter ISO code for ip, LocalCode for private or
// loopback addresses, and "" when the address is invalid or unknown.
func (g *Lookup) Country(ip string) string {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ""
	}
	if parsed.IsLoopback() || isPrivate(parsed) {
		return LocalCode
	}
	if g == nil {
		return ""
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.db == nil {
		return ""
	}

	var record countryRecord
	if err := g.db.Lookup(parsed, &record); err != nil {
		return ""
	}
	return record.Country.ISOCode
}

// Close releases the database.
func (g *Lookup) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.db == nil {
		return nil
	}
	err := g.db.Close()
	g.db = nil
	return err
}

func isPrivate(ip net.IP) bool {
	for _, cidr := range privateCIDRs {
		if cidr.Contains(ip) {
			return true
		}
	}
	return false
}

// CountryName returns the English name of an ISO country code.
func CountryName(code string) string {
	switch code {
	case "":
		return "Unknown"
	case LocalCode:
		return "Local Network"
	}

	region, err := language.ParseRegion(code)
	if err != nil {
		return code
	}
	if name := display.Regions(language.English).Name(region); name != "" {
		return name
	}
	return code
}
