// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides small helpers shared by handlers and services:
// URL slugs, client address extraction and user-agent descriptions.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// slugRegex matches anything that is not a lowercase letter, digit or hyphen
	slugRegex = regexp.MustCompile(`[^a-z0-9-]+`)
	// multipleHyphens matches runs of hyphens
	multipleHyphens = regexp.MustCompile(`-{2,}`)
	// publicSlugRegex is the shape accepted in /content/{slug} URLs
	publicSlugRegex = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)
)

// Slugify converts a title to a URL slug: accents are stripped, other
// scripts are transliterated to ASCII, and everything else collapses to
// single hyphens.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(unidecode.Unidecode(result))
	result = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '_' || r == '/' || r == '.' {
			return '-'
		}
		return r
	}, result)
	result = slugRegex.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")

	return strings.Trim(result, "-")
}

// IsValidSlug reports whether s can be used as a content slug in a URL:
// ASCII letters, digits and hyphens only, and at most maxLen bytes.
func IsValidSlug(s string, maxLen int) bool {
	if s == "" || len(s) > maxLen {
		return false
	}
	return publicSlugRegex.MatchString(s)
}
