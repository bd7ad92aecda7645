// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"Café au lait", "cafe-au-lait"},
		{"Привет мир", "privet-mir"},
		{"  --Multiple   Spaces--  ", "multiple-spaces"},
		{"C# & Go!", "c-go"},
		{"snake_case/and.dots", "snake-case-and-dots"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"hello-world", true},
		{"Hello-World-2", true},
		{"-leading", true},
		{"", false},
		{"with space", false},
		{"with/slash", false},
		{"dots.not.allowed", false},
		{"ünïcode", false},
		{strings.Repeat("a", 501), false},
	}

	for _, tt := range tests {
		if got := IsValidSlug(tt.slug, 500); got != tt.want {
			t.Errorf("IsValidSlug(%q) = %v, want %v", tt.slug, got, tt.want)
		}
	}
}
