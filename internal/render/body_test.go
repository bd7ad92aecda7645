// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"strings"
	"testing"
)

func TestBodyRenderer_Render(t *testing.T) {
	b := NewBodyRenderer()

	tests := []struct {
		name     string
		body     string
		format   string
		contains []string
		excludes []string
	}{
		{
			name:     "html kept",
			body:     "<p>Hello <strong>there</strong></p>",
			contains: []string{"<p>Hello <strong>there</strong></p>"},
		},
		{
			name:     "script stripped",
			body:     `<p>ok</p><script>alert(1)</script>`,
			contains: []string{"<p>ok</p>"},
			excludes: []string{"<script", "alert"},
		},
		{
			name:     "event handler stripped",
			body:     `<a href="/x" onclick="steal()">link</a>`,
			contains: []string{`href="/x"`, "link"},
			excludes: []string{"onclick"},
		},
		{
			name:     "markdown converted",
			body:     "## Title\n\nSome *emphasis*.",
			format:   "markdown",
			contains: []string{"<h2", "Title</h2>", "<em>emphasis</em>"},
		},
		{
			name:     "markdown format is case-insensitive",
			body:     "**bold**",
			format:   "Markdown",
			contains: []string{"<strong>bold</strong>"},
		},
		{
			name:     "markdown not applied to html format",
			body:     "**bold**",
			format:   "html",
			contains: []string{"**bold**"},
		},
		{
			name:     "raw html in markdown is dropped",
			body:     "text <script>alert(1)</script>",
			format:   "markdown",
			excludes: []string{"<script"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(b.Render(tt.body, tt.format))
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Render() = %q, want it to contain %q", got, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("Render() = %q, must not contain %q", got, bad)
				}
			}
		})
	}
}

func TestBodyRenderer_Empty(t *testing.T) {
	if got := NewBodyRenderer().Render("   ", "markdown"); got != "" {
		t.Errorf("Render(blank) = %q, want empty", got)
	}
}
