// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/olegiv/orchardlite-go/internal/model"
)

// BodyRenderer turns stored content bodies into HTML that is safe to embed.
// Markdown bodies are converted first; every body is then sanitized.
type BodyRenderer struct {
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

// NewBodyRenderer creates a body renderer with GFM markdown and the
// user-generated-content sanitizing policy.
func NewBodyRenderer() *BodyRenderer {
	return &BodyRenderer{
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy:   bluemonday.UGCPolicy(),
	}
}

// Render returns body as sanitized HTML. format is the value of the item's
// Format part; "markdown" converts the body from Markdown, anything else
// treats it as HTML.
func (b *BodyRenderer) Render(body, format string) template.HTML {
	if strings.TrimSpace(body) == "" {
		return ""
	}

	src := body
	if strings.EqualFold(format, model.FormatMarkdown) {
		var buf bytes.Buffer
		if err := b.markdown.Convert([]byte(body), &buf); err == nil {
			src = buf.String()
		}
	}

	return template.HTML(b.policy.Sanitize(src))
}
