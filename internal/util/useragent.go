// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mileusna/useragent"
)

// DescribeUserAgent turns a raw User-Agent header into a short label such as
// "Firefox 121 on Linux". Unknown parts are left out; an empty header gives "".
func DescribeUserAgent(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	ua := useragent.Parse(raw)
	if ua.Name == "" {
		return raw
	}

	label := ua.Name
	if major := majorVersion(ua.Version); major != "" {
		label += " " + major
	}
	if ua.OS != "" {
		label += " on " + ua.OS
	}
	if ua.Bot {
		label += " (bot)"
	}
	return label
}

func majorVersion(v string) string {
	if i := strings.IndexByte(v, '.'); i >= 0 {
		return v[:i]
	}
	return v
}
