// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"strings"
	"testing"
)

func TestDescribeUserAgent(t *testing.T) {
	firefox := "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0"
	got := DescribeUserAgent(firefox)
	if !strings.HasPrefix(got, "Firefox 121") || !strings.Contains(got, "Linux") {
		t.Errorf("DescribeUserAgent(firefox) = %q, want Firefox 121 on Linux", got)
	}

	if got := DescribeUserAgent("   "); got != "" {
		t.Errorf("DescribeUserAgent(blank) = %q, want empty", got)
	}
}

func TestMajorVersion(t *testing.T) {
	tests := map[string]string{
		"121.0":      "121",
		"17":         "17",
		"":           "",
		"120.0.6099": "120",
	}
	for in, want := range tests {
		if got := majorVersion(in); got != want {
			t.Errorf("majorVersion(%q) = %q, want %q", in, got, want)
		}
	}
}
