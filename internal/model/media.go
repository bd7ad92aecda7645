// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"math"
	"strconv"
	"strings"
	"time"
)

var fileSizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// MediaItem describes an uploaded file. Size and content type are recorded
// at upload time and never recomputed.
type MediaItem struct {
	ID               int64
	FileName         string
	OriginalFileName string
	ContentType      string
	FileSize         int64
	FilePath         string
	AltText          string
	Caption          string
	UploadedByID     int64
	UploadedDate     time.Time
	IsDeleted        bool
}

// FileSizeFormatted returns the size in 1024-based units with at most two
// decimals, e.g. "1.5 KB".
func (m MediaItem) FileSizeFormatted() string {
	return FormatFileSize(m.FileSize)
}

// IsImage reports whether the media content type is an image type.
func (m MediaItem) IsImage() bool {
	return strings.HasPrefix(strings.ToLower(m.ContentType), "image/")
}

// MediaItemWithUploader is a media item joined with the uploading user.
type MediaItemWithUploader struct {
	MediaItem
	UploadedBy Author
}

// FormatFileSize formats a byte count using B, KB, MB, GB and TB.
func FormatFileSize(size int64) string {
	value := float64(size)
	order := 0
	for value >= 1024 && order < len(fileSizeUnits)-1 {
		order++
		value /= 1024
	}
	value = math.Round(value*100) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + fileSizeUnits[order]
}
