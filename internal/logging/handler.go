// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that mirrors error records into
// the audit log, so server-side failures show up in the admin area.
package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/olegiv/orchardlite-go/internal/model"
	"github.com/olegiv/orchardlite-go/internal/service"
)

// auditWriteTimeout bounds a single audit insert made on behalf of a log record.
const auditWriteTimeout = 2 * time.Second

// Recorder appends audit entries. *service.AuditService satisfies it.
type Recorder interface {
	Record(ctx context.Context, entry service.AuditEntry) error
}

// AuditLogHandler is a slog.Handler that wraps another handler and also
// writes records at or above its level to the audit log as system errors.
type AuditLogHandler struct {
	inner    slog.Handler
	recorder Recorder
	level    slog.Level
	attrs    []slog.Attr
	group    string
	timeout  time.Duration
}

// NewAuditLogHandler creates a handler that forwards everything to inner and
// appends ERROR records to the audit log.
func NewAuditLogHandler(inner slog.Handler, recorder Recorder) *AuditLogHandler {
	return &AuditLogHandler{
		inner:    inner,
		recorder: recorder,
		level:    slog.LevelError,
		timeout:  auditWriteTimeout,
	}
}

// Enabled implements slog.Handler.
func (h *AuditLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *AuditLogHandler) Handle(ctx context.Context, r slog.Record) error {
	// Always forward to the inner handler first
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level >= h.level && h.recorder != nil {
		h.writeToAuditLog(ctx, r)
	}

	return nil
}

// WithAttrs implements slog.Handler.
func (h *AuditLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.inner = h.inner.WithAttrs(attrs)
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup implements slog.Handler.
func (h *AuditLogHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.inner = h.inner.WithGroup(name)
	if clone.group == "" {
		clone.group = name
	} else {
		clone.group += "." + name
	}
	return &clone
}

// writeToAuditLog records r. The request may already be finished, so the
// write keeps the context values (the actor) but drops its cancellation and
// runs under its own deadline instead.
// A failing write is dropped: logging it would recurse.
func (h *AuditLogHandler) writeToAuditLog(ctx context.Context, r slog.Record) {
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.timeout)
	defer cancel()

	_ = h.recorder.Record(ctx, service.AuditEntry{
		Action:     model.ActionSystemError,
		EntityType: model.EntitySystem,
		Details:    h.details(r),
	})
}

// details renders the message and attributes as a JSON object.
func (h *AuditLogHandler) details(r slog.Record) string {
	fields := map[string]any{"message": r.Message}

	add := func(a slog.Attr) {
		key := a.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		fields[key] = a.Value.Resolve().String()
	}
	for _, a := range h.attrs {
		add(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		add(a)
		return true
	})

	b, err := json.Marshal(fields)
	if err != nil {
		return r.Message
	}
	return string(b)
}
