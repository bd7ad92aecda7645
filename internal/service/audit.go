// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/olegiv/orchardlite-go/internal/model"
	"github.com/olegiv/orchardlite-go/internal/store"
)

// Actor identifies who performs a write: a user (zero for the system) and
// the request origin.
type Actor struct {
	UserID    int64
	IPAddress string
	UserAgent string
}

type actorKey struct{}

// WithActor returns a context carrying actor for audit records.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the actor stored by WithActor, or the zero Actor.
func ActorFromContext(ctx context.Context) Actor {
	actor, _ := ctx.Value(actorKey{}).(Actor)
	return actor
}

// AuditEntry describes something to append to the audit log.
type AuditEntry struct {
	Action     string
	EntityType string
	EntityID   int64
	Details    string
}

// AuditService appends to and reads the audit log.
type AuditService struct {
	queries *store.Queries
	logger  *slog.Logger
	now     func() time.Time
}

// NewAuditService creates a new audit service.
func NewAuditService(db *sql.DB, logger *slog.Logger) *AuditService {
	return &AuditService{
		queries: store.New(db),
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Record appends entry, attributed to the actor in ctx.
func (s *AuditService) Record(ctx context.Context, entry AuditEntry) error {
	actor := ActorFromContext(ctx)

	ip := actor.IPAddress
	if len(ip) > model.MaxIPAddressLength {
		ip = ip[:model.MaxIPAddressLength]
	}

	_, err := s.queries.CreateAuditLog(ctx, store.CreateAuditLogParams{
		UserID:      actor.UserID,
		Action:      entry.Action,
		EntityType:  entry.EntityType,
		EntityID:    entry.EntityID,
		Details:     entry.Details,
		IPAddress:   ip,
		UserAgent:   actor.UserAgent,
		CreatedDate: s.now(),
	})
	if err != nil {
		return dataAccess("recording audit entry", err)
	}
	return nil
}

// recordQuietly records entry and logs instead of returning a failure.
func (s *AuditService) recordQuietly(ctx context.Context, entry AuditEntry) {
	if err := s.Record(ctx, entry); err != nil {
		s.logger.Warn("failed to record audit entry",
			"action", entry.Action, "entity", entry.EntityType, "entity_id", entry.EntityID, "error", err)
	}
}

// List returns a page of audit entries, newest first.
func (s *AuditService) List(ctx context.Context, p Paging) (Page[model.AuditLogWithUser], error) {
	entries, err := s.queries.ListAuditLogs(ctx, p.Limit(), p.Offset())
	if err != nil {
		return Page[model.AuditLogWithUser]{}, dataAccess("listing audit log", err)
	}
	total, err := s.queries.CountAuditLogs(ctx)
	if err != nil {
		return Page[model.AuditLogWithUser]{}, dataAccess("counting audit log", err)
	}
	return Page[model.AuditLogWithUser]{Items: entries, Total: total}, nil
}
