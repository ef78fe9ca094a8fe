package ports

import (
	"context"
	"time"

	"cpi-resender/internal/core/domain"
)

// PayloadCache persists payload bundles keyed by integration flow name.
// Save replaces a flow's bundle wholesale.
type PayloadCache interface {
	Save(ctx context.Context, flow string, entries []domain.CachedPayload) error
	// Get returns nil, nil when the flow has no bundle.
	Get(ctx context.Context, flow string) ([]domain.CachedPayload, error)
	// DeleteEntries removes the given guids and returns how many were found.
	// The bundle is dropped once empty.
	DeleteEntries(ctx context.Context, flow string, guids []string) (int, error)
	DeleteAll(ctx context.Context, flow string) error
	ListFlows(ctx context.Context) ([]domain.CachedFlow, error)
}

// ReleaseFunc releases a lock obtained from FlowLocker.
type ReleaseFunc func(ctx context.Context) error

// FlowLocker provides per-flow mutual exclusion around cache writes.
type FlowLocker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (ReleaseFunc, error)
}

// MarkerStore is the local resent-marker audit log keyed by message guid.
type MarkerStore interface {
	// Upsert writes m and reports whether the guid was new.
	Upsert(ctx context.Context, m domain.ResentMarker) (bool, error)
	// Get returns nil, nil when the guid has no marker.
	Get(ctx context.Context, guid string) (*domain.ResentMarker, error)
	List(ctx context.Context) ([]domain.ResentMarker, error)
	Clear(ctx context.Context) error
}

// AuditRepository mirrors resent markers to the shared remote audit table.
type AuditRepository interface {
	Upsert(ctx context.Context, rec domain.AuditRecord) error
}
