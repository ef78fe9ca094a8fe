package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"cpi-resender/internal/core/domain"
	"cpi-resender/internal/core/ports"
	"cpi-resender/pkg/apperror"

	"github.com/rs/zerolog"
)

const (
	exportedBy   = "cpi-resender"
	statusResent = "RESENT"
)

// MarkerServiceImpl implements ports.MarkerService. The local store is the
// source of truth; audit, when set, is a best-effort mirror.
type MarkerServiceImpl struct {
	store ports.MarkerStore
	audit ports.AuditRepository
	log   zerolog.Logger
}

// NewMarkerService creates a marker service. audit may be nil.
func NewMarkerService(store ports.MarkerStore, audit ports.AuditRepository, log zerolog.Logger) *MarkerServiceImpl {
	return &MarkerServiceImpl{store: store, audit: audit, log: log}
}

func (s *MarkerServiceImpl) Record(ctx context.Context, sess domain.Session, markers []domain.ResentMarker) error {
	for _, m := range markers {
		if !m.Valid() {
			return apperror.Validation(fmt.Sprintf("invalid resent marker for %q", m.MessageGUID))
		}
	}

	for _, m := range markers {
		if _, err := s.store.Upsert(ctx, m); err != nil {
			return storageError(err)
		}
		if s.audit == nil {
			continue
		}
		rec := domain.AuditRecord{
			CompanyCode: sess.Tenant.Name,
			MessageGUID: m.MessageGUID,
			IFlowName:   m.IntegrationFlowName,
			Status:      statusResent,
			ResentAt:    m.ResentTime(),
			ResentBy:    sess.Operator,
		}
		if err := s.audit.Upsert(ctx, rec); err != nil {
			s.log.Warn().Err(err).Str("message_guid", m.MessageGUID).Msg("markers: remote audit sync failed")
		}
	}

	s.log.Info().Int("count", len(markers)).Str("operator", sess.Operator).Msg("markers: recorded")
	return nil
}

// List returns every marker, newest first.
func (s *MarkerServiceImpl) List(ctx context.Context) ([]domain.ResentMarker, error) {
	markers, err := s.store.List(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	sort.SliceStable(markers, func(i, j int) bool {
		if markers[i].ResentAt != markers[j].ResentAt {
			return markers[i].ResentAt > markers[j].ResentAt
		}
		return markers[i].MessageGUID < markers[j].MessageGUID
	})
	return markers, nil
}

func (s *MarkerServiceImpl) ListByFlow(ctx context.Context, flow string) ([]domain.ResentMarker, error) {
	flow = strings.TrimSpace(flow)
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ResentMarker, 0, len(all))
	for _, m := range all {
		if m.IntegrationFlowName == flow {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *MarkerServiceImpl) WasResent(ctx context.Context, guid string) (bool, error) {
	m, err := s.store.Get(ctx, guid)
	if err != nil {
		return false, storageError(err)
	}
	return m != nil, nil
}

func (s *MarkerServiceImpl) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return storageError(err)
	}
	s.log.Info().Msg("markers: cleared")
	return nil
}

func (s *MarkerServiceImpl) Export(ctx context.Context) (*domain.ExportDocument, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.ExportDocument{
		Version:      domain.MarkerExportVersion,
		ExportedAt:   time.Now().UTC().Format(time.RFC3339),
		ExportedBy:   exportedBy,
		TotalRecords: len(records),
		Records:      records,
	}, nil
}

// Import applies doc. Merge keeps existing markers and overwrites matching
// guids; replace clears the store first. Records that failed to decode count
// as skipped.
func (s *MarkerServiceImpl) Import(ctx context.Context, doc domain.ExportDocument, mode domain.ImportMode) (*domain.ImportSummary, error) {
	if mode != domain.ImportMerge && mode != domain.ImportReplace {
		return nil, apperror.Validation(fmt.Sprintf("unknown import mode %q", mode))
	}
	if doc.Version != domain.MarkerExportVersion {
		return nil, apperror.Validation(fmt.Sprintf("unsupported export version %d", doc.Version))
	}

	summary := &domain.ImportSummary{
		Total:   len(doc.Records) + doc.Undecodable,
		Skipped: doc.Undecodable,
		Mode:    mode,
	}
	if mode == domain.ImportReplace {
		if err := s.store.Clear(ctx); err != nil {
			return nil, storageError(err)
		}
	}

	for _, rec := range doc.Records {
		if !rec.Valid() {
			summary.Skipped++
			continue
		}
		rec.MessageGUID = strings.TrimSpace(rec.MessageGUID)
		rec.IntegrationFlowName = strings.TrimSpace(rec.IntegrationFlowName)
		added, err := s.store.Upsert(ctx, rec)
		if err != nil {
			return nil, storageError(err)
		}
		if added {
			summary.Imported++
		} else {
			summary.Updated++
		}
	}

	s.log.Info().
		Str("mode", string(mode)).
		Int("imported", summary.Imported).
		Int("updated", summary.Updated).
		Int("skipped", summary.Skipped).
		Msg("markers: import finished")
	return summary, nil
}
