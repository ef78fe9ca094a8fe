package service

import (
	"context"
	"sort"
	"strings"

	"cpi-resender/internal/core/domain"
	"cpi-resender/internal/core/ports"
	"cpi-resender/pkg/apperror"

	"github.com/rs/zerolog"
)

// DiscoveryServiceImpl implements ports.DiscoveryService.
type DiscoveryServiceImpl struct {
	client    ports.MonitoringClient
	batchSize int
	listTop   int
	log       zerolog.Logger
}

// NewDiscoveryService creates a discovery service issuing at most batchSize
// tenant calls at once. listTop is the page size used when a caller passes
// no top.
func NewDiscoveryService(client ports.MonitoringClient, batchSize, listTop int, log zerolog.Logger) *DiscoveryServiceImpl {
	return &DiscoveryServiceImpl{
		client:    client,
		batchSize: batchSize,
		listTop:   listTop,
		log:       log,
	}
}

// ListIntegrationFlows lists deployed flows. Cloud Foundry tenants are
// listed per active runtime location and merged by symbolic name.
func (s *DiscoveryServiceImpl) ListIntegrationFlows(ctx context.Context, sess domain.Session) ([]domain.IntegrationFlow, error) {
	if sess.Tenant.IsNEO() {
		flows, err := s.client.ListIntegrationComponents(ctx, sess, "")
		if err != nil {
			return nil, err
		}
		return flows, nil
	}

	locations, err := s.client.ListRuntimeLocations(ctx, sess)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	flows := make([]domain.IntegrationFlow, 0)
	for _, loc := range locations {
		if !strings.EqualFold(loc.State, "ACTIVE") {
			continue
		}
		components, err := s.client.ListIntegrationComponents(ctx, sess, loc.ID)
		if err != nil {
			if isHardFailure(err) {
				return nil, err
			}
			s.log.Warn().Err(err).Str("location", loc.ID).Msg("discovery: skipping runtime location")
			continue
		}
		for _, f := range components {
			if seen[f.SymbolicName] {
				continue
			}
			seen[f.SymbolicName] = true
			flows = append(flows, f)
		}
	}
	return flows, nil
}

func flowKey(f domain.IntegrationFlow) string {
	if f.SymbolicName != "" {
		return f.SymbolicName
	}
	return f.Name
}

// count is CountByStatus with soft failures zeroed.
func (s *DiscoveryServiceImpl) count(ctx context.Context, sess domain.Session, flow string, status domain.MessageStatus) (int, error) {
	n, err := s.client.CountByStatus(ctx, sess, flow, status)
	if err != nil {
		if isHardFailure(err) {
			return 0, err
		}
		s.log.Warn().Err(err).Str("flow", flow).Str("status", string(status)).Msg("discovery: count failed")
		return 0, nil
	}
	return n, nil
}

// CountsPerFlow returns completed and failed counts in the order of flows.
func (s *DiscoveryServiceImpl) CountsPerFlow(ctx context.Context, sess domain.Session, flows []domain.IntegrationFlow) ([]domain.FlowCounts, error) {
	out := make([]domain.FlowCounts, len(flows))
	err := runBatches(ctx, len(flows), s.batchSize, 0, func(ctx context.Context, i int) error {
		name := flowKey(flows[i])
		completed, err := s.count(ctx, sess, name, domain.MessageStatusCompleted)
		if err != nil {
			return err
		}
		failed, err := s.count(ctx, sess, name, domain.MessageStatusFailed)
		if err != nil {
			return err
		}
		out[i] = domain.FlowCounts{Name: name, Completed: completed, Failed: failed}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FailedCountsPerFlow returns flows with at least one failed message,
// sorted by name.
func (s *DiscoveryServiceImpl) FailedCountsPerFlow(ctx context.Context, sess domain.Session, flows []domain.IntegrationFlow) ([]domain.FailedCount, error) {
	counts := make([]domain.FailedCount, len(flows))
	err := runBatches(ctx, len(flows), s.batchSize, 0, func(ctx context.Context, i int) error {
		name := flowKey(flows[i])
		failed, err := s.count(ctx, sess, name, domain.MessageStatusFailed)
		if err != nil {
			return err
		}
		counts[i] = domain.FailedCount{Name: name, Failed: failed}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.FailedCount, 0, len(counts))
	for _, c := range counts {
		if c.Failed > 0 {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ListFailedMessages lists the newest failed messages of flow and enriches
// each with error details. Enrichment never fails the listing.
func (s *DiscoveryServiceImpl) ListFailedMessages(ctx context.Context, sess domain.Session, flow string, top int) ([]domain.MessageLogEntry, error) {
	flow = strings.TrimSpace(flow)
	if flow == "" {
		return nil, apperror.Validation("integration flow name is required")
	}
	if top <= 0 {
		top = s.listTop
	}

	entries, err := s.client.ListFailed(ctx, sess, flow, top)
	if err != nil {
		return nil, err
	}

	err = runBatches(ctx, len(entries), s.batchSize, 0, func(ctx context.Context, i int) error {
		if entries[i].ErrorDetails == "" {
			entries[i].ErrorDetails = s.client.ErrorDetails(ctx, sess, entries[i].MessageGUID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug().Str("flow", flow).Int("count", len(entries)).Msg("discovery: failed messages listed")
	return entries, nil
}
