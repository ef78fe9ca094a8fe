package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"cpi-resender/internal/core/domain"
	"cpi-resender/internal/core/ports"
	"cpi-resender/pkg/apperror"

	"github.com/rs/zerolog"
)

// PayloadServiceImpl implements ports.PayloadService.
type PayloadServiceImpl struct {
	discovery ports.DiscoveryService
	client    ports.MonitoringClient
	cache     ports.PayloadCache
	locker    ports.FlowLocker
	lockTTL   time.Duration
	log       zerolog.Logger
}

func NewPayloadService(
	discovery ports.DiscoveryService,
	client ports.MonitoringClient,
	cache ports.PayloadCache,
	locker ports.FlowLocker,
	lockTTL time.Duration,
	log zerolog.Logger,
) *PayloadServiceImpl {
	return &PayloadServiceImpl{
		discovery: discovery,
		client:    client,
		cache:     cache,
		locker:    locker,
		lockTTL:   lockTTL,
		log:       log,
	}
}

func cacheLockKey(flow string) string {
	return "payloads:" + flow
}

// withFlowLock runs fn while holding the flow's cache lock.
func (s *PayloadServiceImpl) withFlowLock(ctx context.Context, flow string, fn func() error) error {
	release, err := s.locker.Acquire(ctx, cacheLockKey(flow), s.lockTTL)
	if err != nil {
		return err
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.log.Warn().Err(err).Str("flow", flow).Msg("payload: lock release failed")
		}
	}()
	return fn()
}

func requireFlow(flow string) (string, error) {
	flow = strings.TrimSpace(flow)
	if flow == "" {
		return "", apperror.Validation("integration flow name is required")
	}
	return flow, nil
}

// FetchAndCache downloads the first attachment of every failed message of
// flow and replaces the flow's cached bundle with the result.
func (s *PayloadServiceImpl) FetchAndCache(ctx context.Context, sess domain.Session, flow string, progress chan<- domain.ProgressEvent) ([]domain.CachedPayload, error) {
	flow, err := requireFlow(flow)
	if err != nil {
		return nil, err
	}

	messages, err := s.discovery.ListFailedMessages(ctx, sess, flow, 0)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.CachedPayload, 0, len(messages))
	for i, m := range messages {
		entry, err := s.fetchOne(ctx, sess, m)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)

		ev := domain.ProgressEvent{
			Stage:       domain.StageFetch,
			Current:     i + 1,
			Total:       len(messages),
			MessageGUID: domain.ShortGUID(m.MessageGUID),
			Message:     entry.Error,
		}
		if err := emitProgress(ctx, progress, ev); err != nil {
			return nil, err
		}
	}

	err = s.withFlowLock(ctx, flow, func() error {
		return s.cache.Save(ctx, flow, entries)
	})
	if err != nil {
		return nil, storageError(err)
	}

	withPayload := 0
	for _, e := range entries {
		if e.HasPayload() {
			withPayload++
		}
	}
	s.log.Info().Str("flow", flow).Int("entries", len(entries)).Int("with_payload", withPayload).Msg("payload: bundle cached")
	return entries, nil
}

// fetchOne builds the cache entry of one message. Tenant failures are
// recorded on the entry; only hard failures are returned.
func (s *PayloadServiceImpl) fetchOne(ctx context.Context, sess domain.Session, m domain.MessageLogEntry) (domain.CachedPayload, error) {
	entry := domain.CachedPayload{
		MessageGUID:         m.MessageGUID,
		IntegrationFlowName: m.IntegrationFlowName,
		Status:              m.Status,
		ErrorText:           m.ErrorText,
		ErrorDetails:        m.ErrorDetails,
		LogStart:            m.LogStart,
		Attachments:         []domain.Attachment{},
		FetchedAt:           time.Now().UTC(),
	}

	attachments, err := s.client.ListAttachments(ctx, sess, m.MessageGUID)
	if err != nil {
		if isHardFailure(err) {
			return entry, err
		}
		s.log.Warn().Err(err).Str("message_guid", m.MessageGUID).Msg("payload: attachment list failed")
		entry.Error = errorText(err)
		return entry, nil
	}
	entry.Attachments = attachments
	if len(attachments) == 0 {
		return entry, nil
	}

	body, err := s.client.FetchAttachment(ctx, sess, attachments[0].ID)
	if err != nil {
		if isHardFailure(err) {
			return entry, err
		}
		s.log.Warn().Err(err).Str("message_guid", m.MessageGUID).Str("attachment", attachments[0].ID).Msg("payload: attachment fetch failed")
		entry.Error = errorText(err)
		return entry, nil
	}
	entry.Payload = &body
	return entry, nil
}

// GetCached returns the flow's bundle, or ErrNoPayloads when there is none.
func (s *PayloadServiceImpl) GetCached(ctx context.Context, flow string) ([]domain.CachedPayload, error) {
	flow, err := requireFlow(flow)
	if err != nil {
		return nil, err
	}
	entries, err := s.cache.Get(ctx, flow)
	if err != nil {
		return nil, storageError(err)
	}
	if len(entries) == 0 {
		return nil, apperror.ErrNoPayloads(flow)
	}
	return entries, nil
}

func (s *PayloadServiceImpl) DeleteEntries(ctx context.Context, flow string, guids []string) (int, error) {
	flow, err := requireFlow(flow)
	if err != nil {
		return 0, err
	}
	if len(guids) == 0 {
		return 0, nil
	}

	var removed int
	err = s.withFlowLock(ctx, flow, func() error {
		var err error
		removed, err = s.cache.DeleteEntries(ctx, flow, guids)
		return err
	})
	if err != nil {
		return 0, storageError(err)
	}
	return removed, nil
}

func (s *PayloadServiceImpl) DeleteAll(ctx context.Context, flow string) error {
	flow, err := requireFlow(flow)
	if err != nil {
		return err
	}
	err = s.withFlowLock(ctx, flow, func() error {
		return s.cache.DeleteAll(ctx, flow)
	})
	return storageError(err)
}

func (s *PayloadServiceImpl) ListCachedFlows(ctx context.Context) ([]domain.CachedFlow, error) {
	flows, err := s.cache.ListFlows(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	return flows, nil
}

// storageError wraps a plain store error. AppErrors such as a lock timeout
// and context errors pass through.
func storageError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return apperror.ErrStorage(err)
}
