package service

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"cpi-resender/internal/core/domain"
	"cpi-resender/internal/core/ports"
	"cpi-resender/pkg/apperror"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"
)

const (
	noPayloadFound = "No payload found"
	notSent        = "Not sent: resend aborted"
)

// ResendOptions tunes the resend engine.
type ResendOptions struct {
	BatchSize  int
	BatchPause time.Duration
	// DeleteEndpointName is the flow that deletes data store entries after a
	// successful resend.
	DeleteEndpointName string
}

// ResendServiceImpl implements ports.ResendService.
type ResendServiceImpl struct {
	payloads  ports.PayloadService
	endpoints ports.EndpointService
	client    ports.MonitoringClient
	markers   ports.MarkerService
	opts      ResendOptions
	log       zerolog.Logger
}

func NewResendService(
	payloads ports.PayloadService,
	endpoints ports.EndpointService,
	client ports.MonitoringClient,
	markers ports.MarkerService,
	opts ResendOptions,
	log zerolog.Logger,
) *ResendServiceImpl {
	return &ResendServiceImpl{
		payloads:  payloads,
		endpoints: endpoints,
		client:    client,
		markers:   markers,
		opts:      opts,
		log:       log,
	}
}

// Resend replays the cached payload of every item. Per-item failures are
// results; missing setup, an empty flow bundle and a lost relay abort the
// whole run. An aborted run still returns the report so far alongside the
// error, with its confirmed successes cleaned up. Delivery is at least once:
// a message whose cleanup fails stays cached and is sent again if selected
// again.
func (s *ResendServiceImpl) Resend(ctx context.Context, sess domain.Session, items []domain.ResendItem, progress chan<- domain.ProgressEvent) (*domain.ResendReport, error) {
	if len(items) == 0 {
		return nil, apperror.Validation("no messages selected for resend")
	}
	if _, err := sess.Credentials.Discovery(); err != nil {
		return nil, err
	}
	if _, err := sess.Credentials.FlowCall(sess.Tenant.Platform); err != nil {
		return nil, err
	}

	bundles, err := s.loadBundles(ctx, items)
	if err != nil {
		return nil, err
	}

	results := make([]domain.ResendResult, len(items))
	attempted := make([]bool, len(items))
	var done atomic.Int32
	runErr := runBatches(ctx, len(items), s.opts.BatchSize, s.opts.BatchPause, func(ctx context.Context, i int) error {
		res, err := s.resendOne(ctx, sess, i, items[i], bundles)
		if err != nil {
			res.Error = errorText(err)
		}
		results[i] = res
		attempted[i] = true
		if err != nil {
			return err
		}

		return emitProgress(ctx, progress, domain.ProgressEvent{
			Stage:       domain.StageResend,
			Current:     int(done.Add(1)),
			Total:       len(items),
			MessageGUID: domain.ShortGUID(res.MessageGUID),
			Message:     res.Error,
		})
	})

	report := &domain.ResendReport{Total: len(items), Results: results}
	for i := range results {
		if !attempted[i] {
			results[i] = domain.ResendResult{
				Index:               i,
				MessageGUID:         items[i].MessageGUID,
				IntegrationFlowName: strings.TrimSpace(items[i].IntegrationFlowName),
				Error:               notSent,
			}
		}
		if results[i].Success {
			report.SuccessCount++
		} else {
			report.FailedCount++
		}
	}
	ev := s.log.Info()
	if runErr != nil {
		ev = s.log.Warn().Err(runErr)
	}
	ev.Int("total", report.Total).
		Int("succeeded", report.SuccessCount).
		Int("failed", report.FailedCount).
		Msg("resend: run finished")

	// Confirmed successes are cleaned up even when the run was aborted or the
	// caller went away, so they are not sent twice.
	s.cleanup(ctx, context.WithoutCancel(ctx), sess, items, report, progress)
	return report, runErr
}

// loadBundles indexes the cached entries of every flow named by items.
func (s *ResendServiceImpl) loadBundles(ctx context.Context, items []domain.ResendItem) (map[string]map[string]domain.CachedPayload, error) {
	bundles := make(map[string]map[string]domain.CachedPayload)
	for _, it := range items {
		flow := strings.TrimSpace(it.IntegrationFlowName)
		if flow == "" || strings.TrimSpace(it.MessageGUID) == "" {
			return nil, apperror.Validation("every message needs a message guid and an integration flow name")
		}
		if _, ok := bundles[flow]; ok {
			continue
		}
		entries, err := s.payloads.GetCached(ctx, flow)
		if err != nil {
			return nil, err
		}
		byGUID := make(map[string]domain.CachedPayload, len(entries))
		for _, e := range entries {
			byGUID[e.MessageGUID] = e
		}
		bundles[flow] = byGUID
	}
	return bundles, nil
}

func (s *ResendServiceImpl) resendOne(ctx context.Context, sess domain.Session, index int, item domain.ResendItem, bundles map[string]map[string]domain.CachedPayload) (domain.ResendResult, error) {
	flow := strings.TrimSpace(item.IntegrationFlowName)
	res := domain.ResendResult{
		Index:               index,
		MessageGUID:         item.MessageGUID,
		IntegrationFlowName: flow,
	}

	entry, ok := bundles[flow][item.MessageGUID]
	if !ok || !entry.HasPayload() {
		res.Error = noPayloadFound
		return res, nil
	}

	ep, err := s.endpoints.DiscoverEndpoint(ctx, sess, flow)
	if err != nil {
		if isHardFailure(err) {
			return res, err
		}
		res.Error = errorText(err)
		return res, nil
	}
	res.EndpointURL = ep.URL
	res.AdapterType = ep.AdapterType

	body, contentType, err := FramePayload(ep.AdapterType, *entry.Payload)
	if err != nil {
		res.Error = errorText(err)
		return res, nil
	}

	if err := s.client.InvokeFlow(ctx, sess, ep.URL, body, contentType); err != nil {
		if isHardFailure(err) {
			return res, err
		}
		s.log.Warn().Err(err).Str("message_guid", item.MessageGUID).Str("flow", flow).Msg("resend: post failed")
		res.Error = errorText(err)
		return res, nil
	}

	res.Success = true
	return res, nil
}

// cleanup deletes the data store entries of the successes, records their
// markers and drops them from the local cache. Failures only set the
// report's CleanupWarning. Progress goes out on ctx, the work runs on work.
func (s *ResendServiceImpl) cleanup(ctx, work context.Context, sess domain.Session, items []domain.ResendItem, report *domain.ResendReport, progress chan<- domain.ProgressEvent) {
	var succeeded []domain.ResendItem
	for _, r := range report.Results {
		if r.Success {
			succeeded = append(succeeded, items[r.Index])
		}
	}
	if len(succeeded) == 0 {
		return
	}
	_ = emitProgress(ctx, progress, domain.ProgressEvent{
		Stage:   domain.StageCleanup,
		Total:   len(succeeded),
		Message: "Cleaning up data store",
	})

	now := time.Now().UnixMilli()
	markers := make([]domain.ResentMarker, 0, len(succeeded))
	for _, it := range succeeded {
		markers = append(markers, domain.ResentMarker{
			MessageGUID:         it.MessageGUID,
			IntegrationFlowName: strings.TrimSpace(it.IntegrationFlowName),
			ResentAt:            now,
		})
	}
	if err := s.markers.Record(work, sess, markers); err != nil {
		s.log.Warn().Err(err).Int("markers", len(markers)).Msg("resend: recording markers failed")
	}

	if err := s.deleteDataStoreEntries(work, sess, succeeded); err != nil {
		s.log.Warn().Err(err).Msg("resend: data store cleanup failed")
		report.CleanupWarning = fmt.Sprintf("Failed to delete entries: %s", errorText(err))
		return
	}
	report.DeletedEntries = len(succeeded)

	byFlow := make(map[string][]string)
	for _, it := range succeeded {
		flow := strings.TrimSpace(it.IntegrationFlowName)
		byFlow[flow] = append(byFlow[flow], it.MessageGUID)
	}
	for flow, guids := range byFlow {
		if _, err := s.payloads.DeleteEntries(work, flow, guids); err != nil {
			s.log.Warn().Err(err).Str("flow", flow).Msg("resend: removing cached entries failed")
			report.CleanupWarning = fmt.Sprintf("Resent messages are still cached for %s: %s", flow, errorText(err))
		}
	}
}

func (s *ResendServiceImpl) deleteDataStoreEntries(ctx context.Context, sess domain.Session, succeeded []domain.ResendItem) error {
	ep, err := s.endpoints.DiscoverEndpoint(ctx, sess, s.opts.DeleteEndpointName)
	if err != nil {
		return err
	}
	return s.client.InvokeFlow(ctx, sess, ep.URL, EntryIDsDocument(succeeded), httpContentType)
}

// EntryIDsDocument builds the <EntryIDs> request of the data store delete flow.
func EntryIDsDocument(items []domain.ResendItem) string {
	doc := etree.NewDocument()
	root := doc.CreateElement("EntryIDs")
	for _, it := range items {
		root.CreateElement("EntryID").SetText(it.DataStoreEntryID())
	}
	out, _ := doc.WriteToString()
	return out
}
