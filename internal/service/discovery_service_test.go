package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"cpi-resender/internal/core/domain"
	"cpi-resender/internal/core/ports/mocks"
	"cpi-resender/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupDiscoveryService(t *testing.T) (*DiscoveryServiceImpl, *mocks.MockMonitoringClient) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockMonitoringClient(ctrl)
	return NewDiscoveryService(client, 6, 200, zerolog.Nop()), client
}

func TestDiscoveryService_ListIntegrationFlows_CFMergesActiveLocations(t *testing.T) {
	svc, client := setupDiscoveryService(t)
	ctx := context.Background()
	sess := cfSession()

	client.EXPECT().ListRuntimeLocations(ctx, sess).Return([]domain.RuntimeLocation{
		{ID: "cloudintegration", State: "ACTIVE"},
		{ID: "stopped", State: "STOPPED"},
		{ID: "edge", State: "active"},
		{ID: "broken", State: "ACTIVE"},
	}, nil)
	client.EXPECT().ListIntegrationComponents(ctx, sess, "cloudintegration").Return([]domain.IntegrationFlow{
		{ID: "1", Name: "Orders", SymbolicName: "Orders"},
		{ID: "2", Name: "Billing", SymbolicName: "Billing"},
	}, nil)
	client.EXPECT().ListIntegrationComponents(ctx, sess, "edge").Return([]domain.IntegrationFlow{
		{ID: "9", Name: "Orders on edge", SymbolicName: "Orders"},
		{ID: "3", Name: "Shipping", SymbolicName: "Shipping"},
	}, nil)
	client.EXPECT().ListIntegrationComponents(ctx, sess, "broken").Return(nil, apperror.ErrUpstreamHTTP("GET", "x", 500, "Internal Server Error"))

	flows, err := svc.ListIntegrationFlows(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, []domain.IntegrationFlow{
		{ID: "1", Name: "Orders", SymbolicName: "Orders"},
		{ID: "2", Name: "Billing", SymbolicName: "Billing"},
		{ID: "3", Name: "Shipping", SymbolicName: "Shipping"},
	}, flows, "first occurrence wins")
}

func TestDiscoveryService_ListIntegrationFlows_NEOIsOneCall(t *testing.T) {
	svc, client := setupDiscoveryService(t)
	ctx := context.Background()
	sess := neoSession()

	client.EXPECT().ListIntegrationComponents(ctx, sess, "").Return([]domain.IntegrationFlow{{SymbolicName: "Orders"}}, nil)

	flows, err := svc.ListIntegrationFlows(ctx, sess)
	require.NoError(t, err)
	assert.Len(t, flows, 1)
}

func TestDiscoveryService_ListIntegrationFlows_RelayGoneIsHard(t *testing.T) {
	svc, client := setupDiscoveryService(t)
	ctx := context.Background()
	sess := cfSession()

	client.EXPECT().ListRuntimeLocations(ctx, sess).Return([]domain.RuntimeLocation{{ID: "a", State: "ACTIVE"}}, nil)
	client.EXPECT().ListIntegrationComponents(ctx, sess, "a").Return(nil, apperror.ErrContextInvalidated(nil))

	_, err := svc.ListIntegrationFlows(ctx, sess)
	assert.True(t, apperror.IsContextInvalidated(err))
}

func TestDiscoveryService_CountsPerFlow(t *testing.T) {
	svc, client := setupDiscoveryService(t)
	ctx := context.Background()
	sess := cfSession()

	// The tenant-side filter excludes DISCARDED; a flow with 3 COMPLETED,
	// 2 FAILED and 1 DISCARDED entry answers 3 and 2.
	client.EXPECT().CountByStatus(gomock.Any(), sess, "Orders", domain.MessageStatusCompleted).Return(3, nil)
	client.EXPECT().CountByStatus(gomock.Any(), sess, "Orders", domain.MessageStatusFailed).Return(2, nil)
	client.EXPECT().CountByStatus(gomock.Any(), sess, "Billing", domain.MessageStatusCompleted).Return(0, errors.New("timeout"))
	client.EXPECT().CountByStatus(gomock.Any(), sess, "Billing", domain.MessageStatusFailed).Return(1, nil)

	counts, err := svc.CountsPerFlow(ctx, sess, []domain.IntegrationFlow{
		{Name: "Orders display", SymbolicName: "Orders"},
		{SymbolicName: "Billing"},
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.FlowCounts{
		{Name: "Orders", Completed: 3, Failed: 2},
		{Name: "Billing", Completed: 0, Failed: 1},
	}, counts)
}

func TestDiscoveryService_CountsPerFlow_BatchesOfSix(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockMonitoringClient(ctrl)
	svc := NewDiscoveryService(client, 6, 200, zerolog.Nop())

	var inFlight, maxSeen atomic.Int32
	client.EXPECT().CountByStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Session, _ string, _ domain.MessageStatus) (int, error) {
			n := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				m := maxSeen.Load()
				if n <= m || maxSeen.CompareAndSwap(m, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			return 1, nil
		}).Times(26)

	flows := make([]domain.IntegrationFlow, 13)
	for i := range flows {
		flows[i] = domain.IntegrationFlow{SymbolicName: string(rune('A' + i))}
	}

	counts, err := svc.CountsPerFlow(context.Background(), cfSession(), flows)
	require.NoError(t, err)
	assert.Len(t, counts, 13)
	assert.LessOrEqual(t, maxSeen.Load(), int32(6))
}

func TestDiscoveryService_FailedCountsPerFlow(t *testing.T) {
	svc, client := setupDiscoveryService(t)
	ctx := context.Background()
	sess := cfSession()

	client.EXPECT().CountByStatus(gomock.Any(), sess, "F1", domain.MessageStatusFailed).Return(0, nil)
	client.EXPECT().CountByStatus(gomock.Any(), sess, "F2", domain.MessageStatusFailed).Return(2, nil)

	got, err := svc.FailedCountsPerFlow(ctx, sess, []domain.IntegrationFlow{{SymbolicName: "F1"}, {SymbolicName: "F2"}})
	require.NoError(t, err)
	assert.Equal(t, []domain.FailedCount{{Name: "F2", Failed: 2}}, got)
}

func TestDiscoveryService_FailedCountsPerFlow_SortedByName(t *testing.T) {
	svc, client := setupDiscoveryService(t)
	sess := cfSession()

	client.EXPECT().CountByStatus(gomock.Any(), sess, "Zeta", domain.MessageStatusFailed).Return(1, nil)
	client.EXPECT().CountByStatus(gomock.Any(), sess, "Alpha", domain.MessageStatusFailed).Return(4, nil)

	got, err := svc.FailedCountsPerFlow(context.Background(), sess, []domain.IntegrationFlow{{SymbolicName: "Zeta"}, {SymbolicName: "Alpha"}})
	require.NoError(t, err)
	assert.Equal(t, []domain.FailedCount{{Name: "Alpha", Failed: 4}, {Name: "Zeta", Failed: 1}}, got)
}

func TestDiscoveryService_FailedCountsPerFlow_HardFailure(t *testing.T) {
	svc, client := setupDiscoveryService(t)
	sess := cfSession()

	client.EXPECT().CountByStatus(gomock.Any(), sess, "F1", domain.MessageStatusFailed).Return(0, apperror.ErrContextInvalidated(nil))

	_, err := svc.FailedCountsPerFlow(context.Background(), sess, []domain.IntegrationFlow{{SymbolicName: "F1"}})
	assert.True(t, apperror.IsContextInvalidated(err))
}

func TestDiscoveryService_ListFailedMessages_Enriches(t *testing.T) {
	svc, client := setupDiscoveryService(t)
	ctx := context.Background()
	sess := cfSession()

	client.EXPECT().ListFailed(ctx, sess, "Orders", 200).Return([]domain.MessageLogEntry{
		{MessageGUID: "g1", IntegrationFlowName: "Orders", Status: domain.MessageStatusFailed},
		{MessageGUID: "g2", IntegrationFlowName: "Orders", Status: domain.MessageStatusFailed},
	}, nil)
	client.EXPECT().ErrorDetails(gomock.Any(), sess, "g1").Return("Connection refused")
	client.EXPECT().ErrorDetails(gomock.Any(), sess, "g2").Return("")

	got, err := svc.ListFailedMessages(ctx, sess, " Orders ", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Connection refused", got[0].ErrorDetails)
	assert.Empty(t, got[1].ErrorDetails)
}

func TestDiscoveryService_ListFailedMessages_Errors(t *testing.T) {
	svc, client := setupDiscoveryService(t)
	ctx := context.Background()
	sess := cfSession()

	_, err := svc.ListFailedMessages(ctx, sess, "  ", 10)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VAL_001", appErr.Code)

	client.EXPECT().ListFailed(ctx, sess, "Orders", 10).Return(nil, apperror.ErrMissingAPIURL())
	_, err = svc.ListFailedMessages(ctx, sess, "Orders", 10)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CFG_001", appErr.Code)
}
