package service

import (
	"context"
	"strings"

	"cpi-resender/internal/core/domain"
	"cpi-resender/internal/core/ports"
	"cpi-resender/pkg/apperror"

	"github.com/rs/zerolog"
)

// OverviewServiceImpl summarizes the message store of the resender flow.
type OverviewServiceImpl struct {
	endpoints ports.EndpointService
	client    ports.MonitoringClient
	flowName  string
	log       zerolog.Logger
}

func NewOverviewService(endpoints ports.EndpointService, client ports.MonitoringClient, flowName string, log zerolog.Logger) *OverviewServiceImpl {
	return &OverviewServiceImpl{
		endpoints: endpoints,
		client:    client,
		flowName:  strings.TrimSpace(flowName),
		log:       log,
	}
}

func (s *OverviewServiceImpl) Overview(ctx context.Context, sess domain.Session) ([]domain.FlowOverview, error) {
	if s.flowName == "" {
		return nil, apperror.ErrNotConfigured("resender.flow_name")
	}

	ep, err := s.endpoints.DiscoverEndpoint(ctx, sess, s.flowName)
	if err != nil {
		return nil, err
	}
	msgs, err := s.client.ReadResenderMessages(ctx, sess, ep.URL)
	if err != nil {
		return nil, err
	}

	s.log.Debug().Str("flow", s.flowName).Int("messages", len(msgs)).Msg("overview: resender messages read")
	return domain.SummarizeResender(msgs), nil
}
