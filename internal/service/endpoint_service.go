package service

import (
	"context"

	"cpi-resender/internal/core/domain"
	"cpi-resender/internal/core/ports"
	"cpi-resender/pkg/apperror"

	"github.com/rs/zerolog"
)

// EndpointServiceImpl implements ports.EndpointService. Endpoints are looked
// up on every call; deployments move them.
type EndpointServiceImpl struct {
	client ports.MonitoringClient
	log    zerolog.Logger
}

func NewEndpointService(client ports.MonitoringClient, log zerolog.Logger) *EndpointServiceImpl {
	return &EndpointServiceImpl{client: client, log: log}
}

// DiscoverEndpoint asks the ServiceEndpoints directory first and the
// deployed runtime artifacts second.
func (s *EndpointServiceImpl) DiscoverEndpoint(ctx context.Context, sess domain.Session, flow string) (domain.Endpoint, error) {
	flow, err := requireFlow(flow)
	if err != nil {
		return domain.Endpoint{}, err
	}

	url, err := s.client.ServiceEndpointURL(ctx, sess, flow)
	if err == nil {
		return domain.NewEndpoint(url), nil
	}
	if isHardFailure(err) || apperror.IsConfig(err) {
		return domain.Endpoint{}, err
	}
	s.log.Debug().Err(err).Str("flow", flow).Msg("endpoint: directory lookup failed, trying runtime artifacts")

	ep, fallbackErr := s.client.RuntimeArtifactEndpoint(ctx, sess, flow)
	if fallbackErr != nil {
		if apperror.IsNotFound(fallbackErr) {
			return domain.Endpoint{}, err
		}
		return domain.Endpoint{}, fallbackErr
	}
	return domain.NewEndpoint(ep.URL), nil
}
