package handler

import (
	"cpi-resender/internal/adapter/http/dto"
	"cpi-resender/internal/core/ports"
	"cpi-resender/pkg/apperror"
	"cpi-resender/pkg/response"

	"github.com/gin-gonic/gin"
)

// FlowHandler serves integration flow discovery.
type FlowHandler struct {
	discovery ports.DiscoveryService
	endpoints ports.EndpointService
}

func NewFlowHandler(discovery ports.DiscoveryService, endpoints ports.EndpointService) *FlowHandler {
	return &FlowHandler{discovery: discovery, endpoints: endpoints}
}

// ListFlows handles GET /api/v1/flows.
func (h *FlowHandler) ListFlows(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	flows, err := h.discovery.ListIntegrationFlows(ctx, sess)
	if err != nil {
		response.Error(c, err)
		return
	}
	counts, err := h.discovery.CountsPerFlow(ctx, sess, flows)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, counts)
}

// FailedCounts handles GET /api/v1/flows/failed.
func (h *FlowHandler) FailedCounts(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	flows, err := h.discovery.ListIntegrationFlows(ctx, sess)
	if err != nil {
		response.Error(c, err)
		return
	}
	failed, err := h.discovery.FailedCountsPerFlow(ctx, sess, flows)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, failed)
}

// ListMessages handles GET /api/v1/flows/:flow/messages.
func (h *FlowHandler) ListMessages(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	flow, ok := flowParam(c)
	if !ok {
		return
	}
	var q dto.MessagesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	msgs, err := h.discovery.ListFailedMessages(c.Request.Context(), sess, flow, q.Top)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, msgs)
}

// Endpoint handles GET /api/v1/flows/:flow/endpoint.
func (h *FlowHandler) Endpoint(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	flow, ok := flowParam(c)
	if !ok {
		return
	}

	ep, err := h.endpoints.DiscoverEndpoint(c.Request.Context(), sess, flow)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, ep)
}
