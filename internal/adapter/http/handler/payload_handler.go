package handler

import (
	"context"

	"cpi-resender/internal/adapter/http/dto"
	"cpi-resender/internal/core/domain"
	"cpi-resender/internal/core/ports"
	"cpi-resender/pkg/response"

	"github.com/gin-gonic/gin"
)

// PayloadHandler serves payload fetching and the local payload cache.
type PayloadHandler struct {
	payloads ports.PayloadService
}

func NewPayloadHandler(payloads ports.PayloadService) *PayloadHandler {
	return &PayloadHandler{payloads: payloads}
}

// Fetch handles POST /api/v1/flows/:flow/payloads. With
// Accept: text/event-stream the per-message progress is streamed.
func (h *PayloadHandler) Fetch(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	flow, ok := flowParam(c)
	if !ok {
		return
	}

	if wantsEventStream(c) {
		streamProgress(c, func(ctx context.Context, progress chan<- domain.ProgressEvent) (interface{}, error) {
			entries, err := h.payloads.FetchAndCache(ctx, sess, flow, progress)
			if err != nil {
				return nil, err
			}
			return dto.NewPayloadBundleResponse(flow, entries), nil
		})
		return
	}

	entries, err := h.payloads.FetchAndCache(c.Request.Context(), sess, flow, nil)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewPayloadBundleResponse(flow, entries))
}

// GetCached handles GET /api/v1/flows/:flow/payloads.
func (h *PayloadHandler) GetCached(c *gin.Context) {
	flow, ok := flowParam(c)
	if !ok {
		return
	}
	entries, err := h.payloads.GetCached(c.Request.Context(), flow)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewPayloadBundleResponse(flow, entries))
}

// DeleteAll handles DELETE /api/v1/flows/:flow/payloads.
func (h *PayloadHandler) DeleteAll(c *gin.Context) {
	flow, ok := flowParam(c)
	if !ok {
		return
	}
	if err := h.payloads.DeleteAll(c.Request.Context(), flow); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.StatusResponse{Status: "deleted"})
}

// DeleteEntries handles POST /api/v1/flows/:flow/payloads/delete.
func (h *PayloadHandler) DeleteEntries(c *gin.Context) {
	flow, ok := flowParam(c)
	if !ok {
		return
	}
	var req dto.DeleteEntriesRequest
	if !bindSanitizedJSON(c, &req) {
		return
	}

	n, err := h.payloads.DeleteEntries(c.Request.Context(), flow, req.MessageGUIDs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.DeleteEntriesResponse{Deleted: n})
}

// ListCached handles GET /api/v1/payloads.
func (h *PayloadHandler) ListCached(c *gin.Context) {
	flows, err := h.payloads.ListCachedFlows(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, flows)
}
