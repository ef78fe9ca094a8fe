package handler

import (
	"context"

	"cpi-resender/internal/adapter/http/dto"
	"cpi-resender/internal/core/domain"
	"cpi-resender/internal/core/ports"
	"cpi-resender/pkg/response"

	"github.com/gin-gonic/gin"
)

// ResendHandler serves resending of cached payloads.
type ResendHandler struct {
	resend ports.ResendService
}

func NewResendHandler(resend ports.ResendService) *ResendHandler {
	return &ResendHandler{resend: resend}
}

// Resend handles POST /api/v1/resend. Like payload fetching it streams
// progress when the client accepts text/event-stream. An aborted run answers
// with the error and the partial report as its data.
func (h *ResendHandler) Resend(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	var req dto.ResendRequest
	if !bindSanitizedJSON(c, &req) {
		return
	}
	items := req.Items()

	if wantsEventStream(c) {
		streamProgress(c, func(ctx context.Context, progress chan<- domain.ProgressEvent) (interface{}, error) {
			report, err := h.resend.Resend(ctx, sess, items, progress)
			if report == nil {
				return nil, err
			}
			return report, err
		})
		return
	}

	report, err := h.resend.Resend(c.Request.Context(), sess, items, nil)
	if err != nil {
		if report != nil {
			response.ErrorWithData(c, err, report)
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}
