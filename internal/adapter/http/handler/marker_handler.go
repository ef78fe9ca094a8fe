package handler

import (
	"net/http"

	"cpi-resender/internal/adapter/http/dto"
	"cpi-resender/internal/core/domain"
	"cpi-resender/internal/core/ports"
	"cpi-resender/pkg/apperror"
	"cpi-resender/pkg/response"

	"github.com/gin-gonic/gin"
)

// MarkerHandler serves the resent-marker audit log and the resender overview.
type MarkerHandler struct {
	markers  ports.MarkerService
	overview ports.OverviewService
}

func NewMarkerHandler(markers ports.MarkerService, overview ports.OverviewService) *MarkerHandler {
	return &MarkerHandler{markers: markers, overview: overview}
}

// List handles GET /api/v1/resent.
func (h *MarkerHandler) List(c *gin.Context) {
	var q dto.MarkersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	var (
		markers []domain.ResentMarker
		err     error
	)
	if q.Flow != "" {
		markers, err = h.markers.ListByFlow(c.Request.Context(), q.Flow)
	} else {
		markers, err = h.markers.List(c.Request.Context())
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, markers)
}

// Clear handles DELETE /api/v1/resent.
func (h *MarkerHandler) Clear(c *gin.Context) {
	if err := h.markers.Clear(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.StatusResponse{Status: "cleared"})
}

// Export handles GET /api/v1/resent/export. The document is sent bare so
// it can be imported again as is.
func (h *MarkerHandler) Export(c *gin.Context) {
	doc, err := h.markers.Export(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="resent-markers.json"`)
	c.JSON(http.StatusOK, doc)
}

// Import handles POST /api/v1/resent/import.
func (h *MarkerHandler) Import(c *gin.Context) {
	var q dto.ImportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	mode, err := domain.ParseImportMode(q.Mode)
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	var req dto.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	doc, err := req.Document()
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	summary, err := h.markers.Import(c.Request.Context(), doc, mode)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, summary)
}

// Overview handles GET /api/v1/resender/overview.
func (h *MarkerHandler) Overview(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	out, err := h.overview.Overview(c.Request.Context(), sess)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, out)
}
