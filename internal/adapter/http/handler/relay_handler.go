package handler

import (
	"net/http"

	"cpi-resender/internal/adapter/http/dto"
	"cpi-resender/internal/adapter/transport"
	"cpi-resender/internal/core/ports"

	"github.com/gin-gonic/gin"
)

// RelayHandler exposes the cross-origin relay protocol over HTTP. Failures
// are reported inside the protocol answer, so the status is always 200 once
// the request parses.
type RelayHandler struct {
	relay ports.Relay
}

func NewRelayHandler(relay ports.Relay) *RelayHandler {
	return &RelayHandler{relay: relay}
}

// Handle handles POST /relay.
func (h *RelayHandler) Handle(c *gin.Context) {
	var req dto.RelayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ports.RelayResponse{Success: false, Error: err.Error()})
		return
	}

	data, err := h.relay.Forward(c.Request.Context(), req.ToPort())
	c.JSON(http.StatusOK, transport.Respond(data, err))
}
