package handler

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"cpi-resender/internal/adapter/http/dto"
	"cpi-resender/internal/adapter/http/middleware"
	"cpi-resender/internal/core/domain"
	"cpi-resender/pkg/apperror"
	"cpi-resender/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// requireSession returns the tenant session, writing an error response when
// the route is not behind TenantSession.
func requireSession(c *gin.Context) (domain.Session, bool) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		response.Error(c, apperror.InternalError(errors.New("no tenant session on request")))
		return domain.Session{}, false
	}
	return sess, true
}

// bindSanitizedJSON decodes the JSON body into obj, trims its strings and
// only then validates it, so padded ids pass the id rules. It writes the
// error response itself.
func bindSanitizedJSON(c *gin.Context, obj interface{}) bool {
	if c.Request.Body == nil {
		response.Error(c, apperror.Validation("request body is required"))
		return false
	}
	if err := json.NewDecoder(c.Request.Body).Decode(obj); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return false
	}
	dto.SanitizeStruct(obj)
	if err := binding.Validator.ValidateStruct(obj); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return false
	}
	return true
}

func flowParam(c *gin.Context) (string, bool) {
	flow := strings.TrimSpace(c.Param("flow"))
	if flow == "" {
		response.Error(c, apperror.Validation("integration flow name is required"))
		return "", false
	}
	return flow, true
}

func wantsEventStream(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/event-stream")
}

// streamProgress runs fn and relays its progress events as SSE "progress"
// events, then sends the result as a "done" event or the failure as an
// "error" event. A result returned with the error rides on the error event.
func streamProgress(c *gin.Context, fn func(ctx context.Context, progress chan<- domain.ProgressEvent) (interface{}, error)) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	type outcome struct {
		data interface{}
		err  error
	}
	progress := make(chan domain.ProgressEvent, 16)
	done := make(chan outcome, 1)

	go func() {
		data, err := fn(c.Request.Context(), progress)
		close(progress)
		done <- outcome{data: data, err: err}
	}()

	for ev := range progress {
		response.Event(c, "progress", ev)
	}
	out := <-done
	if out.err != nil {
		response.ErrorEvent(c, out.err, out.data)
		return
	}
	response.Event(c, "done", out.data)
}
