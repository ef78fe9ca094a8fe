package response

import (
	"errors"
	"net/http"
	"time"

	"cpi-resender/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

// SuccessResponse is the standard success envelope.
type SuccessResponse struct {
	Data      interface{} `json:"data"`
	RequestID string      `json:"request_id"`
	Timestamp string      `json:"timestamp"`
}

// ErrorResponse is the standard error envelope. Data carries the partial
// result of an operation that failed midway.
type ErrorResponse struct {
	ErrorCode      string      `json:"error_code"`
	Message        string      `json:"message"`
	UpstreamStatus int         `json:"upstream_status,omitempty"`
	Data           interface{} `json:"data,omitempty"`
	RequestID      string      `json:"request_id"`
	Timestamp      string      `json:"timestamp"`
}

// OK sends a 200 response with data.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Data:      data,
		RequestID: getRequestID(c),
		Timestamp: now(),
	})
}

// Error sends an error response. It checks if err is an *apperror.AppError
// and maps it accordingly, otherwise returns 500.
func Error(c *gin.Context, err error) {
	status, body := errorBody(c, err)
	c.JSON(status, body)
}

// ErrorWithData sends an error response that also carries data.
func ErrorWithData(c *gin.Context, err error, data interface{}) {
	status, body := errorBody(c, err)
	body.Data = data
	c.JSON(status, body)
}

// Event writes one server-sent event and flushes it to the client.
func Event(c *gin.Context, name string, data interface{}) {
	c.SSEvent(name, data)
	c.Writer.Flush()
}

// ErrorEvent writes an error as a server-sent "error" event, for failures
// that happen after a stream has started. data may be nil.
func ErrorEvent(c *gin.Context, err error, data interface{}) {
	_, body := errorBody(c, err)
	body.Data = data
	Event(c, "error", body)
}

func errorBody(c *gin.Context, err error) (int, ErrorResponse) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus, ErrorResponse{
			ErrorCode:      appErr.Code,
			Message:        appErr.Message,
			UpstreamStatus: appErr.UpstreamStatus,
			RequestID:      getRequestID(c),
			Timestamp:      now(),
		}
	}
	return http.StatusInternalServerError, ErrorResponse{
		ErrorCode: "SYS_000",
		Message:   "Internal server error",
		RequestID: getRequestID(c),
		Timestamp: now(),
	}
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// getRequestID retrieves request ID from context, or generates one.
func getRequestID(c *gin.Context) string {
	if id, exists := c.Get(RequestIDKey); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return uuid.New().String()
}
