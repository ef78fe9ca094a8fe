package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cpi-resender/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestOK(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(RequestIDKey, "test-req-123")

	OK(c, map[string]int{"failed": 2})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "test-req-123", resp.RequestID)
	assert.NotEmpty(t, resp.Timestamp)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), data["failed"])
}

func TestError_AppError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(RequestIDKey, "test-req-789")

	Error(c, apperror.ErrNoPayloads("Orders"))

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "CPI_003", resp.ErrorCode)
	assert.Equal(t, "no saved payloads found for Orders, fetch payloads first", resp.Message)
	assert.Equal(t, "test-req-789", resp.RequestID)
	assert.Zero(t, resp.UpstreamStatus)
}

func TestError_UpstreamStatus(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, fmt.Errorf("list flows: %w", apperror.ErrUpstreamHTTP("GET", "https://t/x", 401, "Unauthorized")))

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "HTTP_001", resp.ErrorCode)
	assert.Equal(t, 401, resp.UpstreamStatus)
	assert.Contains(t, resp.Message, "check username and password")
}

func TestError_UnknownError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, fmt.Errorf("something unexpected"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SYS_000", resp.ErrorCode)
	assert.Equal(t, "Internal server error", resp.Message)
}

func TestOK_GeneratesRequestID_WhenMissing(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	OK(c, nil)

	var resp SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RequestID, "should generate a UUID when request_id is missing")
}

func TestEvent_WritesSSE(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Event(c, "progress", map[string]int{"current": 1, "total": 3})
	ErrorEvent(c, apperror.ErrContextInvalidated(nil), map[string]int{"success_count": 2})

	body := w.Body.String()
	assert.Contains(t, body, "event:progress")
	assert.Contains(t, body, `"current":1`)
	assert.Contains(t, body, "event:error")
	assert.Contains(t, body, "NET_002")
	assert.Contains(t, body, `"success_count":2`)
}

func TestErrorWithData(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(RequestIDKey, "req-9")

	ErrorWithData(c, apperror.ErrContextInvalidated(nil), map[string]int{"success_count": 3})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp struct {
		ErrorCode string         `json:"error_code"`
		Data      map[string]int `json:"data"`
		RequestID string         `json:"request_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "NET_002", resp.ErrorCode)
	assert.Equal(t, 3, resp.Data["success_count"])
	assert.Equal(t, "req-9", resp.RequestID)
}

func TestError_OmitsData(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, apperror.Validation("bad"))

	assert.NotContains(t, w.Body.String(), `"data"`)
}
