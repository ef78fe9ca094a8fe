package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuditLog writes one log line per successful state-changing API call,
// attributed to the operator.
func AuditLog(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return
		}

		action := mapRouteToAction(c.FullPath(), c.Request.Method)
		if action == "" {
			return
		}

		operator := c.GetString(CtxOperator)
		if sess, ok := SessionFrom(c); ok && operator == "" {
			operator = sess.Operator
		}

		log.Info().
			Str("action", action).
			Str("operator", operator).
			Str("flow", c.Param("flow")).
			Str("client_ip", c.ClientIP()).
			Int("status", c.Writer.Status()).
			Msg("audit: operator action")
	}
}

func mapRouteToAction(route, method string) string {
	switch {
	case route == "/api/v1/flows/:flow/payloads" && method == http.MethodPost:
		return "fetch_payloads"
	case route == "/api/v1/flows/:flow/payloads" && method == http.MethodDelete:
		return "delete_payloads"
	case route == "/api/v1/flows/:flow/payloads/delete" && method == http.MethodPost:
		return "delete_payload_entries"
	case route == "/api/v1/resend" && method == http.MethodPost:
		return "resend"
	case route == "/api/v1/resent" && method == http.MethodDelete:
		return "clear_markers"
	case route == "/api/v1/resent/import" && method == http.MethodPost:
		return "import_markers"
	}
	return ""
}
