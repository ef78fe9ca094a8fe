package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"cpi-resender/internal/core/domain"
	"cpi-resender/internal/core/ports"
	"cpi-resender/pkg/apperror"
	"cpi-resender/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// Header names for per-request tenant credential overrides
	HeaderCPIUsername     = "X-CPI-Username"
	HeaderCPIPassword     = "X-CPI-Password"
	HeaderCPIClientID     = "X-CPI-Client-Id"
	HeaderCPIClientSecret = "X-CPI-Client-Secret"

	HeaderRequestID = "X-Request-ID"

	// Context keys
	CtxOperator = "operator"
	CtxSession  = "cpi_session"
)

// RequestID reuses the caller's X-Request-ID or generates one, and exposes
// it to the response envelopes.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if id == "" || len(id) > 64 {
			id = uuid.New().String()
		}
		c.Set(response.RequestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// JWTAuth validates operator bearer tokens. The token subject becomes the
// operator of the request.
func JWTAuth(tokenSvc ports.TokenService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Error(c, apperror.ErrInvalidToken())
			c.Abort()
			return
		}

		claims, err := tokenSvc.Validate(token)
		if err != nil {
			log.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("rejected operator token")
			response.Error(c, apperror.ErrInvalidToken())
			c.Abort()
			return
		}

		c.Set(CtxOperator, claims.Operator)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
		return "", false
	}
	return authHeader[7:], true
}

// RelayAuth admits relay callers presenting the shared secret in
// ports.RelaySecretHeader, or a valid operator token when tokenSvc is set.
func RelayAuth(secret string, tokenSvc ports.TokenService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret != "" {
			got := c.GetHeader(ports.RelaySecretHeader)
			if got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(secret)) == 1 {
				c.Next()
				return
			}
		}
		if tokenSvc != nil {
			if token, ok := bearerToken(c); ok {
				if claims, err := tokenSvc.Validate(token); err == nil {
					c.Set(CtxOperator, claims.Operator)
					c.Next()
					return
				}
			}
		}

		log.Warn().Str("client_ip", c.ClientIP()).Msg("relay: rejected unauthenticated request")
		response.Error(c, apperror.ErrInvalidToken())
		c.Abort()
	}
}

// TenantSession builds the request's session from base. Credential headers
// override the configured credentials field by field, and an authenticated
// operator replaces the base operator.
func TenantSession(base domain.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := base
		override(&sess.Credentials.Username, c.GetHeader(HeaderCPIUsername))
		override(&sess.Credentials.Password, c.GetHeader(HeaderCPIPassword))
		override(&sess.Credentials.ClientID, c.GetHeader(HeaderCPIClientID))
		override(&sess.Credentials.ClientSecret, c.GetHeader(HeaderCPIClientSecret))

		if op := c.GetString(CtxOperator); op != "" {
			sess.Operator = op
		}

		c.Set(CtxSession, sess)
		c.Next()
	}
}

func override(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

// SessionFrom returns the session set by TenantSession.
func SessionFrom(c *gin.Context) (domain.Session, bool) {
	v, ok := c.Get(CtxSession)
	if !ok {
		return domain.Session{}, false
	}
	sess, ok := v.(domain.Session)
	return sess, ok
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString(response.RequestIDKey)).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error_code": "SYS_001",
					"message":    "Internal server error",
				})
			}
		}()
		c.Next()
	}
}
