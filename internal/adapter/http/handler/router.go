package handler

import (
	"cpi-resender/internal/adapter/http/middleware"
	redisStore "cpi-resender/internal/adapter/storage/redis"
	"cpi-resender/internal/core/domain"
	"cpi-resender/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// maxBodyBytes bounds request bodies. Relay bodies carry whole payloads.
const maxBodyBytes = 16 << 20

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	DiscoverySvc ports.DiscoveryService
	PayloadSvc   ports.PayloadService
	EndpointSvc  ports.EndpointService
	ResendSvc    ports.ResendService
	MarkerSvc    ports.MarkerService
	OverviewSvc  ports.OverviewService
	// BaseSession is the configured tenant and credentials every request
	// starts from.
	BaseSession    domain.Session
	TokenSvc       ports.TokenService         // nil = API open
	Relay          ports.Relay                // nil = no /relay endpoint
	RelaySecret    string                     // admits /relay callers besides operator tokens
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(maxBodyBytes))
	r.Use(middleware.AuditLog(deps.Logger))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	// /relay needs a caller credential; without one it stays unmounted.
	if deps.Relay != nil {
		if deps.RelaySecret == "" && deps.TokenSvc == nil {
			deps.Logger.Warn().Msg("relay: /relay not exposed, set relay.secret or auth.jwt_secret")
		} else {
			r.POST("/relay", middleware.RelayAuth(deps.RelaySecret, deps.TokenSvc, deps.Logger), NewRelayHandler(deps.Relay).Handle)
		}
	}

	rules := middleware.DefaultRateLimitRules()
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")
	if deps.TokenSvc != nil {
		v1.Use(middleware.JWTAuth(deps.TokenSvc, deps.Logger))
	}
	v1.Use(middleware.TenantSession(deps.BaseSession))

	flowHandler := NewFlowHandler(deps.DiscoverySvc, deps.EndpointSvc)
	payloadHandler := NewPayloadHandler(deps.PayloadSvc)

	flows := v1.Group("/flows")
	{
		flows.GET("", rl("discovery"), flowHandler.ListFlows)
		flows.GET("/failed", rl("discovery"), flowHandler.FailedCounts)
		flows.GET("/:flow/messages", rl("discovery"), flowHandler.ListMessages)
		flows.GET("/:flow/endpoint", rl("discovery"), flowHandler.Endpoint)

		flows.POST("/:flow/payloads", rl("payload_fetch"), payloadHandler.Fetch)
		flows.GET("/:flow/payloads", payloadHandler.GetCached)
		flows.DELETE("/:flow/payloads", payloadHandler.DeleteAll)
		flows.POST("/:flow/payloads/delete", payloadHandler.DeleteEntries)
	}
	v1.GET("/payloads", payloadHandler.ListCached)

	v1.POST("/resend", rl("resend"), NewResendHandler(deps.ResendSvc).Resend)

	markerHandler := NewMarkerHandler(deps.MarkerSvc, deps.OverviewSvc)
	resent := v1.Group("/resent", rl("audit"))
	{
		resent.GET("", markerHandler.List)
		resent.DELETE("", markerHandler.Clear)
		resent.GET("/export", markerHandler.Export)
		resent.POST("/import", markerHandler.Import)
	}
	v1.GET("/resender/overview", rl("discovery"), markerHandler.Overview)

	return r
}
