// Package app wires configuration, storage, transport and services into
// the object graph shared by the API server and the CLI.
package app

import (
	"context"
	"fmt"
	"net/http"
	"regexp"

	"cpi-resender/config"
	"cpi-resender/internal/adapter/odata"
	pgStorage "cpi-resender/internal/adapter/storage/postgres"
	redisStorage "cpi-resender/internal/adapter/storage/redis"
	"cpi-resender/internal/adapter/transport"
	"cpi-resender/internal/core/domain"
	"cpi-resender/internal/core/ports"
	"cpi-resender/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// DefaultOperator is recorded as ResentBy when no operator is known.
const DefaultOperator = "anonymous"

// App holds the wired services and the resources they depend on.
type App struct {
	Config  *config.Config
	Log     zerolog.Logger
	Session domain.Session

	Discovery ports.DiscoveryService
	Payloads  ports.PayloadService
	Endpoints ports.EndpointService
	Resend    ports.ResendService
	Markers   ports.MarkerService
	Overview  ports.OverviewService
	Tokens    ports.TokenService // nil when auth.jwt_secret is empty

	// LocalRelay is set when relay.mode is local; the API serves it on /relay
	// to callers holding RelaySecret or an operator token.
	LocalRelay     ports.Relay
	RelaySecret    string
	RateLimitStore *redisStorage.RateLimitStore
	HealthCheckers []ports.HealthChecker

	rdb  *goredis.Client
	pool *pgxpool.Pool
}

// New connects Redis, and Postgres when enabled, and builds every service.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	sess, err := BaseSession(cfg.Tenant)
	if err != nil {
		return nil, err
	}

	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	a := &App{
		Config:         cfg,
		Log:            log,
		Session:        sess,
		rdb:            rdb,
		RateLimitStore: redisStorage.NewRateLimitStore(rdb),
		HealthCheckers: []ports.HealthChecker{redisStorage.NewHealthCheck(rdb)},
	}

	var audit ports.AuditRepository
	if cfg.Database.Enabled {
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connecting to audit database: %w", err)
		}
		a.pool = pool
		audit = pgStorage.NewAuditRepo(pool)
		a.HealthCheckers = append(a.HealthCheckers, pgStorage.NewHealthCheck(pool))
	}

	var sealer ports.PayloadSealer
	if cfg.Cache.Passphrase != "" {
		s, err := service.NewAESPayloadSealer(cfg.Cache.Passphrase, cfg.Cache.Salt)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("cache sealer: %w", err)
		}
		sealer = s
	} else {
		log.Warn().Msg("cache.passphrase is empty, payloads are cached unencrypted")
	}

	httpClient := &http.Client{}
	opts := []transport.Option{
		transport.WithTimeout(cfg.Transport.Timeout),
		transport.WithGetRetries(cfg.Transport.GetRetries),
	}
	switch cfg.Relay.Mode {
	case "local":
		allow := RelayAllowlist(sess, cfg.Relay.AllowedHosts)
		log.Info().Strs("hosts", allow.Hosts()).Msg("relay: local relay targets")
		relayClient := &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after %d redirects", len(via))
				}
				return allow.Check(req.URL.String())
			},
		}
		a.LocalRelay = transport.NewLocalRelay(relayClient, allow)
		opts = append(opts, transport.WithRelay(a.LocalRelay))
	case "remote":
		opts = append(opts, transport.WithRelay(transport.NewHTTPRelay(httpClient, cfg.Relay.URL, cfg.Relay.Secret)))
	}
	a.RelaySecret = cfg.Relay.Secret
	client := odata.NewClient(transport.NewClient(httpClient, log, opts...), log)

	cache := redisStorage.NewPayloadCache(rdb, sealer)
	locker := redisStorage.NewFlowLocker(rdb, cfg.Cache.LockTTL)
	markers := service.NewMarkerService(redisStorage.NewMarkerStore(rdb), audit, log)

	discovery := service.NewDiscoveryService(client, cfg.Discovery.BatchSize, cfg.Discovery.ListTop, log)
	payloads := service.NewPayloadService(discovery, client, cache, locker, cfg.Cache.LockTTL, log)
	endpoints := service.NewEndpointService(client, log)

	a.Discovery = discovery
	a.Payloads = payloads
	a.Endpoints = endpoints
	a.Markers = markers
	a.Resend = service.NewResendService(payloads, endpoints, client, markers, service.ResendOptions{
		BatchSize:          cfg.Resend.BatchSize,
		BatchPause:         cfg.Resend.BatchPause,
		DeleteEndpointName: cfg.Resend.DeleteEndpointName,
	}, log)
	a.Overview = service.NewOverviewService(endpoints, client, cfg.Resender.FlowName, log)

	if cfg.Auth.JWTSecret != "" {
		a.Tokens = service.NewJWTTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, cfg.Auth.Issuer)
	}

	return a, nil
}

// Close releases the Redis client and the database pool.
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.Log.Warn().Err(err).Msg("closing redis client")
		}
	}
}

// RelayAllowlist admits the tenant origin, the API host and the payload host
// with its rewrites applied, plus extra.
func RelayAllowlist(sess domain.Session, extra []string) *transport.HostAllowlist {
	hosts := []string{sess.Tenant.Origin, sess.Tenant.APIURL}
	if base, err := sess.Tenant.PayloadBase(); err == nil {
		hosts = append(hosts, base)
	}
	return transport.NewHostAllowlist(append(hosts, extra...)...)
}

// BaseSession turns the tenant section into the session every operation
// starts from.
func BaseSession(t config.TenantConfig) (domain.Session, error) {
	platform, err := domain.ParsePlatform(t.Platform)
	if err != nil {
		return domain.Session{}, err
	}

	rules := make(domain.RewriteRules, 0, len(t.PayloadRewrites))
	for i, r := range t.PayloadRewrites {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return domain.Session{}, fmt.Errorf("tenant.payload_rewrites[%d]: %w", i, err)
		}
		rules = append(rules, domain.RewriteRule{Pattern: re, Replacement: r.Replacement})
	}

	return domain.Session{
		Tenant: domain.Tenant{
			Name:            t.Name,
			Platform:        platform,
			Origin:          t.Origin,
			APIURL:          t.APIURL,
			PayloadRewrites: rules,
		},
		Credentials: domain.Credentials{
			Username:     t.Username,
			Password:     t.Password,
			ClientID:     t.ClientID,
			ClientSecret: t.ClientSecret,
		},
		Operator: DefaultOperator,
	}, nil
}
