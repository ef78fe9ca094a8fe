package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Log       LogConfig       `mapstructure:"log"`
	Tenant    TenantConfig    `mapstructure:"tenant"`
	Transport TransportConfig `mapstructure:"transport"`
	Relay     RelayConfig     `mapstructure:"relay"`
	Discovery DiscoveryConfig `mapstructure:"discovery"`
	Resend    ResendConfig    `mapstructure:"resend"`
	Resender  ResenderConfig  `mapstructure:"resender"`
	Cache     CacheConfig     `mapstructure:"cache"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// DatabaseConfig configures the remote audit database. The resend pipeline
// runs without it; Enabled=false skips the pool entirely.
type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// AuthConfig controls operator JWT authentication. An empty secret
// leaves the API open.
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	JWTExpiry time.Duration `mapstructure:"jwt_expiry"`
	Issuer    string        `mapstructure:"issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// TenantConfig describes the CPI tenant and the credentials used against it.
type TenantConfig struct {
	Name            string              `mapstructure:"name"`
	Platform        string              `mapstructure:"platform"` // cf, neo
	Origin          string              `mapstructure:"origin"`
	APIURL          string              `mapstructure:"api_url"`
	Username        string              `mapstructure:"username"`
	Password        string              `mapstructure:"password"`
	ClientID        string              `mapstructure:"client_id"`
	ClientSecret    string              `mapstructure:"client_secret"`
	PayloadRewrites []RewriteRuleConfig `mapstructure:"payload_rewrites"`
}

// RewriteRuleConfig is one host substitution applied to payload URLs on
// Cloud Foundry landscapes.
type RewriteRuleConfig struct {
	Pattern     string `mapstructure:"pattern"`
	Replacement string `mapstructure:"replacement"`
}

type TransportConfig struct {
	Timeout    time.Duration `mapstructure:"timeout"`
	GetRetries uint64        `mapstructure:"get_retries"`
}

// RelayConfig selects how cross-origin tenant requests are made. Secret
// guards the /relay endpoint and is sent to a remote relay. AllowedHosts
// extends the tenant hosts the local relay may reach.
type RelayConfig struct {
	Mode         string   `mapstructure:"mode"` // local, remote, none
	URL          string   `mapstructure:"url"`
	Secret       string   `mapstructure:"secret"`
	AllowedHosts []string `mapstructure:"allowed_hosts"`
}

type DiscoveryConfig struct {
	BatchSize int `mapstructure:"batch_size"`
	ListTop   int `mapstructure:"list_top"`
}

type ResendConfig struct {
	BatchSize          int           `mapstructure:"batch_size"`
	BatchPause         time.Duration `mapstructure:"batch_pause"`
	DeleteEndpointName string        `mapstructure:"delete_endpoint_name"`
}

type ResenderConfig struct {
	FlowName string `mapstructure:"flow_name"`
}

type CacheConfig struct {
	Passphrase string        `mapstructure:"passphrase"`
	Salt       string        `mapstructure:"salt"`
	LockTTL    time.Duration `mapstructure:"lock_ttl"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: CPR_.
// Nested keys use underscore: CPR_TENANT_ORIGIN, CPR_REDIS_HOST, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "cpi_resender")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.jwt_expiry", "12h")
	v.SetDefault("auth.issuer", "cpi-resender")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("tenant.name", "default")
	v.SetDefault("tenant.platform", "cf")
	v.SetDefault("transport.timeout", "30s")
	v.SetDefault("transport.get_retries", 2)
	v.SetDefault("relay.mode", "local")
	v.SetDefault("relay.secret", "")
	v.SetDefault("relay.allowed_hosts", []string{})
	v.SetDefault("discovery.batch_size", 6)
	v.SetDefault("discovery.list_top", 200)
	v.SetDefault("resend.batch_size", 3)
	v.SetDefault("resend.batch_pause", "500ms")
	v.SetDefault("resend.delete_endpoint_name", "Delete_Global_DataStore")
	v.SetDefault("resender.flow_name", "")
	v.SetDefault("cache.passphrase", "")
	v.SetDefault("cache.salt", "")
	v.SetDefault("cache.lock_ttl", "2m")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// CPR_TENANT_API_URL -> tenant.api_url
	v.SetEnvPrefix("CPR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the settings that would otherwise only fail at the first
// tenant call.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Tenant.Platform) {
	case "cf":
		if c.Tenant.APIURL == "" {
			return fmt.Errorf("tenant.api_url is required for Cloud Foundry tenants")
		}
	case "neo":
	default:
		return fmt.Errorf("tenant.platform must be cf or neo, got %q", c.Tenant.Platform)
	}

	for i, r := range c.Tenant.PayloadRewrites {
		if _, err := regexp.Compile(r.Pattern); err != nil {
			return fmt.Errorf("tenant.payload_rewrites[%d]: %w", i, err)
		}
	}

	switch c.Relay.Mode {
	case "local", "none":
	case "remote":
		if c.Relay.URL == "" {
			return fmt.Errorf("relay.url is required when relay.mode is remote")
		}
	default:
		return fmt.Errorf("relay.mode must be local, remote or none, got %q", c.Relay.Mode)
	}

	if c.Resend.BatchSize < 1 || c.Discovery.BatchSize < 1 {
		return fmt.Errorf("batch sizes must be positive")
	}
	return nil
}
