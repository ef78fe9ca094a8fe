package app

import (
	"context"
	"strconv"
	"testing"

	"cpi-resender/config"
	"cpi-resender/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseSession(t *testing.T) {
	sess, err := BaseSession(config.TenantConfig{
		Name:     "acme",
		Platform: "cf",
		Origin:   "https://acme.integrationsuite-trial.cfapps.us10-001.hana.ondemand.com",
		APIURL:   "https://acme.it-cpitrial05.cfapps.us10-001.hana.ondemand.com",
		Username: "u",
		Password: "p",
		PayloadRewrites: []config.RewriteRuleConfig{
			{Pattern: `integrationsuite-trial`, Replacement: "it-cpitrial05"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.PlatformCloudFoundry, sess.Tenant.Platform)
	assert.Equal(t, DefaultOperator, sess.Operator)
	require.Len(t, sess.Tenant.PayloadRewrites, 1)
	assert.Equal(t, "https://acme.it-cpitrial05.cfapps.us10-001.hana.ondemand.com",
		sess.Tenant.PayloadRewrites.Apply(sess.Tenant.Origin))
}

func TestBaseSession_Errors(t *testing.T) {
	_, err := BaseSession(config.TenantConfig{Platform: "kyma"})
	assert.Error(t, err)

	_, err = BaseSession(config.TenantConfig{Platform: "neo", PayloadRewrites: []config.RewriteRuleConfig{{Pattern: "("}}})
	assert.ErrorContains(t, err, "payload_rewrites[0]")
}

func testConfig(t *testing.T, mr *miniredis.Miniredis) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Tenant.Platform = "neo"
	cfg.Tenant.Origin = "https://legacy-tmn.hci.eu1.hana.ondemand.com"
	cfg.Redis.Host = mr.Host()
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	cfg.Redis.Port = port
	return cfg
}

func TestNew_WiresServices(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t, mr)
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Cache.Passphrase = "correct horse"
	cfg.Cache.Salt = "0123456789abcdef"

	a, err := New(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(a.Close)

	assert.NotNil(t, a.Resend)
	assert.NotNil(t, a.Overview)
	assert.NotNil(t, a.Tokens)
	assert.NotNil(t, a.LocalRelay)
	assert.Len(t, a.HealthCheckers, 1, "postgres is disabled by default")

	markers, err := a.Markers.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, markers)
}

func TestNew_RejectsShortSalt(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t, mr)
	cfg.Cache.Passphrase = "pw"
	cfg.Cache.Salt = "short"

	_, err := New(context.Background(), cfg, zerolog.Nop())
	assert.ErrorContains(t, err, "cache sealer")
}

func TestRelayAllowlist(t *testing.T) {
	sess, err := BaseSession(config.TenantConfig{
		Platform: "cf",
		Origin:   "https://acme.integrationsuite-trial.cfapps.us10-001.hana.ondemand.com",
		APIURL:   "https://acme.it-cpitrial05.cfapps.us10-001.hana.ondemand.com",
		PayloadRewrites: []config.RewriteRuleConfig{
			{Pattern: `\.it-cpi[^.]*\.`, Replacement: ".integrationsuite-trial."},
		},
	})
	require.NoError(t, err)

	allow := RelayAllowlist(sess, []string{"extra.example.com"})

	assert.NoError(t, allow.Check("https://acme.it-cpitrial05-rt.cfapps.us10-001.hana.ondemand.com/http/orders"))
	assert.NoError(t, allow.Check("https://acme.integrationsuite-trial.cfapps.us10-001.hana.ondemand.com/api/v1/x"))
	assert.NoError(t, allow.Check("https://extra.example.com/x"))
	assert.Error(t, allow.Check("http://127.0.0.1:6379/"))
	assert.Error(t, allow.Check("http://169.254.169.254/latest/meta-data/"))
}
