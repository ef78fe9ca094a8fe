package domain

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"cpi-resender/pkg/apperror"
)

// Platform is the CPI tenant variant.
type Platform string

const (
	PlatformCloudFoundry Platform = "CF"
	PlatformNEO          Platform = "NEO"
)

// ParsePlatform accepts "cf" or "neo" in any case.
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(PlatformCloudFoundry):
		return PlatformCloudFoundry, nil
	case string(PlatformNEO):
		return PlatformNEO, nil
	}
	return "", fmt.Errorf("unknown platform %q", s)
}

// RewriteRule is one landscape-specific host substitution.
type RewriteRule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// RewriteRules are applied in order, each to the output of the previous one.
type RewriteRules []RewriteRule

// Apply runs every rule against s.
func (r RewriteRules) Apply(s string) string {
	for _, rule := range r {
		s = rule.Pattern.ReplaceAllString(s, rule.Replacement)
	}
	return s
}

// Tenant identifies the CPI tenant an operation runs against.
type Tenant struct {
	Name     string
	Platform Platform
	// Origin is the tenant UI origin, e.g. https://acme.integrationsuite.cfapps.eu10.hana.ondemand.com.
	// Requests to any other host go through the cross-origin relay.
	Origin string
	// APIURL is the Process Integration Runtime API host. Cloud Foundry only.
	APIURL          string
	PayloadRewrites RewriteRules
}

func (t Tenant) IsNEO() bool {
	return t.Platform == PlatformNEO
}

// Host returns the host of Origin, or "" when Origin is not a URL.
func (t Tenant) Host() string {
	u, err := url.Parse(t.Origin)
	if err != nil {
		return ""
	}
	return u.Host
}

func (t Tenant) urlExtension() string {
	if t.IsNEO() {
		return "itspaces/"
	}
	return ""
}

func (t Tenant) origin() string {
	return strings.TrimRight(t.Origin, "/")
}

// ODataBase is the monitoring OData root served by the tenant UI host.
func (t Tenant) ODataBase() string {
	return t.origin() + "/" + t.urlExtension() + "odata/api/v1/"
}

// OperationsBase is the root of the UI operations commands used for flow listing.
func (t Tenant) OperationsBase() string {
	return t.origin() + "/" + t.urlExtension() + "Operations/"
}

// APIBase is the public API root. NEO serves it from the UI origin; Cloud
// Foundry needs the separately configured API URL.
func (t Tenant) APIBase() (string, error) {
	if t.IsNEO() {
		return t.origin() + "/api/v1/", nil
	}
	if strings.TrimSpace(t.APIURL) == "" {
		return "", apperror.ErrMissingAPIURL()
	}
	return strings.TrimRight(t.APIURL, "/") + "/api/v1/", nil
}

// PayloadBase is APIBase with the landscape rewrite rules applied on Cloud Foundry.
func (t Tenant) PayloadBase() (string, error) {
	base, err := t.APIBase()
	if err != nil {
		return "", err
	}
	if t.IsNEO() {
		return base, nil
	}
	return t.PayloadRewrites.Apply(base), nil
}

// BasicPair is one username/password pair for Basic authentication.
type BasicPair struct {
	Username string
	Password string
}

func (p BasicPair) complete() bool {
	return p.Username != "" && p.Password != ""
}

// Credentials carries both credential pairs of a tenant. Discovery calls
// always use Username/Password; flow invocations on Cloud Foundry use the
// client id/secret of the runtime service key instead.
type Credentials struct {
	Username     string
	Password     string
	ClientID     string
	ClientSecret string
}

// Discovery returns the pair for monitoring and service-directory calls.
func (c Credentials) Discovery() (BasicPair, error) {
	p := BasicPair{Username: c.Username, Password: c.Password}
	if !p.complete() {
		return BasicPair{}, apperror.ErrMissingCredentials("username and password")
	}
	return p, nil
}

// FlowCall returns the pair for invoking integration flows.
func (c Credentials) FlowCall(platform Platform) (BasicPair, error) {
	if platform == PlatformNEO {
		return c.Discovery()
	}
	p := BasicPair{Username: c.ClientID, Password: c.ClientSecret}
	if !p.complete() {
		return BasicPair{}, apperror.ErrMissingCredentials("client id and client secret")
	}
	return p, nil
}

// Session is the explicit context of one operator operation.
type Session struct {
	Tenant      Tenant
	Credentials Credentials
	Operator    string
}
