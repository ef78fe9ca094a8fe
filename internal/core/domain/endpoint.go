package domain

import (
	"net/url"
	"strings"
)

// AdapterType decides how a payload is framed on resend.
type AdapterType string

const (
	AdapterSOAP AdapterType = "SOAP"
	AdapterHTTP AdapterType = "HTTP"
)

// ClassifyAdapter derives the sender adapter from an endpoint URL path:
// /cxf/ is SOAP, everything else (including /http/) is HTTP.
func ClassifyAdapter(rawURL string) AdapterType {
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		path = u.Path
	}
	switch {
	case strings.Contains(path, "/cxf/"):
		return AdapterSOAP
	case strings.Contains(path, "/http/"):
		return AdapterHTTP
	default:
		return AdapterHTTP
	}
}

// Endpoint is a resolved flow invocation URL.
type Endpoint struct {
	URL         string      `json:"url"`
	AdapterType AdapterType `json:"adapter_type"`
}

// NewEndpoint classifies rawURL.
func NewEndpoint(rawURL string) Endpoint {
	return Endpoint{URL: rawURL, AdapterType: ClassifyAdapter(rawURL)}
}

// EntryPoint is one invocation URL of a service endpoint or runtime artifact.
type EntryPoint struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type,omitempty"`
}

// ServiceEndpoint is one entry of the ServiceEndpoints directory.
type ServiceEndpoint struct {
	Name        string       `json:"name"`
	EntryPoints []EntryPoint `json:"entry_points"`
}

// FirstURL returns the first non-empty entry point URL.
func (s ServiceEndpoint) FirstURL() (string, bool) {
	for _, ep := range s.EntryPoints {
		if ep.URL != "" {
			return ep.URL, true
		}
	}
	return "", false
}

// PreferHTTP returns the first entry point whose type mentions http, or
// the first entry point when none does.
func PreferHTTP(eps []EntryPoint) (EntryPoint, bool) {
	if len(eps) == 0 {
		return EntryPoint{}, false
	}
	for _, ep := range eps {
		if strings.Contains(strings.ToLower(ep.Type), "http") {
			return ep, true
		}
	}
	return eps[0], true
}
