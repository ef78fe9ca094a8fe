package service

import (
	"cpi-resender/internal/core/domain"
)

func cfSession() domain.Session {
	return domain.Session{
		Tenant: domain.Tenant{
			Name:     "acme",
			Platform: domain.PlatformCloudFoundry,
			Origin:   "https://acme.integrationsuite.cfapps.eu10.hana.ondemand.com",
			APIURL:   "https://acme.it-cpi018.cfapps.eu10.hana.ondemand.com",
		},
		Credentials: domain.Credentials{Username: "user", Password: "secret", ClientID: "sb-client", ClientSecret: "cs"},
		Operator:    "alice",
	}
}

func neoSession() domain.Session {
	return domain.Session{
		Tenant: domain.Tenant{
			Name:     "legacy",
			Platform: domain.PlatformNEO,
			Origin:   "https://legacy-tmn.hci.eu1.hana.ondemand.com",
		},
		Credentials: domain.Credentials{Username: "user", Password: "secret"},
		Operator:    "bob",
	}
}

func strPtr(s string) *string { return &s }

// drain collects everything sent on ch until it is closed.
func drain(ch <-chan domain.ProgressEvent) []domain.ProgressEvent {
	var out []domain.ProgressEvent
	for ev := range ch {
		out = append(out, ev)
	}
	return out
}
