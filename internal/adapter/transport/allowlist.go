package transport

import (
	"net/url"
	"sort"
	"strings"

	"cpi-resender/pkg/apperror"
)

// HostAllowlist is the set of hosts the local relay may reach. Each host is
// also allowed in its runtime form, where one label gains or loses "-rt"
// (acme.it-cpi018.cfapps... and acme.it-cpi018-rt.cfapps...).
type HostAllowlist struct {
	hosts map[string]struct{}
}

// NewHostAllowlist accepts URLs or bare host names. Empty entries are
// ignored.
func NewHostAllowlist(entries ...string) *HostAllowlist {
	a := &HostAllowlist{hosts: map[string]struct{}{}}
	for _, e := range entries {
		host := hostOf(e)
		if host == "" {
			continue
		}
		a.hosts[host] = struct{}{}
		for _, v := range runtimeVariants(host) {
			a.hosts[v] = struct{}{}
		}
	}
	return a
}

func hostOf(entry string) string {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return ""
	}
	if strings.Contains(entry, "://") {
		u, err := url.Parse(entry)
		if err != nil {
			return ""
		}
		return strings.ToLower(u.Hostname())
	}
	return strings.ToLower(strings.TrimSuffix(entry, "."))
}

// runtimeVariants toggles the "-rt" suffix on each label left of the
// registrable domain.
func runtimeVariants(host string) []string {
	labels := strings.Split(host, ".")
	var out []string
	for i := 0; i < len(labels)-2; i++ {
		v := make([]string, len(labels))
		copy(v, labels)
		if strings.HasSuffix(v[i], "-rt") {
			v[i] = strings.TrimSuffix(v[i], "-rt")
		} else {
			v[i] += "-rt"
		}
		if v[i] != "" {
			out = append(out, strings.Join(v, "."))
		}
	}
	return out
}

// Check returns an error unless rawURL is an absolute http(s) URL on an
// allowed host. A nil list allows nothing.
func (a *HostAllowlist) Check(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return apperror.Validation("relay target must be an absolute http(s) URL")
	}
	host := strings.ToLower(u.Hostname())
	if a == nil {
		return apperror.ErrRelayTargetDenied(host)
	}
	if _, ok := a.hosts[host]; !ok {
		return apperror.ErrRelayTargetDenied(host)
	}
	return nil
}

// Hosts lists the allowed hosts, sorted.
func (a *HostAllowlist) Hosts() []string {
	if a == nil {
		return nil
	}
	out := make([]string, 0, len(a.hosts))
	for h := range a.hosts {
		out = append(out, h)
	}
	sort.Strings(out)
	return out
}
