package utils

import (
	"net/url"
	"strings"
)

// RedirectCandidates carries everything the resolver may derive a redirect
// base from, in decreasing order of trust: explicit configuration, then the
// request's own Origin, then proxy forwarding headers, then Referer.
type RedirectCandidates struct {
	ConfiguredBase string
	Origin         string
	ForwardedHost  string
	ForwardedProto string
	Referer        string
	Fallback       string
}

// ResolveRedirectBase returns the first trustworthy origin (scheme + host,
// no path) from the candidate list. Loopback hosts are rejected so a
// developer frontend can never leak into a production checkout redirect.
// When nothing survives, the fallback is returned as-is.
func ResolveRedirectBase(c RedirectCandidates) string {
	candidates := []string{c.ConfiguredBase, c.Origin}

	if c.ForwardedHost != "" {
		proto := c.ForwardedProto
		if proto == "" {
			proto = "https"
		}
		candidates = append(candidates, proto+"://"+c.ForwardedHost)
	}
	candidates = append(candidates, c.Referer)

	for _, candidate := range candidates {
		if origin, ok := safeOrigin(candidate); ok {
			return origin
		}
	}
	return c.Fallback
}

// BookingConfirmationURL appends the fixed confirmation path to a resolved
// base origin.
func BookingConfirmationURL(base, bookingID string) string {
	return strings.TrimRight(base, "/") + "/flight/confirmation?booking_id=" + url.QueryEscape(bookingID)
}

func safeOrigin(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", false
	}
	host := strings.ToLower(parsed.Hostname())
	if host == "localhost" || host == "127.0.0.1" {
		return "", false
	}
	return parsed.Scheme + "://" + parsed.Host, true
}
