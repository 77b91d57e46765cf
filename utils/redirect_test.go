package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRedirectBaseTrustOrder(t *testing.T) {
	candidates := RedirectCandidates{
		ConfiguredBase: "https://configured.example.com",
		Origin:         "https://origin.example.com",
		ForwardedHost:  "forwarded.example.com",
		ForwardedProto: "https",
		Referer:        "https://referer.example.com/some/page",
		Fallback:       "https://fallback.example.com",
	}

	assert.Equal(t, "https://configured.example.com", ResolveRedirectBase(candidates))

	candidates.ConfiguredBase = ""
	assert.Equal(t, "https://origin.example.com", ResolveRedirectBase(candidates))

	candidates.Origin = ""
	assert.Equal(t, "https://forwarded.example.com", ResolveRedirectBase(candidates))

	candidates.ForwardedHost = ""
	assert.Equal(t, "https://referer.example.com", ResolveRedirectBase(candidates))

	candidates.Referer = ""
	assert.Equal(t, "https://fallback.example.com", ResolveRedirectBase(candidates))
}

func TestResolveRedirectBaseRejectsLoopback(t *testing.T) {
	base := ResolveRedirectBase(RedirectCandidates{
		Origin:   "http://localhost:3000",
		Referer:  "http://127.0.0.1:5173/checkout",
		Fallback: "https://payment.example.com",
	})
	assert.Equal(t, "https://payment.example.com", base)
}

func TestResolveRedirectBaseForwardedProtoDefaultsToHTTPS(t *testing.T) {
	base := ResolveRedirectBase(RedirectCandidates{
		ForwardedHost: "app.example.com",
		Fallback:      "https://fallback.example.com",
	})
	assert.Equal(t, "https://app.example.com", base)
}

func TestResolveRedirectBaseStripsRefererPath(t *testing.T) {
	base := ResolveRedirectBase(RedirectCandidates{
		Referer:  "https://shop.example.com/flights/search?from=LHR",
		Fallback: "https://fallback.example.com",
	})
	assert.Equal(t, "https://shop.example.com", base)
}

func TestResolveRedirectBaseIgnoresMalformedCandidates(t *testing.T) {
	base := ResolveRedirectBase(RedirectCandidates{
		Origin:   "not a url",
		Referer:  "://broken",
		Fallback: "https://fallback.example.com",
	})
	assert.Equal(t, "https://fallback.example.com", base)
}

func TestBookingConfirmationURL(t *testing.T) {
	url := BookingConfirmationURL("https://payment.example.com/", "abc-123")
	assert.Equal(t, "https://payment.example.com/flight/confirmation?booking_id=abc-123", url)

	// Query-unsafe ids are escaped.
	url = BookingConfirmationURL("https://payment.example.com", "a b&c")
	assert.Equal(t, "https://payment.example.com/flight/confirmation?booking_id=a+b%26c", url)
}
