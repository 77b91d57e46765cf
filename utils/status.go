package utils

import "strings"

// Status normalization for booking and payment states. Two layers exist on
// purpose: NormalizeRevolutState is the strict write-path map used when the
// canonical paymentStatus column is updated from a fetched Revolut order,
// while NormalizeBookingStatus / NormalizePaymentStatus are the lenient
// presentation-layer variants applied to every booking returned to clients.

var paymentSuccessStates = map[string]bool{
	"paid":      true,
	"completed": true,
	"success":   true,
}

var paymentFailureStates = map[string]bool{
	"failed":    true,
	"cancelled": true,
	"canceled":  true,
	"void":      true,
	"declined":  true,
	"rejected":  true,
}

var paymentPendingStates = map[string]bool{
	"pending":    true,
	"created":    true,
	"initiated":  true,
	"authorized": true,
	"authorised": true,
}

// revolutStateMap maps the fixed Revolut order-state vocabulary onto the
// booking paymentStatus enum 1:1. Anything outside it defaults to pending.
var revolutStateMap = map[string]string{
	"pending":    "pending",
	"created":    "created",
	"initiated":  "initiated",
	"authorised": "authorized",
	"authorized": "authorized",
	"completed":  "completed",
	"paid":       "paid",
	"success":    "success",
	"failed":     "failed",
	"cancelled":  "cancelled",
	"canceled":   "canceled",
	"void":       "void",
}

// NormalizeBookingStatus maps any raw status string to pending, confirmed
// or cancelled. Unknown and empty input are pending.
func NormalizeBookingStatus(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "confirmed":
		return "confirmed"
	case "cancelled", "canceled":
		return "cancelled"
	default:
		return "pending"
	}
}

// NormalizePaymentStatus collapses provider payment vocabulary into paid,
// failed or pending for client responses. States outside the known sets
// pass through lower-cased so genuinely novel provider states stay visible
// instead of being silently coerced.
func NormalizePaymentStatus(raw string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if lower == "" {
		return "pending"
	}
	switch {
	case paymentSuccessStates[lower]:
		return "paid"
	case paymentFailureStates[lower]:
		return "failed"
	case paymentPendingStates[lower]:
		return "pending"
	default:
		return lower
	}
}

// NormalizeRevolutState maps a Revolut order state onto the booking
// paymentStatus enum. Used on the write path only.
func NormalizeRevolutState(state string) string {
	lower := strings.ToLower(strings.TrimSpace(state))
	if mapped, ok := revolutStateMap[lower]; ok {
		return mapped
	}
	return "pending"
}

// IsPaymentSuccess reports whether a normalized payment status counts as a
// successful payment for list filtering.
func IsPaymentSuccess(raw string) bool {
	return NormalizePaymentStatus(raw) == "paid"
}
