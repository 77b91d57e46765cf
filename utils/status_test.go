package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBookingStatus(t *testing.T) {
	assert.Equal(t, "confirmed", NormalizeBookingStatus("confirmed"))
	assert.Equal(t, "confirmed", NormalizeBookingStatus("  Confirmed "))
	assert.Equal(t, "cancelled", NormalizeBookingStatus("cancelled"))
	assert.Equal(t, "cancelled", NormalizeBookingStatus("canceled"))
	assert.Equal(t, "pending", NormalizeBookingStatus("pending"))
	assert.Equal(t, "pending", NormalizeBookingStatus(""))
	assert.Equal(t, "pending", NormalizeBookingStatus("something-else"))
}

func TestNormalizePaymentStatus(t *testing.T) {
	for _, s := range []string{"paid", "completed", "success", "PAID", " Completed "} {
		assert.Equal(t, "paid", NormalizePaymentStatus(s), "input %q", s)
	}
	for _, s := range []string{"failed", "cancelled", "canceled", "void", "declined", "rejected"} {
		assert.Equal(t, "failed", NormalizePaymentStatus(s), "input %q", s)
	}
	for _, s := range []string{"pending", "created", "initiated", "authorized", "authorised", ""} {
		assert.Equal(t, "pending", NormalizePaymentStatus(s), "input %q", s)
	}

	// Unknown provider states pass through lower-cased instead of being
	// coerced into one of the three buckets.
	assert.Equal(t, "in_review", NormalizePaymentStatus("IN_REVIEW"))
}

func TestNormalizePaymentStatusIdempotent(t *testing.T) {
	inputs := []string{"paid", "completed", "failed", "declined", "pending", "authorised", "weird_state", ""}
	for _, s := range inputs {
		once := NormalizePaymentStatus(s)
		assert.Equal(t, once, NormalizePaymentStatus(once), "input %q", s)
	}
}

func TestNormalizeRevolutState(t *testing.T) {
	assert.Equal(t, "authorized", NormalizeRevolutState("authorised"))
	assert.Equal(t, "authorized", NormalizeRevolutState("AUTHORIZED"))
	assert.Equal(t, "completed", NormalizeRevolutState("completed"))
	assert.Equal(t, "created", NormalizeRevolutState("created"))
	assert.Equal(t, "void", NormalizeRevolutState("void"))

	// Outside the fixed vocabulary everything becomes pending.
	assert.Equal(t, "pending", NormalizeRevolutState(""))
	assert.Equal(t, "pending", NormalizeRevolutState("processing"))
	assert.Equal(t, "pending", NormalizeRevolutState("garbage"))
}

func TestIsPaymentSuccess(t *testing.T) {
	assert.True(t, IsPaymentSuccess("paid"))
	assert.True(t, IsPaymentSuccess("completed"))
	assert.True(t, IsPaymentSuccess("Success"))
	assert.False(t, IsPaymentSuccess("authorized"))
	assert.False(t, IsPaymentSuccess("failed"))
	assert.False(t, IsPaymentSuccess(""))
}
