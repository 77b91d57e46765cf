package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func TestTransactionUpdatesBuildsPartialColumnMap(t *testing.T) {
	updates, err := transactionUpdates(UpdateTransactionRequest{
		CustomerName: strPtr("  Jane Doe "),
		Email:        strPtr("Jane@Example.COM"),
		Amount:       floatPtr(45.50),
		Currency:     strPtr("gbp"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", updates["customer_name"])
	assert.Equal(t, "jane@example.com", updates["email"])
	assert.Equal(t, 45.50, updates["amount"])
	assert.Equal(t, "GBP", updates["currency"])

	// Untouched fields never appear, so a partial edit cannot blank them.
	assert.NotContains(t, updates, "phone")
	assert.NotContains(t, updates, "description")

	// Provider-owned columns are never editable.
	assert.NotContains(t, updates, "status")
	assert.NotContains(t, updates, "revolut_order_id")
	assert.NotContains(t, updates, "revolut_data")
}

func TestTransactionUpdatesEmptyRequest(t *testing.T) {
	updates, err := transactionUpdates(UpdateTransactionRequest{})
	require.NoError(t, err)
	assert.Empty(t, updates)
}

func TestTransactionUpdatesRejectsBadInput(t *testing.T) {
	_, err := transactionUpdates(UpdateTransactionRequest{CustomerName: strPtr(" J ")})
	assert.Error(t, err)

	_, err = transactionUpdates(UpdateTransactionRequest{Email: strPtr("not-an-email")})
	assert.Error(t, err)

	_, err = transactionUpdates(UpdateTransactionRequest{Amount: floatPtr(0)})
	assert.Error(t, err)

	_, err = transactionUpdates(UpdateTransactionRequest{Currency: strPtr("KES")})
	assert.Error(t, err)
}
