package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggotrip/oggo-backend/models"
)

func TestBookingFromDuffelOrder(t *testing.T) {
	order := DuffelOrderPayload{
		ID:               "ord_0001",
		BookingReference: "PASQWERTY1",
		Status:           "confirmed",
		Passengers: []DuffelPassenger{
			{Title: "Mrs", GivenName: "Amelia", FamilyName: "Stone", BornOn: "1988-04-09"},
			{Title: "Dr", GivenName: "", FamilyName: "Stone", BornOn: "2015-11-02"},
		},
		BookingContact: &DuffelContact{
			Email:       "Amelia.Stone@Example.com",
			PhoneNumber: "+447700900123",
		},
		Raw: json.RawMessage(`{"id":"ord_0001"}`),
	}

	booking := bookingFromDuffelOrder(order, nil)
	require.NotNil(t, booking)

	assert.Equal(t, "PASQWERTY1", booking.BookingReference)
	assert.Equal(t, "confirmed", booking.BookingStatus)
	assert.Equal(t, "amelia.stone@example.com", booking.Email)
	assert.Equal(t, "+447", booking.Phone.DialingCode)
	assert.Equal(t, "700900123", booking.Phone.Number)

	require.Len(t, booking.Passengers, 2)
	assert.Equal(t, "Amelia", booking.Passengers[0].FirstName)
	assert.Equal(t, models.DateParts{Day: 9, Month: 4, Year: 1988}, booking.Passengers[0].DateOfBirth)

	// Unknown title and missing name fall back instead of failing the import.
	assert.Equal(t, "Mr", booking.Passengers[1].Title)
	assert.Equal(t, "Unknown", booking.Passengers[1].FirstName)
	assert.Equal(t, "N/A", booking.Passengers[1].PassportNumber)
	assert.Equal(t, time.Now().Year()+5, booking.Passengers[1].PassportExpiry.Year)
}

func TestBookingFromDuffelOrderSkipsWithoutUsablePassengers(t *testing.T) {
	order := DuffelOrderPayload{
		ID:         "ord_0002",
		Passengers: []DuffelPassenger{{GivenName: "No", FamilyName: "Birthday"}},
	}
	assert.Nil(t, bookingFromDuffelOrder(order, nil))

	order.Passengers = nil
	assert.Nil(t, bookingFromDuffelOrder(order, nil))
}

func TestBookingFromDuffelOrderInvalidContactDegrades(t *testing.T) {
	order := DuffelOrderPayload{
		ID:     "ord_0003",
		Status: "cancelled",
		Passengers: []DuffelPassenger{
			{Title: "Mr", GivenName: "Solo", FamilyName: "Traveller", BornOn: "1970-01-01"},
		},
		BookingContact: &DuffelContact{Email: "not-an-email", PhoneNumber: "call me"},
	}

	booking := bookingFromDuffelOrder(order, nil)
	require.NotNil(t, booking)
	assert.Equal(t, "N/A", booking.Email)
	assert.Equal(t, "+000", booking.Phone.DialingCode)
	assert.Equal(t, "000000000", booking.Phone.Number)
	assert.Equal(t, "cancelled", booking.BookingStatus)
}
