package models

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBookingReference(t *testing.T) {
	ref := GenerateBookingReference()
	assert.Regexp(t, regexp.MustCompile(`^PAS[0-9A-Z]+$`), ref)

	// Timestamp component plus 4 random chars.
	assert.Greater(t, len(ref), 7)

	other := GenerateBookingReference()
	assert.NotEqual(t, ref, other)
}

func TestBeforeCreateKeepsExistingReference(t *testing.T) {
	b := &PassengerBooking{BookingReference: "PASFIXED1"}
	require.NoError(t, b.BeforeCreate(nil))
	assert.Equal(t, "PASFIXED1", b.BookingReference)

	b = &PassengerBooking{}
	require.NoError(t, b.BeforeCreate(nil))
	assert.NotEmpty(t, b.BookingReference)
}

func TestBeforeSaveDerivesAgeAndType(t *testing.T) {
	now := time.Now()
	b := &PassengerBooking{
		Passengers: PassengerList{
			{FirstName: "Baby", DateOfBirth: DateParts{Day: now.Day(), Month: int(now.Month()), Year: now.Year() - 1}},
			{FirstName: "Kid", DateOfBirth: DateParts{Day: 1, Month: 1, Year: now.Year() - 8}},
			{FirstName: "Grown", DateOfBirth: DateParts{Day: 1, Month: 1, Year: now.Year() - 30}, PassengerType: "Infant", Age: 99},
		},
	}

	require.NoError(t, b.BeforeSave(nil))

	assert.Equal(t, PassengerTypeInfant, b.Passengers[0].PassengerType)
	assert.Equal(t, PassengerTypeChild, b.Passengers[1].PassengerType)
	// Submitted age and type are overwritten from the date of birth.
	assert.Equal(t, PassengerTypeAdult, b.Passengers[2].PassengerType)
	assert.Equal(t, 30, b.Passengers[2].Age)
}

func TestComputedAgeBeforeBirthday(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	p := Passenger{DateOfBirth: DateParts{Day: 16, Month: 6, Year: 2000}}
	assert.Equal(t, 25, p.ComputedAge(now))

	p = Passenger{DateOfBirth: DateParts{Day: 15, Month: 6, Year: 2000}}
	assert.Equal(t, 26, p.ComputedAge(now))
}

func TestCanBeCancelled(t *testing.T) {
	assert.True(t, (&PassengerBooking{BookingStatus: BookingStatusPending}).CanBeCancelled())
	assert.True(t, (&PassengerBooking{BookingStatus: BookingStatusConfirmed}).CanBeCancelled())
	assert.False(t, (&PassengerBooking{BookingStatus: BookingStatusCancelled}).CanBeCancelled())
}

func TestPassengerCountByType(t *testing.T) {
	b := &PassengerBooking{
		Passengers: PassengerList{
			{PassengerType: PassengerTypeAdult},
			{PassengerType: PassengerTypeAdult},
			{PassengerType: PassengerTypeInfant},
		},
	}
	counts := b.PassengerCountByType()
	assert.Equal(t, 2, counts[PassengerTypeAdult])
	assert.Equal(t, 0, counts[PassengerTypeChild])
	assert.Equal(t, 1, counts[PassengerTypeInfant])
}

func TestIsSupportedCurrency(t *testing.T) {
	assert.True(t, IsSupportedCurrency("usd"))
	assert.True(t, IsSupportedCurrency(" GBP "))
	assert.True(t, IsSupportedCurrency("EUR"))
	assert.False(t, IsSupportedCurrency("KES"))
	assert.False(t, IsSupportedCurrency(""))
}
