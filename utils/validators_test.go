package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPassenger() PassengerInput {
	return PassengerInput{
		Title:              "Mr",
		FirstName:          "John",
		LastName:           "Smith",
		DateOfBirth:        DateIn{Day: 15, Month: 6, Year: 1990},
		CountryOfResidence: "United Kingdom",
		PassportNumber:     "AB1234567",
		PassportExpiry:     DateIn{Day: 1, Month: 1, Year: time.Now().Year() + 3},
	}
}

func TestValidatePassengersAcceptsValidList(t *testing.T) {
	assert.NoError(t, ValidatePassengers([]PassengerInput{validPassenger()}))
}

func TestValidatePassengersRequiresAtLeastOne(t *testing.T) {
	err := ValidatePassengers(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "At least one passenger")
}

func TestValidatePassengersReportsOneBasedIndex(t *testing.T) {
	bad := validPassenger()
	bad.Title = "Dr"
	err := ValidatePassengers([]PassengerInput{validPassenger(), bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Passenger 2:")
}

func TestValidatePassengersTitle(t *testing.T) {
	p := validPassenger()
	p.Title = "Captain"
	err := ValidatePassengers([]PassengerInput{p})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Title must be Mr, Mrs, or Ms")
}

func TestValidatePassengersDateOfBirth(t *testing.T) {
	p := validPassenger()
	p.DateOfBirth = DateIn{Day: 32, Month: 6, Year: 1990}
	err := ValidatePassengers([]PassengerInput{p})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Date of birth is invalid")

	p.DateOfBirth = DateIn{}
	err = ValidatePassengers([]PassengerInput{p})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Complete date of birth is required")
}

func TestValidatePassengersPassport(t *testing.T) {
	p := validPassenger()
	p.PassportNumber = "AB-123"
	err := ValidatePassengers([]PassengerInput{p})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "letters and numbers")

	p = validPassenger()
	p.PassportExpiry = DateIn{Day: 1, Month: 1, Year: 2001}
	err = ValidatePassengers([]PassengerInput{p})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be expired")
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("user@example.com"))
	assert.True(t, ValidateEmail("first.last@sub.example.co"))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail("missing@domain"))

	// Imported legacy bookings use the N/A sentinel.
	assert.True(t, ValidateEmail("N/A"))
	assert.True(t, ValidateEmail("n/a"))
}

func TestUpperTrim(t *testing.T) {
	assert.Equal(t, "PASABC123", UpperTrim("  pasabc123 "))
	assert.Equal(t, "USD", UpperTrim("usd"))
}
