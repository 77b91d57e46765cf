package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var emailRegex = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
var passportRegex = regexp.MustCompile(`^[A-Za-z0-9]*$`)

var validTitles = map[string]bool{"Mr": true, "Mrs": true, "Ms": true}

// UpperTrim canonicalizes booking references and currency codes.
func UpperTrim(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ValidateEmail accepts well-formed addresses plus the "N/A" sentinel used
// by imported legacy bookings.
func ValidateEmail(email string) bool {
	if email == "N/A" || email == "n/a" {
		return true
	}
	return emailRegex.MatchString(email)
}

// PassengerInput is the validation view of one passenger from a booking
// request.
type PassengerInput struct {
	Title              string  `json:"title"`
	FirstName          string  `json:"firstName"`
	LastName           string  `json:"lastName"`
	DateOfBirth        DateIn  `json:"dateOfBirth"`
	CountryOfBirth     string  `json:"countryOfBirth"`
	CountryOfResidence string  `json:"countryOfResidence"`
	PassportNumber     string  `json:"passportNumber"`
	PassportExpiry     DateIn  `json:"passportExpiry"`
	SaveToProfile      *bool   `json:"saveToProfile"`
	Address            *AddressIn `json:"address,omitempty"`
}

type AddressIn struct {
	Street     *string `json:"street"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	PostalCode *string `json:"postalCode"`
	Country    *string `json:"country"`
}

type DateIn struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// ValidatePassengers checks the full passenger list and returns a message
// naming the first offending passenger by 1-based index, matching the error
// shape clients already rely on.
func ValidatePassengers(passengers []PassengerInput) error {
	if len(passengers) == 0 {
		return fmt.Errorf("At least one passenger is required")
	}

	currentYear := time.Now().Year()
	for i, p := range passengers {
		n := i + 1
		if p.Title == "" || strings.TrimSpace(p.FirstName) == "" || strings.TrimSpace(p.LastName) == "" {
			return fmt.Errorf("Passenger %d: Title, first name, and last name are required", n)
		}
		if !validTitles[p.Title] {
			return fmt.Errorf("Passenger %d: Title must be Mr, Mrs, or Ms", n)
		}
		if p.DateOfBirth.Day == 0 || p.DateOfBirth.Month == 0 || p.DateOfBirth.Year == 0 {
			return fmt.Errorf("Passenger %d: Complete date of birth is required", n)
		}
		if !validDay(p.DateOfBirth.Day) || !validMonth(p.DateOfBirth.Month) ||
			p.DateOfBirth.Year < 1900 || p.DateOfBirth.Year > currentYear {
			return fmt.Errorf("Passenger %d: Date of birth is invalid", n)
		}
		if strings.TrimSpace(p.CountryOfResidence) == "" || strings.TrimSpace(p.PassportNumber) == "" {
			return fmt.Errorf("Passenger %d: Country of residence and passport number are required", n)
		}
		if !passportRegex.MatchString(p.PassportNumber) {
			return fmt.Errorf("Passenger %d: Passport number can only contain letters and numbers", n)
		}
		if p.PassportExpiry.Day == 0 || p.PassportExpiry.Month == 0 || p.PassportExpiry.Year == 0 {
			return fmt.Errorf("Passenger %d: Complete passport expiry date is required", n)
		}
		if !validDay(p.PassportExpiry.Day) || !validMonth(p.PassportExpiry.Month) ||
			p.PassportExpiry.Year < currentYear {
			return fmt.Errorf("Passenger %d: Passport must not be expired", n)
		}
	}
	return nil
}

func validDay(d int) bool   { return d >= 1 && d <= 31 }
func validMonth(m int) bool { return m >= 1 && m <= 12 }
