package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

const (
	PassengerTypeAdult  = "Adult"
	PassengerTypeChild  = "Child"
	PassengerTypeInfant = "Infant"
)

type DateParts struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

type PassengerAddress struct {
	Street     *string `json:"street"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	PostalCode *string `json:"postalCode"`
	Country    *string `json:"country"`
}

type Passenger struct {
	Title              string            `json:"title"`
	FirstName          string            `json:"firstName"`
	LastName           string            `json:"lastName"`
	DateOfBirth        DateParts         `json:"dateOfBirth"`
	CountryOfBirth     string            `json:"countryOfBirth,omitempty"`
	CountryOfResidence string            `json:"countryOfResidence,omitempty"`
	PassportNumber     string            `json:"passportNumber"`
	PassportExpiry     DateParts         `json:"passportExpiry"`
	Address            *PassengerAddress `json:"address,omitempty"`
	Age                int               `json:"age"`
	PassengerType      string            `json:"passengerType"`
	SaveToProfile      bool              `json:"saveToProfile"`
}

func (p Passenger) FullName() string {
	return p.FirstName + " " + p.LastName
}

// ComputedAge derives the passenger's age from the date of birth as of now.
func (p Passenger) ComputedAge(now time.Time) int {
	age := now.Year() - p.DateOfBirth.Year
	if int(now.Month()) < p.DateOfBirth.Month ||
		(int(now.Month()) == p.DateOfBirth.Month && now.Day() < p.DateOfBirth.Day) {
		age--
	}
	return age
}

// PassengerList is stored as a jsonb column; passengers have no identity of
// their own and order is significant.
type PassengerList []Passenger

func (l PassengerList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *PassengerList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for PassengerList")
	}
}

type Phone struct {
	DialingCode string `json:"dialingCode" gorm:"size:10"`
	Number      string `json:"number" gorm:"size:30"`
}

type BookingNotes struct {
	Type string `json:"type" gorm:"size:50"`
	Text string `json:"text" gorm:"size:1000"`
}

type PassengerBooking struct {
	ID               uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BookingReference string        `gorm:"size:20;unique;index" json:"bookingReference"`
	UserID           *uuid.UUID    `gorm:"index" json:"user"`
	Email            string        `gorm:"size:255;index;not null" json:"email"`
	Phone            Phone         `gorm:"embedded;embeddedPrefix:phone_" json:"phone"`
	Passengers       PassengerList `gorm:"type:jsonb;not null" json:"passengers"`
	BookingStatus    string        `gorm:"size:20;not null;default:'pending';index" json:"bookingStatus"`

	// Payment fields (Revolut)
	PaymentStatus  string  `gorm:"size:20;not null;default:'pending'" json:"paymentStatus"`
	RevolutOrderID *string `gorm:"size:255;index" json:"revolutOrderId"`
	CheckoutURL    *string `gorm:"size:1024" json:"checkoutUrl"`
	RevolutData    JSONB   `gorm:"type:jsonb" json:"revolutData"`
	RedirectURL    *string `gorm:"size:1024" json:"redirect_url"`

	Notes         *BookingNotes `gorm:"embedded;embeddedPrefix:notes_" json:"notes,omitempty"`
	FlightData    JSONB         `gorm:"type:jsonb" json:"flightData"`
	ExtraServices JSONB         `gorm:"type:jsonb" json:"extraServices"`

	User *User `gorm:"foreignkey:UserID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *PassengerBooking) FullPhone() string {
	return b.Phone.DialingCode + b.Phone.Number
}

// BeforeCreate assigns the human-facing reference: PAS + base36 timestamp +
// 4 random base36 characters, uppercase.
func (b *PassengerBooking) BeforeCreate(tx *gorm.DB) error {
	if b.BookingReference == "" {
		b.BookingReference = GenerateBookingReference()
	}
	return nil
}

// BeforeSave recomputes passenger ages and types from the date of birth.
// These are derived fields, never trusted from input.
func (b *PassengerBooking) BeforeSave(tx *gorm.DB) error {
	now := time.Now()
	for i := range b.Passengers {
		age := b.Passengers[i].ComputedAge(now)
		b.Passengers[i].Age = age
		switch {
		case age < 2:
			b.Passengers[i].PassengerType = PassengerTypeInfant
		case age < 12:
			b.Passengers[i].PassengerType = PassengerTypeChild
		default:
			b.Passengers[i].PassengerType = PassengerTypeAdult
		}
	}
	return nil
}

func (b *PassengerBooking) CanBeCancelled() bool {
	return b.BookingStatus != BookingStatusCancelled
}

func (b *PassengerBooking) PassengerCountByType() map[string]int {
	counts := map[string]int{PassengerTypeAdult: 0, PassengerTypeChild: 0, PassengerTypeInfant: 0}
	for _, p := range b.Passengers {
		counts[p.PassengerType]++
	}
	return counts
}

// Summary mirrors the shape returned by the create/update endpoints.
func (b *PassengerBooking) Summary() map[string]interface{} {
	return map[string]interface{}{
		"bookingReference": b.BookingReference,
		"user":             b.UserID,
		"passengerCount":   len(b.Passengers),
		"status":           b.BookingStatus,
		"createdAt":        b.CreatedAt,
	}
}

func GenerateBookingReference() string {
	timestamp := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	return fmt.Sprintf("PAS%s%s", timestamp, randomBase36(4))
}

const base36Chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomBase36(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = base36Chars[rand.Intn(len(base36Chars))]
	}
	return string(b)
}
