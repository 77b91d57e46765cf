package services

import (
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oggotrip/oggo-backend/database"
	"github.com/oggotrip/oggo-backend/models"
	"github.com/oggotrip/oggo-backend/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DuffelSyncResult struct {
	TotalFetched    int `json:"totalFetched"`
	TotalUpserted   int `json:"totalUpserted"`
	BookingsCreated int `json:"bookingsCreated"`
}

type DuffelLister interface {
	ListOrders(limit int, after string) (*DuffelPage, error)
}

type DuffelSyncService struct {
	client DuffelLister
}

func NewDuffelSyncService(client DuffelLister) *DuffelSyncService {
	return &DuffelSyncService{client: client}
}

// SyncOrders walks all Duffel order pages, upserts the DuffelOrder mirror
// rows and rebuilds the local passenger bookings from them. Existing local
// bookings are dropped first; Duffel is authoritative for imported data.
func (s *DuffelSyncService) SyncOrders(triggeredBy *uuid.UUID, pageLimit int, after string) (*DuffelSyncResult, error) {
	if pageLimit <= 0 {
		pageLimit = 50
	}

	result := &DuffelSyncResult{}

	if err := database.DB.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.PassengerBooking{}).Error; err != nil {
		return nil, err
	}

	for {
		page, err := s.client.ListOrders(pageLimit, after)
		if err != nil {
			return nil, err
		}
		result.TotalFetched += len(page.Orders)

		for _, order := range page.Orders {
			if err := s.upsertOrder(order); err != nil {
				return nil, err
			}
			result.TotalUpserted++

			booking := bookingFromDuffelOrder(order, triggeredBy)
			if booking == nil {
				continue
			}
			if err := database.DB.Create(booking).Error; err != nil {
				log.Printf("Failed to rebuild booking for Duffel order %s: %v", order.ID, err)
				continue
			}
			result.BookingsCreated++
		}

		if page.After == "" {
			break
		}
		after = page.After
	}

	return result, nil
}

func (s *DuffelSyncService) upsertOrder(order DuffelOrderPayload) error {
	names := make(models.StringList, 0, len(order.Passengers))
	for _, p := range order.Passengers {
		name := strings.TrimSpace(strings.TrimSpace(p.GivenName) + " " + strings.TrimSpace(p.FamilyName))
		if name != "" {
			names = append(names, name)
		}
	}

	row := models.DuffelOrder{
		DuffelOrderID:    order.ID,
		BookingReference: optional(order.BookingReference),
		Status:           optional(order.Status),
		PassengerNames:   names,
		TotalAmount:      optional(order.TotalAmount),
		Currency:         optional(order.TotalCurrency),
		Data:             models.JSONB(order.Raw),
		LastSyncedAt:     time.Now(),
	}

	return database.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "duffel_order_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"booking_reference", "status", "passenger_names",
			"total_amount", "currency", "data", "last_synced_at", "updated_at",
		}),
	}).Create(&row).Error
}

var phoneDigitsRegex = regexp.MustCompile(`[^0-9+]`)

// bookingFromDuffelOrder maps one Duffel order onto a local passenger
// booking. Orders without a usable passenger list are skipped; contact
// details that fail local validation degrade to the N/A sentinels rather
// than blocking the import.
func bookingFromDuffelOrder(order DuffelOrderPayload, userID *uuid.UUID) *models.PassengerBooking {
	passengers := make(models.PassengerList, 0, len(order.Passengers))
	for _, p := range order.Passengers {
		if p.BornOn == "" {
			continue
		}
		parts := strings.Split(p.BornOn, "-")
		if len(parts) != 3 {
			continue
		}
		year, _ := strconv.Atoi(parts[0])
		month, _ := strconv.Atoi(parts[1])
		day, _ := strconv.Atoi(parts[2])

		title := p.Title
		if title != "Mr" && title != "Mrs" && title != "Ms" {
			title = "Mr"
		}
		firstName := p.GivenName
		if firstName == "" {
			firstName = "Unknown"
		}
		lastName := p.FamilyName
		if lastName == "" {
			lastName = "Unknown"
		}

		passengers = append(passengers, models.Passenger{
			Title:              title,
			FirstName:          firstName,
			LastName:           lastName,
			DateOfBirth:        models.DateParts{Day: orDefault(day, 1), Month: orDefault(month, 1), Year: orDefault(year, 1990)},
			CountryOfResidence: "N/A",
			PassportNumber:     "N/A",
			PassportExpiry:     models.DateParts{Day: 1, Month: 1, Year: time.Now().Year() + 5},
			SaveToProfile:      false,
		})
	}
	if len(passengers) == 0 {
		return nil
	}

	email := "N/A"
	if order.BookingContact != nil && utils.ValidateEmail(order.BookingContact.Email) && order.BookingContact.Email != "" {
		email = strings.ToLower(order.BookingContact.Email)
	}

	dialingCode := "+000"
	number := "000000000"
	if order.BookingContact != nil {
		digits := phoneDigitsRegex.ReplaceAllString(order.BookingContact.PhoneNumber, "")
		if strings.HasPrefix(digits, "+") && len(digits) > 4 {
			dialingCode = digits[:4]
			number = digits[4:]
		} else if digits != "" {
			number = digits
		}
	}

	return &models.PassengerBooking{
		UserID:           userID,
		BookingReference: order.BookingReference,
		Email:            email,
		Phone:            models.Phone{DialingCode: dialingCode, Number: number},
		Passengers:       passengers,
		BookingStatus:    utils.NormalizeBookingStatus(order.Status),
		FlightData:       models.JSONB(order.Raw),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func orDefault(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}
