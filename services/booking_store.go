package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/oggotrip/oggo-backend/database"
	"github.com/oggotrip/oggo-backend/models"
	"gorm.io/gorm"
)

var ErrBookingNotFound = errors.New("Booking not found")

// PaymentUpdate is the patch the reconciler applies after a successful
// provider fetch. The snapshot is always replaced wholesale; status and
// checkout URL are only touched when the fetched order carries them.
type PaymentUpdate struct {
	Snapshot      models.JSONB
	PaymentStatus *string
	CheckoutURL   *string
	RevolutOrderID *string
	RedirectURL    *string
}

// BookingStore is the slice of booking persistence the payment workflow
// consumes. The gorm-backed implementation below is the production one;
// tests substitute fakes.
type BookingStore interface {
	FindByID(id uuid.UUID) (*models.PassengerBooking, error)
	FindByReference(reference string) (*models.PassengerBooking, error)
	FindRecentForUser(userID uuid.UUID, email string, limit int) ([]models.PassengerBooking, error)
	ApplyPaymentUpdate(id uuid.UUID, update PaymentUpdate) (*models.PassengerBooking, error)
}

type GormBookingStore struct{}

func NewGormBookingStore() *GormBookingStore {
	return &GormBookingStore{}
}

func (s *GormBookingStore) FindByID(id uuid.UUID) (*models.PassengerBooking, error) {
	var booking models.PassengerBooking
	if err := database.DB.First(&booking, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (s *GormBookingStore) FindByReference(reference string) (*models.PassengerBooking, error) {
	var booking models.PassengerBooking
	if err := database.DB.First(&booking, "booking_reference = ?", reference).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// FindRecentForUser returns the newest bookings either linked to the user
// or created as guest bookings under the same email before the account
// existed.
func (s *GormBookingStore) FindRecentForUser(userID uuid.UUID, email string, limit int) ([]models.PassengerBooking, error) {
	var bookings []models.PassengerBooking
	err := database.DB.
		Where("user_id = ? OR (user_id IS NULL AND email = ?)", userID, email).
		Order("created_at DESC").
		Limit(limit).
		Find(&bookings).Error
	return bookings, err
}

func (s *GormBookingStore) ApplyPaymentUpdate(id uuid.UUID, update PaymentUpdate) (*models.PassengerBooking, error) {
	fields := map[string]interface{}{
		"revolut_data": update.Snapshot,
	}
	if update.PaymentStatus != nil {
		fields["payment_status"] = *update.PaymentStatus
	}
	if update.CheckoutURL != nil {
		fields["checkout_url"] = *update.CheckoutURL
	}
	if update.RevolutOrderID != nil {
		fields["revolut_order_id"] = *update.RevolutOrderID
	}
	if update.RedirectURL != nil {
		fields["redirect_url"] = *update.RedirectURL
	}

	if err := database.DB.Model(&models.PassengerBooking{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, err
	}
	return s.FindByID(id)
}
