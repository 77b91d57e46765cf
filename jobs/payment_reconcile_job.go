package jobs

import (
	"log"
	"time"

	config "github.com/oggotrip/oggo-backend/configs"
	"github.com/oggotrip/oggo-backend/database"
	"github.com/oggotrip/oggo-backend/models"
	"github.com/oggotrip/oggo-backend/payments"
	"github.com/oggotrip/oggo-backend/services"
)

// ReconcilePendingPayments sweeps recent bookings stuck in a pending
// payment state and refreshes them from Revolut. Catches users who paid
// but closed the tab before the confirmation page could poll.
func ReconcilePendingPayments() {
	log.Println("Running job: ReconcilePendingPayments...")

	cutoff := time.Now().Add(-24 * time.Hour)

	var bookings []models.PassengerBooking
	err := database.DB.
		Where("payment_status = ? AND revolut_order_id IS NOT NULL AND created_at > ?", "pending", cutoff).
		Limit(services.ListSyncCap).
		Find(&bookings).Error
	if err != nil {
		log.Printf("Error loading pending payments: %v", err)
		return
	}
	if len(bookings) == 0 {
		return
	}

	svc := services.NewBookingPaymentService(
		services.NewGormBookingStore(),
		payments.NewRevolutClient(config.LoadRevolutConfig()),
	)

	updated := 0
	for _, booking := range bookings {
		fresh, err := svc.SyncBooking(&booking)
		if err != nil {
			log.Printf("Failed to reconcile booking %s: %v", booking.BookingReference, err)
			continue
		}
		if fresh.PaymentStatus != booking.PaymentStatus {
			updated++
		}
	}

	log.Printf("Reconciled %d of %d pending payment(s).", updated, len(bookings))
}
