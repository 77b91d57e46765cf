package services

import (
	"log"

	"github.com/google/uuid"
	"github.com/oggotrip/oggo-backend/models"
	"github.com/oggotrip/oggo-backend/payments"
	"github.com/oggotrip/oggo-backend/utils"
)

// ListSyncCap bounds how many bookings a single list request reconciles
// against Revolut before filtering. Keeps worst-case latency and outbound
// call volume per request bounded; a user with more matching bookings than
// this sees only the newest ones considered for confirmed/pending filters.
const ListSyncCap = 150

// OrderFetcher is the slice of the Revolut client the reconciler needs.
type OrderFetcher interface {
	GetOrder(orderID string) (*payments.RevolutOrder, error)
}

// BookingIdentifier is a parsed booking lookup key: either an internal
// uuid or a human-facing reference like PASMB3K91XQ2A.
type BookingIdentifier struct {
	ID        uuid.UUID
	Reference string
	ByID      bool
}

// ParseBookingIdentifier decides the lookup strategy once, at the
// boundary, instead of re-checking the string shape at every call site.
func ParseBookingIdentifier(raw string) BookingIdentifier {
	if id, err := uuid.Parse(raw); err == nil {
		return BookingIdentifier{ID: id, ByID: true}
	}
	return BookingIdentifier{Reference: utils.UpperTrim(raw)}
}

type BookingPaymentService struct {
	store  BookingStore
	orders OrderFetcher
}

func NewBookingPaymentService(store BookingStore, orders OrderFetcher) *BookingPaymentService {
	return &BookingPaymentService{store: store, orders: orders}
}

// Resolve fetches a booking by parsed identifier.
func (s *BookingPaymentService) Resolve(ident BookingIdentifier) (*models.PassengerBooking, error) {
	if ident.ByID {
		return s.store.FindByID(ident.ID)
	}
	return s.store.FindByReference(ident.Reference)
}

// SyncPaymentStatus re-fetches the linked Revolut order and overwrites the
// stored snapshot and derived payment status. A booking with no linked
// order is returned unchanged without touching the provider. Provider
// errors propagate with their original status code; nothing is persisted
// unless the fetch succeeded, so a failed sync never corrupts the stored
// booking.
func (s *BookingPaymentService) SyncPaymentStatus(idOrReference string) (*models.PassengerBooking, error) {
	booking, err := s.Resolve(ParseBookingIdentifier(idOrReference))
	if err != nil {
		return nil, err
	}
	return s.SyncBooking(booking)
}

// SyncBooking reconciles an already-loaded booking. Idempotent: two calls
// with no provider-side change store the same state twice.
func (s *BookingPaymentService) SyncBooking(booking *models.PassengerBooking) (*models.PassengerBooking, error) {
	if booking.RevolutOrderID == nil || *booking.RevolutOrderID == "" {
		return booking, nil
	}

	order, err := s.orders.GetOrder(*booking.RevolutOrderID)
	if err != nil {
		return nil, err
	}

	update := PaymentUpdate{Snapshot: models.JSONB(order.Raw)}
	if order.State != "" {
		status := utils.NormalizeRevolutState(order.State)
		update.PaymentStatus = &status
	}
	if order.CheckoutURL != "" {
		update.CheckoutURL = &order.CheckoutURL
	}

	return s.store.ApplyPaymentUpdate(booking.ID, update)
}

// SyncAll best-effort reconciles a batch for list views. Failures are
// logged and the stored record is served instead; a list read never fails
// because Revolut is down.
func (s *BookingPaymentService) SyncAll(bookings []models.PassengerBooking) []models.PassengerBooking {
	synced := make([]models.PassengerBooking, 0, len(bookings))
	for _, booking := range bookings {
		fresh, err := s.SyncBooking(&booking)
		if err != nil {
			log.Printf("Failed to sync payment status for booking %s: %v", booking.BookingReference, err)
			synced = append(synced, booking)
			continue
		}
		synced = append(synced, *fresh)
	}
	return synced
}

// StatusFilterNeedsSync reports whether a list filter depends on fresh
// provider state. Cancellation is local and never provider-driven, so the
// cancelled view is served from stored columns without any outbound calls.
func StatusFilterNeedsSync(status string) bool {
	return status != models.BookingStatusCancelled
}

// DedupByReference collapses user-linked and guest records sharing one
// booking reference. The record carrying a Revolut order id is canonical;
// otherwise the first seen wins.
func DedupByReference(bookings []models.PassengerBooking) []models.PassengerBooking {
	byRef := make(map[string]int, len(bookings))
	result := make([]models.PassengerBooking, 0, len(bookings))
	for _, booking := range bookings {
		idx, seen := byRef[booking.BookingReference]
		if !seen {
			byRef[booking.BookingReference] = len(result)
			result = append(result, booking)
			continue
		}
		if result[idx].RevolutOrderID == nil && booking.RevolutOrderID != nil {
			result[idx] = booking
		}
	}
	return result
}

// MatchesStatusFilter implements the list filter semantics: "confirmed"
// means the booking itself is confirmed or its payment normalizes to the
// success set; "pending" means the normalized payment status is exactly
// pending; "cancelled" is the stored booking status alone, since
// cancellation is local and never provider-driven.
func MatchesStatusFilter(booking models.PassengerBooking, status string) bool {
	switch status {
	case models.BookingStatusConfirmed:
		return booking.BookingStatus == models.BookingStatusConfirmed ||
			utils.IsPaymentSuccess(booking.PaymentStatus)
	case models.BookingStatusPending:
		return utils.NormalizePaymentStatus(booking.PaymentStatus) == "pending" &&
			booking.BookingStatus != models.BookingStatusCancelled
	case models.BookingStatusCancelled:
		return booking.BookingStatus == models.BookingStatusCancelled
	default:
		return true
	}
}

// FilterByStatus applies MatchesStatusFilter to a synced batch.
func FilterByStatus(bookings []models.PassengerBooking, status string) []models.PassengerBooking {
	if status == "" {
		return bookings
	}
	filtered := make([]models.PassengerBooking, 0, len(bookings))
	for _, booking := range bookings {
		if MatchesStatusFilter(booking, status) {
			filtered = append(filtered, booking)
		}
	}
	return filtered
}

// ClientView applies the lenient presentation normalizers before a booking
// leaves the API, so clients only ever see pending/confirmed/cancelled and
// the collapsed payment vocabulary instead of raw provider states. The
// canonical stored columns are untouched; the copy is by value.
func ClientView(booking models.PassengerBooking) models.PassengerBooking {
	booking.BookingStatus = utils.NormalizeBookingStatus(booking.BookingStatus)
	booking.PaymentStatus = utils.NormalizePaymentStatus(booking.PaymentStatus)
	return booking
}

// ClientViews maps ClientView over a result set.
func ClientViews(bookings []models.PassengerBooking) []models.PassengerBooking {
	views := make([]models.PassengerBooking, len(bookings))
	for i, booking := range bookings {
		views[i] = ClientView(booking)
	}
	return views
}

// Paginate slices a filtered in-memory result set.
func Paginate(bookings []models.PassengerBooking, page, limit int) []models.PassengerBooking {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	start := (page - 1) * limit
	if start >= len(bookings) {
		return []models.PassengerBooking{}
	}
	end := start + limit
	if end > len(bookings) {
		end = len(bookings)
	}
	return bookings[start:end]
}
