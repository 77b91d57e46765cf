package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oggotrip/oggo-backend/models"
	"github.com/oggotrip/oggo-backend/payments"
)

type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) FindByID(id uuid.UUID) (*models.PassengerBooking, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PassengerBooking), args.Error(1)
}

func (m *MockBookingStore) FindByReference(reference string) (*models.PassengerBooking, error) {
	args := m.Called(reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PassengerBooking), args.Error(1)
}

func (m *MockBookingStore) FindRecentForUser(userID uuid.UUID, email string, limit int) ([]models.PassengerBooking, error) {
	args := m.Called(userID, email, limit)
	return args.Get(0).([]models.PassengerBooking), args.Error(1)
}

func (m *MockBookingStore) ApplyPaymentUpdate(id uuid.UUID, update PaymentUpdate) (*models.PassengerBooking, error) {
	args := m.Called(id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PassengerBooking), args.Error(1)
}

type MockOrderFetcher struct {
	mock.Mock
}

func (m *MockOrderFetcher) GetOrder(orderID string) (*payments.RevolutOrder, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.RevolutOrder), args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestParseBookingIdentifier(t *testing.T) {
	id := uuid.New()
	parsed := ParseBookingIdentifier(id.String())
	assert.True(t, parsed.ByID)
	assert.Equal(t, id, parsed.ID)

	parsed = ParseBookingIdentifier("  pasabc123 ")
	assert.False(t, parsed.ByID)
	assert.Equal(t, "PASABC123", parsed.Reference)
}

func TestSyncBookingWithoutOrderSkipsProvider(t *testing.T) {
	store := &MockBookingStore{}
	fetcher := &MockOrderFetcher{}
	svc := NewBookingPaymentService(store, fetcher)

	booking := &models.PassengerBooking{ID: uuid.New(), BookingReference: "PASABC123", PaymentStatus: "pending"}

	result, err := svc.SyncBooking(booking)
	require.NoError(t, err)
	assert.Same(t, booking, result)

	// No provider call, no write.
	fetcher.AssertNotCalled(t, "GetOrder", mock.Anything)
	store.AssertNotCalled(t, "ApplyPaymentUpdate", mock.Anything, mock.Anything)
}

func TestSyncBookingOverwritesSnapshot(t *testing.T) {
	store := &MockBookingStore{}
	fetcher := &MockOrderFetcher{}
	svc := NewBookingPaymentService(store, fetcher)

	bookingID := uuid.New()
	booking := &models.PassengerBooking{
		ID:             bookingID,
		RevolutOrderID: strPtr("order_123"),
		PaymentStatus:  "pending",
	}

	raw := json.RawMessage(`{"id":"order_123","state":"completed","checkout_url":"https://checkout.revolut.com/x"}`)
	fetcher.On("GetOrder", "order_123").Return(&payments.RevolutOrder{
		ID:          "order_123",
		State:       "completed",
		CheckoutURL: "https://checkout.revolut.com/x",
		Raw:         raw,
	}, nil)

	updated := &models.PassengerBooking{ID: bookingID, PaymentStatus: "completed"}
	store.On("ApplyPaymentUpdate", bookingID, mock.MatchedBy(func(u PaymentUpdate) bool {
		return string(u.Snapshot) == string(raw) &&
			u.PaymentStatus != nil && *u.PaymentStatus == "completed" &&
			u.CheckoutURL != nil && *u.CheckoutURL == "https://checkout.revolut.com/x"
	})).Return(updated, nil)

	result, err := svc.SyncBooking(booking)
	require.NoError(t, err)
	assert.Equal(t, "completed", result.PaymentStatus)

	store.AssertExpectations(t)
	fetcher.AssertExpectations(t)
}

func TestSyncBookingMapsAuthorisedSpelling(t *testing.T) {
	store := &MockBookingStore{}
	fetcher := &MockOrderFetcher{}
	svc := NewBookingPaymentService(store, fetcher)

	bookingID := uuid.New()
	booking := &models.PassengerBooking{ID: bookingID, RevolutOrderID: strPtr("order_9")}

	fetcher.On("GetOrder", "order_9").Return(&payments.RevolutOrder{
		ID: "order_9", State: "authorised", Raw: json.RawMessage(`{}`),
	}, nil)
	store.On("ApplyPaymentUpdate", bookingID, mock.MatchedBy(func(u PaymentUpdate) bool {
		return u.PaymentStatus != nil && *u.PaymentStatus == "authorized" && u.CheckoutURL == nil
	})).Return(&models.PassengerBooking{ID: bookingID, PaymentStatus: "authorized"}, nil)

	result, err := svc.SyncBooking(booking)
	require.NoError(t, err)
	assert.Equal(t, "authorized", result.PaymentStatus)
}

func TestSyncBookingProviderErrorIsNotPersisted(t *testing.T) {
	store := &MockBookingStore{}
	fetcher := &MockOrderFetcher{}
	svc := NewBookingPaymentService(store, fetcher)

	booking := &models.PassengerBooking{ID: uuid.New(), RevolutOrderID: strPtr("order_123")}
	provErr := &payments.RevolutError{StatusCode: http.StatusServiceUnavailable, Message: "Revolut payment service is unavailable"}
	fetcher.On("GetOrder", "order_123").Return(nil, provErr)

	_, err := svc.SyncBooking(booking)
	var revErr *payments.RevolutError
	require.ErrorAs(t, err, &revErr)
	assert.Equal(t, http.StatusServiceUnavailable, revErr.StatusCode)

	store.AssertNotCalled(t, "ApplyPaymentUpdate", mock.Anything, mock.Anything)
}

func TestSyncPaymentStatusByReference(t *testing.T) {
	store := &MockBookingStore{}
	fetcher := &MockOrderFetcher{}
	svc := NewBookingPaymentService(store, fetcher)

	store.On("FindByReference", "PASABC123").Return(nil, ErrBookingNotFound)

	_, err := svc.SyncPaymentStatus("pasabc123")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestSyncAllServesStoredRecordOnFailure(t *testing.T) {
	store := &MockBookingStore{}
	fetcher := &MockOrderFetcher{}
	svc := NewBookingPaymentService(store, fetcher)

	healthyID := uuid.New()
	bookings := []models.PassengerBooking{
		{ID: healthyID, BookingReference: "PASAAA111", RevolutOrderID: strPtr("ok_order")},
		{ID: uuid.New(), BookingReference: "PASBBB222", RevolutOrderID: strPtr("bad_order"), PaymentStatus: "created"},
	}

	fetcher.On("GetOrder", "ok_order").Return(&payments.RevolutOrder{
		ID: "ok_order", State: "paid", Raw: json.RawMessage(`{}`),
	}, nil)
	store.On("ApplyPaymentUpdate", healthyID, mock.Anything).
		Return(&models.PassengerBooking{ID: healthyID, BookingReference: "PASAAA111", PaymentStatus: "paid"}, nil)

	fetcher.On("GetOrder", "bad_order").Return(nil, errors.New("timeout"))

	synced := svc.SyncAll(bookings)
	require.Len(t, synced, 2)
	assert.Equal(t, "paid", synced[0].PaymentStatus)
	// Failed sync falls back to the stored record unchanged.
	assert.Equal(t, "created", synced[1].PaymentStatus)
}

func TestDedupByReferencePrefersOrderLinkedRecord(t *testing.T) {
	guest := models.PassengerBooking{ID: uuid.New(), BookingReference: "PASABC123"}
	linked := models.PassengerBooking{ID: uuid.New(), BookingReference: "PASABC123", RevolutOrderID: strPtr("order_1")}
	other := models.PassengerBooking{ID: uuid.New(), BookingReference: "PASXYZ999"}

	result := DedupByReference([]models.PassengerBooking{guest, linked, other})
	require.Len(t, result, 2)
	// Position of the first occurrence is kept, content comes from the
	// order-linked duplicate.
	assert.Equal(t, "PASABC123", result[0].BookingReference)
	assert.Equal(t, linked.ID, result[0].ID)
	assert.Equal(t, "PASXYZ999", result[1].BookingReference)
}

func TestDedupByReferenceFirstWinsWithoutOrderID(t *testing.T) {
	first := models.PassengerBooking{ID: uuid.New(), BookingReference: "PASABC123"}
	second := models.PassengerBooking{ID: uuid.New(), BookingReference: "PASABC123"}

	result := DedupByReference([]models.PassengerBooking{first, second})
	require.Len(t, result, 1)
	assert.Equal(t, first.ID, result[0].ID)
}

func TestMatchesStatusFilter(t *testing.T) {
	// Confirmed matches on booking status or successful payment.
	assert.True(t, MatchesStatusFilter(models.PassengerBooking{BookingStatus: "confirmed"}, "confirmed"))
	assert.True(t, MatchesStatusFilter(models.PassengerBooking{BookingStatus: "pending", PaymentStatus: "completed"}, "confirmed"))
	assert.False(t, MatchesStatusFilter(models.PassengerBooking{BookingStatus: "pending", PaymentStatus: "created"}, "confirmed"))

	// Pending requires a pending-normalized payment on a non-cancelled booking.
	assert.True(t, MatchesStatusFilter(models.PassengerBooking{BookingStatus: "pending", PaymentStatus: "authorised"}, "pending"))
	assert.False(t, MatchesStatusFilter(models.PassengerBooking{BookingStatus: "cancelled", PaymentStatus: "pending"}, "pending"))
	assert.False(t, MatchesStatusFilter(models.PassengerBooking{BookingStatus: "pending", PaymentStatus: "paid"}, "pending"))

	// Cancelled is the stored booking status alone.
	assert.True(t, MatchesStatusFilter(models.PassengerBooking{BookingStatus: "cancelled", PaymentStatus: "paid"}, "cancelled"))
	assert.False(t, MatchesStatusFilter(models.PassengerBooking{BookingStatus: "pending", PaymentStatus: "cancelled"}, "cancelled"))

	// Unknown filter passes everything.
	assert.True(t, MatchesStatusFilter(models.PassengerBooking{}, "whatever"))
}

func TestFilterByStatus(t *testing.T) {
	bookings := []models.PassengerBooking{
		{BookingReference: "A", BookingStatus: "confirmed"},
		{BookingReference: "B", BookingStatus: "pending", PaymentStatus: "pending"},
		{BookingReference: "C", BookingStatus: "cancelled"},
	}

	assert.Len(t, FilterByStatus(bookings, ""), 3)

	confirmed := FilterByStatus(bookings, "confirmed")
	require.Len(t, confirmed, 1)
	assert.Equal(t, "A", confirmed[0].BookingReference)
}

func TestPaginate(t *testing.T) {
	bookings := make([]models.PassengerBooking, 25)

	assert.Len(t, Paginate(bookings, 1, 10), 10)
	assert.Len(t, Paginate(bookings, 3, 10), 5)
	assert.Empty(t, Paginate(bookings, 4, 10))

	// Bad inputs fall back to the defaults.
	assert.Len(t, Paginate(bookings, 0, 0), 10)
}

func TestFailedOrderCreationKeepsBookingPending(t *testing.T) {
	// When order creation fails only the error snapshot is persisted; the
	// payment status must stay pending so the booking remains visible in
	// the owner's pending list for a retry.
	snapshot, err := json.Marshal(map[string]string{"error": "Invalid API key"})
	require.NoError(t, err)

	booking := models.PassengerBooking{
		BookingReference: "PAS1FAIL",
		BookingStatus:    "pending",
		PaymentStatus:    "pending",
		RevolutData:      models.JSONB(snapshot),
	}

	assert.True(t, MatchesStatusFilter(booking, "pending"))
	listed := FilterByStatus([]models.PassengerBooking{booking}, "pending")
	require.Len(t, listed, 1)
	assert.Equal(t, "PAS1FAIL", listed[0].BookingReference)

	// A status of "failed" would hide the booking from that list, which is
	// exactly why the failure path never rewrites it.
	booking.PaymentStatus = "failed"
	assert.False(t, MatchesStatusFilter(booking, "pending"))
}

func TestClientViewNormalizesStatuses(t *testing.T) {
	booking := models.PassengerBooking{
		BookingReference: "PAS1VIEW",
		BookingStatus:    "Pending",
		PaymentStatus:    "completed",
	}

	view := ClientView(booking)
	assert.Equal(t, "pending", view.BookingStatus)
	assert.Equal(t, "paid", view.PaymentStatus)

	// The source record is untouched.
	assert.Equal(t, "completed", booking.PaymentStatus)

	// Idempotent, and novel provider states still pass through.
	assert.Equal(t, view, ClientView(view))
	assert.Equal(t, "in_review", ClientView(models.PassengerBooking{PaymentStatus: "in_review"}).PaymentStatus)
}

func TestClientViewsMapsWholeResultSet(t *testing.T) {
	views := ClientViews([]models.PassengerBooking{
		{PaymentStatus: "created"},
		{PaymentStatus: "declined"},
	})
	require.Len(t, views, 2)
	assert.Equal(t, "pending", views[0].PaymentStatus)
	assert.Equal(t, "failed", views[1].PaymentStatus)
}

func TestStatusFilterNeedsSync(t *testing.T) {
	assert.False(t, StatusFilterNeedsSync(models.BookingStatusCancelled))
	assert.True(t, StatusFilterNeedsSync(models.BookingStatusPending))
	assert.True(t, StatusFilterNeedsSync(models.BookingStatusConfirmed))
	assert.True(t, StatusFilterNeedsSync(""))
}
