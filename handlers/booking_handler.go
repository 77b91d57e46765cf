package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	config "github.com/oggotrip/oggo-backend/configs"
	"github.com/oggotrip/oggo-backend/database"
	"github.com/oggotrip/oggo-backend/middleware"
	"github.com/oggotrip/oggo-backend/models"
	"github.com/oggotrip/oggo-backend/notifications"
	"github.com/oggotrip/oggo-backend/payments"
	"github.com/oggotrip/oggo-backend/services"
	"github.com/oggotrip/oggo-backend/utils"
)

func bookingPaymentService() *services.BookingPaymentService {
	return services.NewBookingPaymentService(
		services.NewGormBookingStore(),
		payments.NewRevolutClient(config.LoadRevolutConfig()),
	)
}

type PhoneInput struct {
	DialingCode string `json:"dialingCode"`
	Number      string `json:"number"`
}

type BookingRequest struct {
	Email         string                 `json:"email" validate:"required,email"`
	Phone         PhoneInput             `json:"phone"`
	Passengers    []utils.PassengerInput `json:"passengers"`
	FlightData    json.RawMessage        `json:"flightData,omitempty"`
	ExtraServices json.RawMessage        `json:"extraServices,omitempty"`
	Notes         *models.BookingNotes   `json:"notes,omitempty"`
}

type BookingPaymentRequest struct {
	BookingRequest
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// CreateBooking records a booking for an authenticated user without opening
// a payment order. Payment can be attached later via the payment endpoint.
func CreateBooking(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req BookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := utils.ValidatePassengers(req.Passengers); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	booking := bookingFromRequest(req)
	booking.UserID = &userID

	if err := database.DB.Create(&booking).Error; err != nil {
		log.Printf("🔥 Failed to create booking: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create booking"})
	}

	go notifications.SendBookingConfirmation(booking.Passengers[0].FullName(), booking.Email, booking.BookingReference)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Booking created successfully",
		"booking": services.ClientView(booking),
	})
}

// CreateBookingWithPayment is the public checkout entry point. The booking
// row is persisted first, then a Revolut order is opened for it; a provider
// failure leaves a pending booking with the failure snapshot attached, so
// nothing the user typed is ever lost to a payment outage.
func CreateBookingWithPayment(c *fiber.Ctx) error {
	var req BookingPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req.BookingRequest); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := utils.ValidatePassengers(req.Passengers); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A valid payment amount is required"})
	}
	if !models.IsSupportedCurrency(req.Currency) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Currency must be one of USD, EUR, GBP"})
	}

	booking := bookingFromRequest(req.BookingRequest)

	// Guest checkout still links the booking when the email belongs to an
	// existing account.
	var owner models.User
	if err := database.DB.Where("email = ?", strings.ToLower(booking.Email)).First(&owner).Error; err == nil {
		booking.UserID = &owner.ID
	}

	if err := database.DB.Create(&booking).Error; err != nil {
		log.Printf("🔥 Failed to create booking: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create booking"})
	}

	redirectCfg := config.LoadRedirectConfig()
	base := utils.ResolveRedirectBase(utils.RedirectCandidates{
		ConfiguredBase: redirectCfg.ConfiguredBase,
		Origin:         c.Get("Origin"),
		ForwardedHost:  c.Get("X-Forwarded-Host"),
		ForwardedProto: c.Get("X-Forwarded-Proto"),
		Referer:        c.Get("Referer"),
		Fallback:       redirectCfg.Fallback,
	})
	redirectURL := utils.BookingConfirmationURL(base, booking.ID.String())

	client := payments.NewRevolutClient(config.LoadRevolutConfig())
	order, err := client.CreateOrder(req.Amount, req.Currency, redirectURL)
	if err != nil {
		return persistPaymentFailure(c, &booking, err)
	}

	status := utils.NormalizeRevolutState(order.State)
	store := services.NewGormBookingStore()
	updated, err := store.ApplyPaymentUpdate(booking.ID, services.PaymentUpdate{
		Snapshot:       models.JSONB(order.Raw),
		PaymentStatus:  &status,
		CheckoutURL:    &order.CheckoutURL,
		RevolutOrderID: &order.ID,
		RedirectURL:    &redirectURL,
	})
	if err != nil {
		log.Printf("🔥 Failed to attach payment order to booking %s: %v", booking.BookingReference, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save payment details"})
	}

	recordBookingTransaction(updated, req.Amount, req.Currency, order, redirectURL)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Booking created. Complete payment to confirm.",
		"booking":     services.ClientView(*updated),
		"checkoutUrl": order.CheckoutURL,
	})
}

// ConfirmBookingPayment is polled by the confirmation page after Revolut
// redirects back. Unlike list reads, reconciliation here is mandatory:
// provider errors propagate with their original status code instead of
// serving a possibly stale stored status.
func ConfirmBookingPayment(c *fiber.Ctx) error {
	idOrReference := c.Query("booking_id")
	if idOrReference == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "booking_id query parameter is required"})
	}

	booking, err := bookingPaymentService().SyncPaymentStatus(idOrReference)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		}
		return revolutErrorResponse(c, err)
	}

	if utils.IsPaymentSuccess(booking.PaymentStatus) && booking.BookingStatus == models.BookingStatusPending {
		database.DB.Model(booking).Update("booking_status", models.BookingStatusConfirmed)
		booking.BookingStatus = models.BookingStatusConfirmed

		contactName := ""
		if len(booking.Passengers) > 0 {
			contactName = booking.Passengers[0].FullName()
		}
		go notifications.SendBookingConfirmation(contactName, booking.Email, booking.BookingReference)
		go services.GenerateBookingReceipt(*booking)
	}

	// The top-level paymentStatus stays canonical (e.g. "completed") for the
	// polling page; only the embedded booking is normalized for display.
	return c.JSON(fiber.Map{
		"booking":       services.ClientView(*booking),
		"paymentStatus": booking.PaymentStatus,
	})
}

// GetMyBookings lists the caller's bookings. Rows are reconciled against
// Revolut before status filters run, so a booking paid seconds ago already
// shows up under "confirmed". The cancelled view skips reconciliation
// entirely since cancellation is local.
func GetMyBookings(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	status := strings.ToLower(strings.TrimSpace(c.Query("status")))
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	svc := bookingPaymentService()
	store := services.NewGormBookingStore()

	bookings, err := store.FindRecentForUser(userID, user.Email, services.ListSyncCap)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch bookings"})
	}

	if services.StatusFilterNeedsSync(status) {
		bookings = svc.SyncAll(bookings)
	}
	deduped := services.DedupByReference(bookings)
	filtered := services.FilterByStatus(deduped, status)
	paged := services.Paginate(filtered, page, limit)

	return c.JSON(fiber.Map{
		"bookings": services.ClientViews(paged),
		"total":    len(filtered),
		"page":     page,
		"limit":    limit,
	})
}

// GetBooking fetches one booking by uuid or reference. Owners and admins
// only; the payment status is refreshed best-effort on the way out.
func GetBooking(c *fiber.Ctx) error {
	svc := bookingPaymentService()

	booking, err := svc.Resolve(services.ParseBookingIdentifier(c.Params("id")))
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch booking"})
	}

	if !callerOwnsBooking(c, booking) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not have access to this booking"})
	}

	if fresh, err := svc.SyncBooking(booking); err == nil {
		booking = fresh
	} else {
		log.Printf("⚠️ Serving stored payment status for booking %s: %v", booking.BookingReference, err)
	}

	return c.JSON(fiber.Map{"booking": services.ClientView(*booking)})
}

type UpdateBookingRequest struct {
	Email         *string                `json:"email,omitempty"`
	Phone         *PhoneInput            `json:"phone,omitempty"`
	Passengers    []utils.PassengerInput `json:"passengers,omitempty"`
	FlightData    json.RawMessage        `json:"flightData,omitempty"`
	ExtraServices json.RawMessage        `json:"extraServices,omitempty"`
	Notes         *models.BookingNotes   `json:"notes,omitempty"`
}

// UpdateBooking edits contact and passenger details. Cancelled bookings are
// frozen.
func UpdateBooking(c *fiber.Ctx) error {
	booking, errResp := loadOwnedBooking(c)
	if booking == nil {
		return errResp
	}
	if booking.BookingStatus == models.BookingStatusCancelled {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cancelled bookings cannot be modified"})
	}

	var req UpdateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.Email != nil {
		if !utils.ValidateEmail(*req.Email) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email address"})
		}
		booking.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		booking.Phone = models.Phone{DialingCode: req.Phone.DialingCode, Number: req.Phone.Number}
	}
	if req.Passengers != nil {
		if err := utils.ValidatePassengers(req.Passengers); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		booking.Passengers = passengersFromInput(req.Passengers)
	}
	if req.FlightData != nil {
		booking.FlightData = models.JSONB(req.FlightData)
	}
	if req.ExtraServices != nil {
		booking.ExtraServices = models.JSONB(req.ExtraServices)
	}
	if req.Notes != nil {
		booking.Notes = req.Notes
	}

	if err := database.DB.Save(booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update booking"})
	}

	return c.JSON(fiber.Map{"message": "Booking updated", "booking": services.ClientView(*booking)})
}

// UpdateBookingStatus lets admins move a booking between states directly.
func UpdateBookingStatus(c *fiber.Ctx) error {
	type Request struct {
		Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Status must be pending, confirmed, or cancelled"})
	}

	svc := bookingPaymentService()
	booking, err := svc.Resolve(services.ParseBookingIdentifier(c.Params("id")))
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch booking"})
	}

	if err := database.DB.Model(booking).Update("booking_status", req.Status).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update booking status"})
	}
	booking.BookingStatus = req.Status

	return c.JSON(fiber.Map{"message": "Booking status updated", "booking": services.ClientView(*booking)})
}

// CancelBooking marks the booking cancelled. Cancellation is local: it never
// touches the payment provider.
func CancelBooking(c *fiber.Ctx) error {
	booking, errResp := loadOwnedBooking(c)
	if booking == nil {
		return errResp
	}
	if !booking.CanBeCancelled() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Booking is already cancelled"})
	}

	if err := database.DB.Model(booking).Update("booking_status", models.BookingStatusCancelled).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to cancel booking"})
	}
	booking.BookingStatus = models.BookingStatusCancelled

	return c.JSON(fiber.Map{"message": "Booking cancelled", "booking": services.ClientView(*booking)})
}

func DeleteBooking(c *fiber.Ctx) error {
	svc := bookingPaymentService()
	booking, err := svc.Resolve(services.ParseBookingIdentifier(c.Params("id")))
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch booking"})
	}

	if booking.BookingStatus == models.BookingStatusConfirmed {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Confirmed bookings cannot be deleted, cancel them first"})
	}

	if err := database.DB.Delete(booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete booking"})
	}
	return c.JSON(fiber.Map{"message": "Booking deleted"})
}

// GetMyBookingStats returns per-user counters for the account page. The
// lenient normalizers run here so provider vocabulary never leaks into the
// counts.
func GetMyBookingStats(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var bookings []models.PassengerBooking
	if err := database.DB.
		Where("user_id = ? OR (user_id IS NULL AND email = ?)", userID, user.Email).
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch bookings"})
	}

	stats := fiber.Map{"total": 0, "confirmed": 0, "pending": 0, "cancelled": 0, "paid": 0}
	deduped := services.DedupByReference(bookings)
	stats["total"] = len(deduped)
	confirmed, pending, cancelled, paid := 0, 0, 0, 0
	for _, b := range deduped {
		if services.MatchesStatusFilter(b, models.BookingStatusConfirmed) {
			confirmed++
		}
		if services.MatchesStatusFilter(b, models.BookingStatusPending) {
			pending++
		}
		if services.MatchesStatusFilter(b, models.BookingStatusCancelled) {
			cancelled++
		}
		if utils.IsPaymentSuccess(b.PaymentStatus) {
			paid++
		}
	}
	stats["confirmed"], stats["pending"], stats["cancelled"], stats["paid"] = confirmed, pending, cancelled, paid

	return c.JSON(stats)
}

// ListAllBookings is the admin listing: plain DB pagination, no provider
// calls.
func ListAllBookings(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	status := strings.ToLower(strings.TrimSpace(c.Query("status")))

	query := database.DB.Model(&models.PassengerBooking{})
	if status != "" {
		query = query.Where("booking_status = ?", status)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(booking_reference) LIKE ? OR LOWER(email) LIKE ? OR LOWER(passengers::text) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	query.Count(&total)

	var bookings []models.PassengerBooking
	if err := query.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch bookings"})
	}

	return c.JSON(fiber.Map{
		"bookings": services.ClientViews(bookings),
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// GetBookingStats returns admin dashboard counts.
func GetBookingStats(c *fiber.Ctx) error {
	var total, pending, confirmed, cancelled, paid int64

	database.DB.Model(&models.PassengerBooking{}).Count(&total)
	database.DB.Model(&models.PassengerBooking{}).Where("booking_status = ?", models.BookingStatusPending).Count(&pending)
	database.DB.Model(&models.PassengerBooking{}).Where("booking_status = ?", models.BookingStatusConfirmed).Count(&confirmed)
	database.DB.Model(&models.PassengerBooking{}).Where("booking_status = ?", models.BookingStatusCancelled).Count(&cancelled)
	database.DB.Model(&models.PassengerBooking{}).Where("payment_status IN ?", []string{"paid", "completed", "successful", "success"}).Count(&paid)

	return c.JSON(fiber.Map{
		"total":     total,
		"pending":   pending,
		"confirmed": confirmed,
		"cancelled": cancelled,
		"paid":      paid,
	})
}

func bookingFromRequest(req BookingRequest) models.PassengerBooking {
	booking := models.PassengerBooking{
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:         models.Phone{DialingCode: req.Phone.DialingCode, Number: req.Phone.Number},
		Passengers:    passengersFromInput(req.Passengers),
		BookingStatus: models.BookingStatusPending,
		PaymentStatus: "pending",
		Notes:         req.Notes,
	}
	if req.FlightData != nil {
		booking.FlightData = models.JSONB(req.FlightData)
	}
	if req.ExtraServices != nil {
		booking.ExtraServices = models.JSONB(req.ExtraServices)
	}
	return booking
}

func passengersFromInput(inputs []utils.PassengerInput) models.PassengerList {
	passengers := make(models.PassengerList, 0, len(inputs))
	for _, in := range inputs {
		p := models.Passenger{
			Title:              in.Title,
			FirstName:          strings.TrimSpace(in.FirstName),
			LastName:           strings.TrimSpace(in.LastName),
			DateOfBirth:        models.DateParts{Day: in.DateOfBirth.Day, Month: in.DateOfBirth.Month, Year: in.DateOfBirth.Year},
			CountryOfBirth:     in.CountryOfBirth,
			CountryOfResidence: in.CountryOfResidence,
			PassportNumber:     utils.UpperTrim(in.PassportNumber),
			PassportExpiry:     models.DateParts{Day: in.PassportExpiry.Day, Month: in.PassportExpiry.Month, Year: in.PassportExpiry.Year},
		}
		if in.SaveToProfile != nil {
			p.SaveToProfile = *in.SaveToProfile
		}
		if in.Address != nil {
			p.Address = &models.PassengerAddress{
				Street:     in.Address.Street,
				City:       in.Address.City,
				State:      in.Address.State,
				PostalCode: in.Address.PostalCode,
				Country:    in.Address.Country,
			}
		}
		passengers = append(passengers, p)
	}
	return passengers
}

// persistPaymentFailure stores the provider failure snapshot on the booking
// and forwards the provider's status code. The booking survives as pending
// so the user can retry payment.
func persistPaymentFailure(c *fiber.Ctx, booking *models.PassengerBooking, err error) error {
	snapshot := map[string]interface{}{"error": err.Error()}
	statusCode := fiber.StatusInternalServerError

	var revErr *payments.RevolutError
	if errors.As(err, &revErr) {
		statusCode = revErr.StatusCode
		if len(revErr.Data) > 0 {
			snapshot["data"] = json.RawMessage(revErr.Data)
		}
	}

	// Only the error snapshot is written. paymentStatus stays pending so the
	// booking keeps showing up in the owner's pending list for a retry.
	raw, marshalErr := json.Marshal(snapshot)
	if marshalErr == nil {
		if _, updateErr := services.NewGormBookingStore().ApplyPaymentUpdate(booking.ID, services.PaymentUpdate{
			Snapshot: models.JSONB(raw),
		}); updateErr != nil {
			log.Printf("🔥 Failed to record payment failure for booking %s: %v", booking.BookingReference, updateErr)
		}
	}

	log.Printf("🔥 Payment order creation failed for booking %s: %v", booking.BookingReference, err)
	return c.Status(statusCode).JSON(fiber.Map{
		"error":            err.Error(),
		"bookingReference": booking.BookingReference,
	})
}

func revolutErrorResponse(c *fiber.Ctx, err error) error {
	var revErr *payments.RevolutError
	if errors.As(err, &revErr) {
		body := fiber.Map{"error": revErr.Message}
		if len(revErr.Data) > 0 {
			body["details"] = json.RawMessage(revErr.Data)
		}
		return c.Status(revErr.StatusCode).JSON(body)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

// loadOwnedBooking resolves the path id and enforces owner-or-admin. On
// failure the returned booking is nil and the fiber response has already
// been written.
func loadOwnedBooking(c *fiber.Ctx) (*models.PassengerBooking, error) {
	booking, err := bookingPaymentService().Resolve(services.ParseBookingIdentifier(c.Params("id")))
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		}
		return nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch booking"})
	}
	if !callerOwnsBooking(c, booking) {
		return nil, c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not have access to this booking"})
	}
	return booking, nil
}

func callerOwnsBooking(c *fiber.Ctx, booking *models.PassengerBooking) bool {
	if middleware.IsAdminToken(c) {
		return true
	}
	userID, err := middleware.UserIDFromToken(c)
	if err != nil {
		return false
	}
	if booking.UserID != nil && *booking.UserID == userID {
		return true
	}
	// Guest bookings made with the account's email before signup.
	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return false
	}
	return booking.UserID == nil && strings.EqualFold(booking.Email, user.Email)
}

func recordBookingTransaction(booking *models.PassengerBooking, amount float64, currency string, order *payments.RevolutOrder, redirectURL string) {
	description := "Flight booking payment"
	txn := models.Transaction{
		CustomerName:   booking.Passengers[0].FullName(),
		Email:          booking.Email,
		Phone:          booking.FullPhone(),
		Description:    &description,
		BookingRef:     &booking.BookingReference,
		Amount:         amount,
		Currency:       utils.UpperTrim(currency),
		Status:         utils.NormalizeRevolutState(order.State),
		CheckoutURL:    &order.CheckoutURL,
		RevolutOrderID: &order.ID,
		RedirectURL:    &redirectURL,
		RevolutData:    models.JSONB(order.Raw),
	}
	if err := database.DB.Create(&txn).Error; err != nil {
		log.Printf("⚠️ Failed to record transaction for booking %s: %v", booking.BookingReference, err)
	}
}
