package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	config "github.com/oggotrip/oggo-backend/configs"
	"github.com/oggotrip/oggo-backend/database"
	"github.com/oggotrip/oggo-backend/middleware"
	"github.com/oggotrip/oggo-backend/models"
	"github.com/oggotrip/oggo-backend/payments"
	"github.com/oggotrip/oggo-backend/utils"
	"gorm.io/gorm"
)

type TransactionRequest struct {
	CustomerName string  `json:"customerName" validate:"required,min=2"`
	Email        string  `json:"email" validate:"required,email"`
	Phone        string  `json:"phone" validate:"required"`
	Description  *string `json:"description,omitempty"`
	BookingRef   *string `json:"bookingRef,omitempty"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	Currency     string  `json:"currency" validate:"required"`
	Product      *string `json:"product,omitempty"`
}

// CreateTransaction opens a standalone payment order not tied to the
// booking checkout flow, e.g. manual invoicing from the admin panel.
func CreateTransaction(c *fiber.Ctx) error {
	var req TransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !models.IsSupportedCurrency(req.Currency) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Currency must be one of USD, EUR, GBP"})
	}

	txn := models.Transaction{
		CustomerName: strings.TrimSpace(req.CustomerName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        strings.TrimSpace(req.Phone),
		Description:  req.Description,
		BookingRef:   req.BookingRef,
		Amount:       req.Amount,
		Currency:     utils.UpperTrim(req.Currency),
		Product:      req.Product,
		Status:       "pending",
	}
	if err := database.DB.Create(&txn).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create transaction"})
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
	redirectURL := strings.TrimRight(base, "/") + "/payment/confirmation?transaction_id=" + txn.TransactionID

	client := payments.NewRevolutClient(config.LoadRevolutConfig())
	order, err := client.CreateOrder(req.Amount, req.Currency, redirectURL)
	if err != nil {
		recordOrderCreationFailure(&txn, err)
		return revolutErrorResponse(c, err)
	}

	updates := map[string]interface{}{
		"revolut_order_id": order.ID,
		"checkout_url":     order.CheckoutURL,
		"redirect_url":     redirectURL,
		"revolut_data":     models.JSONB(order.Raw),
		"status":           utils.NormalizeRevolutState(order.State),
	}
	if err := database.DB.Model(&txn).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save payment details"})
	}

	database.DB.First(&txn, "id = ?", txn.ID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Transaction created",
		"transaction": txn,
		"checkoutUrl": order.CheckoutURL,
	})
}

// GetTransaction fetches one transaction by uuid or human-facing id and
// always refreshes it from Revolut first. The stored snapshot is replaced
// wholesale on every successful fetch.
func GetTransaction(c *fiber.Ctx) error {
	txn, err := findTransaction(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
	}

	if synced, syncErr := syncTransaction(txn); syncErr == nil {
		txn = synced
	} else {
		log.Printf("⚠️ Serving stored status for transaction %s: %v", txn.TransactionID, syncErr)
	}

	return c.JSON(fiber.Map{"transaction": txn})
}

// ListTransactions is admin-only and paginates straight from the database.
func ListTransactions(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := database.DB.Model(&models.Transaction{})
	if status := strings.ToLower(strings.TrimSpace(c.Query("status"))); status != "" {
		query = query.Where("status = ?", status)
	}
	if email := strings.ToLower(strings.TrimSpace(c.Query("email"))); email != "" {
		query = query.Where("email = ?", email)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(transaction_id) LIKE ? OR LOWER(customer_name) LIKE ? OR LOWER(booking_ref) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	query.Count(&total)

	var transactions []models.Transaction
	if err := query.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&transactions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch transactions"})
	}

	return c.JSON(fiber.Map{
		"transactions": transactions,
		"total":        total,
		"page":         page,
		"limit":        limit,
	})
}

// ConfirmTransaction forces a provider sync; errors propagate with the
// provider's status code so the payment page can distinguish "still
// pending" from "Revolut unreachable".
func ConfirmTransaction(c *fiber.Ctx) error {
	idOrTransactionID := c.Query("transaction_id")
	if idOrTransactionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "transaction_id query parameter is required"})
	}

	txn, err := findTransaction(idOrTransactionID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
	}

	synced, err := syncTransaction(txn)
	if err != nil {
		return revolutErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"transaction": synced,
		"status":      synced.Status,
	})
}

type UpdateTransactionRequest struct {
	CustomerName *string  `json:"customerName,omitempty"`
	Email        *string  `json:"email,omitempty"`
	Phone        *string  `json:"phone,omitempty"`
	Description  *string  `json:"description,omitempty"`
	BookingRef   *string  `json:"bookingRef,omitempty"`
	Amount       *float64 `json:"amount,omitempty"`
	Currency     *string  `json:"currency,omitempty"`
	Product      *string  `json:"product,omitempty"`
}

// transactionUpdates builds the column map for a partial edit. Provider
// owned columns (status, order id, snapshot) are never editable here.
func transactionUpdates(req UpdateTransactionRequest) (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if req.CustomerName != nil {
		name := strings.TrimSpace(*req.CustomerName)
		if len(name) < 2 {
			return nil, errors.New("customerName must be at least 2 characters")
		}
		updates["customer_name"] = name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !utils.ValidateEmail(email) {
			return nil, errors.New("email is not valid")
		}
		updates["email"] = email
	}
	if req.Phone != nil {
		updates["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.BookingRef != nil {
		updates["booking_ref"] = *req.BookingRef
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, errors.New("amount must be greater than zero")
		}
		updates["amount"] = *req.Amount
	}
	if req.Currency != nil {
		if !models.IsSupportedCurrency(*req.Currency) {
			return nil, errors.New("Currency must be one of USD, EUR, GBP")
		}
		updates["currency"] = utils.UpperTrim(*req.Currency)
	}
	if req.Product != nil {
		updates["product"] = *req.Product
	}
	return updates, nil
}

// UpdateTransaction edits customer-facing fields and then refreshes the
// transaction from Revolut. The re-fetch is mandatory for linked orders, so
// an edit can never leave a stale provider snapshot behind.
func UpdateTransaction(c *fiber.Ctx) error {
	txn, err := findTransaction(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
	}

	var req UpdateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	updates, err := transactionUpdates(req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if len(updates) > 0 {
		if err := database.DB.Model(txn).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update transaction"})
		}
	}

	synced, syncErr := syncTransaction(txn)
	if syncErr != nil {
		return revolutErrorResponse(c, syncErr)
	}

	return c.JSON(fiber.Map{
		"message":     "Transaction updated",
		"transaction": synced,
	})
}

// GetMyPaymentHistory lists the caller's transactions by account email,
// newest first.
func GetMyPaymentHistory(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var transactions []models.Transaction
	if err := database.DB.Where("email = ?", user.Email).Order("created_at DESC").Find(&transactions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch payment history"})
	}

	return c.JSON(fiber.Map{"transactions": transactions})
}

func DeleteTransaction(c *fiber.Ctx) error {
	txn, err := findTransaction(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
	}
	if err := database.DB.Delete(txn).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete transaction"})
	}
	return c.JSON(fiber.Map{"message": "Transaction deleted"})
}

func findTransaction(idOrTransactionID string) (*models.Transaction, error) {
	var txn models.Transaction
	var err error
	if id, parseErr := uuid.Parse(idOrTransactionID); parseErr == nil {
		err = database.DB.First(&txn, "id = ?", id).Error
	} else {
		err = database.DB.First(&txn, "transaction_id = ?", utils.UpperTrim(idOrTransactionID)).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("transaction not found")
		}
		return nil, err
	}
	return &txn, nil
}

// syncTransaction mirrors the booking reconciler: no linked order means no
// provider call, and nothing is written unless the fetch succeeded.
func syncTransaction(txn *models.Transaction) (*models.Transaction, error) {
	if txn.RevolutOrderID == nil || *txn.RevolutOrderID == "" {
		return txn, nil
	}

	client := payments.NewRevolutClient(config.LoadRevolutConfig())
	order, err := client.GetOrder(*txn.RevolutOrderID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"revolut_data": models.JSONB(order.Raw),
	}
	if order.State != "" {
		updates["status"] = utils.NormalizeRevolutState(order.State)
	}
	if order.CheckoutURL != "" {
		updates["checkout_url"] = order.CheckoutURL
	}

	if err := database.DB.Model(txn).Updates(updates).Error; err != nil {
		return nil, err
	}

	var fresh models.Transaction
	if err := database.DB.First(&fresh, "id = ?", txn.ID).Error; err != nil {
		return nil, err
	}
	return &fresh, nil
}

// recordOrderCreationFailure keeps the provider error detail on the row.
// Status is left pending so the transaction stays retryable.
func recordOrderCreationFailure(txn *models.Transaction, cause error) {
	var revErr *payments.RevolutError
	var updates map[string]interface{}
	if errors.As(cause, &revErr) && len(revErr.Data) > 0 {
		updates = map[string]interface{}{"revolut_data": models.JSONB(revErr.Data)}
	} else {
		detail, err := json.Marshal(map[string]string{"error": cause.Error()})
		if err != nil {
			return
		}
		updates = map[string]interface{}{"revolut_data": models.JSONB(detail)}
	}
	if err := database.DB.Model(txn).Updates(updates).Error; err != nil {
		log.Printf("🔥 Failed to record payment failure for transaction %s: %v", txn.TransactionID, err)
	}
}
