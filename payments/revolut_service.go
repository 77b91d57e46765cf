package payments

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	config "github.com/oggotrip/oggo-backend/configs"
)

// RevolutError carries the HTTP status the provider answered with (or 503
// when it never answered) so handlers can forward it unchanged, plus the
// raw provider payload for diagnostics.
type RevolutError struct {
	StatusCode int
	Message    string
	Data       json.RawMessage
}

func (e *RevolutError) Error() string {
	return e.Message
}

// RevolutOrder is the slice of the order payload the backend depends on.
// Raw keeps the complete response for snapshot storage.
type RevolutOrder struct {
	ID          string          `json:"id"`
	State       string          `json:"state"`
	CheckoutURL string          `json:"checkout_url"`
	Amount      int64           `json:"amount"`
	Currency    string          `json:"currency"`
	Raw         json.RawMessage `json:"-"`
}

type orderRequest struct {
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

type RevolutClient struct {
	cfg    config.RevolutConfig
	client *http.Client
}

func NewRevolutClient(cfg config.RevolutConfig) *RevolutClient {
	return &RevolutClient{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// ToMinorUnits converts a major-unit amount to integer minor units. USD,
// EUR and GBP all use two decimal places.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func (r *RevolutClient) checkConfigured() error {
	if r.cfg.SecretKey == "" {
		return &RevolutError{
			StatusCode: http.StatusInternalServerError,
			Message:    "REVOLUT_SECRET_KEY is not configured. Please add it to your .env file.",
		}
	}
	return nil
}

// CreateOrder opens a payment order. A 2xx response missing the order id or
// checkout URL is treated as a provider failure, not success.
func (r *RevolutClient) CreateOrder(amount float64, currency, redirectURL string) (*RevolutOrder, error) {
	if err := r.checkConfigured(); err != nil {
		return nil, err
	}

	payload := orderRequest{
		Amount:   ToMinorUnits(amount),
		Currency: strings.ToUpper(strings.TrimSpace(currency)),
	}
	if redirectURL != "" {
		payload.RedirectURL = strings.TrimSpace(redirectURL)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, r.cfg.BaseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	r.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	order, err := r.do(req, map[int]string{
		http.StatusUnauthorized: "Revolut API authentication failed. Check your REVOLUT_SECRET_KEY.",
		http.StatusBadRequest:   "Invalid payment request. Check amount and currency values.",
	}, "Failed to create payment order with Revolut")
	if err != nil {
		return nil, err
	}

	if order.ID == "" {
		return nil, &RevolutError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Invalid response from payment service",
			Data:       order.Raw,
		}
	}
	if order.CheckoutURL == "" {
		return nil, &RevolutError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Payment service did not return a checkout URL",
			Data:       order.Raw,
		}
	}
	return order, nil
}

// GetOrder fetches the current state of an existing order.
func (r *RevolutClient) GetOrder(orderID string) (*RevolutOrder, error) {
	if err := r.checkConfigured(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodGet, r.cfg.BaseURL+"/orders/"+orderID, nil)
	if err != nil {
		return nil, err
	}
	r.setHeaders(req)

	return r.do(req, map[int]string{
		http.StatusUnauthorized: "Revolut API authentication failed. Check your REVOLUT_SECRET_KEY.",
		http.StatusNotFound:     "Revolut order not found.",
		http.StatusBadRequest:   "Invalid Revolut order ID.",
	}, "Failed to fetch order details from Revolut")
}

func (r *RevolutClient) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.cfg.SecretKey)
	req.Header.Set("Revolut-Api-Version", r.cfg.APIVersion)
}

func (r *RevolutClient) do(req *http.Request, messages map[int]string, fallbackMessage string) (*RevolutOrder, error) {
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &RevolutError{
			StatusCode: http.StatusServiceUnavailable,
			Message:    "Revolut payment service is unavailable",
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RevolutError{
			StatusCode: http.StatusServiceUnavailable,
			Message:    "Revolut payment service is unavailable",
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := messages[resp.StatusCode]
		if message == "" {
			message = fallbackMessage
		}
		return nil, &RevolutError{
			StatusCode: resp.StatusCode,
			Message:    message,
			Data:       json.RawMessage(raw),
		}
	}

	var order RevolutOrder
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, &RevolutError{
			StatusCode: http.StatusInternalServerError,
			Message:    fmt.Sprintf("Unexpected response from Revolut: %v", err),
			Data:       json.RawMessage(raw),
		}
	}
	order.Raw = json.RawMessage(raw)
	return &order, nil
}
