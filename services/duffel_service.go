package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	config "github.com/oggotrip/oggo-backend/configs"
)

// DuffelClient talks to the Duffel flight-orders API. Only the list and
// get endpoints are used; order payloads are stored verbatim.
type DuffelClient struct {
	cfg    config.DuffelConfig
	client *http.Client
}

func NewDuffelClient(cfg config.DuffelConfig) *DuffelClient {
	return &DuffelClient{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type DuffelPassenger struct {
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Title      string `json:"title"`
	BornOn     string `json:"born_on"`
}

type DuffelContact struct {
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

type DuffelOrderPayload struct {
	ID               string            `json:"id"`
	BookingReference string            `json:"booking_reference"`
	Status           string            `json:"status"`
	TotalAmount      string            `json:"total_amount"`
	TotalCurrency    string            `json:"total_currency"`
	Passengers       []DuffelPassenger `json:"passengers"`
	BookingContact   *DuffelContact    `json:"booking_contact"`
	Raw              json.RawMessage   `json:"-"`
}

type duffelListResponse struct {
	Data []json.RawMessage `json:"data"`
	Meta struct {
		After string `json:"after"`
	} `json:"meta"`
}

type DuffelPage struct {
	Orders []DuffelOrderPayload
	After  string
}

// ListOrders fetches one page of orders. Pass the previous page's After
// cursor to continue.
func (d *DuffelClient) ListOrders(limit int, after string) (*DuffelPage, error) {
	if d.cfg.APIKey == "" {
		return nil, errors.New("DUFFEL_API_KEY is not set")
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	if after != "" {
		query.Set("after", after)
	}

	req, err := http.NewRequest(http.MethodGet, d.cfg.BaseURL+"/air/orders?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+d.cfg.APIKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Duffel-Version", d.cfg.Version)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("duffel request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("duffel returned %d: %s", resp.StatusCode, body)
	}

	var listResp duffelListResponse
	if err := json.Unmarshal(body, &listResp); err != nil {
		return nil, err
	}

	page := &DuffelPage{After: listResp.Meta.After}
	for _, raw := range listResp.Data {
		var order DuffelOrderPayload
		if err := json.Unmarshal(raw, &order); err != nil {
			return nil, err
		}
		order.Raw = raw
		page.Orders = append(page.Orders, order)
	}
	return page, nil
}
