package payments

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/oggotrip/oggo-backend/configs"
)

func testClient(baseURL string) *RevolutClient {
	return NewRevolutClient(config.RevolutConfig{
		SecretKey:  "sk_test_key",
		APIVersion: "2024-09-01",
		BaseURL:    baseURL,
	})
}

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(1999), ToMinorUnits(19.99))
	assert.Equal(t, int64(1000), ToMinorUnits(10))
	assert.Equal(t, int64(1), ToMinorUnits(0.01))
	// 19.99*100 is 1998.999... in float64; truncation would lose a cent.
	assert.Equal(t, int64(2999), ToMinorUnits(29.99))
	assert.Equal(t, int64(0), ToMinorUnits(0))
}

func TestCreateOrderSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_key", r.Header.Get("Authorization"))
		assert.Equal(t, "2024-09-01", r.Header.Get("Revolut-Api-Version"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(4550), body["amount"])
		assert.Equal(t, "GBP", body["currency"])
		assert.Equal(t, "https://shop.example.com/flight/confirmation?booking_id=x", body["redirect_url"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"order_123","state":"pending","checkout_url":"https://checkout.revolut.com/order_123"}`))
	}))
	defer server.Close()

	order, err := testClient(server.URL).CreateOrder(45.50, "gbp", "https://shop.example.com/flight/confirmation?booking_id=x")
	require.NoError(t, err)
	assert.Equal(t, "order_123", order.ID)
	assert.Equal(t, "pending", order.State)
	assert.Equal(t, "https://checkout.revolut.com/order_123", order.CheckoutURL)
	assert.NotEmpty(t, order.Raw)
}

func TestCreateOrderMissingSecretKey(t *testing.T) {
	client := NewRevolutClient(config.RevolutConfig{BaseURL: "https://unused.example.com"})

	_, err := client.CreateOrder(10, "USD", "")
	var revErr *RevolutError
	require.ErrorAs(t, err, &revErr)
	assert.Equal(t, http.StatusInternalServerError, revErr.StatusCode)
	assert.Contains(t, revErr.Message, "REVOLUT_SECRET_KEY")
}

func TestCreateOrderUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid key"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).CreateOrder(10, "USD", "")
	var revErr *RevolutError
	require.ErrorAs(t, err, &revErr)
	assert.Equal(t, http.StatusUnauthorized, revErr.StatusCode)
	assert.Contains(t, revErr.Message, "authentication failed")
	assert.JSONEq(t, `{"message":"invalid key"}`, string(revErr.Data))
}

func TestCreateOrderBadRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"amount invalid"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).CreateOrder(10, "USD", "")
	var revErr *RevolutError
	require.ErrorAs(t, err, &revErr)
	assert.Equal(t, http.StatusBadRequest, revErr.StatusCode)
	assert.Contains(t, revErr.Message, "Invalid payment request")
}

func TestCreateOrderNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	_, err := testClient(server.URL).CreateOrder(10, "USD", "")
	var revErr *RevolutError
	require.ErrorAs(t, err, &revErr)
	assert.Equal(t, http.StatusServiceUnavailable, revErr.StatusCode)
	assert.Equal(t, "Revolut payment service is unavailable", revErr.Message)
}

func TestCreateOrderMissingID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"state":"pending"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).CreateOrder(10, "USD", "")
	var revErr *RevolutError
	require.ErrorAs(t, err, &revErr)
	assert.Equal(t, http.StatusInternalServerError, revErr.StatusCode)
	assert.Equal(t, "Invalid response from payment service", revErr.Message)
}

func TestCreateOrderMissingCheckoutURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"order_123","state":"pending"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).CreateOrder(10, "USD", "")
	var revErr *RevolutError
	require.ErrorAs(t, err, &revErr)
	assert.Equal(t, "Payment service did not return a checkout URL", revErr.Message)
}

func TestGetOrderSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/orders/order_123", r.URL.Path)
		w.Write([]byte(`{"id":"order_123","state":"COMPLETED","amount":1999,"currency":"USD"}`))
	}))
	defer server.Close()

	order, err := testClient(server.URL).GetOrder("order_123")
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", order.State)
	assert.Equal(t, int64(1999), order.Amount)
}

func TestGetOrderNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"no such order"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).GetOrder("missing")
	var revErr *RevolutError
	require.ErrorAs(t, err, &revErr)
	assert.Equal(t, http.StatusNotFound, revErr.StatusCode)
	assert.Equal(t, "Revolut order not found.", revErr.Message)
}

func TestGetOrderGenericServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"message":"upstream"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).GetOrder("order_123")
	var revErr *RevolutError
	require.ErrorAs(t, err, &revErr)
	assert.Equal(t, http.StatusBadGateway, revErr.StatusCode)
	assert.Equal(t, "Failed to fetch order details from Revolut", revErr.Message)
}
