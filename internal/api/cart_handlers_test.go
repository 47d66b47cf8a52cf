package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/harshadelights/commerce-core/internal/cart"
	"github.com/harshadelights/commerce-core/internal/checkout"
	"github.com/harshadelights/commerce-core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubInventory struct{ resp models.ValidateItemsResponse }

func (s *stubInventory) Validate(context.Context, []models.CartItem) (*models.ValidateItemsResponse, error) {
	resp := s.resp
	return &resp, nil
}
func (s *stubInventory) Reserve(context.Context, string, []models.CartItem) error { return nil }
func (s *stubInventory) Release(context.Context, string, []models.CartItem) error { return nil }

type stubPayment struct{}

func (stubPayment) ChargeUPI(context.Context, models.ChargeRequest) (*models.ChargeResponse, error) {
	return &models.ChargeResponse{Success: true, PaymentID: "upi-1"}, nil
}
func (stubPayment) ChargeCard(context.Context, models.ChargeRequest) (*models.ChargeResponse, error) {
	return &models.ChargeResponse{Success: true, PaymentID: "card-1"}, nil
}
func (stubPayment) Refund(context.Context, models.RefundRequest) error { return nil }

type stubOrders struct{}

func (stubOrders) Create(context.Context, models.CreateOrderRequest) (string, error) {
	return "order-1", nil
}

type stubNotifications struct{}

func (stubNotifications) SendOrderConfirmation(context.Context, string, string) error { return nil }

func newTestRouter(inv *stubInventory) (*gin.Engine, *cart.Store) {
	gin.SetMode(gin.TestMode)
	store := cart.NewStore(nil)
	orchestrator := checkout.NewOrchestrator(inv, stubPayment{}, stubOrders{}, stubNotifications{}, nil)
	return NewRouter("cart-service-test", NewHandler(store, orchestrator)), store
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAddItemEndpoint(t *testing.T) {
	router, _ := newTestRouter(&stubInventory{resp: models.ValidateItemsResponse{Available: true}})

	w := doJSON(t, router, http.MethodPost, "/cart/sess-1/items", models.AddItemRequest{
		ProductID: "HD-LADOO-250",
		Quantity:  2,
		UnitPrice: 220,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var c models.Cart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
	require.Len(t, c.Items, 1)
	assert.Equal(t, 440.0, c.Subtotal)
	assert.Equal(t, 440.0*models.GSTRate, c.Tax)
}

func TestAddItemEndpoint_RejectsBadPayload(t *testing.T) {
	router, _ := newTestRouter(&stubInventory{resp: models.ValidateItemsResponse{Available: true}})

	w := doJSON(t, router, http.MethodPost, "/cart/sess-1/items", gin.H{
		"product_id": "HD-LADOO-250",
		"quantity":   0,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCartEndpoint_NotFound(t *testing.T) {
	router, _ := newTestRouter(&stubInventory{resp: models.ValidateItemsResponse{Available: true}})

	w := doJSON(t, router, http.MethodGet, "/cart/nobody", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateItemEndpoint_ZeroRemovesLine(t *testing.T) {
	router, _ := newTestRouter(&stubInventory{resp: models.ValidateItemsResponse{Available: true}})

	doJSON(t, router, http.MethodPost, "/cart/sess-1/items", models.AddItemRequest{
		ProductID: "HD-LADOO-250", Quantity: 2, UnitPrice: 220,
	})

	w := doJSON(t, router, http.MethodPut, "/cart/sess-1/items/HD-LADOO-250", models.UpdateItemRequest{Quantity: 0})
	require.Equal(t, http.StatusOK, w.Code)

	var c models.Cart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
	assert.Empty(t, c.Items)
}

func TestCheckoutEndpoint_ConfirmedClearsCart(t *testing.T) {
	router, store := newTestRouter(&stubInventory{resp: models.ValidateItemsResponse{Available: true}})

	doJSON(t, router, http.MethodPost, "/cart/sess-1/items", models.AddItemRequest{
		ProductID: "HD-KAJU-500", Quantity: 1, UnitPrice: 650,
	})

	w := doJSON(t, router, http.MethodPost, "/checkout", models.CheckoutRequest{
		SessionID:     "sess-1",
		Items:         []models.CartItem{{ProductID: "HD-KAJU-500", Quantity: 1, UnitPrice: 650}},
		PaymentMethod: models.PaymentMethodCOD,
		ShippingAddress: models.Address{
			Line1: "12 MG Road", City: "Mumbai", PostalCode: "400001",
		},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var result models.CheckoutResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, models.OrderStatusConfirmed, result.Status)
	assert.Equal(t, "order-1", result.OrderID)

	c, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestCheckoutEndpoint_FailedStaysHTTP200(t *testing.T) {
	router, _ := newTestRouter(&stubInventory{resp: models.ValidateItemsResponse{
		Available:        false,
		UnavailableItems: []string{"SKU123"},
	}})

	w := doJSON(t, router, http.MethodPost, "/checkout", models.CheckoutRequest{
		SessionID:     "sess-1",
		Items:         []models.CartItem{{ProductID: "SKU123", Quantity: 1, UnitPrice: 100}},
		PaymentMethod: models.PaymentMethodCOD,
		ShippingAddress: models.Address{
			Line1: "12 MG Road", City: "Mumbai", PostalCode: "400001",
		},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var result models.CheckoutResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, models.OrderStatusFailed, result.Status)
	assert.Contains(t, result.Message, "SKU123")
}
