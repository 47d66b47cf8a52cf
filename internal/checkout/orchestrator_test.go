package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/harshadelights/commerce-core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// callLog records the order collaborator calls happen in, shared across
// mocks so compensation ordering is checkable.
type callLog struct {
	calls []string
}

func (l *callLog) add(name string) { l.calls = append(l.calls, name) }

type mockInventory struct {
	log          *callLog
	validateResp models.ValidateItemsResponse
	validateErr  error
	reserveErr   error
	releaseErr   error
}

func (m *mockInventory) Validate(_ context.Context, _ []models.CartItem) (*models.ValidateItemsResponse, error) {
	m.log.add("validate")
	if m.validateErr != nil {
		return nil, m.validateErr
	}
	resp := m.validateResp
	return &resp, nil
}

func (m *mockInventory) Reserve(_ context.Context, _ string, _ []models.CartItem) error {
	m.log.add("reserve")
	return m.reserveErr
}

func (m *mockInventory) Release(_ context.Context, _ string, _ []models.CartItem) error {
	m.log.add("release")
	return m.releaseErr
}

type mockPayment struct {
	log       *callLog
	resp      models.ChargeResponse
	err       error
	refunds   []models.RefundRequest
	refundErr error
}

func (m *mockPayment) ChargeUPI(_ context.Context, _ models.ChargeRequest) (*models.ChargeResponse, error) {
	m.log.add("charge_upi")
	if m.err != nil {
		return nil, m.err
	}
	resp := m.resp
	return &resp, nil
}

func (m *mockPayment) ChargeCard(_ context.Context, _ models.ChargeRequest) (*models.ChargeResponse, error) {
	m.log.add("charge_card")
	if m.err != nil {
		return nil, m.err
	}
	resp := m.resp
	return &resp, nil
}

func (m *mockPayment) Refund(_ context.Context, req models.RefundRequest) error {
	m.log.add("refund")
	m.refunds = append(m.refunds, req)
	return m.refundErr
}

type mockOrders struct {
	log     *callLog
	orderID string
	err     error
	created []models.CreateOrderRequest
}

func (m *mockOrders) Create(_ context.Context, req models.CreateOrderRequest) (string, error) {
	m.log.add("create_order")
	if m.err != nil {
		return "", m.err
	}
	m.created = append(m.created, req)
	return m.orderID, nil
}

type mockNotifications struct {
	log *callLog
	err error
}

func (m *mockNotifications) SendOrderConfirmation(_ context.Context, _, _ string) error {
	m.log.add("send_confirmation")
	return m.err
}

type fixture struct {
	log           *callLog
	inventory     *mockInventory
	payment       *mockPayment
	orders        *mockOrders
	notifications *mockNotifications
	orchestrator  *Orchestrator
}

func newFixture(results ResultStore) *fixture {
	l := &callLog{}
	f := &fixture{
		log: l,
		inventory: &mockInventory{
			log:          l,
			validateResp: models.ValidateItemsResponse{Available: true},
		},
		payment: &mockPayment{
			log:  l,
			resp: models.ChargeResponse{Success: true, PaymentID: "pay-1"},
		},
		orders:        &mockOrders{log: l, orderID: "order-1"},
		notifications: &mockNotifications{log: l},
	}
	f.orchestrator = NewOrchestrator(f.inventory, f.payment, f.orders, f.notifications, results)
	return f
}

func codRequest(items []models.CartItem) *models.CheckoutRequest {
	return &models.CheckoutRequest{
		SessionID:     "sess-1",
		CustomerID:    "cust-1",
		Items:         items,
		PaymentMethod: models.PaymentMethodCOD,
	}
}

func TestCheckout_CODConfirmedWithPendingPayment(t *testing.T) {
	f := newFixture(nil)

	result := f.orchestrator.Checkout(context.Background(), codRequest([]models.CartItem{
		{ProductID: "HD-RASGULLA-1K", Quantity: 1, UnitPrice: 300},
		{ProductID: "HD-KAJU-500", Quantity: 1, UnitPrice: 300},
	}))

	assert.Equal(t, models.OrderStatusConfirmed, result.Status)
	assert.Equal(t, models.PaymentStatusPending, result.PaymentStatus)
	assert.Equal(t, "order-1", result.OrderID)
	assert.Equal(t, []string{"validate", "create_order", "reserve", "send_confirmation"}, f.log.calls)
}

func TestCheckout_TotalsOverFreeShippingThreshold(t *testing.T) {
	f := newFixture(nil)

	result := f.orchestrator.Checkout(context.Background(), codRequest([]models.CartItem{
		{ProductID: "HD-RASGULLA-1K", Quantity: 2, UnitPrice: 300},
	}))

	assert.Equal(t, 600.0, result.Subtotal)
	assert.Equal(t, 108.0, result.Tax)
	assert.Equal(t, 0.0, result.Shipping)
	assert.Equal(t, 708.0, result.Total)
}

func TestCheckout_TotalsUnderFreeShippingThreshold(t *testing.T) {
	f := newFixture(nil)

	result := f.orchestrator.Checkout(context.Background(), codRequest([]models.CartItem{
		{ProductID: "HD-SOAN-400", Quantity: 1, UnitPrice: 100},
	}))

	assert.Equal(t, 100.0, result.Subtotal)
	assert.Equal(t, 18.0, result.Tax)
	assert.Equal(t, 50.0, result.Shipping)
	assert.Equal(t, 168.0, result.Total)
}

func TestCheckout_UnavailableSKUNamedInMessage(t *testing.T) {
	f := newFixture(nil)
	f.inventory.validateResp = models.ValidateItemsResponse{
		Available:        false,
		UnavailableItems: []string{"SKU123"},
	}

	result := f.orchestrator.Checkout(context.Background(), codRequest([]models.CartItem{
		{ProductID: "SKU123", Quantity: 1, UnitPrice: 100},
	}))

	assert.Equal(t, models.OrderStatusFailed, result.Status)
	assert.Contains(t, result.Message, "SKU123")
	// Nothing past validation ran
	assert.Equal(t, []string{"validate"}, f.log.calls)
}

func TestCheckout_InvalidPaymentMethod(t *testing.T) {
	f := newFixture(nil)

	req := codRequest([]models.CartItem{{ProductID: "HD-SOAN-400", Quantity: 1, UnitPrice: 100}})
	req.PaymentMethod = "cheque"

	result := f.orchestrator.Checkout(context.Background(), req)

	assert.Equal(t, models.OrderStatusFailed, result.Status)
	assert.Equal(t, models.PaymentStatusFailed, result.PaymentStatus)
	assert.Contains(t, result.Message, "invalid payment method")
	assert.Equal(t, []string{"validate"}, f.log.calls)
}

func TestCheckout_UPISuccess(t *testing.T) {
	f := newFixture(nil)

	req := codRequest([]models.CartItem{{ProductID: "HD-KAJU-500", Quantity: 1, UnitPrice: 650}})
	req.PaymentMethod = models.PaymentMethodUPI
	req.PaymentDetails.VPA = "customer@upi"

	result := f.orchestrator.Checkout(context.Background(), req)

	assert.Equal(t, models.OrderStatusConfirmed, result.Status)
	assert.Equal(t, models.PaymentStatusCompleted, result.PaymentStatus)
	assert.Contains(t, f.log.calls, "charge_upi")
}

func TestCheckout_DeclinedChargeGatesOrderCreation(t *testing.T) {
	f := newFixture(nil)
	f.payment.resp = models.ChargeResponse{Success: false, Message: "Payment declined by provider"}

	req := codRequest([]models.CartItem{{ProductID: "HD-KAJU-500", Quantity: 1, UnitPrice: 650}})
	req.PaymentMethod = models.PaymentMethodCard
	req.PaymentDetails.CardNumber = "4111111111110000"

	result := f.orchestrator.Checkout(context.Background(), req)

	assert.Equal(t, models.OrderStatusFailed, result.Status)
	assert.Equal(t, models.PaymentStatusFailed, result.PaymentStatus)
	assert.Contains(t, result.Message, "declined")
	assert.Equal(t, []string{"validate", "charge_card"}, f.log.calls)
	assert.Empty(t, f.payment.refunds)
}

func TestCheckout_OrderCreateFailureRefundsCharge(t *testing.T) {
	f := newFixture(nil)
	f.orders.err = errors.New("order service down")

	req := codRequest([]models.CartItem{{ProductID: "HD-KAJU-500", Quantity: 1, UnitPrice: 650}})
	req.PaymentMethod = models.PaymentMethodCard
	req.PaymentDetails.CardNumber = "4111111111111111"

	result := f.orchestrator.Checkout(context.Background(), req)

	assert.Equal(t, models.OrderStatusFailed, result.Status)
	require.Len(t, f.payment.refunds, 1)
	assert.Equal(t, "pay-1", f.payment.refunds[0].PaymentID)
	assert.Equal(t, []string{"validate", "charge_card", "create_order", "refund"}, f.log.calls)
}

func TestCheckout_ReserveFailureRefundsCharge(t *testing.T) {
	f := newFixture(nil)
	f.inventory.reserveErr = errors.New("stock moved")

	req := codRequest([]models.CartItem{{ProductID: "HD-KAJU-500", Quantity: 1, UnitPrice: 650}})
	req.PaymentMethod = models.PaymentMethodUPI
	req.PaymentDetails.VPA = "customer@upi"

	result := f.orchestrator.Checkout(context.Background(), req)

	assert.Equal(t, models.OrderStatusFailed, result.Status)
	// The reservation never committed, so no release — only the refund
	assert.Equal(t, []string{"validate", "charge_upi", "create_order", "reserve", "refund"}, f.log.calls)
}

func TestCheckout_ConfirmationFailureReleasesThenRefunds(t *testing.T) {
	f := newFixture(nil)
	f.notifications.err = errors.New("smtp down")

	req := codRequest([]models.CartItem{{ProductID: "HD-KAJU-500", Quantity: 1, UnitPrice: 650}})
	req.PaymentMethod = models.PaymentMethodUPI
	req.PaymentDetails.VPA = "customer@upi"

	result := f.orchestrator.Checkout(context.Background(), req)

	assert.Equal(t, models.OrderStatusFailed, result.Status)
	assert.Contains(t, result.Message, "confirmation")
	// Compensations run in reverse commit order
	assert.Equal(t,
		[]string{"validate", "charge_upi", "create_order", "reserve", "send_confirmation", "release", "refund"},
		f.log.calls)
}

func TestCheckout_CODFailureSkipsRefund(t *testing.T) {
	f := newFixture(nil)
	f.notifications.err = errors.New("smtp down")

	result := f.orchestrator.Checkout(context.Background(), codRequest([]models.CartItem{
		{ProductID: "HD-KAJU-500", Quantity: 1, UnitPrice: 650},
	}))

	assert.Equal(t, models.OrderStatusFailed, result.Status)
	// Nothing was charged, so only the reservation is rolled back
	assert.Equal(t,
		[]string{"validate", "create_order", "reserve", "send_confirmation", "release"},
		f.log.calls)
	assert.Empty(t, f.payment.refunds)
}

func TestCheckout_DuplicateKeyReplaysRecordedResult(t *testing.T) {
	f := newFixture(NewMemoryResultStore())

	req := codRequest([]models.CartItem{{ProductID: "HD-KAJU-500", Quantity: 1, UnitPrice: 650}})
	req.IdempotencyKey = "retry-abc"

	first := f.orchestrator.Checkout(context.Background(), req)
	callsAfterFirst := len(f.log.calls)

	second := f.orchestrator.Checkout(context.Background(), req)

	assert.Equal(t, first, second)
	// No stage re-ran on the duplicate submission
	assert.Equal(t, callsAfterFirst, len(f.log.calls))
}

func TestCheckout_EmptyKeyDisablesDedup(t *testing.T) {
	f := newFixture(NewMemoryResultStore())

	req := codRequest([]models.CartItem{{ProductID: "HD-KAJU-500", Quantity: 1, UnitPrice: 650}})

	f.orchestrator.Checkout(context.Background(), req)
	callsAfterFirst := len(f.log.calls)
	f.orchestrator.Checkout(context.Background(), req)

	assert.Greater(t, len(f.log.calls), callsAfterFirst)
}

func TestTotals_ExactThresholdStillPaysShipping(t *testing.T) {
	subtotal, tax, shipping, total := Totals([]models.CartItem{
		{ProductID: "HD-RASGULLA-1K", Quantity: 1, UnitPrice: 500},
	})

	assert.Equal(t, 500.0, subtotal)
	assert.Equal(t, 90.0, tax)
	assert.Equal(t, 50.0, shipping)
	assert.Equal(t, 640.0, total)
}
