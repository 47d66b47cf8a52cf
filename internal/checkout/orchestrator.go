package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harshadelights/commerce-core/internal/clients"
	"github.com/harshadelights/commerce-core/internal/metrics"
	"github.com/harshadelights/commerce-core/internal/models"
	log "github.com/sirupsen/logrus"
)

// Shipping policy: free above the subtotal threshold, flat fee below it.
const (
	FreeShippingThreshold = 500.0
	ShippingFlatFee       = 50.0
)

// Orchestrator converts a cart into a confirmed order by sequencing the
// collaborator calls:
//
//	validateInventory → calculateTotals → processPayment → createOrder →
//	reserveInventory → sendConfirmation
//
// Each committed stage registers a compensating action; on a later stage
// failure the compensations run in reverse (refund the charge, release the
// reservation), so a payment is never stranded behind a failed order.
//
// Checkout never returns an error. Every failure is folded into a
// CheckoutResult with status failed and a human-readable message; callers
// branch on the result.
type Orchestrator struct {
	inventory     clients.Inventory
	payment       clients.Payment
	orders        clients.Orders
	notifications clients.Notifications
	results       ResultStore
}

// NewOrchestrator wires the orchestrator. results may be nil, which
// disables idempotency-key deduplication.
func NewOrchestrator(inventory clients.Inventory, payment clients.Payment, orders clients.Orders, notifications clients.Notifications, results ResultStore) *Orchestrator {
	return &Orchestrator{
		inventory:     inventory,
		payment:       payment,
		orders:        orders,
		notifications: notifications,
		results:       results,
	}
}

// Checkout runs the full orchestration for one submission.
func (o *Orchestrator) Checkout(ctx context.Context, req *models.CheckoutRequest) *models.CheckoutResult {
	if cached := o.recordedResult(ctx, req.IdempotencyKey); cached != nil {
		log.WithFields(log.Fields{
			"session_id":      req.SessionID,
			"idempotency_key": req.IdempotencyKey,
		}).Info("Duplicate checkout submission, replaying recorded result")
		return cached
	}

	result := o.run(ctx, req)

	o.record(ctx, req.IdempotencyKey, result)
	metrics.CheckoutsTotal.WithLabelValues(result.Status, req.PaymentMethod).Inc()
	return result
}

type compensation struct {
	name string
	run  func(ctx context.Context) error
}

func (o *Orchestrator) run(ctx context.Context, req *models.CheckoutRequest) *models.CheckoutResult {
	logger := log.WithField("session_id", req.SessionID)

	// Stage 1: validate inventory
	if err := o.stageValidateInventory(ctx, req.Items); err != nil {
		logger.Error("Inventory validation failed: ", err)
		return failed(err.Error())
	}

	// Stage 2: totals
	subtotal, tax, shipping, total := Totals(req.Items)

	// Stage 3: payment
	charge, err := o.stageProcessPayment(ctx, req, total)
	if err != nil {
		logger.Error("Payment failed: ", err)
		result := failed(err.Error())
		result.PaymentStatus = models.PaymentStatusFailed
		result.Subtotal, result.Tax, result.Shipping, result.Total = subtotal, tax, shipping, total
		return result
	}

	var compensations []compensation
	if charge.status == models.PaymentStatusCompleted {
		paymentID := charge.paymentID
		compensations = append(compensations, compensation{
			name: "refund_payment",
			run: func(ctx context.Context) error {
				return o.payment.Refund(ctx, models.RefundRequest{
					PaymentID: paymentID,
					Amount:    total,
					Reason:    "checkout failed after charge",
				})
			},
		})
	}

	// Stage 4: create order
	orderID, err := o.stageCreateOrder(ctx, req, charge, subtotal, tax, shipping, total)
	if err != nil {
		logger.Error("Order creation failed: ", err)
		o.compensate(ctx, compensations)
		return failed(fmt.Sprintf("order creation failed: %v", err))
	}
	logger = logger.WithField("order_id", orderID)

	// Stage 5: reserve inventory
	if err := o.stageReserveInventory(ctx, orderID, req.Items); err != nil {
		logger.Error("Inventory reservation failed: ", err)
		o.compensate(ctx, compensations)
		return failed(fmt.Sprintf("inventory reservation failed: %v", err))
	}
	items := req.Items
	compensations = append(compensations, compensation{
		name: "release_inventory",
		run: func(ctx context.Context) error {
			return o.inventory.Release(ctx, orderID, items)
		},
	})

	// Stage 6: confirmation
	if err := o.stageSendConfirmation(ctx, orderID, req.CustomerID); err != nil {
		logger.Error("Confirmation send failed: ", err)
		o.compensate(ctx, compensations)
		return failed(fmt.Sprintf("confirmation failed: %v", err))
	}

	logger.WithFields(log.Fields{
		"total":          total,
		"payment_method": req.PaymentMethod,
	}).Info("Checkout completed")

	return &models.CheckoutResult{
		OrderID:       orderID,
		Status:        models.OrderStatusConfirmed,
		PaymentStatus: charge.status,
		Subtotal:      subtotal,
		Tax:           tax,
		Shipping:      shipping,
		Total:         total,
		Message:       "order placed successfully",
	}
}

func (o *Orchestrator) stageValidateInventory(ctx context.Context, items []models.CartItem) error {
	defer stageTimer("validate_inventory")()

	resp, err := o.inventory.Validate(ctx, items)
	if err != nil {
		return fmt.Errorf("inventory validation failed: %w", err)
	}
	if !resp.Available {
		return &InsufficientStockError{SKUs: resp.UnavailableItems}
	}
	return nil
}

type chargeOutcome struct {
	paymentID string
	status    string
}

// stageProcessPayment branches on the payment method. COD settles locally
// with a pending charge; UPI and card go to the provider.
func (o *Orchestrator) stageProcessPayment(ctx context.Context, req *models.CheckoutRequest, total float64) (*chargeOutcome, error) {
	defer stageTimer("process_payment")()

	switch req.PaymentMethod {
	case models.PaymentMethodCOD:
		return &chargeOutcome{
			paymentID: "cod-" + uuid.New().String(),
			status:    models.PaymentStatusPending,
		}, nil

	case models.PaymentMethodUPI:
		resp, err := o.payment.ChargeUPI(ctx, models.ChargeRequest{
			SessionID:  req.SessionID,
			CustomerID: req.CustomerID,
			Amount:     total,
			VPA:        req.PaymentDetails.VPA,
		})
		return chargeResult(models.PaymentMethodUPI, resp, err)

	case models.PaymentMethodCard:
		resp, err := o.payment.ChargeCard(ctx, models.ChargeRequest{
			SessionID:  req.SessionID,
			CustomerID: req.CustomerID,
			Amount:     total,
			CardNumber: req.PaymentDetails.CardNumber,
			CardExpiry: req.PaymentDetails.CardExpiry,
		})
		return chargeResult(models.PaymentMethodCard, resp, err)

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, req.PaymentMethod)
	}
}

func chargeResult(method string, resp *models.ChargeResponse, err error) (*chargeOutcome, error) {
	if err != nil {
		return nil, &PaymentFailedError{Method: method, Message: err.Error()}
	}
	if !resp.Success {
		return nil, &PaymentFailedError{Method: method, Message: resp.Message}
	}
	return &chargeOutcome{paymentID: resp.PaymentID, status: models.PaymentStatusCompleted}, nil
}

func (o *Orchestrator) stageCreateOrder(ctx context.Context, req *models.CheckoutRequest, charge *chargeOutcome, subtotal, tax, shipping, total float64) (string, error) {
	defer stageTimer("create_order")()

	return o.orders.Create(ctx, models.CreateOrderRequest{
		SessionID:       req.SessionID,
		CustomerID:      req.CustomerID,
		Items:           req.Items,
		Subtotal:        subtotal,
		Tax:             tax,
		Shipping:        shipping,
		Total:           total,
		PaymentID:       charge.paymentID,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress,
	})
}

func (o *Orchestrator) stageReserveInventory(ctx context.Context, orderID string, items []models.CartItem) error {
	defer stageTimer("reserve_inventory")()
	return o.inventory.Reserve(ctx, orderID, items)
}

func (o *Orchestrator) stageSendConfirmation(ctx context.Context, orderID, customerID string) error {
	defer stageTimer("send_confirmation")()
	return o.notifications.SendOrderConfirmation(ctx, orderID, customerID)
}

// compensate runs registered compensations LIFO. Compensation errors are
// logged and counted, never propagated over the original stage failure.
func (o *Orchestrator) compensate(ctx context.Context, compensations []compensation) {
	for i := len(compensations) - 1; i >= 0; i-- {
		c := compensations[i]
		if err := c.run(ctx); err != nil {
			metrics.CheckoutCompensationsTotal.WithLabelValues(c.name, "failed").Inc()
			log.WithField("action", c.name).Error("Compensation failed: ", err)
			continue
		}
		metrics.CheckoutCompensationsTotal.WithLabelValues(c.name, "ok").Inc()
		log.WithField("action", c.name).Info("Compensation applied")
	}
}

// recordedResult returns the recorded outcome for the key, if any.
func (o *Orchestrator) recordedResult(ctx context.Context, key string) *models.CheckoutResult {
	if key == "" || o.results == nil {
		return nil
	}
	result, err := o.results.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNoResult) {
			log.Warn("idempotency lookup error: ", err)
		}
		return nil
	}
	return result
}

func (o *Orchestrator) record(ctx context.Context, key string, result *models.CheckoutResult) {
	if key == "" || o.results == nil {
		return
	}
	if err := o.results.Put(ctx, key, result); err != nil {
		log.Warn("idempotency record error: ", err)
	}
}

// Totals computes the money breakdown for a checkout: 18% GST on the
// subtotal, shipping free above the threshold, flat fee below it.
func Totals(items []models.CartItem) (subtotal, tax, shipping, total float64) {
	for _, item := range items {
		subtotal += float64(item.Quantity) * item.UnitPrice
	}
	tax = subtotal * models.GSTRate
	if subtotal <= FreeShippingThreshold {
		shipping = ShippingFlatFee
	}
	total = subtotal + tax + shipping
	return subtotal, tax, shipping, total
}

func failed(message string) *models.CheckoutResult {
	return &models.CheckoutResult{
		Status:  models.OrderStatusFailed,
		Message: message,
	}
}

func stageTimer(stage string) func() {
	start := time.Now()
	return func() {
		metrics.CheckoutStageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	}
}
