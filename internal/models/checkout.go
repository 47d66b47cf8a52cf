package models

// Payment methods accepted at checkout
const (
	PaymentMethodCard = "card"
	PaymentMethodUPI  = "upi"
	PaymentMethodCOD  = "cod"
)

// Order status constants
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusFailed    = "failed"
)

// Payment status constants
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Address represents a shipping or billing address
type Address struct {
	Name       string `json:"name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

// PaymentDetails carries the method-specific credentials for a charge.
// Only the fields for the chosen method are expected to be set.
type PaymentDetails struct {
	VPA        string `json:"vpa,omitempty"`         // upi
	CardNumber string `json:"card_number,omitempty"` // card
	CardExpiry string `json:"card_expiry,omitempty"`
	CardCVV    string `json:"card_cvv,omitempty"`
}

// CheckoutRequest represents a checkout submission for a cart's items
type CheckoutRequest struct {
	SessionID       string         `json:"session_id" binding:"required"`
	CustomerID      string         `json:"customer_id"`
	Items           []CartItem     `json:"items" binding:"required,dive"`
	ShippingAddress Address        `json:"shipping_address" binding:"required"`
	BillingAddress  Address        `json:"billing_address"`
	PaymentMethod   string         `json:"payment_method" binding:"required"`
	PaymentDetails  PaymentDetails `json:"payment_details"`
	// IdempotencyKey deduplicates client retries. Empty disables dedup.
	IdempotencyKey string `json:"idempotency_key"`
}

// CheckoutResult is the terminal outcome of a checkout. The orchestrator
// never surfaces errors directly; callers branch on Status.
type CheckoutResult struct {
	OrderID       string  `json:"order_id,omitempty"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status,omitempty"`
	Subtotal      float64 `json:"subtotal"`
	Tax           float64 `json:"tax"`
	Shipping      float64 `json:"shipping"`
	Total         float64 `json:"total"`
	Message       string  `json:"message,omitempty"`
}
