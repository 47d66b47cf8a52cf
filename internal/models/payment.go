package models

import "time"

// Transaction represents a payment transaction held by the payment service
type Transaction struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Method    string    `json:"method"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ChargeRequest represents a UPI or card charge request
type ChargeRequest struct {
	SessionID  string  `json:"session_id" binding:"required"`
	CustomerID string  `json:"customer_id"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	VPA        string  `json:"vpa,omitempty"`
	CardNumber string  `json:"card_number,omitempty"`
	CardExpiry string  `json:"card_expiry,omitempty"`
}

// ChargeResponse represents a payment charge response
type ChargeResponse struct {
	Success   bool   `json:"success"`
	PaymentID string `json:"payment_id,omitempty"`
	Message   string `json:"message,omitempty"`
}

// RefundRequest reverses a completed charge (compensation path)
type RefundRequest struct {
	PaymentID string  `json:"payment_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Reason    string  `json:"reason,omitempty"`
}

// RefundResponse represents the outcome of a refund
type RefundResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
