package models

import "time"

// Order represents a customer order held by the order service
type Order struct {
	ID              string     `json:"id"`
	SessionID       string     `json:"session_id"`
	CustomerID      string     `json:"customer_id,omitempty"`
	Items           []CartItem `json:"items"`
	Subtotal        float64    `json:"subtotal"`
	Tax             float64    `json:"tax"`
	Shipping        float64    `json:"shipping"`
	Total           float64    `json:"total"`
	PaymentID       string     `json:"payment_id"`
	PaymentMethod   string     `json:"payment_method"`
	Status          string     `json:"status"`
	ShippingAddress Address    `json:"shipping_address"`
	CreatedAt       time.Time  `json:"created_at"`
}

// CreateOrderRequest represents the request to persist a new order
type CreateOrderRequest struct {
	SessionID       string     `json:"session_id" binding:"required"`
	CustomerID      string     `json:"customer_id"`
	Items           []CartItem `json:"items" binding:"required,dive"`
	Subtotal        float64    `json:"subtotal"`
	Tax             float64    `json:"tax"`
	Shipping        float64    `json:"shipping"`
	Total           float64    `json:"total" binding:"required,gt=0"`
	PaymentID       string     `json:"payment_id" binding:"required"`
	PaymentMethod   string     `json:"payment_method" binding:"required"`
	ShippingAddress Address    `json:"shipping_address"`
}

// CreateOrderResponse represents the response after creating an order
type CreateOrderResponse struct {
	OrderID string `json:"order_id"`
}

// OrderConfirmationRequest asks the notification service to notify the
// customer that their order went through.
type OrderConfirmationRequest struct {
	OrderID    string `json:"order_id" binding:"required"`
	CustomerID string `json:"customer_id"`
}
