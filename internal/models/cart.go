package models

import "time"

// GSTRate is the fixed Goods and Services Tax applied to every cart subtotal.
const GSTRate = 0.18

// CartItem represents a single purchase line in a cart
type CartItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

// Cart represents a session-scoped collection of pending purchase lines
// with derived totals. Items keep insertion order for display.
type Cart struct {
	SessionID  string     `json:"session_id"`
	CustomerID string     `json:"customer_id,omitempty"`
	Items      []CartItem `json:"items"`
	Subtotal   float64    `json:"subtotal"`
	Tax        float64    `json:"tax"`
	Total      float64    `json:"total"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CreateCartRequest represents the request to create (or replace) a cart
type CreateCartRequest struct {
	CustomerID string `json:"customer_id"`
}

// AddItemRequest represents the request to add a line to a cart
type AddItemRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" binding:"required,gt=0"`
}

// UpdateItemRequest represents the request to change a line's quantity.
// Quantity zero (or below) removes the line.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}
