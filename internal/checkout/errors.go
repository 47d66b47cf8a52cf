package checkout

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidPaymentMethod = errors.New("invalid payment method")

// InsufficientStockError carries the SKUs that inventory validation
// reported as unavailable.
type InsufficientStockError struct {
	SKUs []string
}

func (e *InsufficientStockError) Error() string {
	return "items unavailable: " + strings.Join(e.SKUs, ", ")
}

// PaymentFailedError is a provider-reported charge failure.
type PaymentFailedError struct {
	Method  string
	Message string
}

func (e *PaymentFailedError) Error() string {
	return fmt.Sprintf("%s payment failed: %s", e.Method, e.Message)
}
