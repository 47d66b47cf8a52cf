package clients

import (
	"context"

	"github.com/harshadelights/commerce-core/internal/models"
)

// The checkout orchestrator only knows these contracts; the resty-backed
// implementations below are swapped for struct mocks in tests.

type Inventory interface {
	Validate(ctx context.Context, items []models.CartItem) (*models.ValidateItemsResponse, error)
	Reserve(ctx context.Context, orderID string, items []models.CartItem) error
	Release(ctx context.Context, orderID string, items []models.CartItem) error
}

type Payment interface {
	ChargeUPI(ctx context.Context, req models.ChargeRequest) (*models.ChargeResponse, error)
	ChargeCard(ctx context.Context, req models.ChargeRequest) (*models.ChargeResponse, error)
	Refund(ctx context.Context, req models.RefundRequest) error
}

type Orders interface {
	Create(ctx context.Context, req models.CreateOrderRequest) (string, error)
}

type Notifications interface {
	SendOrderConfirmation(ctx context.Context, orderID, customerID string) error
}
