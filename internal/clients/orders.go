package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/harshadelights/commerce-core/internal/models"
	"github.com/harshadelights/commerce-core/internal/patterns"
)

// OrdersClient persists orders via the order service.
type OrdersClient struct {
	client  *resty.Client
	baseURL string
}

func NewOrdersClient(baseURL string) *OrdersClient {
	return &OrdersClient{
		client: resty.New().
			SetTimeout(patterns.DefaultTimeout).
			SetRetryCount(0),
		baseURL: baseURL,
	}
}

func (oc *OrdersClient) Create(ctx context.Context, req models.CreateOrderRequest) (string, error) {
	resp, err := oc.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(oc.baseURL + "/orders")

	if err != nil {
		return "", fmt.Errorf("HTTP error: %w", err)
	}

	if resp.StatusCode() != http.StatusCreated && resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("order service returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var response models.CreateOrderResponse
	if err := json.Unmarshal(resp.Body(), &response); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if response.OrderID == "" {
		return "", fmt.Errorf("order service returned empty order id")
	}

	return response.OrderID, nil
}
