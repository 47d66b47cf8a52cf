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

// InventoryClient talks to the inventory service. Validate and Reserve run
// under circuit breaker + bulkhead; Release is a compensation and goes
// direct so an open breaker cannot block a rollback.
type InventoryClient struct {
	client   *resty.Client
	baseURL  string
	circuit  *patterns.CircuitBreaker
	bulkhead *patterns.Bulkhead
}

func NewInventoryClient(baseURL, service string) *InventoryClient {
	return &InventoryClient{
		client: resty.New().
			SetTimeout(patterns.DefaultTimeout).
			SetRetryCount(0), // resilience is the circuit breaker's job
		baseURL:  baseURL,
		circuit:  patterns.NewCircuitBreaker("Inventory", service),
		bulkhead: patterns.NewBulkhead(10, "inventory", service),
	}
}

func (ic *InventoryClient) Validate(ctx context.Context, items []models.CartItem) (*models.ValidateItemsResponse, error) {
	req := models.ValidateItemsRequest{Items: items}

	var out *models.ValidateItemsResponse
	err := ic.bulkhead.Execute(func() error {
		result, cbErr := ic.circuit.Execute(func() (interface{}, error) {
			resp, httpErr := ic.client.R().
				SetContext(ctx).
				SetHeader("Content-Type", "application/json").
				SetBody(req).
				Post(ic.baseURL + "/inventory/validate")

			if httpErr != nil {
				return nil, fmt.Errorf("HTTP error: %w", httpErr)
			}

			if resp.StatusCode() != http.StatusOK {
				return nil, fmt.Errorf("inventory service returned status %d: %s", resp.StatusCode(), resp.String())
			}

			var response models.ValidateItemsResponse
			if err := json.Unmarshal(resp.Body(), &response); err != nil {
				return nil, fmt.Errorf("failed to parse response: %w", err)
			}

			return &response, nil
		})
		if cbErr != nil {
			return patterns.FormatError("Inventory", cbErr)
		}

		out = result.(*models.ValidateItemsResponse)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (ic *InventoryClient) Reserve(ctx context.Context, orderID string, items []models.CartItem) error {
	req := models.ReserveItemsRequest{OrderID: orderID, Items: items}

	return ic.bulkhead.Execute(func() error {
		_, cbErr := ic.circuit.Execute(func() (interface{}, error) {
			resp, httpErr := ic.client.R().
				SetContext(ctx).
				SetHeader("Content-Type", "application/json").
				SetBody(req).
				Post(ic.baseURL + "/inventory/reserve")

			if httpErr != nil {
				return nil, fmt.Errorf("HTTP error: %w", httpErr)
			}

			if resp.StatusCode() != http.StatusOK {
				return nil, fmt.Errorf("inventory service returned status %d: %s", resp.StatusCode(), resp.String())
			}

			var response models.ReserveItemsResponse
			if err := json.Unmarshal(resp.Body(), &response); err != nil {
				return nil, fmt.Errorf("failed to parse response: %w", err)
			}

			if !response.Success {
				return nil, fmt.Errorf("reservation failed: %s", response.Message)
			}

			return response, nil
		})

		return patterns.FormatError("Inventory", cbErr)
	})
}

func (ic *InventoryClient) Release(ctx context.Context, orderID string, items []models.CartItem) error {
	req := models.ReleaseItemsRequest{OrderID: orderID, Items: items}

	resp, err := ic.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(ic.baseURL + "/inventory/release")

	if err != nil {
		return fmt.Errorf("HTTP error: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("inventory service returned status %d", resp.StatusCode())
	}

	return nil
}
