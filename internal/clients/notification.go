package clients

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/harshadelights/commerce-core/internal/models"
	"github.com/harshadelights/commerce-core/internal/patterns"
)

// NotificationClient asks the notification service to send the order
// confirmation. Allowed to be slow; gets the longer timeout.
type NotificationClient struct {
	client  *resty.Client
	baseURL string
}

func NewNotificationClient(baseURL string) *NotificationClient {
	return &NotificationClient{
		client: resty.New().
			SetTimeout(patterns.SlowServiceTimeout).
			SetRetryCount(0),
		baseURL: baseURL,
	}
}

func (nc *NotificationClient) SendOrderConfirmation(ctx context.Context, orderID, customerID string) error {
	req := models.OrderConfirmationRequest{
		OrderID:    orderID,
		CustomerID: customerID,
	}

	resp, err := nc.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(nc.baseURL + "/notifications/order-confirmation")

	if err != nil {
		return fmt.Errorf("HTTP error: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("notification service returned status %d: %s", resp.StatusCode(), resp.String())
	}

	return nil
}
