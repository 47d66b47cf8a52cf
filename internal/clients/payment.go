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

// PaymentClient talks to the payment provider gateway. Charges run under
// circuit breaker + bulkhead. A provider-declined charge comes back as a
// response with Success=false and a nil error: a declined card is a
// business outcome, not a service outage, and must not trip the breaker.
type PaymentClient struct {
	client   *resty.Client
	baseURL  string
	circuit  *patterns.CircuitBreaker
	bulkhead *patterns.Bulkhead
}

func NewPaymentClient(baseURL, service string) *PaymentClient {
	return &PaymentClient{
		client: resty.New().
			SetTimeout(patterns.DefaultTimeout).
			SetRetryCount(0),
		baseURL:  baseURL,
		circuit:  patterns.NewCircuitBreaker("Payment", service),
		bulkhead: patterns.NewBulkhead(10, "payment", service),
	}
}

func (pc *PaymentClient) ChargeUPI(ctx context.Context, req models.ChargeRequest) (*models.ChargeResponse, error) {
	return pc.charge(ctx, req, "/payment/upi")
}

func (pc *PaymentClient) ChargeCard(ctx context.Context, req models.ChargeRequest) (*models.ChargeResponse, error) {
	return pc.charge(ctx, req, "/payment/card")
}

func (pc *PaymentClient) charge(ctx context.Context, req models.ChargeRequest, path string) (*models.ChargeResponse, error) {
	var out *models.ChargeResponse
	err := pc.bulkhead.Execute(func() error {
		result, cbErr := pc.circuit.Execute(func() (interface{}, error) {
			resp, httpErr := pc.client.R().
				SetContext(ctx).
				SetHeader("Content-Type", "application/json").
				SetBody(req).
				Post(pc.baseURL + path)

			if httpErr != nil {
				return nil, fmt.Errorf("HTTP error: %w", httpErr)
			}

			if resp.StatusCode() != http.StatusOK {
				return nil, fmt.Errorf("payment service returned status %d: %s", resp.StatusCode(), resp.String())
			}

			var response models.ChargeResponse
			if err := json.Unmarshal(resp.Body(), &response); err != nil {
				return nil, fmt.Errorf("failed to parse response: %w", err)
			}

			return &response, nil
		})
		if cbErr != nil {
			return patterns.FormatError("Payment", cbErr)
		}

		out = result.(*models.ChargeResponse)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Refund reverses a completed charge. Compensation path: goes direct, no
// breaker, so rollbacks still run when the breaker is open.
func (pc *PaymentClient) Refund(ctx context.Context, req models.RefundRequest) error {
	resp, err := pc.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(pc.baseURL + "/payment/refund")

	if err != nil {
		return fmt.Errorf("HTTP error: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("payment service returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var response models.RefundResponse
	if err := json.Unmarshal(resp.Body(), &response); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if !response.Success {
		return fmt.Errorf("refund failed: %s", response.Message)
	}

	return nil
}
