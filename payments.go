package smartpay

import (
	"context"
	"net/http"
)

// PaymentsService captures authorized orders and reads payment objects.
type PaymentsService struct {
	client *Client
}

const (
	CancelRemainderAutomatic = "automatic"
	CancelRemainderManual    = "manual"
)

// CreatePaymentParams describe a capture against an authorized order.
type CreatePaymentParams struct {
	Order           string         `json:"order"`
	Amount          int64          `json:"amount"`
	Currency        string         `json:"currency"`
	CancelRemainder string         `json:"cancelRemainder,omitempty"`
	Reference       string         `json:"reference,omitempty"`
	Description     string         `json:"description,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`

	IdempotencyKey string `json:"-"`
}

// UpdatePaymentParams carry the mutable fields of a payment.
type UpdatePaymentParams struct {
	ID          string         `json:"-"`
	Reference   string         `json:"reference,omitempty"`
	Description string         `json:"description,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

func (s *PaymentsService) Create(ctx context.Context, params CreatePaymentParams) (*Payment, error) {
	if params.Order == "" {
		return nil, newRequestError("Order Id is required")
	}
	if !IsValidOrderID(params.Order) {
		return nil, newRequestError("Order Id is invalid")
	}
	if params.Amount == 0 {
		return nil, newRequestError("Capture Amount is required")
	}
	if params.Currency == "" {
		return nil, newRequestError("Capture Amount Currency is required")
	}

	return requestAs[Payment](ctx, s.client, "/payments", requestOptions{
		method:         http.MethodPost,
		payload:        params,
		idempotencyKey: params.IdempotencyKey,
	})
}

// Capture is an alias of Create in payment-processing vocabulary.
func (s *PaymentsService) Capture(ctx context.Context, params CreatePaymentParams) (*Payment, error) {
	return s.Create(ctx, params)
}

func (s *PaymentsService) Get(ctx context.Context, params GetParams) (*Payment, error) {
	if params.ID == "" {
		return nil, newRequestError("Payment Id is required")
	}
	if !IsValidPaymentID(params.ID) {
		return nil, newRequestError("Payment Id is invalid")
	}

	return requestAs[Payment](ctx, s.client, "/payments/"+params.ID, requestOptions{
		method: http.MethodGet,
		params: params.queryParams(),
	})
}

func (s *PaymentsService) Update(ctx context.Context, params UpdatePaymentParams) (*Payment, error) {
	if params.ID == "" {
		return nil, newRequestError("Payment Id is required")
	}
	if !IsValidPaymentID(params.ID) {
		return nil, newRequestError("Payment Id is invalid")
	}

	return requestAs[Payment](ctx, s.client, "/payments/"+params.ID, requestOptions{
		method:  http.MethodPatch,
		payload: params,
	})
}

func (s *PaymentsService) List(ctx context.Context, params ListParams) (*Collection[Payment], error) {
	return requestAs[Collection[Payment]](ctx, s.client, "/payments", requestOptions{
		method: http.MethodGet,
		params: params.queryParams(),
	})
}
