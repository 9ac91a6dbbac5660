package smartpay

import (
	"context"
	"net/http"
)

// RefundsService creates and reads refunds against captured payments.
type RefundsService struct {
	client *Client
}

// CreateRefundParams describe a full or partial refund of one payment.
type CreateRefundParams struct {
	Payment     string         `json:"payment"`
	Amount      int64          `json:"amount"`
	Currency    string         `json:"currency"`
	Reason      string         `json:"reason"`
	Reference   string         `json:"reference,omitempty"`
	Description string         `json:"description,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`

	IdempotencyKey string `json:"-"`
}

// UpdateRefundParams carry the mutable fields of a refund.
type UpdateRefundParams struct {
	ID          string         `json:"-"`
	Reference   string         `json:"reference,omitempty"`
	Description string         `json:"description,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

func (s *RefundsService) Create(ctx context.Context, params CreateRefundParams) (*Refund, error) {
	if params.Payment == "" {
		return nil, newRequestError("Payment Id is required")
	}
	if !IsValidPaymentID(params.Payment) {
		return nil, newRequestError("Payment Id is invalid")
	}
	if params.Amount == 0 {
		return nil, newRequestError("Refund Amount is required")
	}
	if params.Currency == "" {
		return nil, newRequestError("Refund Amount Currency is required")
	}
	if params.Reason == "" {
		return nil, newRequestError("Refund Reason is required")
	}

	return requestAs[Refund](ctx, s.client, "/refunds", requestOptions{
		method:         http.MethodPost,
		payload:        params,
		idempotencyKey: params.IdempotencyKey,
	})
}

// Refund is an alias of Create in payment-processing vocabulary.
func (s *RefundsService) Refund(ctx context.Context, params CreateRefundParams) (*Refund, error) {
	return s.Create(ctx, params)
}

func (s *RefundsService) Get(ctx context.Context, params GetParams) (*Refund, error) {
	if params.ID == "" {
		return nil, newRequestError("Refund Id is required")
	}
	if !IsValidRefundID(params.ID) {
		return nil, newRequestError("Refund Id is invalid")
	}

	return requestAs[Refund](ctx, s.client, "/refunds/"+params.ID, requestOptions{
		method: http.MethodGet,
		params: params.queryParams(),
	})
}

func (s *RefundsService) Update(ctx context.Context, params UpdateRefundParams) (*Refund, error) {
	if params.ID == "" {
		return nil, newRequestError("Refund Id is required")
	}
	if !IsValidRefundID(params.ID) {
		return nil, newRequestError("Refund Id is invalid")
	}

	return requestAs[Refund](ctx, s.client, "/refunds/"+params.ID, requestOptions{
		method:  http.MethodPatch,
		payload: params,
	})
}

func (s *RefundsService) List(ctx context.Context, params ListParams) (*Collection[Refund], error) {
	return requestAs[Collection[Refund]](ctx, s.client, "/refunds", requestOptions{
		method: http.MethodGet,
		params: params.queryParams(),
	})
}
