package smartpay

import (
	"context"
	"encoding/json"
	"net/http"
)

// CheckoutSessionsService creates and reads hosted checkout sessions. Create
// runs the full normalize+validate pipeline before anything touches the
// network.
type CheckoutSessionsService struct {
	client *Client
}

// TokenCheckoutSessionPayload is the canonical payload of a token-mode
// checkout session. Token sessions carry no order, so they skip order
// normalization entirely.
type TokenCheckoutSessionPayload struct {
	Mode         string        `json:"mode" validate:"required,eq=token"`
	CustomerInfo *CustomerInfo `json:"customerInfo" validate:"required"`
	SuccessURL   string        `json:"successUrl,omitempty" validate:"required,url"`
	CancelURL    string        `json:"cancelUrl,omitempty" validate:"required,url"`
	Description  string        `json:"description,omitempty"`
	Reference    string        `json:"reference,omitempty"`
	Locale       string        `json:"locale,omitempty"`

	Extra map[string]any `json:"-"`
}

func (p *TokenCheckoutSessionPayload) MarshalJSON() ([]byte, error) {
	type alias TokenCheckoutSessionPayload
	return marshalWithExtra((*alias)(p), p.Extra)
}

var tokenCheckoutSessionKeys = []string{
	"mode", "customerInfo", "customer", "successUrl", "successURL",
	"cancelUrl", "cancelURL", "description", "reference", "locale",
	"idempotencyKey",
}

// NormalizeTokenCheckoutSessionPayload resolves the customer and URL aliases
// of a token-mode payload.
func NormalizeTokenCheckoutSessionPayload(raw Payload) *TokenCheckoutSessionPayload {
	if raw == nil {
		raw = Payload{}
	}

	return &TokenCheckoutSessionPayload{
		Mode:         getString(raw, "mode"),
		CustomerInfo: normalizeCustomerInfo(getMap(raw, "customerInfo"), getMap(raw, "customer")),
		SuccessURL:   getString(raw, "successUrl", "successURL"),
		CancelURL:    getString(raw, "cancelUrl", "cancelURL"),
		Description:  getString(raw, "description"),
		Reference:    getString(raw, "reference"),
		Locale:       getString(raw, "locale"),
		Extra:        extraKeys(raw, tokenCheckoutSessionKeys),
	}
}

// ValidateTokenCheckoutSessionPayload runs the structural check for
// token-mode payloads. There is no amount to compute.
func ValidateTokenCheckoutSessionPayload(payload *TokenCheckoutSessionPayload) (*TokenCheckoutSessionPayload, error) {
	if payload == nil {
		return nil, newRequestError("Payload is required")
	}

	details := structuralDetails(payload)
	if len(details) == 0 {
		return payload, nil
	}

	return nil, &Error{
		ErrorCode: ErrorCodeRequestInvalid,
		Message:   "Payload invalid",
		Details:   details,
	}
}

// Create normalizes, validates and submits a checkout session payload. The
// returned session's URL has the payload's promotion code attached when one
// was supplied.
func (s *CheckoutSessionsService) Create(ctx context.Context, payload Payload) (*CheckoutSession, error) {
	if payload == nil {
		return nil, newRequestError("Payload is required")
	}

	idempotencyKey := getString(payload, "idempotencyKey")

	if getString(payload, "mode") == ModeToken {
		normalized, err := ValidateTokenCheckoutSessionPayload(NormalizeTokenCheckoutSessionPayload(payload))
		if err != nil {
			return nil, err
		}

		return requestAs[CheckoutSession](ctx, s.client, "/checkout-sessions", requestOptions{
			method:         http.MethodPost,
			payload:        normalized,
			idempotencyKey: idempotencyKey,
		})
	}

	normalized, err := NormalizeAndValidateCheckoutSessionPayload(payload)
	if err != nil {
		return nil, err
	}

	session, err := requestAs[CheckoutSession](ctx, s.client, "/checkout-sessions", requestOptions{
		method:         http.MethodPost,
		payload:        normalized,
		idempotencyKey: idempotencyKey,
	})
	if err != nil {
		return nil, err
	}

	if session != nil && normalized.PromotionCode != "" {
		if sessionURL, err := SessionURL(session, normalized.PromotionCode); err == nil {
			session.URL = sessionURL
		}
	}

	return session, nil
}

func (s *CheckoutSessionsService) Get(ctx context.Context, params GetParams) (*CheckoutSession, error) {
	if params.ID == "" {
		return nil, newRequestError("CheckoutSession Id is required")
	}
	if !IsValidCheckoutSessionID(params.ID) {
		return nil, newRequestError("CheckoutSession Id is invalid")
	}

	return requestAs[CheckoutSession](ctx, s.client, "/checkout-sessions/"+params.ID, requestOptions{
		method: http.MethodGet,
		params: params.queryParams(),
	})
}

func (s *CheckoutSessionsService) List(ctx context.Context, params ListParams) (*Collection[CheckoutSession], error) {
	return requestAs[Collection[CheckoutSession]](ctx, s.client, "/checkout-sessions", requestOptions{
		method: http.MethodGet,
		params: params.queryParams(),
	})
}

// GetParams identify a single object, optionally expanding nested resources.
type GetParams struct {
	ID     string
	Expand string
}

func (p GetParams) queryParams() map[string]string {
	params := map[string]string{}
	if p.Expand != "" {
		params["expand"] = p.Expand
	}
	return params
}

// requestAs runs a request and decodes the response body into T. Empty-body
// successes yield a nil result.
func requestAs[T any](ctx context.Context, c *Client, endpoint string, opts requestOptions) (*T, error) {
	data, err := c.request(ctx, endpoint, opts)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &Error{
			ErrorCode: ErrorCodeUnexpectedError,
			Message:   err.Error(),
		}
	}

	return &out, nil
}
