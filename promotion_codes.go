package smartpay

import (
	"context"
	"net/http"
)

// PromotionCodesService manages customer-facing codes bound to coupons.
type PromotionCodesService struct {
	client *Client
}

// CreatePromotionCodeParams bind a new code to an existing coupon.
type CreatePromotionCodeParams struct {
	Code                 string         `json:"code"`
	Coupon               string         `json:"coupon"`
	Active               *bool          `json:"active,omitempty"`
	Currency             string         `json:"currency,omitempty"`
	ExpiresAt            *int64         `json:"expiresAt,omitempty"`
	FirstTimeTransaction *bool          `json:"firstTimeTransaction,omitempty"`
	MaxRedemptionCount   *int64         `json:"maxRedemptionCount,omitempty"`
	MinimumAmount        *int64         `json:"minimumAmount,omitempty"`
	OnePerCustomer       *bool          `json:"onePerCustomer,omitempty"`
	Metadata             map[string]any `json:"metadata,omitempty"`

	IdempotencyKey string `json:"-"`
}

// UpdatePromotionCodeParams carry the mutable fields of a promotion code.
type UpdatePromotionCodeParams struct {
	ID       string         `json:"-"`
	Active   *bool          `json:"active,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (s *PromotionCodesService) Create(ctx context.Context, params CreatePromotionCodeParams) (*PromotionCode, error) {
	if params.Code == "" {
		return nil, newRequestError("code is required")
	}
	if params.Coupon == "" {
		return nil, newRequestError("Coupon Id is required")
	}
	if !IsValidCouponID(params.Coupon) {
		return nil, newRequestError("Coupon Id is invalid")
	}

	return requestAs[PromotionCode](ctx, s.client, "/promotion-codes", requestOptions{
		method:         http.MethodPost,
		payload:        params,
		idempotencyKey: params.IdempotencyKey,
	})
}

func (s *PromotionCodesService) Get(ctx context.Context, params GetParams) (*PromotionCode, error) {
	if params.ID == "" {
		return nil, newRequestError("Promotion Code Id is required")
	}
	if !IsValidPromotionCodeID(params.ID) {
		return nil, newRequestError("Promotion Code Id is invalid")
	}

	return requestAs[PromotionCode](ctx, s.client, "/promotion-codes/"+params.ID, requestOptions{
		method: http.MethodGet,
		params: params.queryParams(),
	})
}

func (s *PromotionCodesService) Update(ctx context.Context, params UpdatePromotionCodeParams) (*PromotionCode, error) {
	if params.ID == "" {
		return nil, newRequestError("Promotion Code Id is required")
	}
	if !IsValidPromotionCodeID(params.ID) {
		return nil, newRequestError("Promotion Code Id is invalid")
	}

	return requestAs[PromotionCode](ctx, s.client, "/promotion-codes/"+params.ID, requestOptions{
		method:  http.MethodPatch,
		payload: params,
	})
}

func (s *PromotionCodesService) List(ctx context.Context, params ListParams) (*Collection[PromotionCode], error) {
	return requestAs[Collection[PromotionCode]](ctx, s.client, "/promotion-codes", requestOptions{
		method: http.MethodGet,
		params: params.queryParams(),
	})
}
