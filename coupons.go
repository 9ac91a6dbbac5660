package smartpay

import (
	"context"
	"net/http"
)

// CouponsService manages discount coupons.
type CouponsService struct {
	client *Client
}

// CreateCouponParams describe a new coupon. Amount-typed coupons need an
// amount and currency; percentage-typed ones need a percentage.
type CreateCouponParams struct {
	Name               string         `json:"name"`
	DiscountType       string         `json:"discountType"`
	DiscountAmount     *int64         `json:"discountAmount,omitempty"`
	Currency           string         `json:"currency,omitempty"`
	DiscountPercentage *int64         `json:"discountPercentage,omitempty"`
	ExpiresAt          *int64         `json:"expiresAt,omitempty"`
	MaxRedemptionCount *int64         `json:"maxRedemptionCount,omitempty"`
	Metadata           map[string]any `json:"metadata,omitempty"`

	IdempotencyKey string `json:"-"`
}

// UpdateCouponParams carry the mutable fields of a coupon.
type UpdateCouponParams struct {
	ID       string         `json:"-"`
	Name     string         `json:"name,omitempty"`
	Active   *bool          `json:"active,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (s *CouponsService) Create(ctx context.Context, params CreateCouponParams) (*Coupon, error) {
	if params.Name == "" {
		return nil, newRequestError("name is required")
	}
	if params.DiscountType == "" {
		return nil, newRequestError("discountType is required")
	}
	if params.DiscountType != CouponDiscountTypeAmount &&
		params.DiscountType != CouponDiscountTypePercentage {
		return nil, newRequestError("discountType is invalid")
	}
	if params.DiscountType == CouponDiscountTypeAmount {
		if params.DiscountAmount == nil {
			return nil, newRequestError("discountAmount is invalid")
		}
		if params.Currency == "" {
			return nil, newRequestError("currency is required")
		}
	}
	if params.DiscountType == CouponDiscountTypePercentage && params.DiscountPercentage == nil {
		return nil, newRequestError("discountPercentage is invalid")
	}

	return requestAs[Coupon](ctx, s.client, "/coupons", requestOptions{
		method:         http.MethodPost,
		payload:        params,
		idempotencyKey: params.IdempotencyKey,
	})
}

func (s *CouponsService) Get(ctx context.Context, params GetParams) (*Coupon, error) {
	if params.ID == "" {
		return nil, newRequestError("Coupon Id is required")
	}
	if !IsValidCouponID(params.ID) {
		return nil, newRequestError("Coupon Id is invalid")
	}

	return requestAs[Coupon](ctx, s.client, "/coupons/"+params.ID, requestOptions{
		method: http.MethodGet,
		params: params.queryParams(),
	})
}

func (s *CouponsService) Update(ctx context.Context, params UpdateCouponParams) (*Coupon, error) {
	if params.ID == "" {
		return nil, newRequestError("Coupon Id is required")
	}
	if !IsValidCouponID(params.ID) {
		return nil, newRequestError("Coupon Id is invalid")
	}

	return requestAs[Coupon](ctx, s.client, "/coupons/"+params.ID, requestOptions{
		method:  http.MethodPatch,
		payload: params,
	})
}

func (s *CouponsService) List(ctx context.Context, params ListParams) (*Collection[Coupon], error) {
	return requestAs[Collection[Coupon]](ctx, s.client, "/coupons", requestOptions{
		method: http.MethodGet,
		params: params.queryParams(),
	})
}
