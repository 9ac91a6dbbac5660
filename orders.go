package smartpay

import (
	"context"
	"net/http"
)

// OrdersService reads and cancels orders created through checkout sessions.
type OrdersService struct {
	client *Client
}

// CancelOrderParams identify the order to cancel. Cancellation is a create-
// like operation on the remote side, so it carries an idempotency key.
type CancelOrderParams struct {
	ID             string
	IdempotencyKey string
}

func (s *OrdersService) Get(ctx context.Context, params GetParams) (*Order, error) {
	if params.ID == "" {
		return nil, newRequestError("Order Id is required")
	}
	if !IsValidOrderID(params.ID) {
		return nil, newRequestError("Order Id is invalid")
	}

	return requestAs[Order](ctx, s.client, "/orders/"+params.ID, requestOptions{
		method: http.MethodGet,
		params: params.queryParams(),
	})
}

func (s *OrdersService) Cancel(ctx context.Context, params CancelOrderParams) (*Order, error) {
	if params.ID == "" {
		return nil, newRequestError("Order Id is required")
	}
	if !IsValidOrderID(params.ID) {
		return nil, newRequestError("Order Id is invalid")
	}

	return requestAs[Order](ctx, s.client, "/orders/"+params.ID+"/cancellation", requestOptions{
		method:         http.MethodPut,
		idempotencyKey: params.IdempotencyKey,
	})
}

func (s *OrdersService) List(ctx context.Context, params ListParams) (*Collection[Order], error) {
	return requestAs[Collection[Order]](ctx, s.client, "/orders", requestOptions{
		method: http.MethodGet,
		params: params.queryParams(),
	})
}
