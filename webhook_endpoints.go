package smartpay

import (
	"context"
	"net/http"
)

// WebhookEndpointsService manages the endpoints the API delivers events to.
// Signature helpers for verifying those deliveries live in webhook.go.
type WebhookEndpointsService struct {
	client *Client
}

// CreateWebhookEndpointParams register a new delivery URL.
type CreateWebhookEndpointParams struct {
	URL                string         `json:"url"`
	Description        string         `json:"description,omitempty"`
	EventSubscriptions []string       `json:"eventSubscriptions,omitempty"`
	Metadata           map[string]any `json:"metadata,omitempty"`

	IdempotencyKey string `json:"-"`
}

// UpdateWebhookEndpointParams carry the mutable fields of an endpoint.
type UpdateWebhookEndpointParams struct {
	ID                 string         `json:"-"`
	URL                string         `json:"url,omitempty"`
	Description        string         `json:"description,omitempty"`
	Active             *bool          `json:"active,omitempty"`
	EventSubscriptions []string       `json:"eventSubscriptions,omitempty"`
	Metadata           map[string]any `json:"metadata,omitempty"`
}

// DeleteParams identify the object to delete.
type DeleteParams struct {
	ID             string
	IdempotencyKey string
}

func (s *WebhookEndpointsService) Create(ctx context.Context, params CreateWebhookEndpointParams) (*WebhookEndpoint, error) {
	if params.URL == "" {
		return nil, newRequestError("URL is required")
	}

	return requestAs[WebhookEndpoint](ctx, s.client, "/webhook-endpoints", requestOptions{
		method:         http.MethodPost,
		payload:        params,
		idempotencyKey: params.IdempotencyKey,
	})
}

func (s *WebhookEndpointsService) Get(ctx context.Context, params GetParams) (*WebhookEndpoint, error) {
	if params.ID == "" {
		return nil, newRequestError("Webhook Endpoint Id is required")
	}
	if !IsValidWebhookEndpointID(params.ID) {
		return nil, newRequestError("Webhook Endpoint Id is invalid")
	}

	return requestAs[WebhookEndpoint](ctx, s.client, "/webhook-endpoints/"+params.ID, requestOptions{
		method: http.MethodGet,
		params: params.queryParams(),
	})
}

func (s *WebhookEndpointsService) Update(ctx context.Context, params UpdateWebhookEndpointParams) (*WebhookEndpoint, error) {
	if params.ID == "" {
		return nil, newRequestError("Webhook Endpoint Id is required")
	}
	if !IsValidWebhookEndpointID(params.ID) {
		return nil, newRequestError("Webhook Endpoint Id is invalid")
	}

	return requestAs[WebhookEndpoint](ctx, s.client, "/webhook-endpoints/"+params.ID, requestOptions{
		method:  http.MethodPatch,
		payload: params,
	})
}

func (s *WebhookEndpointsService) Delete(ctx context.Context, params DeleteParams) error {
	if params.ID == "" {
		return newRequestError("Webhook Endpoint Id is required")
	}
	if !IsValidWebhookEndpointID(params.ID) {
		return newRequestError("Webhook Endpoint Id is invalid")
	}

	_, err := s.client.request(ctx, "/webhook-endpoints/"+params.ID, requestOptions{
		method:         http.MethodDelete,
		idempotencyKey: params.IdempotencyKey,
	})

	return err
}

func (s *WebhookEndpointsService) List(ctx context.Context, params ListParams) (*Collection[WebhookEndpoint], error) {
	return requestAs[Collection[WebhookEndpoint]](ctx, s.client, "/webhook-endpoints", requestOptions{
		method: http.MethodGet,
		params: params.queryParams(),
	})
}
