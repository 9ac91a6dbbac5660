package smartpay

import (
	"context"
	"net/http"
)

// TokensService manages reusable payment tokens created through token-mode
// checkout sessions.
type TokensService struct {
	client *Client
}

// TokenParams identify the token to act on. Enable, disable and delete
// change remote state, so they carry an idempotency key.
type TokenParams struct {
	ID             string
	IdempotencyKey string
}

func (s *TokensService) Get(ctx context.Context, params GetParams) (*Token, error) {
	if params.ID == "" {
		return nil, newRequestError("Token Id is required")
	}
	if !IsValidTokenID(params.ID) {
		return nil, newRequestError("Token Id is invalid")
	}

	return requestAs[Token](ctx, s.client, "/tokens/"+params.ID, requestOptions{
		method: http.MethodGet,
		params: params.queryParams(),
	})
}

func (s *TokensService) Enable(ctx context.Context, params TokenParams) (*Token, error) {
	if params.ID == "" {
		return nil, newRequestError("Token Id is required")
	}
	if !IsValidTokenID(params.ID) {
		return nil, newRequestError("Token Id is invalid")
	}

	return requestAs[Token](ctx, s.client, "/tokens/"+params.ID+"/enable", requestOptions{
		method:         http.MethodPut,
		idempotencyKey: params.IdempotencyKey,
	})
}

func (s *TokensService) Disable(ctx context.Context, params TokenParams) (*Token, error) {
	if params.ID == "" {
		return nil, newRequestError("Token Id is required")
	}
	if !IsValidTokenID(params.ID) {
		return nil, newRequestError("Token Id is invalid")
	}

	return requestAs[Token](ctx, s.client, "/tokens/"+params.ID+"/disable", requestOptions{
		method:         http.MethodPut,
		idempotencyKey: params.IdempotencyKey,
	})
}

func (s *TokensService) Delete(ctx context.Context, params TokenParams) error {
	if params.ID == "" {
		return newRequestError("Token Id is required")
	}
	if !IsValidTokenID(params.ID) {
		return newRequestError("Token Id is invalid")
	}

	_, err := s.client.request(ctx, "/tokens/"+params.ID, requestOptions{
		method:         http.MethodDelete,
		idempotencyKey: params.IdempotencyKey,
	})

	return err
}

func (s *TokensService) List(ctx context.Context, params ListParams) (*Collection[Token], error) {
	return requestAs[Collection[Token]](ctx, s.client, "/tokens", requestOptions{
		method: http.MethodGet,
		params: params.queryParams(),
	})
}
