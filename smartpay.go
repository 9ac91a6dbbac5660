// Package smartpay is a client for the Smartpay payment API: checkout
// sessions, orders, payments, refunds, coupons, promotion codes, webhook
// endpoints and tokens.
//
// The client validates and normalizes loose create payloads into the shape
// the API expects, issues authenticated requests with idempotency keys and a
// retry policy, and translates every failure into a single typed *Error.
package smartpay

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/smartpay-co/smartpay-go/pkg/logger"
)

const (
	defaultAPIPrefix   = "https://api.smartpay.co/v1"
	defaultCheckoutURL = "https://checkout.smartpay.co"

	// apiHostFragment guards the env override of the API prefix: a value not
	// pointing at the Smartpay API is ignored rather than routing live
	// traffic somewhere accidental.
	apiHostFragment = "api.smartpay"

	envAPIPrefix   = "SMARTPAY_API_PREFIX"
	envCheckoutURL = "SMARTPAY_CHECKOUT_URL"
)

// Client is the entry point of the library. It holds the immutable
// credentials and endpoints configured at construction time and exposes one
// service per resource family. Concurrent calls are independent; the client
// itself keeps no per-request state.
type Client struct {
	secretKey   string
	publicKey   string
	apiPrefix   string
	checkoutURL string

	httpClient  *http.Client
	retryPolicy RetryPolicy
	logger      logger.Logger

	CheckoutSessions *CheckoutSessionsService
	Orders           *OrdersService
	Payments         *PaymentsService
	Refunds          *RefundsService
	Coupons          *CouponsService
	PromotionCodes   *PromotionCodesService
	WebhookEndpoints *WebhookEndpointsService
	Tokens           *TokensService
}

// Option configures a Client at construction.
type Option func(*Client)

func WithPublicKey(publicKey string) Option {
	return func(c *Client) { c.publicKey = publicKey }
}

func WithAPIPrefix(apiPrefix string) Option {
	return func(c *Client) { c.apiPrefix = strings.TrimSuffix(apiPrefix, "/") }
}

func WithCheckoutURL(checkoutURL string) Option {
	return func(c *Client) { c.checkoutURL = strings.TrimSuffix(checkoutURL, "/") }
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func WithRetryPolicy(policy RetryPolicy) Option {
	return func(c *Client) { c.retryPolicy = policy }
}

func WithLogger(log logger.Logger) Option {
	return func(c *Client) { c.logger = log }
}

// New builds a Client from a secret key. The key is validated up front;
// construction fails fast instead of letting every later call 401.
func New(secretKey string, opts ...Option) (*Client, error) {
	if secretKey == "" {
		return nil, ErrSecretKeyRequired
	}
	if !IsValidSecretKey(secretKey) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSecretKey, redactKey(secretKey))
	}

	c := &Client{
		secretKey:   secretKey,
		apiPrefix:   apiPrefixFromEnv(),
		checkoutURL: checkoutURLFromEnv(),
		httpClient:  &http.Client{},
		retryPolicy: DefaultRetryPolicy(),
		logger:      logger.Noop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.publicKey != "" && !IsValidPublicKey(c.publicKey) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPublicKey, redactKey(c.publicKey))
	}

	c.CheckoutSessions = &CheckoutSessionsService{client: c}
	c.Orders = &OrdersService{client: c}
	c.Payments = &PaymentsService{client: c}
	c.Refunds = &RefundsService{client: c}
	c.Coupons = &CouponsService{client: c}
	c.PromotionCodes = &PromotionCodesService{client: c}
	c.WebhookEndpoints = &WebhookEndpointsService{client: c}
	c.Tokens = &TokensService{client: c}

	return c, nil
}

// SetPublicKey replaces the public key used for session URL construction.
// Not safe for concurrent use with in-flight session URL builds.
func (c *Client) SetPublicKey(publicKey string) error {
	if publicKey == "" {
		return ErrPublicKeyRequired
	}
	if !IsValidPublicKey(publicKey) {
		return fmt.Errorf("%w: %q", ErrInvalidPublicKey, redactKey(publicKey))
	}

	c.publicKey = publicKey

	return nil
}

// SessionURL builds the hosted checkout URL for a created session, appending
// the promotion code when one is given.
func SessionURL(session *CheckoutSession, promotionCode string) (string, error) {
	if session == nil || session.URL == "" {
		return "", newRequestError("Session is invalid")
	}

	if promotionCode == "" {
		return session.URL, nil
	}

	u, err := url.Parse(session.URL)
	if err != nil {
		return "", newRequestError("Session is invalid")
	}

	query := u.Query()
	query.Set("promotion-code", promotionCode)
	u.RawQuery = query.Encode()

	return u.String(), nil
}

// apiPrefixFromEnv honors SMARTPAY_API_PREFIX only when it points at the
// Smartpay API host.
func apiPrefixFromEnv() string {
	if v := os.Getenv(envAPIPrefix); v != "" &&
		strings.Contains(strings.ToLower(v), apiHostFragment) {
		return strings.TrimSuffix(v, "/")
	}
	return defaultAPIPrefix
}

func checkoutURLFromEnv() string {
	if v := os.Getenv(envCheckoutURL); v != "" {
		return strings.TrimSuffix(v, "/")
	}
	return defaultCheckoutURL
}

// redactKey keeps error messages from leaking whole credentials into logs.
func redactKey(key string) string {
	if len(key) <= 8 {
		return key
	}
	return key[:8] + "..."
}
