package smartpay

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Version is reported to the API through the sdk-version query parameter.
const Version = "1.0.0"

const (
	headerIdempotencyKey = "Idempotency-Key"

	queryDevLang    = "dev-lang"
	querySDKVersion = "sdk-version"
	devLang         = "go"
)

var defaultRetryableStatuses = []int{
	http.StatusInternalServerError,
	http.StatusNotImplemented,
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
	http.StatusGatewayTimeout,
}

// RetryPolicy controls how transient failures are re-issued. Retries reuse
// the idempotency key and body of the first attempt, so replays are safe on
// the remote side.
type RetryPolicy struct {
	// MaxRetries is the number of re-issues after the first attempt.
	MaxRetries int
	// RetryableStatuses is the set of response codes worth retrying.
	// Defaults to the 5xx gateway/server set.
	RetryableStatuses []int
	// Delay returns the wait before re-issuing attempt n (first retry is
	// attempt 0). The default is exponential backoff, 200ms * 2^n, with up
	// to 50% random jitter added to spread out concurrent retry storms.
	Delay func(attempt int) time.Duration
}

// DefaultRetryPolicy is applied when the client is built without an explicit
// policy and no per-request override is given.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:        1,
		RetryableStatuses: defaultRetryableStatuses,
		Delay:             jitteredBackoff,
	}
}

func jitteredBackoff(attempt int) time.Duration {
	base := (200 * time.Millisecond) << attempt
	return base + time.Duration(rand.Int63n(int64(base)/2+1))
}

func (p RetryPolicy) retryable(statusCode int) bool {
	statuses := p.RetryableStatuses
	if statuses == nil {
		statuses = defaultRetryableStatuses
	}
	for _, code := range statuses {
		if code == statusCode {
			return true
		}
	}
	return false
}

func (p RetryPolicy) delay(attempt int) time.Duration {
	if p.Delay != nil {
		return p.Delay(attempt)
	}
	return jitteredBackoff(attempt)
}

type requestOptions struct {
	method         string
	params         map[string]string
	payload        any
	idempotencyKey string
	retryPolicy    *RetryPolicy
}

// request performs one logical API call: it builds the URL, attaches
// authentication and the idempotency key, runs the retry loop, and
// classifies the outcome. The returned bytes are the raw JSON body of the
// final 2xx response, or nil for empty-body successes (204 / non-JSON).
func (c *Client) request(ctx context.Context, endpoint string, opts requestOptions) (json.RawMessage, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	method := opts.method
	if method == "" {
		method = http.MethodGet
	}

	idempotencyKey := opts.idempotencyKey
	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}

	policy := c.retryPolicy
	if opts.retryPolicy != nil {
		policy = *opts.retryPolicy
	}

	requestURL := c.buildURL(endpoint, opts.params)

	var body []byte
	if opts.payload != nil {
		var err error
		body, err = json.Marshal(opts.payload)
		if err != nil {
			return nil, newRequestError(err.Error())
		}
	}

	log := c.logger.With(
		zap.String("method", method),
		zap.String("endpoint", endpoint),
	)

	var lastErr *Error
	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		if attempt > 0 {
			log.Debug("retrying request",
				zap.Int("attempt", attempt),
				zap.String("reason", lastErr.Error()),
			)

			select {
			case <-time.After(policy.delay(attempt - 1)):
			case <-ctx.Done():
				return nil, newTransportError(ctx.Err())
			}
		}

		data, retryAfter, err := c.attempt(ctx, method, requestURL, body, idempotencyKey, policy)
		if err == nil {
			return data, nil
		}

		lastErr = err
		if !retryAfter {
			return nil, err
		}
	}

	return nil, lastErr
}

// attempt issues a single HTTP exchange. The second return reports whether
// the failure is worth retrying under the given policy semantics: transport
// failures and retryable statuses are, everything else is terminal.
func (c *Client) attempt(ctx context.Context, method, requestURL string, body []byte, idempotencyKey string, policy RetryPolicy) (json.RawMessage, bool, *Error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, false, newTransportError(err)
	}

	req.Header.Set("Authorization", "Basic "+c.secretKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerIdempotencyKey, idempotencyKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, newTransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, newTransportError(err)
	}

	retryable := policy.retryable(resp.StatusCode)

	// 204 and non-JSON bodies resolve empty; there is nothing to parse.
	if resp.StatusCode == http.StatusNoContent || !isJSONResponse(resp) {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil, false, nil
		}
		return nil, retryable, &Error{
			ErrorCode:  ErrorCodeUnexpectedError,
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
		}
	}

	var parsed struct {
		ErrorCode string   `json:"errorCode"`
		Message   string   `json:"message"`
		Details   []string `json:"details"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, retryable, newParseError(resp.StatusCode, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return respBody, false, nil
	}

	return nil, retryable, &Error{
		ErrorCode:  parsed.ErrorCode,
		StatusCode: resp.StatusCode,
		Message:    strconv.Itoa(resp.StatusCode) + " " + parsed.Message,
		Details:    parsed.Details,
	}
}

func (c *Client) buildURL(endpoint string, params map[string]string) string {
	query := url.Values{}
	for k, v := range params {
		query.Set(k, v)
	}
	query.Set(queryDevLang, devLang)
	query.Set(querySDKVersion, Version)

	return c.apiPrefix + endpoint + "?" + query.Encode()
}

func isJSONResponse(resp *http.Response) bool {
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

