package smartpay

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
)

// Webhook delivery headers and the header the middleware fills in for the
// handler to compare against Smartpay-Signature.
const (
	HeaderWebhookSignature          = "Smartpay-Signature"
	HeaderWebhookSignatureTimestamp = "Smartpay-Signature-Timestamp"
	HeaderWebhookSubscriptionID     = "Smartpay-Subscription-Id"
	HeaderCalculatedSignature       = "Calculated-Signature"
)

const base62Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// CalculateWebhookSignature computes the hex HMAC-SHA256 of data, keyed with
// the base62-decoded signing secret.
func CalculateWebhookSignature(data, secret string) (string, error) {
	if data == "" {
		return "", newRequestError("data is required")
	}
	if secret == "" {
		return "", newRequestError("secret is required")
	}

	key, err := base62Decode(secret)
	if err != nil {
		return "", newRequestError("secret is invalid")
	}

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(data))

	return hex.EncodeToString(mac.Sum(nil)), nil
}

// VerifyWebhookSignature reports whether signature matches the HMAC of data
// under the given signing secret. The comparison is constant time.
func VerifyWebhookSignature(data, secret, signature string) (bool, error) {
	if signature == "" {
		return false, newRequestError("signature is required")
	}

	calculated, err := CalculateWebhookSignature(data, secret)
	if err != nil {
		return false, err
	}

	return hmac.Equal([]byte(calculated), []byte(signature)), nil
}

// WebhookMiddleware wraps a handler serving webhook deliveries. For signed
// requests it computes the HMAC over "<timestamp>." followed by the raw body
// and stores the result in the Calculated-Signature request header; the
// handler compares it with Smartpay-Signature. The body is restored for the
// downstream handler.
//
// secretFor resolves the signing secret of a subscription; return "" to skip
// the computation for unknown subscriptions.
func WebhookMiddleware(secretFor func(subscriptionID string) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get(HeaderWebhookSignature) == "" {
				next.ServeHTTP(w, r)
				return
			}

			secret := secretFor(r.Header.Get(HeaderWebhookSubscriptionID))
			if secret == "" {
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, "failed to read request body", http.StatusBadRequest)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			key, err := base62Decode(secret)
			if err != nil {
				http.Error(w, "invalid signing secret", http.StatusInternalServerError)
				return
			}

			timestamp := r.Header.Get(HeaderWebhookSignatureTimestamp)

			mac := hmac.New(sha256.New, key)
			mac.Write([]byte(timestamp + "."))
			mac.Write(body)

			r.Header.Set(HeaderCalculatedSignature, hex.EncodeToString(mac.Sum(nil)))

			next.ServeHTTP(w, r)
		})
	}
}

// base62Decode converts a base62 string into bytes, compatible with the
// base-x big-integer encoding the API uses for signing secrets: leading
// zero-value characters map to leading zero bytes.
func base62Decode(s string) ([]byte, error) {
	if s == "" {
		return []byte{}, nil
	}

	var table [256]int16
	for i := range table {
		table[i] = -1
	}
	for i := 0; i < len(base62Alphabet); i++ {
		table[base62Alphabet[i]] = int16(i)
	}

	// Little-endian accumulation, reversed at the end.
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		carry := int(table[s[i]])
		if carry < 0 {
			return nil, fmt.Errorf("invalid base62 character %q", s[i])
		}

		for j := 0; j < len(out); j++ {
			carry += int(out[j]) * len(base62Alphabet)
			out[j] = byte(carry & 0xff)
			carry >>= 8
		}
		for carry > 0 {
			out = append(out, byte(carry&0xff))
			carry >>= 8
		}
	}

	for i := 0; i < len(s) && s[i] == base62Alphabet[0]; i++ {
		out = append(out, 0)
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}

	return out, nil
}
