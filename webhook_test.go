package smartpay

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const testSigningSecret = "gybcsjixKyBW2d4z6iNPlaYzHUMtawnodwZt3W0q"

func TestCalculateWebhookSignature_KnownVector(t *testing.T) {
	data := `1653028612220.{"id":"evt_test_dwPfFKu5iSEKyHR2LFj9Lx","object":"event","createdAt":1653028523052,"test":true,"eventData":{"type":"payment.created","version":"2022-02-18","data":{"id":"payment_test_35LxgmF5KM22XKG38BjpJg","object":"payment","test":true,"createdAt":1653028523020,"updatedAt":1653028523020,"amount":200,"currency":"JPY","order":"order_test_RiYq2rthzRHrkKVGeucSwn","reference":"order_ref_1234567","status":"processed","metadata":{}}}}`
	want := "68007ada8485ea0ceca7c5e879ae860a50412b7af95ab8e81b32a3e13f3c0832"

	got, err := CalculateWebhookSignature(data, testSigningSecret)
	if err != nil {
		t.Fatalf("CalculateWebhookSignature: %v", err)
	}
	if got != want {
		t.Errorf("signature = %s, want %s", got, want)
	}

	ok, err := VerifyWebhookSignature(data, testSigningSecret, want)
	if err != nil {
		t.Fatalf("VerifyWebhookSignature: %v", err)
	}
	if !ok {
		t.Error("known-good signature did not verify")
	}
}

func TestCalculateWebhookSignature_Guards(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		secret string
		want   string
	}{
		{"missing data", "", testSigningSecret, "data is required"},
		{"missing secret", "payload", "", "secret is required"},
		{"invalid secret", "payload", "no spaces allowed!", "secret is invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculateWebhookSignature(tt.data, tt.secret)
			var reqErr *Error
			if !errors.As(err, &reqErr) {
				t.Fatalf("error = %v, want *Error", err)
			}
			if reqErr.Message != tt.want {
				t.Errorf("Message = %q, want %q", reqErr.Message, tt.want)
			}
		})
	}
}

func TestVerifyWebhookSignature_RoundTripAndTamper(t *testing.T) {
	data := `1700000000000.{"id":"evt_test_abc","object":"event"}`

	signature, err := CalculateWebhookSignature(data, testSigningSecret)
	if err != nil {
		t.Fatalf("CalculateWebhookSignature: %v", err)
	}

	ok, err := VerifyWebhookSignature(data, testSigningSecret, signature)
	if err != nil || !ok {
		t.Fatalf("round trip failed: ok=%v err=%v", ok, err)
	}

	ok, err = VerifyWebhookSignature(data+" ", testSigningSecret, signature)
	if err != nil {
		t.Fatalf("VerifyWebhookSignature: %v", err)
	}
	if ok {
		t.Error("tampered payload verified")
	}
}

func TestWebhookMiddleware_SetsCalculatedSignature(t *testing.T) {
	body := `{"id":"evt_test_abc","object":"event"}`
	timestamp := "1700000000000"

	want, err := CalculateWebhookSignature(timestamp+"."+body, testSigningSecret)
	if err != nil {
		t.Fatalf("CalculateWebhookSignature: %v", err)
	}

	var gotHeader, gotBody string
	handler := WebhookMiddleware(func(subscriptionID string) string {
		if subscriptionID != "webhook_test_abc" {
			return ""
		}
		return testSigningSecret
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get(HeaderCalculatedSignature)
		b, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		gotBody = string(b)
	}))

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set(HeaderWebhookSignature, want)
	req.Header.Set(HeaderWebhookSignatureTimestamp, timestamp)
	req.Header.Set(HeaderWebhookSubscriptionID, "webhook_test_abc")

	handler.ServeHTTP(httptest.NewRecorder(), req)

	if gotHeader != want {
		t.Errorf("Calculated-Signature = %q, want %q", gotHeader, want)
	}
	if gotBody != body {
		t.Errorf("downstream body = %q, want restored body", gotBody)
	}
}

func TestWebhookMiddleware_SkipsUnsignedAndUnknown(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"unsigned delivery", nil},
		{
			"unknown subscription",
			map[string]string{
				HeaderWebhookSignature:      "deadbeef",
				HeaderWebhookSubscriptionID: "webhook_test_unknown",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			handler := WebhookMiddleware(func(string) string { return "" })(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					got = r.Header.Get(HeaderCalculatedSignature)
				}))

			req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{}"))
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			handler.ServeHTTP(httptest.NewRecorder(), req)

			if got != "" {
				t.Errorf("Calculated-Signature = %q, want unset", got)
			}
		})
	}
}

func TestBase62Decode(t *testing.T) {
	tests := []struct {
		in   string
		want []byte
	}{
		{"", []byte{}},
		{"A", []byte{0}},
		{"B", []byte{1}},
		{"9", []byte{61}},
		{"AAB", []byte{0, 0, 1}},
		{"BA", []byte{62}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := base62Decode(tt.in)
			if err != nil {
				t.Fatalf("base62Decode(%q): %v", tt.in, err)
			}
			if string(got) != string(tt.want) {
				t.Errorf("base62Decode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if _, err := base62Decode("nope!"); err == nil {
		t.Error("want error for character outside the alphabet")
	}
}
