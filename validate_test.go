package smartpay

import (
	"errors"
	"testing"
)

func validCheckoutPayload() Payload {
	return Payload{
		"items": []any{
			map[string]any{"name": "Sneaker", "amount": 100, "currency": "JPY", "quantity": 2},
		},
		"customer": map[string]any{
			"emailAddress": "test@smartpay.co",
		},
		"shipping": map[string]any{
			"line1":      "line1",
			"locality":   "locality",
			"postalCode": "123",
			"country":    "JP",
		},
		"successUrl": "https://smartpay.co/success",
		"cancelUrl":  "https://smartpay.co/cancel",
	}
}

func requestErr(t *testing.T, err error) *Error {
	t.Helper()
	var reqErr *Error
	if !errors.As(err, &reqErr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if reqErr.ErrorCode != ErrorCodeRequestInvalid {
		t.Errorf("ErrorCode = %q, want %q", reqErr.ErrorCode, ErrorCodeRequestInvalid)
	}
	return reqErr
}

func containsDetail(details []string, want string) bool {
	for _, d := range details {
		if d == want {
			return true
		}
	}
	return false
}

func TestValidate_DerivesCurrencyAndAmount(t *testing.T) {
	got, err := NormalizeAndValidateCheckoutSessionPayload(validCheckoutPayload())
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	if got.Currency != "JPY" {
		t.Errorf("Currency = %q, want JPY", got.Currency)
	}
	if got.Amount == nil || *got.Amount != 200 {
		t.Errorf("Amount = %v, want 200 (100 x 2)", got.Amount)
	}
	if got.Items[0].Currency != "JPY" {
		t.Errorf("item Currency = %q, want JPY filled in", got.Items[0].Currency)
	}
}

func TestValidate_ShippingFeeIncludedInTotal(t *testing.T) {
	raw := validCheckoutPayload()
	shipping := raw["shipping"].(map[string]any)
	shipping["feeAmount"] = 100
	shipping["feeCurrency"] = "JPY"

	got, err := NormalizeAndValidateCheckoutSessionPayload(raw)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.Amount == nil || *got.Amount != 300 {
		t.Errorf("Amount = %v, want 300 (items 200 + fee 100)", got.Amount)
	}
}

func TestValidate_ForeignFeeCurrencyIgnored(t *testing.T) {
	raw := validCheckoutPayload()
	shipping := raw["shipping"].(map[string]any)
	shipping["feeAmount"] = 100
	shipping["feeCurrency"] = "USD"

	got, err := NormalizeAndValidateCheckoutSessionPayload(raw)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.Amount == nil || *got.Amount != 200 {
		t.Errorf("Amount = %v, want 200 with foreign-currency fee ignored", got.Amount)
	}
}

func TestValidate_DiscountSubtracts(t *testing.T) {
	raw := validCheckoutPayload()
	raw["items"] = []any{
		map[string]any{"name": "Sneaker", "amount": 100, "currency": "JPY", "quantity": 2},
		map[string]any{"name": "Welcome", "amount": 50, "currency": "JPY", "kind": "discount"},
	}

	got, err := NormalizeAndValidateCheckoutSessionPayload(raw)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.Amount == nil || *got.Amount != 150 {
		t.Errorf("Amount = %v, want 150 (200 - 50)", got.Amount)
	}
}

func TestValidate_ExplicitAmountKept(t *testing.T) {
	raw := validCheckoutPayload()
	raw["amount"] = 999
	raw["currency"] = "JPY"

	got, err := NormalizeAndValidateCheckoutSessionPayload(raw)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.Amount == nil || *got.Amount != 999 {
		t.Errorf("Amount = %v, want explicit 999 preserved", got.Amount)
	}
}

func TestValidate_EmptyItemsRejected(t *testing.T) {
	raw := validCheckoutPayload()
	raw["items"] = []any{}
	raw["currency"] = "JPY"

	_, err := NormalizeAndValidateCheckoutSessionPayload(raw)
	reqErr := requestErr(t, err)
	if !containsDetail(reqErr.Details, "payload.items is required.") {
		t.Errorf("Details = %v, want payload.items is required.", reqErr.Details)
	}
}

func TestValidate_MissingCurrencyRejected(t *testing.T) {
	raw := validCheckoutPayload()
	raw["items"] = []any{
		map[string]any{"name": "Sneaker", "amount": 100},
	}

	_, err := NormalizeAndValidateCheckoutSessionPayload(raw)
	reqErr := requestErr(t, err)
	if !containsDetail(reqErr.Details, "Currency is not available.") {
		t.Errorf("Details = %v, want Currency is not available.", reqErr.Details)
	}
}

func TestValidate_MixedItemCurrenciesRejected(t *testing.T) {
	raw := validCheckoutPayload()
	raw["items"] = []any{
		map[string]any{"name": "A", "amount": 100, "currency": "JPY"},
		map[string]any{"name": "B", "amount": 100, "currency": "USD"},
	}

	_, err := NormalizeAndValidateCheckoutSessionPayload(raw)
	reqErr := requestErr(t, err)
	if !containsDetail(reqErr.Details, "payload.items[1].currency is invalid") {
		t.Errorf("Details = %v, want payload.items[1].currency is invalid", reqErr.Details)
	}
}

func TestValidate_StructuralDetails(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(Payload)
		want   string
	}{
		{
			"missing shipping",
			func(p Payload) { delete(p, "shipping") },
			"payload.shippingInfo is required.",
		},
		{
			"missing success url",
			func(p Payload) { delete(p, "successUrl") },
			"payload.successUrl is required.",
		},
		{
			"malformed cancel url",
			func(p Payload) { p["cancelUrl"] = "not-a-url" },
			"payload.cancelUrl is invalid",
		},
		{
			"missing address line1",
			func(p Payload) { delete(p["shipping"].(map[string]any), "line1") },
			"payload.shippingInfo.address.line1 is required.",
		},
		{
			"missing item amount",
			func(p Payload) {
				p["items"] = []any{map[string]any{"name": "Sneaker", "currency": "JPY"}}
			},
			"payload.items[0].amount is required.",
		},
		{
			"zero quantity",
			func(p Payload) {
				p["items"] = []any{
					map[string]any{"name": "Sneaker", "amount": 100, "currency": "JPY", "quantity": 0},
				}
			},
			"payload.items[0].quantity is invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validCheckoutPayload()
			tt.mutate(raw)

			_, err := NormalizeAndValidateCheckoutSessionPayload(raw)
			reqErr := requestErr(t, err)
			if !containsDetail(reqErr.Details, tt.want) {
				t.Errorf("Details = %v, want %q", reqErr.Details, tt.want)
			}
		})
	}
}

func TestValidate_ValidationErrorHasNoStatusCode(t *testing.T) {
	_, err := NormalizeAndValidateCheckoutSessionPayload(Payload{})
	reqErr := requestErr(t, err)
	if reqErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for local validation failure", reqErr.StatusCode)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	first, err := NormalizeAndValidateCheckoutSessionPayload(validCheckoutPayload())
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}

	second, err := ValidateCheckoutSessionPayload(first)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}

	if second.Currency != first.Currency {
		t.Errorf("Currency changed on second pass: %q != %q", second.Currency, first.Currency)
	}
	if *second.Amount != *first.Amount {
		t.Errorf("Amount changed on second pass: %d != %d", *second.Amount, *first.Amount)
	}
}

func TestValidate_DoesNotMutateArgument(t *testing.T) {
	normalized := NormalizeCheckoutSessionPayload(validCheckoutPayload())

	if _, err := ValidateCheckoutSessionPayload(normalized); err != nil {
		t.Fatalf("validate: %v", err)
	}

	if normalized.Amount != nil {
		t.Errorf("Amount = %v, want argument left untouched", normalized.Amount)
	}
}
