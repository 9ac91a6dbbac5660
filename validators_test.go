package smartpay

import "testing"

func TestKeyAndIDValidators(t *testing.T) {
	tests := []struct {
		name  string
		check func(string) bool
		in    string
		want  bool
	}{
		{"secret test mode", IsValidSecretKey, "sk_test_albwlejgsekcokfpdsvu", true},
		{"secret live mode", IsValidSecretKey, "sk_live_albwlejgsekcokfpdsvu", true},
		{"secret wrong prefix", IsValidSecretKey, "pk_test_albwlejgsekcokfpdsvu", false},
		{"secret missing mode", IsValidSecretKey, "sk_albwlejgsekcokfpdsvu", false},
		{"secret empty suffix", IsValidSecretKey, "sk_test_", false},
		{"secret illegal char", IsValidSecretKey, "sk_test_abc-def", false},
		{"public test mode", IsValidPublicKey, "pk_test_albwlejgsekcokfpdsvu", true},
		{"public wrong prefix", IsValidPublicKey, "sk_test_albwlejgsekcokfpdsvu", false},

		{"order", IsValidOrderID, "order_test_RiYq2rthzRHrkKVGeucSwn", true},
		{"order wrong prefix", IsValidOrderID, "payment_test_RiYq2rthzRHrkKVGeucSwn", false},
		{"payment", IsValidPaymentID, "payment_test_35LxgmF5KM22XKG38BjpJg", true},
		{"refund", IsValidRefundID, "refund_test_5s3t94qbCBz2WYyqBwAnPT", true},
		{"checkout session", IsValidCheckoutSessionID, "checkout_test_9Ry4MvpuTykbLLFxtxOYbV", true},
		{"checkout session bare", IsValidCheckoutSessionID, "checkout_9Ry4MvpuTykbLLFxtxOYbV", false},
		{"coupon", IsValidCouponID, "coupon_test_d1BT9nIYKNDOyGrVLLhH", true},
		{"coupon illegal char", IsValidCouponID, "coupon_test_d1BT9nIYKNDO_yGrVLLhH", false},
		{"promotion code", IsValidPromotionCodeID, "promo_test_NF3kCRo0WSDuKnsxHN4m5i", true},
		{"webhook endpoint", IsValidWebhookEndpointID, "webhook_test_5p53ajA0HHVXUIvZWGBzfj", true},
		{"token", IsValidTokenID, "token_live_4EOJitmIB5TGVbBDKIBWAe", true},
		{"empty", IsValidTokenID, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.in); got != tt.want {
				t.Errorf("check(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
