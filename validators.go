package smartpay

import "regexp"

// Key and resource id patterns. These are request-construction guards used to
// fail fast before a network round trip, not security boundaries.
var (
	publicKeyRegexp = regexp.MustCompile(`^pk_(test|live)_[0-9a-zA-Z]+$`)
	secretKeyRegexp = regexp.MustCompile(`^sk_(test|live)_[0-9a-zA-Z]+$`)

	orderIDRegexp           = regexp.MustCompile(`^order_(test|live)_[0-9a-zA-Z]+$`)
	paymentIDRegexp         = regexp.MustCompile(`^payment_(test|live)_[0-9a-zA-Z]+$`)
	refundIDRegexp          = regexp.MustCompile(`^refund_(test|live)_[0-9a-zA-Z]+$`)
	checkoutSessionIDRegexp = regexp.MustCompile(`^checkout_(test|live)_[0-9a-zA-Z]+$`)
	couponIDRegexp          = regexp.MustCompile(`^coupon_(test|live)_[0-9a-zA-Z]+$`)
	promotionCodeIDRegexp   = regexp.MustCompile(`^promo_(test|live)_[0-9a-zA-Z]+$`)
	webhookEndpointIDRegexp = regexp.MustCompile(`^webhook_(test|live)_[0-9a-zA-Z]+$`)
	tokenIDRegexp           = regexp.MustCompile(`^token_(test|live)_[0-9a-zA-Z]+$`)
)

func IsValidPublicKey(key string) bool {
	return publicKeyRegexp.MatchString(key)
}

func IsValidSecretKey(key string) bool {
	return secretKeyRegexp.MatchString(key)
}

func IsValidOrderID(id string) bool {
	return orderIDRegexp.MatchString(id)
}

func IsValidPaymentID(id string) bool {
	return paymentIDRegexp.MatchString(id)
}

func IsValidRefundID(id string) bool {
	return refundIDRegexp.MatchString(id)
}

func IsValidCheckoutSessionID(id string) bool {
	return checkoutSessionIDRegexp.MatchString(id)
}

func IsValidCouponID(id string) bool {
	return couponIDRegexp.MatchString(id)
}

func IsValidPromotionCodeID(id string) bool {
	return promotionCodeIDRegexp.MatchString(id)
}

func IsValidWebhookEndpointID(id string) bool {
	return webhookEndpointIDRegexp.MatchString(id)
}

func IsValidTokenID(id string) bool {
	return tokenIDRegexp.MatchString(id)
}
