package smartpay

import (
	"encoding/json"
	"strconv"
)

// Line item kinds. The kind controls the sign of the item's contribution to
// the computed order total.
const (
	LineItemKindNormal   = "normal"
	LineItemKindDiscount = "discount"
	LineItemKindTax      = "tax"
)

const (
	CaptureMethodAutomatic = "automatic"
	CaptureMethodManual    = "manual"
)

const (
	AddressTypeHome   = "home"
	AddressTypeGift   = "gift"
	AddressTypeLocker = "locker"
	AddressTypeOffice = "office"
	AddressTypeStore  = "store"
)

const (
	OrderStatusSucceeded             = "succeeded"
	OrderStatusCanceled              = "canceled"
	OrderStatusRejected              = "rejected"
	OrderStatusFailed                = "failed"
	OrderStatusRequiresAuthorization = "requires_authorization"
)

const (
	TokenStatusActive                = "active"
	TokenStatusDisabled              = "disabled"
	TokenStatusRejected              = "rejected"
	TokenStatusRequiresAuthorization = "requires_authorization"
)

const (
	CouponDiscountTypeAmount     = "amount"
	CouponDiscountTypePercentage = "percentage"
)

const (
	RefundReasonRequestedByCustomer = "requested_by_customer"
	RefundReasonFraudulent          = "fraudulent"
)

const ModeToken = "token"

// Payload is the loosely typed caller input accepted by create operations.
// The same concept may be expressed several ways (price vs amount, customer
// vs customerInfo, flat vs nested shipping); the normalizer resolves every
// alias into the canonical typed form below. Unrecognized keys pass through
// to the request body unchanged.
type Payload = map[string]any

// Address is the canonical postal address shape shared by customer and
// shipping info.
type Address struct {
	Line1              string `json:"line1,omitempty" validate:"required"`
	Line2              string `json:"line2,omitempty"`
	Line3              string `json:"line3,omitempty"`
	Line4              string `json:"line4,omitempty"`
	Line5              string `json:"line5,omitempty"`
	SubLocality        string `json:"subLocality,omitempty"`
	Locality           string `json:"locality,omitempty" validate:"required"`
	AdministrativeArea string `json:"administrativeArea,omitempty"`
	PostalCode         string `json:"postalCode,omitempty" validate:"required"`
	Country            string `json:"country,omitempty" validate:"required"`

	Extra map[string]any `json:"-"`
}

func (a *Address) MarshalJSON() ([]byte, error) {
	type alias Address
	return marshalWithExtra((*alias)(a), a.Extra)
}

// CustomerInfo is the canonical customer shape. Every field is optional; the
// normalizer resolves the email/phone/gender aliases before this struct is
// built.
type CustomerInfo struct {
	AccountAge    *int64         `json:"accountAge,omitempty"`
	EmailAddress  string         `json:"emailAddress,omitempty" validate:"omitempty,email"`
	FirstName     string         `json:"firstName,omitempty"`
	LastName      string         `json:"lastName,omitempty"`
	FirstNameKana string         `json:"firstNameKana,omitempty"`
	LastNameKana  string         `json:"lastNameKana,omitempty"`
	Address       *Address       `json:"address,omitempty"`
	PhoneNumber   string         `json:"phoneNumber,omitempty"`
	DateOfBirth   string         `json:"dateOfBirth,omitempty"`
	LegalGender   string         `json:"legalGender,omitempty"`
	Reference     string         `json:"reference,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`

	Extra map[string]any `json:"-"`
}

func (c *CustomerInfo) MarshalJSON() ([]byte, error) {
	type alias CustomerInfo
	return marshalWithExtra((*alias)(c), c.Extra)
}

// LineItem is the canonical flat line item. Historical nested
// priceData/productData shapes are flattened into it by the normalizer.
// After validation completes, Currency is always populated.
type LineItem struct {
	Name        string         `json:"name,omitempty"`
	Brand       string         `json:"brand,omitempty"`
	Categories  []string       `json:"categories,omitempty"`
	Gtin        string         `json:"gtin,omitempty"`
	Images      []string       `json:"images,omitempty"`
	Reference   string         `json:"reference,omitempty"`
	URL         string         `json:"url,omitempty"`
	Description string         `json:"description,omitempty"`
	Label       string         `json:"label,omitempty"`
	Amount      *int64         `json:"amount,omitempty" validate:"required"`
	Currency    string         `json:"currency,omitempty"`
	Quantity    *int64         `json:"quantity,omitempty" validate:"omitempty,gte=1"`
	Kind        string         `json:"kind,omitempty" validate:"omitempty,oneof=normal discount tax"`
	Metadata    map[string]any `json:"metadata,omitempty"`

	Extra map[string]any `json:"-"`
}

func (li *LineItem) MarshalJSON() ([]byte, error) {
	type alias LineItem
	return marshalWithExtra((*alias)(li), li.Extra)
}

// ShippingInfo is the canonical shipping shape: a nested address plus the
// optional delivery fee.
type ShippingInfo struct {
	Address     *Address `json:"address,omitempty" validate:"required"`
	AddressType string   `json:"addressType,omitempty" validate:"omitempty,oneof=home gift locker office store"`
	FeeAmount   *int64   `json:"feeAmount,omitempty"`
	FeeCurrency string   `json:"feeCurrency,omitempty"`

	Extra map[string]any `json:"-"`
}

func (s *ShippingInfo) MarshalJSON() ([]byte, error) {
	type alias ShippingInfo
	return marshalWithExtra((*alias)(s), s.Extra)
}

// CheckoutSessionPayload is the canonical order payload submitted to the API.
// Exactly one spelling exists per concept; optional-with-default fields
// (currency, amount) are resolved by Validate before submission.
type CheckoutSessionPayload struct {
	Amount        *int64         `json:"amount,omitempty"`
	Currency      string         `json:"currency,omitempty"`
	CaptureMethod string         `json:"captureMethod,omitempty" validate:"omitempty,oneof=automatic manual"`
	Items         []*LineItem    `json:"items,omitempty" validate:"dive,required"`
	CustomerInfo  *CustomerInfo  `json:"customerInfo,omitempty"`
	ShippingInfo  *ShippingInfo  `json:"shippingInfo,omitempty" validate:"required"`
	Reference     string         `json:"reference,omitempty"`
	Description   string         `json:"description,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	SuccessURL    string         `json:"successUrl,omitempty" validate:"required,url"`
	CancelURL     string         `json:"cancelUrl,omitempty" validate:"required,url"`
	PromotionCode string         `json:"promotionCode,omitempty"`

	Extra map[string]any `json:"-"`
}

func (p *CheckoutSessionPayload) MarshalJSON() ([]byte, error) {
	type alias CheckoutSessionPayload
	return marshalWithExtra((*alias)(p), p.Extra)
}

// marshalWithExtra serializes v and merges the extension bag into the result.
// Canonical fields win on key collision.
func marshalWithExtra(v any, extra map[string]any) ([]byte, error) {
	base, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	if len(extra) == 0 {
		return base, nil
	}

	merged := make(map[string]any, len(extra))
	for k, val := range extra {
		merged[k] = val
	}

	var own map[string]any
	if err := json.Unmarshal(base, &own); err != nil {
		return nil, err
	}
	for k, val := range own {
		merged[k] = val
	}

	return json.Marshal(merged)
}

// Response envelopes. The API response bodies are pass-through JSON; only the
// fields the library itself needs are modeled, the full body stays available
// in Raw.

type CheckoutSession struct {
	ID     string `json:"id"`
	Object string `json:"object"`
	URL    string `json:"url"`

	Raw json.RawMessage `json:"-"`
}

func (cs *CheckoutSession) UnmarshalJSON(data []byte) error {
	type alias CheckoutSession
	if err := json.Unmarshal(data, (*alias)(cs)); err != nil {
		return err
	}
	cs.Raw = append(cs.Raw[:0], data...)
	return nil
}

type Order struct {
	ID     string `json:"id"`
	Object string `json:"object"`
	Status string `json:"status"`

	Raw json.RawMessage `json:"-"`
}

func (o *Order) UnmarshalJSON(data []byte) error {
	type alias Order
	if err := json.Unmarshal(data, (*alias)(o)); err != nil {
		return err
	}
	o.Raw = append(o.Raw[:0], data...)
	return nil
}

type Payment struct {
	ID     string `json:"id"`
	Object string `json:"object"`
	Status string `json:"status"`

	Raw json.RawMessage `json:"-"`
}

func (p *Payment) UnmarshalJSON(data []byte) error {
	type alias Payment
	if err := json.Unmarshal(data, (*alias)(p)); err != nil {
		return err
	}
	p.Raw = append(p.Raw[:0], data...)
	return nil
}

type Refund struct {
	ID     string `json:"id"`
	Object string `json:"object"`
	Status string `json:"status"`

	Raw json.RawMessage `json:"-"`
}

func (r *Refund) UnmarshalJSON(data []byte) error {
	type alias Refund
	if err := json.Unmarshal(data, (*alias)(r)); err != nil {
		return err
	}
	r.Raw = append(r.Raw[:0], data...)
	return nil
}

type Coupon struct {
	ID     string `json:"id"`
	Object string `json:"object"`

	Raw json.RawMessage `json:"-"`
}

func (c *Coupon) UnmarshalJSON(data []byte) error {
	type alias Coupon
	if err := json.Unmarshal(data, (*alias)(c)); err != nil {
		return err
	}
	c.Raw = append(c.Raw[:0], data...)
	return nil
}

type PromotionCode struct {
	ID     string `json:"id"`
	Object string `json:"object"`

	Raw json.RawMessage `json:"-"`
}

func (pc *PromotionCode) UnmarshalJSON(data []byte) error {
	type alias PromotionCode
	if err := json.Unmarshal(data, (*alias)(pc)); err != nil {
		return err
	}
	pc.Raw = append(pc.Raw[:0], data...)
	return nil
}

type WebhookEndpoint struct {
	ID     string `json:"id"`
	Object string `json:"object"`
	URL    string `json:"url"`

	Raw json.RawMessage `json:"-"`
}

func (we *WebhookEndpoint) UnmarshalJSON(data []byte) error {
	type alias WebhookEndpoint
	if err := json.Unmarshal(data, (*alias)(we)); err != nil {
		return err
	}
	we.Raw = append(we.Raw[:0], data...)
	return nil
}

type Token struct {
	ID     string `json:"id"`
	Object string `json:"object"`
	Status string `json:"status"`

	Raw json.RawMessage `json:"-"`
}

func (t *Token) UnmarshalJSON(data []byte) error {
	type alias Token
	if err := json.Unmarshal(data, (*alias)(t)); err != nil {
		return err
	}
	t.Raw = append(t.Raw[:0], data...)
	return nil
}

// Collection is the paged list envelope returned by every list operation.
type Collection[T any] struct {
	Object        string `json:"object"`
	PageToken     string `json:"pageToken"`
	NextPageToken string `json:"nextPageToken,omitempty"`
	MaxResults    int    `json:"maxResults"`
	Results       int    `json:"results"`
	Data          []T    `json:"data"`
}

// ListParams are the common pagination parameters of list operations.
type ListParams struct {
	Expand     string
	PageToken  string
	MaxResults int
}

func (p ListParams) queryParams() map[string]string {
	params := map[string]string{}
	if p.Expand != "" {
		params["expand"] = p.Expand
	}
	if p.PageToken != "" {
		params["pageToken"] = p.PageToken
	}
	if p.MaxResults > 0 {
		params["maxResults"] = strconv.Itoa(p.MaxResults)
	}
	return params
}
