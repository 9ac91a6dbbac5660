package smartpay

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const detailPrefix = "payload"

var payloadValidator = newPayloadValidator()

func newPayloadValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Details are reported with wire field names, not Go names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return v
}

// ValidateCheckoutSessionPayload checks the canonical payload against the
// structural schema and the cross-field business rules, and completes the
// defaulting that needs cross-field computation: the effective currency is
// propagated to items lacking one and, when no explicit amount was supplied,
// the order total is computed as the signed sum over items plus the
// same-currency shipping fee.
//
// The caller's payload is never mutated; the completed copy is returned. On
// failure the error is a *Error with code "request.invalid" whose Details
// enumerate every violation found, structural errors first.
//
// Validating an already-validated payload is a no-op: the amount is only
// computed when absent, so the result never drifts across repeated calls.
func ValidateCheckoutSessionPayload(payload *CheckoutSessionPayload) (*CheckoutSessionPayload, error) {
	if payload == nil {
		return nil, newRequestError("Payload is required")
	}

	p := payload.clone()
	details := structuralDetails(p)

	if len(p.Items) == 0 {
		details = append(details, detailPrefix+".items is required.")
	}

	currency := p.Currency
	if currency == "" && len(p.Items) > 0 {
		currency = p.Items[0].Currency
	}
	if currency == "" {
		details = append(details, "Currency is not available.")
	}

	if currency != "" {
		for _, item := range p.Items {
			if item.Currency == "" {
				item.Currency = currency
			}
		}
	}

	if currency != "" && p.Amount == nil {
		total := int64(0)

		for i, item := range p.Items {
			if item.Currency != currency {
				details = append(details, fmt.Sprintf("%s.items[%d].currency is invalid", detailPrefix, i))
				continue
			}

			amount := int64(0)
			if item.Amount != nil {
				amount = *item.Amount
			}
			quantity := int64(1)
			if item.Quantity != nil {
				quantity = *item.Quantity
			}

			if item.Kind == LineItemKindDiscount {
				total -= amount * quantity
			} else {
				total += amount * quantity
			}
		}

		// The delivery fee only contributes when it is priced in the order
		// currency; a mismatched fee is excluded from the total, not an
		// error.
		if p.ShippingInfo != nil && p.ShippingInfo.FeeAmount != nil &&
			p.ShippingInfo.FeeCurrency == currency {
			total += *p.ShippingInfo.FeeAmount
		}

		if len(details) == 0 {
			p.Amount = &total
		}
	}

	if len(details) > 0 {
		return nil, &Error{
			ErrorCode: ErrorCodeRequestInvalid,
			Message:   "Payload invalid",
			Details:   details,
		}
	}

	p.Currency = currency

	return p, nil
}

// NormalizeAndValidateCheckoutSessionPayload runs the full pipeline on a
// loose payload: alias resolution, structural validation, and defaulting.
func NormalizeAndValidateCheckoutSessionPayload(raw Payload) (*CheckoutSessionPayload, error) {
	return ValidateCheckoutSessionPayload(NormalizeCheckoutSessionPayload(raw))
}

func structuralDetails(payload any) []string {
	err := payloadValidator.Struct(payload)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{detailPrefix + " is invalid"}
	}

	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, fieldDetail(fe))
	}

	return details
}

func fieldDetail(fe validator.FieldError) string {
	path := fe.Namespace()

	// The leading segment is the Go struct type name.
	if i := strings.Index(path, "."); i >= 0 {
		path = detailPrefix + path[i:]
	} else {
		path = detailPrefix
	}

	if fe.Tag() == "required" {
		return path + " is required."
	}
	return path + " is invalid"
}

// clone produces a deep copy so completion never touches the caller's
// payload.
func (p *CheckoutSessionPayload) clone() *CheckoutSessionPayload {
	if p == nil {
		return nil
	}

	out := *p
	out.Amount = cloneInt64(p.Amount)
	out.CustomerInfo = p.CustomerInfo.clone()
	out.ShippingInfo = p.ShippingInfo.clone()
	out.Metadata = cloneAnyMap(p.Metadata)
	out.Extra = cloneAnyMap(p.Extra)

	if p.Items != nil {
		out.Items = make([]*LineItem, len(p.Items))
		for i, item := range p.Items {
			out.Items[i] = item.clone()
		}
	}

	return &out
}

func (c *CustomerInfo) clone() *CustomerInfo {
	if c == nil {
		return nil
	}

	out := *c
	out.AccountAge = cloneInt64(c.AccountAge)
	out.Address = c.Address.clone()
	out.Metadata = cloneAnyMap(c.Metadata)
	out.Extra = cloneAnyMap(c.Extra)

	return &out
}

func (a *Address) clone() *Address {
	if a == nil {
		return nil
	}

	out := *a
	out.Extra = cloneAnyMap(a.Extra)

	return &out
}

func (li *LineItem) clone() *LineItem {
	if li == nil {
		return nil
	}

	out := *li
	out.Amount = cloneInt64(li.Amount)
	out.Quantity = cloneInt64(li.Quantity)
	out.Categories = append([]string(nil), li.Categories...)
	out.Images = append([]string(nil), li.Images...)
	out.Metadata = cloneAnyMap(li.Metadata)
	out.Extra = cloneAnyMap(li.Extra)

	return &out
}

func (s *ShippingInfo) clone() *ShippingInfo {
	if s == nil {
		return nil
	}

	out := *s
	out.Address = s.Address.clone()
	out.FeeAmount = cloneInt64(s.FeeAmount)
	out.Extra = cloneAnyMap(s.Extra)

	return &out
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

func cloneAnyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
