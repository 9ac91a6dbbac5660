package smartpay

import "encoding/json"

// Normalization reshapes a loose caller payload into the canonical typed
// form. It is a pure function of its input: the caller's maps are never
// mutated, every alias is resolved with a fixed precedence (canonical
// spelling wins), and nothing here ever fails. Missing required data is the
// validator's concern.

var customerInfoKeys = []string{
	"accountAge", "emailAddress", "email", "firstName", "lastName",
	"firstNameKana", "lastNameKana", "address", "phoneNumber", "phone",
	"dateOfBirth", "legalGender", "gender", "reference", "metadata",
}

var addressKeys = []string{
	"line1", "line2", "line3", "line4", "line5", "subLocality", "locality",
	"administrativeArea", "postalCode", "country",
}

var lineItemKeys = []string{
	"name", "brand", "categories", "gtin", "images", "reference", "url",
	"description", "label", "amount", "currency", "quantity", "kind",
	"metadata", "price", "priceData", "productDescription", "productMetadata",
	"priceDescription", "priceMetadata",
}

var shippingKeys = []string{
	"address", "addressType", "feeAmount", "feeCurrency",
	"line1", "line2", "line3", "line4", "line5", "subLocality", "locality",
	"administrativeArea", "postalCode", "country",
}

var checkoutSessionKeys = []string{
	"amount", "currency", "captureMethod", "items", "lineItemData",
	"customerInfo", "customer", "shippingInfo", "shipping", "reference",
	"description", "metadata", "successUrl", "successURL", "cancelUrl",
	"cancelURL", "promotionCode", "idempotencyKey",
}

// NormalizeCheckoutSessionPayload resolves every alias and shortcut of the
// loose payload into the canonical shape. The order-level currency defaults
// to the first line item's currency when absent; completion of the order
// amount happens later in Validate.
func NormalizeCheckoutSessionPayload(raw Payload) *CheckoutSessionPayload {
	if raw == nil {
		raw = Payload{}
	}

	items := getSlice(raw, "items")
	if items == nil {
		items = getSlice(raw, "lineItemData")
	}

	shipping := normalizeShipping(getMap(raw, "shippingInfo"))
	if shipping == nil {
		shipping = normalizeShipping(getMap(raw, "shipping"))
	}

	p := &CheckoutSessionPayload{
		Amount:        getInt64(raw, "amount"),
		Currency:      getString(raw, "currency"),
		CaptureMethod: getString(raw, "captureMethod"),
		Items:         normalizeLineItems(items),
		CustomerInfo:  normalizeCustomerInfo(getMap(raw, "customerInfo"), getMap(raw, "customer")),
		ShippingInfo:  shipping,
		Reference:     getString(raw, "reference"),
		Description:   getString(raw, "description"),
		Metadata:      getMap(raw, "metadata"),
		SuccessURL:    getString(raw, "successUrl", "successURL"),
		CancelURL:     getString(raw, "cancelUrl", "cancelURL"),
		PromotionCode: getString(raw, "promotionCode"),
		Extra:         extraKeys(raw, checkoutSessionKeys),
	}

	if p.Currency == "" && len(p.Items) > 0 {
		p.Currency = p.Items[0].Currency
	}

	return p
}

// normalizeCustomerInfo merges the customerInfo/customer aliases; the
// canonical object wins field by field, absent fields fall back to the alias.
func normalizeCustomerInfo(canonical, legacy map[string]any) *CustomerInfo {
	if canonical == nil && legacy == nil {
		return nil
	}

	merged := make(map[string]any, len(canonical)+len(legacy))
	for k, v := range legacy {
		merged[k] = v
	}
	for k, v := range canonical {
		merged[k] = v
	}

	return &CustomerInfo{
		AccountAge:    getInt64(merged, "accountAge"),
		EmailAddress:  getString(merged, "emailAddress", "email"),
		FirstName:     getString(merged, "firstName"),
		LastName:      getString(merged, "lastName"),
		FirstNameKana: getString(merged, "firstNameKana"),
		LastNameKana:  getString(merged, "lastNameKana"),
		Address:       normalizeAddress(getMap(merged, "address")),
		PhoneNumber:   getString(merged, "phoneNumber", "phone"),
		DateOfBirth:   getString(merged, "dateOfBirth"),
		LegalGender:   getString(merged, "legalGender", "gender"),
		Reference:     getString(merged, "reference"),
		Metadata:      getMap(merged, "metadata"),
		Extra:         extraKeys(merged, customerInfoKeys),
	}
}

func normalizeAddress(raw map[string]any) *Address {
	if raw == nil {
		return nil
	}

	return &Address{
		Line1:              getString(raw, "line1"),
		Line2:              getString(raw, "line2"),
		Line3:              getString(raw, "line3"),
		Line4:              getString(raw, "line4"),
		Line5:              getString(raw, "line5"),
		SubLocality:        getString(raw, "subLocality"),
		Locality:           getString(raw, "locality"),
		AdministrativeArea: getString(raw, "administrativeArea"),
		PostalCode:         getString(raw, "postalCode"),
		Country:            getString(raw, "country"),
		Extra:              extraKeys(raw, addressKeys),
	}
}

func normalizeLineItems(list []any) []*LineItem {
	if list == nil {
		return nil
	}

	items := make([]*LineItem, 0, len(list))
	for _, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		items = append(items, normalizeLineItem(m))
	}

	return items
}

// normalizeLineItem flattens the product-describing and price-describing
// fields of one item, including the historical nested priceData/productData
// shape, into the single canonical flat LineItem. Flat spellings win over the
// nested ones, `amount` wins over a numeric `price` shortcut.
func normalizeLineItem(raw map[string]any) *LineItem {
	priceData := getMap(raw, "priceData")
	productData := getMap(priceData, "productData")

	item := &LineItem{
		Name:        firstString(getString(raw, "name"), getString(productData, "name")),
		Brand:       firstString(getString(raw, "brand"), getString(productData, "brand")),
		Categories:  firstStrings(getStrings(raw, "categories"), getStrings(productData, "categories")),
		Gtin:        firstString(getString(raw, "gtin"), getString(productData, "gtin")),
		Images:      firstStrings(getStrings(raw, "images"), getStrings(productData, "images")),
		Reference:   firstString(getString(raw, "reference"), getString(productData, "reference")),
		URL:         firstString(getString(raw, "url"), getString(productData, "url")),
		Description: firstString(getString(raw, "description", "productDescription", "priceDescription"), getString(priceData, "description"), getString(productData, "description")),
		Label:       firstString(getString(raw, "label"), getString(priceData, "label")),
		Amount:      firstInt64(getInt64(raw, "amount"), getInt64(raw, "price"), getInt64(priceData, "amount")),
		Currency:    firstString(getString(raw, "currency"), getString(priceData, "currency")),
		Quantity:    getInt64(raw, "quantity"),
		Kind:        getString(raw, "kind"),
		Metadata:    firstMap(getMap(raw, "metadata"), getMap(raw, "productMetadata"), getMap(raw, "priceMetadata")),
		Extra:       extraKeys(raw, lineItemKeys),
	}

	// A string price is a price object reference, not an amount; it passes
	// through to the wire body untouched.
	if s := getString(raw, "price"); s != "" {
		if item.Extra == nil {
			item.Extra = map[string]any{}
		}
		item.Extra["price"] = s
	}

	return item
}

// normalizeShipping accepts either a nested address object or address fields
// flattened to the same level as the fee fields. The nested object wins.
func normalizeShipping(raw map[string]any) *ShippingInfo {
	if raw == nil {
		return nil
	}

	address := normalizeAddress(getMap(raw, "address"))
	if address == nil {
		address = normalizeAddress(raw)
		address.Extra = nil
	}

	return &ShippingInfo{
		Address:     address,
		AddressType: getString(raw, "addressType"),
		FeeAmount:   getInt64(raw, "feeAmount"),
		FeeCurrency: getString(raw, "feeCurrency"),
		Extra:       extraKeys(raw, shippingKeys),
	}
}

// Loose-map accessors. JSON decoding yields float64 for every number and the
// caller may just as well supply int or int64 literals; getInt64 coerces all
// of them.

func getMap(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	v, ok := m[key].(map[string]any)
	if !ok {
		return nil
	}
	return v
}

func getSlice(m map[string]any, key string) []any {
	if m == nil {
		return nil
	}
	v, ok := m[key].([]any)
	if !ok {
		return nil
	}
	return v
}

// getString returns the value of the first key holding a non-empty string.
// Keys are listed canonical-first, so the canonical spelling wins over any
// alias.
func getString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func getInt64(m map[string]any, keys ...string) *int64 {
	for _, key := range keys {
		switch v := m[key].(type) {
		case int:
			n := int64(v)
			return &n
		case int64:
			n := v
			return &n
		case float64:
			n := int64(v)
			return &n
		case json.Number:
			if n, err := v.Int64(); err == nil {
				return &n
			}
		}
	}
	return nil
}

func getStrings(m map[string]any, key string) []string {
	list := getSlice(m, key)
	if list == nil {
		return nil
	}

	out := make([]string, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// extraKeys copies every key not claimed by the canonical shape into a fresh
// extension bag, preserved verbatim into the request body.
func extraKeys(m map[string]any, known []string) map[string]any {
	var extra map[string]any

	for k, v := range m {
		if containsKey(known, k) {
			continue
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[k] = v
	}

	return extra
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstStrings(values ...[]string) []string {
	for _, v := range values {
		if len(v) > 0 {
			return v
		}
	}
	return nil
}

func firstInt64(values ...*int64) *int64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func firstMap(values ...map[string]any) map[string]any {
	for _, v := range values {
		if len(v) > 0 {
			return v
		}
	}
	return nil
}
