package domain

import "strings"

// PaymentMethod is one of the fixed payment options on the checkout dialog.
// The design allows several methods on a single order (split payment); the
// submitted order carries them joined by ", ".
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentBank PaymentMethod = "bank"
)

// ParsePaymentMethod validates a method identifier from the API surface.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentBank:
		return PaymentMethod(s), true
	default:
		return "", false
	}
}

// JoinPaymentMethods renders a selection as the order payment_type label.
func JoinPaymentMethods(methods []PaymentMethod) string {
	parts := make([]string, 0, len(methods))
	for _, m := range methods {
		parts = append(parts, string(m))
	}
	return strings.Join(parts, ", ")
}
