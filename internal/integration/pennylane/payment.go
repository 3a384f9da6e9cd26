package pennylane

import (
	"strings"

	"github.com/samber/lo"
)

// ResolvePaymentMethod picks the direct-debit payment method from the
// account's configured methods. Matching against the configured label is
// case-insensitive; an exact label match wins over a substring match. When
// nothing matches, the first enabled method is returned so collection is
// still configured somehow; nil means the account has no enabled methods at
// all, which the caller treats as "proceed without one".
func ResolvePaymentMethod(methods []PaymentMethod, label string) *PaymentMethod {
	enabled := lo.Filter(methods, func(m PaymentMethod, _ int) bool {
		return m.Enabled
	})
	if len(enabled) == 0 {
		return nil
	}

	want := strings.ToLower(strings.TrimSpace(label))
	if want != "" {
		if m, found := lo.Find(enabled, func(m PaymentMethod) bool {
			return strings.ToLower(strings.TrimSpace(m.Label)) == want
		}); found {
			return &m
		}

		if m, found := lo.Find(enabled, func(m PaymentMethod) bool {
			return strings.Contains(strings.ToLower(m.Label), want)
		}); found {
			return &m
		}
	}

	return &enabled[0]
}
