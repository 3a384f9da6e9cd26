package idempotency

import (
	"strings"
	"testing"
)

func TestRecurringInvoiceKey(t *testing.T) {
	g := NewGenerator()

	key1 := g.RecurringInvoiceKey("recSvc1", "2026-08")
	key2 := g.RecurringInvoiceKey("recSvc1", "2026-08")
	if key1 != key2 {
		t.Errorf("same service and period produced different keys: %q vs %q", key1, key2)
	}

	if !strings.HasPrefix(key1, string(ScopeRecurringInvoice)) {
		t.Errorf("key %q missing scope prefix", key1)
	}

	nextPeriod := g.RecurringInvoiceKey("recSvc1", "2026-09")
	if nextPeriod == key1 {
		t.Error("different periods must produce different keys")
	}

	otherService := g.RecurringInvoiceKey("recSvc2", "2026-08")
	if otherService == key1 {
		t.Error("different services must produce different keys")
	}
}
