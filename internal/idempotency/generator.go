package idempotency

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Scope represents the scope of idempotency
type Scope string

const (
	// ScopeRecurringInvoice covers one invoice per service per billing period.
	// A crashed run that is re-executed in the same period regenerates the
	// same key, so the remote system can reject the duplicate.
	ScopeRecurringInvoice Scope = "recurring_invoice"
)

// Generator generates idempotency keys
type Generator struct{}

// NewGenerator creates a new idempotency key generator
func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateKey generates an idempotency key from a scope and parameters
func (g *Generator) GenerateKey(scope Scope, params map[string]interface{}) string {
	// Sort params for consistent hashing
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(string(scope))
	for _, k := range keys {
		b.WriteString(fmt.Sprintf(":%s=%v", k, params[k]))
	}

	hash := sha256.Sum256([]byte(b.String()))
	return fmt.Sprintf("%s-%s", scope, hex.EncodeToString(hash[:8]))
}

// RecurringInvoiceKey derives the idempotency key for billing one service in
// one monthly period.
func (g *Generator) RecurringInvoiceKey(serviceID, periodKey string) string {
	return g.GenerateKey(ScopeRecurringInvoice, map[string]interface{}{
		"service_id": serviceID,
		"period":     periodKey,
	})
}
