package service

import (
	"context"
)

// Repository defines the interface for service record operations. Get and
// UpdateOccurrences are the only two touchpoints this job has with service
// records.
type Repository interface {
	// Get retrieves a service by its record id. Implementations may serve
	// this from a short-lived cache.
	Get(ctx context.Context, id string) (*Service, error)

	// GetLatest retrieves a service by its record id, bypassing any cache.
	// Counter updates are computed from this read so concurrent hand edits
	// in the datastore are not overwritten from stale memory.
	GetLatest(ctx context.Context, id string) (*Service, error)

	// UpdateOccurrences writes the elapsed and remaining counters back as a
	// single partial update of the two fields.
	UpdateOccurrences(ctx context.Context, id string, elapsed, remaining int) error
}

// NextOccurrenceCounters returns the counter values to persist after one
// successful invoice: elapsed advances by one and remaining is recomputed
// from total, clamped at zero.
func NextOccurrenceCounters(s *Service) (elapsed, remaining int) {
	elapsed = s.ElapsedMonths + 1
	remaining = s.TotalOccurrences - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return elapsed, remaining
}
