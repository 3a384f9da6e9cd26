package testutil

import (
	"context"

	domainService "github.com/flexprice/billrun/internal/domain/service"
	ierr "github.com/flexprice/billrun/internal/errors"
)

// InMemoryServiceStore implements service.Repository
type InMemoryServiceStore struct {
	*InMemoryStore[*domainService.Service]

	// GetErrs maps service ids to an error returned from Get/GetLatest, to
	// simulate per-record lookup failures.
	GetErrs map[string]error

	// UpdateErr, when set, is returned by UpdateOccurrences.
	UpdateErr error

	// UpdateCalls records every counter write in order.
	UpdateCalls []OccurrenceUpdate

	// Remaining holds the persisted remaining column per service id. The
	// domain model derives remaining rather than storing it, so the fake
	// keeps the written value here to mirror the two-field datastore update.
	Remaining map[string]int
}

// OccurrenceUpdate is one recorded counter write
type OccurrenceUpdate struct {
	ServiceID string
	Elapsed   int
	Remaining int
}

// NewInMemoryServiceStore creates a new in-memory service store
func NewInMemoryServiceStore() *InMemoryServiceStore {
	return &InMemoryServiceStore{
		InMemoryStore: NewInMemoryStore[*domainService.Service](),
		GetErrs:       make(map[string]error),
		Remaining:     make(map[string]int),
	}
}

func copyService(svc *domainService.Service) *domainService.Service {
	if svc == nil {
		return nil
	}
	out := *svc
	return &out
}

// Add inserts a service, panicking on duplicate ids; test fixtures only.
func (s *InMemoryServiceStore) Add(svc *domainService.Service) {
	if err := s.InMemoryStore.Create(context.Background(), svc.ID, copyService(svc)); err != nil {
		panic(err)
	}
}

func (s *InMemoryServiceStore) Get(ctx context.Context, id string) (*domainService.Service, error) {
	if err := s.GetErrs[id]; err != nil {
		return nil, err
	}

	svc, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Service %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyService(svc), nil
}

func (s *InMemoryServiceStore) GetLatest(ctx context.Context, id string) (*domainService.Service, error) {
	return s.Get(ctx, id)
}

func (s *InMemoryServiceStore) UpdateOccurrences(ctx context.Context, id string, elapsed, remaining int) error {
	if s.UpdateErr != nil {
		return s.UpdateErr
	}

	svc, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return ierr.WithError(err).
			WithHintf("Service %s not found", id).
			Mark(ierr.ErrNotFound)
	}

	updated := copyService(svc)
	updated.ElapsedMonths = elapsed
	if err := s.InMemoryStore.Update(ctx, id, updated); err != nil {
		return err
	}
	s.Remaining[id] = remaining

	s.UpdateCalls = append(s.UpdateCalls, OccurrenceUpdate{
		ServiceID: id,
		Elapsed:   elapsed,
		Remaining: remaining,
	})
	return nil
}
