package airtable

import (
	"context"
	"time"

	"github.com/flexprice/billrun/internal/airtable"
	"github.com/flexprice/billrun/internal/cache"
	domainService "github.com/flexprice/billrun/internal/domain/service"
	"github.com/flexprice/billrun/internal/logger"
)

// serviceCacheTTL keeps point reads cheap while a run walks subscriptions
// that share services. Counter updates always bypass and then invalidate it.
const serviceCacheTTL = 2 * time.Minute

type serviceRepository struct {
	client airtable.Client
	table  string
	cache  cache.Cache
	logger *logger.Logger
}

// NewServiceRepository builds a service.Repository backed by a datastore
// table with a short-lived read cache.
func NewServiceRepository(client airtable.Client, table string, c cache.Cache, logger *logger.Logger) domainService.Repository {
	return &serviceRepository{
		client: client,
		table:  table,
		cache:  c,
		logger: logger,
	}
}

func (r *serviceRepository) Get(ctx context.Context, id string) (*domainService.Service, error) {
	if cached, found := r.cache.Get(ctx, cache.ServiceKey(id)); found {
		if svc, ok := cached.(*domainService.Service); ok {
			return svc, nil
		}
	}

	svc, err := r.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	r.cache.Set(ctx, cache.ServiceKey(id), svc, serviceCacheTTL)
	return svc, nil
}

func (r *serviceRepository) GetLatest(ctx context.Context, id string) (*domainService.Service, error) {
	svc, err := r.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	r.cache.Set(ctx, cache.ServiceKey(id), svc, serviceCacheTTL)
	return svc, nil
}

func (r *serviceRepository) UpdateOccurrences(ctx context.Context, id string, elapsed, remaining int) error {
	// Both counters go out in one PATCH so the datastore applies them
	// atomically.
	_, err := r.client.UpdateRecord(ctx, r.table, id, map[string]interface{}{
		domainService.FieldElapsedMonths: elapsed,
		domainService.FieldRemaining:     remaining,
	})
	if err != nil {
		return err
	}

	r.cache.Delete(ctx, cache.ServiceKey(id))
	r.logger.Debugw("updated occurrence counters",
		"service_id", id,
		"elapsed_months", elapsed,
		"remaining_occurrences", remaining,
	)
	return nil
}

func (r *serviceRepository) fetch(ctx context.Context, id string) (*domainService.Service, error) {
	rec, err := r.client.GetRecord(ctx, r.table, id)
	if err != nil {
		return nil, err
	}
	return domainService.FromRecord(rec.ID, rec.Fields), nil
}
