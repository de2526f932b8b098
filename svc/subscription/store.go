package subscription

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Store is the external subscription store collaborator. Implementations
// must return ErrNotFound when the tenant has no record.
type Store interface {
	FetchSubscription(ctx context.Context, tenantID uuid.UUID) (*Record, error)
}

// MemStore is an in-memory Store for tests and single-tenant tooling.
type MemStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]Record
}

// NewMemStore returns a MemStore seeded with deep copies of the given records.
func NewMemStore(records ...Record) *MemStore {
	s := &MemStore{records: make(map[uuid.UUID]Record, len(records))}
	for _, rec := range records {
		s.records[rec.TenantID] = cloneRecord(rec)
	}
	return s
}

func (s *MemStore) FetchSubscription(ctx context.Context, tenantID uuid.UUID) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[tenantID]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneRecord(rec)
	return &out, nil
}

// Put inserts or replaces a record.
func (s *MemStore) Put(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.TenantID] = cloneRecord(rec)
}

// Remove deletes a tenant's record.
func (s *MemStore) Remove(tenantID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, tenantID)
}

// cloneRecord copies the record including its period-end pointer so callers
// cannot mutate stored state through the returned value.
func cloneRecord(rec Record) Record {
	if rec.CurrentPeriodEnd != nil {
		end := *rec.CurrentPeriodEnd
		rec.CurrentPeriodEnd = &end
	}
	return rec
}
