package store

import (
	"context"
	"sort"
	"sync"

	"staysync/internal/domains/offline/model"
)

type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]model.OfflineReservation
}

// NewMemoryStore returns an in-process Store used in tests and for running
// without Redis.
func NewMemoryStore() Store {
	return &memoryStore{
		entries: make(map[string]model.OfflineReservation),
	}
}

func (s *memoryStore) Get(_ context.Context, id string) (model.OfflineReservation, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, found := s.entries[id]

	return res, found, nil
}

func (s *memoryStore) Set(_ context.Context, res model.OfflineReservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[res.ID] = res

	return nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)

	return nil
}

func (s *memoryStore) List(_ context.Context) ([]model.OfflineReservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]model.OfflineReservation, 0, len(s.entries))
	for _, res := range s.entries {
		all = append(all, res)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	return all, nil
}
