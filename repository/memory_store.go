package repository

import (
	"context"
	"sync"

	"bookie/models"
)

// MemoryStore keeps snapshots in process. Used for tests and throwaway runs.
type MemoryStore struct {
	mu       sync.Mutex
	snapshot *models.Snapshot
	saveErr  error
	saves    int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWith seeds the store with a snapshot
func NewMemoryStoreWith(snapshot *models.Snapshot) *MemoryStore {
	return &MemoryStore{snapshot: snapshot.Clone()}
}

func (s *MemoryStore) Load(ctx context.Context) (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return models.NewSnapshot(), nil
	}
	return s.snapshot.Clone(), nil
}

func (s *MemoryStore) Save(ctx context.Context, snapshot *models.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.snapshot = snapshot.Clone()
	s.saves++
	return nil
}

// FailSaves makes every following Save return err. Pass nil to recover.
func (s *MemoryStore) FailSaves(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

// Saves returns the number of successful saves
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *MemoryStore) Close() error {
	return nil
}
