package store

import (
	"fjacquet/budget-ledger/internal/models"
)

// MemoryStore is an in-memory persistence collaborator used in tests and
// by callers that want a ledger without a backing file.
type MemoryStore struct {
	Snapshot []models.RawEntry
	Saves    int
	LoadErr  error
	SaveErr  error
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the current snapshot.
func (m *MemoryStore) Load() ([]models.RawEntry, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Snapshot, nil
}

// Save replaces the current snapshot.
func (m *MemoryStore) Save(entries []models.RawEntry) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Snapshot = entries
	m.Saves++
	return nil
}
