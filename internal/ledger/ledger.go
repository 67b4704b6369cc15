// Package ledger holds the ordered-by-month collection of budget entries,
// keyed uniquely by month key, with replace-on-same-key upsert semantics.
package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"fjacquet/budget-ledger/internal/config"
	"fjacquet/budget-ledger/internal/dateutils"
	"fjacquet/budget-ledger/internal/models"
	"fjacquet/budget-ledger/internal/normalize"
)

var log = config.Logger

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// BlobStore is the persistence collaborator: it hands the ledger a list of
// raw records at load time and receives the full serialized snapshot after
// every mutation. Injected rather than ambient so the ledger is testable
// without any storage backend.
type BlobStore interface {
	Load() ([]models.RawEntry, error)
	Save([]models.RawEntry) error
}

// Ledger is the unique-by-month collection of budget entries for one
// household. It is owned by a single session; no locking is needed.
type Ledger struct {
	schema  models.Schema
	store   BlobStore
	entries map[string]models.BudgetEntry
}

// New creates an empty ledger. The store may be nil for a purely
// in-memory ledger.
func New(schema models.Schema, store BlobStore) *Ledger {
	return &Ledger{
		schema:  schema,
		store:   store,
		entries: make(map[string]models.BudgetEntry),
	}
}

// Schema returns the category schema the ledger was built with.
func (l *Ledger) Schema() models.Schema {
	return l.schema
}

// Len returns the number of stored entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Upsert stores an entry, fully replacing any existing entry with the same
// month key, then persists the snapshot. It returns the updated snapshot
// in chronological order.
func (l *Ledger) Upsert(entry models.BudgetEntry) ([]models.BudgetEntry, error) {
	if _, exists := l.entries[entry.MonthKey]; exists {
		log.WithField("monthKey", entry.MonthKey).Debug("Replacing existing ledger entry")
	}
	l.entries[entry.MonthKey] = entry.Clone()

	if err := l.persist(); err != nil {
		return l.OrderedByDate(), fmt.Errorf("error persisting ledger after upsert: %w", err)
	}
	return l.OrderedByDate(), nil
}

// DeleteByKey removes the entry for a month key. Deleting a key that is
// not present is a no-op, not an error.
func (l *Ledger) DeleteByKey(monthKey string) error {
	if _, exists := l.entries[monthKey]; !exists {
		log.WithField("monthKey", monthKey).Debug("Delete of unknown month key ignored")
		return nil
	}
	delete(l.entries, monthKey)

	if err := l.persist(); err != nil {
		return fmt.Errorf("error persisting ledger after delete: %w", err)
	}
	return nil
}

// GetByKey looks up the entry for a month key.
func (l *Ledger) GetByKey(monthKey string) (models.BudgetEntry, bool) {
	entry, ok := l.entries[monthKey]
	if !ok {
		return models.BudgetEntry{}, false
	}
	return entry.Clone(), true
}

// OrderedByDate returns all entries sorted ascending by the calendar month
// their key encodes. Keys that fail to parse sort first, by raw key.
func (l *Ledger) OrderedByDate() []models.BudgetEntry {
	out := make([]models.BudgetEntry, 0, len(l.entries))
	for _, entry := range l.entries {
		out = append(out, entry.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		di := entryDate(out[i])
		dj := entryDate(out[j])
		if di.Equal(dj) {
			return out[i].MonthKey < out[j].MonthKey
		}
		return di.Before(dj)
	})
	return out
}

// Load reads the persisted snapshot from the blob store and sanitizes it
// through LoadAll. Used once at session start.
func (l *Ledger) Load() (dropped int, err error) {
	if l.store == nil {
		return 0, nil
	}
	raws, err := l.store.Load()
	if err != nil {
		return 0, fmt.Errorf("error loading ledger snapshot: %w", err)
	}
	return l.LoadAll(raws), nil
}

// LoadAll repairs every raw record and upserts the survivors. Records
// rejected for a missing identity are dropped, never fatal: persisted data
// corrupted by a prior schema version must not block the user. The number
// of dropped records is returned for diagnostics.
func (l *Ledger) LoadAll(raws []models.RawEntry) (dropped int) {
	for _, raw := range raws {
		entry, err := normalize.Repair(l.schema, raw)
		if err != nil {
			log.WithError(err).WithField("monthKey", raw.MonthKey).Warn("Dropping unusable ledger record")
			dropped++
			continue
		}
		l.entries[entry.MonthKey] = entry
	}
	if dropped > 0 {
		log.WithFields(logrus.Fields{
			"loaded":  len(l.entries),
			"dropped": dropped,
		}).Warn("Some persisted ledger records could not be repaired")
	}
	return dropped
}

// persist writes the full snapshot to the blob store.
func (l *Ledger) persist() error {
	if l.store == nil {
		return nil
	}
	entries := l.OrderedByDate()
	raws := make([]models.RawEntry, 0, len(entries))
	for _, entry := range entries {
		raws = append(raws, entry.Raw())
	}
	return l.store.Save(raws)
}

func entryDate(entry models.BudgetEntry) time.Time {
	date, err := dateutils.ParseMonthKey(entry.MonthKey)
	if err != nil {
		return time.Time{}
	}
	return date
}
