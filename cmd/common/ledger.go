// Package common provides shared helpers for the CLI commands.
package common

import (
	"github.com/sirupsen/logrus"

	"fjacquet/budget-ledger/internal/config"
	"fjacquet/budget-ledger/internal/ledger"
	"fjacquet/budget-ledger/internal/models"
	"fjacquet/budget-ledger/internal/store"
)

// OpenLedger builds the category schema, wires the file-backed blob store
// from configuration and loads the persisted snapshot. Records dropped
// during repair are logged, never fatal.
func OpenLedger(log *logrus.Logger) (*ledger.Ledger, error) {
	cfg := config.GetConfig()

	ledgerStore := store.NewLedgerStore(cfg.Data.Directory, cfg.Data.LedgerFile, cfg.Data.CategoriesFile)

	schema := models.DefaultSchema()
	overlay, err := ledgerStore.LoadCategories()
	if err != nil {
		log.WithError(err).Warn("Ignoring unreadable categories file")
	} else if len(overlay) > 0 {
		schema = schema.Extend(overlay)
		log.WithField("count", len(overlay)).Debug("Applied category schema overlay")
	}

	l := ledger.New(schema, ledgerStore)
	dropped, err := l.Load()
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		log.WithField("dropped", dropped).Warn("Dropped unusable records while loading the ledger")
	}
	log.WithField("entries", l.Len()).Debug("Ledger loaded")
	return l, nil
}
