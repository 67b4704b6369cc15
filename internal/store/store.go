// Package store provides the file-backed persistence collaborator for the
// budget ledger: the full ledger snapshot is loaded and saved wholesale as
// a YAML blob, and an optional categories file overlays the built-in schema.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"fjacquet/budget-ledger/internal/config"
	"fjacquet/budget-ledger/internal/models"
)

// Use the centralized logger from config package
var log = config.Logger

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// LedgerStore persists the ledger snapshot as a single YAML file.
type LedgerStore struct {
	DataDir        string
	LedgerFile     string
	CategoriesFile string
}

// ledgerFile is the on-disk shape of a ledger snapshot.
type ledgerFile struct {
	Entries []models.RawEntry `yaml:"entries"`
}

// NewLedgerStore creates a store for ledger data
func NewLedgerStore(dataDir, ledgerFile, categoriesFile string) *LedgerStore {
	if dataDir == "" {
		dataDir = "data"
	}
	return &LedgerStore{
		DataDir:        dataDir,
		LedgerFile:     ledgerFile,
		CategoriesFile: categoriesFile,
	}
}

// FindConfigFile looks for a data file in standard locations
func (s *LedgerStore) FindConfigFile(filename string) (string, error) {
	// Check if it's an absolute path
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	// Common locations to check for data files
	locations := []string{
		filename,                           // Current directory
		filepath.Join(s.DataDir, filename), // Configured data directory
		filepath.Join("config", filename),  // ./config/ directory
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	// If still not found, check in user's home directory under .config/budget-ledger/
	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "budget-ledger", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// Load reads the persisted ledger snapshot. A missing file is not an
// error: a fresh installation simply starts with an empty ledger.
func (s *LedgerStore) Load() ([]models.RawEntry, error) {
	filename := s.LedgerFile
	if filename == "" {
		filename = "ledger.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) || err == os.ErrNotExist {
			log.Warnf("Ledger file not found: %s", filename)
			return []models.RawEntry{}, nil
		}
		return nil, fmt.Errorf("error resolving ledger file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading ledger file: %w", err)
	}

	// Preferred shape: "entries: [...]" under a top-level key
	var snapshot ledgerFile
	if err := yaml.Unmarshal(data, &snapshot); err == nil && len(snapshot.Entries) > 0 {
		log.Debugf("Loaded %d ledger entries from %s", len(snapshot.Entries), filePath)
		return snapshot.Entries, nil
	}

	// Fallback: a direct array written by an earlier version
	var entries []models.RawEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("error parsing ledger file: %w", err)
	}
	log.Debugf("Loaded %d ledger entries from %s using direct array", len(entries), filePath)
	return entries, nil
}

// Save writes the full ledger snapshot, creating the parent directory if needed.
func (s *LedgerStore) Save(entries []models.RawEntry) error {
	filename := s.LedgerFile
	if filename == "" {
		filename = "ledger.yaml"
	}

	// Find the existing file or use standard locations
	filePath, err := s.FindConfigFile(filename)
	if err != nil && err != os.ErrNotExist {
		return fmt.Errorf("error resolving ledger file: %w", err)
	}

	// If file not found, use the configured data directory by default
	if err == os.ErrNotExist {
		if !filepath.IsAbs(filename) {
			filePath = filepath.Join(s.DataDir, filename)
		} else {
			filePath = filename
		}
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(ledgerFile{Entries: entries})
	if err != nil {
		return fmt.Errorf("error marshaling ledger: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing ledger file: %w", err)
	}

	log.Debugf("Saved %d ledger entries to %s", len(entries), filePath)
	return nil
}

// LoadCategories loads the category schema overlay from the YAML file.
// A missing file yields an empty overlay, not an error.
func (s *LedgerStore) LoadCategories() ([]models.CategoryConfig, error) {
	filename := s.CategoriesFile
	if filename == "" {
		filename = "categories.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) || err == os.ErrNotExist {
			log.Debugf("Categories file not found: %s", filename)
			return []models.CategoryConfig{}, nil
		}
		return nil, fmt.Errorf("error resolving categories file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	var categoriesConfig models.CategoriesConfig
	if err := yaml.Unmarshal(data, &categoriesConfig); err == nil && len(categoriesConfig.Categories) > 0 {
		log.Debugf("Loaded %d categories from %s", len(categoriesConfig.Categories), filePath)
		return categoriesConfig.Categories, nil
	}

	// Fallback: a direct array without the top-level key
	var categories []models.CategoryConfig
	if err := yaml.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("error parsing categories file: %w", err)
	}
	log.Debugf("Loaded %d categories from %s using direct array", len(categories), filePath)
	return categories, nil
}
