// Package storage persists application data (accounts, interest zones,
// categories, party mappings and exchange rates) as YAML files.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"mwehrli/finview/internal/config"
	"mwehrli/finview/internal/currency"
	"mwehrli/finview/internal/models"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Use the centralized logger from config package
var log = config.Logger

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Default file names inside the data directory.
const (
	AccountsFile   = "accounts.yaml"
	ZonesFile      = "zones.yaml"
	CategoriesFile = "categories.yaml"
	CreditorsFile  = "creditors.yaml"
	DebitorsFile   = "debitors.yaml"
	RatesFile      = "rates.yaml"
)

// Store loads and saves YAML-backed application data.
type Store struct {
	// DataDir overrides the standard file resolution when set.
	DataDir string
}

// NewStore creates a store rooted at the given data directory. An empty
// directory means files are resolved from the standard locations instead.
func NewStore(dataDir string) *Store {
	return &Store{DataDir: dataDir}
}

// FindConfigFile looks for a data file in standard locations
func (s *Store) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,                          // Current directory
		filepath.Join("config", filename), // ./config/ directory
		filepath.Join("data", filename),   // ./data/ directory
	}
	if s.DataDir != "" {
		locations = append([]string{filepath.Join(s.DataDir, filename)}, locations...)
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	// Fall back to the user config directory
	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "finview", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// savePath returns the path a file should be written to.
func (s *Store) savePath(filename string) string {
	if s.DataDir != "" {
		return filepath.Join(s.DataDir, filename)
	}
	if existing, err := s.FindConfigFile(filename); err == nil {
		return existing
	}
	return filename
}

// loadYAML reads and unmarshals a YAML file into out. A missing file is not
// an error; the caller gets the zero value.
func (s *Store) loadYAML(filename string, out interface{}) error {
	path, err := s.FindConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debugf("Data file not found, starting empty: %s", filename)
			return nil
		}
		return fmt.Errorf("error resolving %s: %w", filename, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("error parsing %s: %w", path, err)
	}
	return nil
}

// saveYAML marshals in to YAML and writes it, creating directories as needed.
func (s *Store) saveYAML(filename string, in interface{}) error {
	path := s.savePath(filename)

	data, err := yaml.Marshal(in)
	if err != nil {
		return fmt.Errorf("error marshaling %s: %w", filename, err)
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("error creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}

	log.WithField("file", path).Debug("Saved data file")
	return nil
}

// accountsDocument is the on-disk shape of the accounts file.
type accountsDocument struct {
	Accounts []models.Account `yaml:"accounts"`
}

// LoadAccounts loads all accounts. A missing file yields an empty slice.
func (s *Store) LoadAccounts() ([]models.Account, error) {
	var doc accountsDocument
	if err := s.loadYAML(AccountsFile, &doc); err != nil {
		return nil, err
	}
	return doc.Accounts, nil
}

// SaveAccounts persists all accounts.
func (s *Store) SaveAccounts(accounts []models.Account) error {
	return s.saveYAML(AccountsFile, accountsDocument{Accounts: accounts})
}

// zonesDocument is the on-disk shape of the interest zones file.
type zonesDocument struct {
	Zones []models.InterestZone `yaml:"zones"`
}

// LoadZones loads every interest zone. A missing file yields an empty slice.
func (s *Store) LoadZones() ([]models.InterestZone, error) {
	var doc zonesDocument
	if err := s.loadYAML(ZonesFile, &doc); err != nil {
		return nil, err
	}
	return doc.Zones, nil
}

// LoadZonesForAccount loads the interest zones owned by one account.
func (s *Store) LoadZonesForAccount(accountID string) ([]models.InterestZone, error) {
	all, err := s.LoadZones()
	if err != nil {
		return nil, err
	}
	var zones []models.InterestZone
	for _, z := range all {
		if z.AccountID == accountID {
			zones = append(zones, z)
		}
	}
	return zones, nil
}

// SaveZones persists every interest zone.
func (s *Store) SaveZones(zones []models.InterestZone) error {
	return s.saveYAML(ZonesFile, zonesDocument{Zones: zones})
}

// LoadCategories loads category configurations from the YAML file.
func (s *Store) LoadCategories() ([]models.CategoryConfig, error) {
	var doc models.CategoriesConfig
	if err := s.loadYAML(CategoriesFile, &doc); err != nil {
		return nil, err
	}
	return doc.Categories, nil
}

// SaveCategories persists category configurations.
func (s *Store) SaveCategories(categories []models.CategoryConfig) error {
	return s.saveYAML(CategoriesFile, models.CategoriesConfig{Categories: categories})
}

// LoadCreditorMappings loads the creditor-name-to-category map.
func (s *Store) LoadCreditorMappings() (map[string]string, error) {
	var doc models.CreditorsConfig
	if err := s.loadYAML(CreditorsFile, &doc); err != nil {
		return nil, err
	}
	if doc.Creditors == nil {
		doc.Creditors = make(map[string]string)
	}
	return doc.Creditors, nil
}

// SaveCreditorMappings persists the creditor-name-to-category map.
func (s *Store) SaveCreditorMappings(mappings map[string]string) error {
	return s.saveYAML(CreditorsFile, models.CreditorsConfig{Creditors: mappings})
}

// LoadDebitorMappings loads the debitor-name-to-category map.
func (s *Store) LoadDebitorMappings() (map[string]string, error) {
	var doc models.DebitorsConfig
	if err := s.loadYAML(DebitorsFile, &doc); err != nil {
		return nil, err
	}
	if doc.Debitors == nil {
		doc.Debitors = make(map[string]string)
	}
	return doc.Debitors, nil
}

// SaveDebitorMappings persists the debitor-name-to-category map.
func (s *Store) SaveDebitorMappings(mappings map[string]string) error {
	return s.saveYAML(DebitorsFile, models.DebitorsConfig{Debitors: mappings})
}

// LoadRates loads the exchange rate table. A missing file yields an empty
// table against the given base currency.
func (s *Store) LoadRates(base string) (*currency.RateTable, error) {
	table := currency.NewRateTable(base)
	if err := s.loadYAML(RatesFile, table); err != nil {
		return nil, err
	}
	if table.Base == "" {
		table.Base = base
	}
	return table, nil
}

// SaveRates persists the exchange rate table.
func (s *Store) SaveRates(table *currency.RateTable) error {
	return s.saveYAML(RatesFile, table)
}
