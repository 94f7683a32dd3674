package categorizer

import (
	"context"
	"strings"
	"sync"

	"mwehrli/finview/internal/models"

	"github.com/sirupsen/logrus"
)

// DirectMappingStrategy categorizes by exact party-name lookups in the
// learned creditor and debitor mapping databases.
type DirectMappingStrategy struct {
	creditorMappings map[string]string
	debitorMappings  map[string]string
	store            MappingStore
	log              *logrus.Logger
	mu               sync.RWMutex
	dirty            bool
}

// NewDirectMappingStrategy creates a DirectMappingStrategy and loads its
// mappings from the store.
func NewDirectMappingStrategy(store MappingStore, logger *logrus.Logger) *DirectMappingStrategy {
	if logger == nil {
		logger = logrus.New()
	}
	s := &DirectMappingStrategy{
		creditorMappings: make(map[string]string),
		debitorMappings:  make(map[string]string),
		store:            store,
		log:              logger,
	}
	s.loadMappings()
	return s
}

// Name returns the name of this strategy for logging and debugging.
func (s *DirectMappingStrategy) Name() string {
	return "DirectMapping"
}

// Categorize attempts to categorize a transaction using direct name mapping.
func (s *DirectMappingStrategy) Categorize(ctx context.Context, tx Transaction) (models.Category, bool, error) {
	party := normalizeParty(tx.PartyName)
	if party == "" {
		return models.Category{}, false, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	mappings := s.creditorMappings
	if tx.IsDebtor {
		mappings = s.debitorMappings
	}

	if category, ok := mappings[party]; ok {
		s.log.WithFields(logrus.Fields{
			"strategy": s.Name(),
			"party":    tx.PartyName,
			"category": category,
		}).Debug("Transaction categorized from learned mapping")
		return models.Category{Name: category}, true, nil
	}

	return models.Category{}, false, nil
}

// Learn records a party-to-category mapping so later runs hit it directly.
func (s *DirectMappingStrategy) Learn(tx Transaction, category string) {
	party := normalizeParty(tx.PartyName)
	if party == "" || category == "" || category == models.CategoryUncategorized {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if tx.IsDebtor {
		s.debitorMappings[party] = category
	} else {
		s.creditorMappings[party] = category
	}
	s.dirty = true
}

// Save writes learned mappings back to the store when they changed.
func (s *DirectMappingStrategy) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}
	if err := s.store.SaveCreditorMappings(s.creditorMappings); err != nil {
		return err
	}
	if err := s.store.SaveDebitorMappings(s.debitorMappings); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

func (s *DirectMappingStrategy) loadMappings() {
	creditors, err := s.store.LoadCreditorMappings()
	if err != nil {
		s.log.WithError(err).Warn("Failed to load creditor mappings")
	} else {
		for name, category := range creditors {
			s.creditorMappings[normalizeParty(name)] = category
		}
	}

	debitors, err := s.store.LoadDebitorMappings()
	if err != nil {
		s.log.WithError(err).Warn("Failed to load debitor mappings")
	} else {
		for name, category := range debitors {
			s.debitorMappings[normalizeParty(name)] = category
		}
	}
}

// normalizeParty lowercases and trims a party name for lookup.
func normalizeParty(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
