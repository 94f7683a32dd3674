// Package categorizer assigns categories to transactions using a chain of
// strategies: learned party mappings first, keyword matching second, and an
// optional AI fallback last.
package categorizer

import (
	"context"

	"mwehrli/finview/internal/models"
)

// Transaction carries the fields a strategy needs to categorize a movement.
type Transaction struct {
	PartyName string
	IsDebtor  bool
	Amount    string
	Date      string
	Info      string
}

// Strategy is a single categorization method. Implementations report whether
// they produced a category; returning found=false is not an error.
type Strategy interface {
	// Name returns the strategy name for logging and debugging.
	Name() string

	// Categorize attempts to categorize a transaction.
	Categorize(ctx context.Context, tx Transaction) (models.Category, bool, error)
}

// MappingStore is the persistence surface the categorizer needs.
type MappingStore interface {
	LoadCategories() ([]models.CategoryConfig, error)
	LoadCreditorMappings() (map[string]string, error)
	LoadDebitorMappings() (map[string]string, error)
	SaveCreditorMappings(map[string]string) error
	SaveDebitorMappings(map[string]string) error
}
