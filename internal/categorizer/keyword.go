package categorizer

import (
	"context"
	"strings"

	"mwehrli/finview/internal/models"

	"github.com/sirupsen/logrus"
)

// KeywordStrategy categorizes by keyword patterns from the category
// configuration, with a built-in fallback table for common merchants.
type KeywordStrategy struct {
	categories []models.CategoryConfig
	store      MappingStore
	log        *logrus.Logger
}

// builtinPatterns maps merchant keywords to categories when the YAML
// configuration has no match. Ordered maps are not needed; first hit wins
// per map iteration is avoided by checking configured categories first.
var builtinPatterns = map[string]string{
	"COOP":       models.CategoryGroceries,
	"MIGROS":     models.CategoryGroceries,
	"ALDI":       models.CategoryGroceries,
	"LIDL":       models.CategoryGroceries,
	"DENNER":     models.CategoryGroceries,
	"RESTAURANT": models.CategoryRestaurants,
	"PIZZERIA":   models.CategoryRestaurants,
	"CAFE":       models.CategoryRestaurants,
	"SBB":        models.CategoryTransport,
	"CFF":        models.CategoryTransport,
	"TRANSFER":   models.CategoryTransfers,
	"VIREMENT":   models.CategoryTransfers,
	"SALAIRE":    models.CategorySalary,
	"SALARY":     models.CategorySalary,
	"LOYER":      models.CategoryHousing,
	"RENT":       models.CategoryHousing,
	"ASSURANCE":  models.CategoryInsurance,
	"INSURANCE":  models.CategoryInsurance,
	"ATM":        models.CategoryWithdrawals,
	"RETRAIT":    models.CategoryWithdrawals,
	"WITHDRAWAL": models.CategoryWithdrawals,
	"FEE":        models.CategoryFees,
	"FRAIS":      models.CategoryFees,
}

// NewKeywordStrategy creates a KeywordStrategy and loads category keyword
// configuration from the store.
func NewKeywordStrategy(store MappingStore, logger *logrus.Logger) *KeywordStrategy {
	if logger == nil {
		logger = logrus.New()
	}
	s := &KeywordStrategy{
		store: store,
		log:   logger,
	}
	s.loadCategories()
	return s
}

// Name returns the name of this strategy for logging and debugging.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Categorize attempts to categorize a transaction using keyword matching
// against the party name and transaction info.
func (s *KeywordStrategy) Categorize(ctx context.Context, tx Transaction) (models.Category, bool, error) {
	if strings.TrimSpace(tx.PartyName) == "" && strings.TrimSpace(tx.Info) == "" {
		return models.Category{}, false, nil
	}

	partyName := strings.ToUpper(tx.PartyName)
	description := strings.ToUpper(tx.Info)

	// Configured categories take precedence over the builtin table.
	for _, categoryConfig := range s.categories {
		for _, keyword := range categoryConfig.Keywords {
			keywordUpper := strings.ToUpper(keyword)
			if strings.Contains(partyName, keywordUpper) || strings.Contains(description, keywordUpper) {
				s.log.WithFields(logrus.Fields{
					"strategy": s.Name(),
					"party":    tx.PartyName,
					"keyword":  keyword,
					"category": categoryConfig.Name,
				}).Debug("Transaction categorized using configured keyword")
				return models.Category{Name: categoryConfig.Name}, true, nil
			}
		}
	}

	for keyword, category := range builtinPatterns {
		if strings.Contains(partyName, keyword) || strings.Contains(description, keyword) {
			s.log.WithFields(logrus.Fields{
				"strategy": s.Name(),
				"party":    tx.PartyName,
				"keyword":  keyword,
				"category": category,
			}).Debug("Transaction categorized using builtin pattern")
			return models.Category{Name: category}, true, nil
		}
	}

	return models.Category{}, false, nil
}

// ReloadCategories reloads keyword configuration from the store.
func (s *KeywordStrategy) ReloadCategories() {
	s.loadCategories()
}

func (s *KeywordStrategy) loadCategories() {
	categories, err := s.store.LoadCategories()
	if err != nil {
		s.log.WithError(err).Warn("Failed to load categories for keyword matching")
		return
	}
	s.categories = categories
}
