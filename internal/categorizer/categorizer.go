package categorizer

import (
	"context"

	"mwehrli/finview/internal/models"

	"github.com/sirupsen/logrus"
)

// Categorizer runs the strategy chain and optionally learns the result.
type Categorizer struct {
	direct     *DirectMappingStrategy
	strategies []Strategy
	autoLearn  bool
	fallback   string
	log        *logrus.Logger
}

// Options configures a Categorizer.
type Options struct {
	// AIClient enables the AI fallback strategy when non-nil.
	AIClient AIClient
	// AutoLearn records keyword/AI results as direct mappings.
	AutoLearn bool
	// FallbackCategory is used when no strategy matches. Defaults to
	// models.CategoryUncategorized.
	FallbackCategory string
}

// New creates a Categorizer with the standard chain: direct mapping, keyword
// matching, then the optional AI fallback.
func New(store MappingStore, logger *logrus.Logger, opts Options) *Categorizer {
	if logger == nil {
		logger = logrus.New()
	}
	if opts.FallbackCategory == "" {
		opts.FallbackCategory = models.CategoryUncategorized
	}

	direct := NewDirectMappingStrategy(store, logger)
	keyword := NewKeywordStrategy(store, logger)

	strategies := []Strategy{direct, keyword}
	if opts.AIClient != nil {
		categories, _ := store.LoadCategories()
		names := make([]string, 0, len(categories))
		for _, c := range categories {
			names = append(names, c.Name)
		}
		strategies = append(strategies, NewAIStrategy(opts.AIClient, names, 0, logger))
	}

	return &Categorizer{
		direct:     direct,
		strategies: strategies,
		autoLearn:  opts.AutoLearn,
		fallback:   opts.FallbackCategory,
		log:        logger,
	}
}

// Categorize runs the chain for one transaction. It never fails: when no
// strategy matches, the fallback category is returned.
func (c *Categorizer) Categorize(ctx context.Context, tx Transaction) models.Category {
	for _, strategy := range c.strategies {
		category, found, err := strategy.Categorize(ctx, tx)
		if err != nil {
			c.log.WithError(err).WithFields(logrus.Fields{
				"strategy": strategy.Name(),
				"party":    tx.PartyName,
			}).Warn("Categorization strategy failed, trying next")
			continue
		}
		if found {
			// Results from later strategies are learned so the next run
			// resolves the party without them.
			if c.autoLearn && strategy.Name() != c.direct.Name() {
				c.direct.Learn(tx, category.Name)
			}
			return category
		}
	}

	return models.Category{Name: c.fallback}
}

// CategorizeTransactions categorizes a batch in place, filling only the
// transactions that have no category yet.
func (c *Categorizer) CategorizeTransactions(ctx context.Context, transactions []models.Transaction) {
	for i := range transactions {
		if transactions[i].Category != "" {
			continue
		}
		tx := Transaction{
			PartyName: transactions[i].Party,
			IsDebtor:  transactions[i].IsDebit(),
			Amount:    transactions[i].Amount.String(),
			Date:      transactions[i].Date.Format("2006-01-02"),
			Info:      transactions[i].Description,
		}
		transactions[i].Category = c.Categorize(ctx, tx).Name
	}
}

// SaveMappings writes learned party mappings back to the store.
func (c *Categorizer) SaveMappings() error {
	return c.direct.Save()
}
