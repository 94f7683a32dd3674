package categorizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mwehrli/finview/internal/models"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// AIClient abstracts the generative model used as the last-resort
// categorization fallback.
type AIClient interface {
	SuggestCategory(ctx context.Context, tx Transaction, categories []string) (string, error)
}

// GeminiClient implements AIClient against the Google Gemini API.
type GeminiClient struct {
	model *genai.GenerativeModel
	log   *logrus.Logger
}

// NewGeminiClient creates a Gemini-backed AI client.
func NewGeminiClient(ctx context.Context, apiKey, modelName string, logger *logrus.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	if logger == nil {
		logger = logrus.New()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		model: client.GenerativeModel(modelName),
		log:   logger,
	}, nil
}

// SuggestCategory asks the model for the best matching category name.
func (c *GeminiClient) SuggestCategory(ctx context.Context, tx Transaction, categories []string) (string, error) {
	prompt := fmt.Sprintf(
		"Categorize this financial transaction into exactly one of the following categories: %s.\n"+
			"Party: %s\nAmount: %s\nDate: %s\nDetails: %s\n"+
			"Answer with the category name only.",
		strings.Join(categories, ", "), tx.PartyName, tx.Amount, tx.Date, tx.Info)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			return strings.TrimSpace(string(text)), nil
		}
	}
	return "", fmt.Errorf("gemini returned no text part")
}

// AIStrategy uses an AIClient as the final fallback in the chain.
type AIStrategy struct {
	client     AIClient
	categories []string
	timeout    time.Duration
	log        *logrus.Logger
}

// NewAIStrategy creates an AIStrategy. A nil client disables the strategy.
func NewAIStrategy(client AIClient, categories []string, timeout time.Duration, logger *logrus.Logger) *AIStrategy {
	if logger == nil {
		logger = logrus.New()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &AIStrategy{
		client:     client,
		categories: categories,
		timeout:    timeout,
		log:        logger,
	}
}

// Name returns the name of this strategy for logging and debugging.
func (s *AIStrategy) Name() string {
	return "AI"
}

// Categorize asks the AI client for a category. Failures are reported as
// not-found so the chain can fall through to the default category.
func (s *AIStrategy) Categorize(ctx context.Context, tx Transaction) (models.Category, bool, error) {
	if s.client == nil {
		return models.Category{}, false, nil
	}
	if strings.TrimSpace(tx.PartyName) == "" {
		return models.Category{}, false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	suggestion, err := s.client.SuggestCategory(ctx, tx, s.categories)
	if err != nil {
		s.log.WithError(err).WithField("party", tx.PartyName).Warn("AI categorization failed")
		return models.Category{}, false, nil
	}

	suggestion = strings.TrimSpace(suggestion)
	if suggestion == "" || suggestion == models.CategoryUncategorized {
		return models.Category{}, false, nil
	}

	s.log.WithFields(logrus.Fields{
		"strategy": s.Name(),
		"party":    tx.PartyName,
		"category": suggestion,
	}).Debug("Transaction categorized by AI")
	return models.Category{Name: suggestion}, true, nil
}
