// Package report builds cashflow summaries and savings interest projections
// for display and export.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"mwehrli/finview/internal/currency"
	"mwehrli/finview/internal/dateutils"
	"mwehrli/finview/internal/interest"
	"mwehrli/finview/internal/logging"
	"mwehrli/finview/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// MonthCashflow is the income/expense breakdown for one calendar month.
type MonthCashflow struct {
	Month    string          `json:"month" yaml:"month"`
	Income   decimal.Decimal `json:"income" yaml:"income"`
	Expenses decimal.Decimal `json:"expenses" yaml:"expenses"`
	Net      decimal.Decimal `json:"net" yaml:"net"`
}

// CategoryTotal is the aggregated spend or income for one category.
type CategoryTotal struct {
	Category string          `json:"category" yaml:"category"`
	Total    decimal.Decimal `json:"total" yaml:"total"`
}

// CashflowReport summarizes a transaction set in a single base currency.
type CashflowReport struct {
	ReportID     string          `json:"report_id" yaml:"report_id"`
	GeneratedAt  time.Time       `json:"generated_at" yaml:"generated_at"`
	BaseCurrency string          `json:"base_currency" yaml:"base_currency"`
	Months       []MonthCashflow `json:"months" yaml:"months"`
	Categories   []CategoryTotal `json:"categories" yaml:"categories"`
	TotalNet     decimal.Decimal `json:"total_net" yaml:"total_net"`
}

// InterestProjection is the projected yearly interest for one savings account.
type InterestProjection struct {
	AccountID      string          `json:"account_id" yaml:"account_id"`
	AccountName    string          `json:"account_name" yaml:"account_name"`
	Currency       string          `json:"currency" yaml:"currency"`
	Balance        decimal.Decimal `json:"balance" yaml:"balance"`
	YearlyInterest decimal.Decimal `json:"yearly_interest" yaml:"yearly_interest"`
	EffectiveRate  decimal.Decimal `json:"effective_rate" yaml:"effective_rate"`
}

// Generator builds and renders reports.
type Generator struct {
	rates *currency.RateTable
	log   *logrus.Logger
}

// NewGenerator creates a Generator converting through the given rate table.
func NewGenerator(rates *currency.RateTable, logger *logrus.Logger) *Generator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Generator{
		rates: rates,
		log:   logger,
	}
}

// Cashflow aggregates transactions into monthly and per-category totals,
// converted into the rate table's base currency. Transactions in a currency
// without a known rate are skipped with a warning.
func (g *Generator) Cashflow(transactions []models.Transaction) *CashflowReport {
	report := &CashflowReport{
		ReportID:     uuid.New().String(),
		GeneratedAt:  time.Now(),
		BaseCurrency: g.rates.Base,
	}

	monthly := make(map[string]*MonthCashflow)
	byCategory := make(map[string]decimal.Decimal)

	for _, tx := range transactions {
		amount, err := g.rates.ToBase(tx.Amount.Amount, tx.Amount.Currency)
		if err != nil {
			g.log.WithError(err).WithFields(logrus.Fields{
				"transaction": tx.ID,
				"currency":    tx.Amount.Currency,
			}).Warn("Skipping transaction without exchange rate")
			continue
		}

		key := dateutils.MonthKey(tx.Date)
		bucket, ok := monthly[key]
		if !ok {
			bucket = &MonthCashflow{Month: key}
			monthly[key] = bucket
		}
		if amount.IsPositive() {
			bucket.Income = bucket.Income.Add(amount)
		} else {
			bucket.Expenses = bucket.Expenses.Add(amount.Abs())
		}
		bucket.Net = bucket.Net.Add(amount)
		report.TotalNet = report.TotalNet.Add(amount)

		category := tx.Category
		if category == "" {
			category = models.CategoryUncategorized
		}
		byCategory[category] = byCategory[category].Add(amount)
	}

	for _, key := range sortedKeys(monthly) {
		report.Months = append(report.Months, *monthly[key])
	}
	for _, name := range sortedCategoryKeys(byCategory) {
		report.Categories = append(report.Categories, CategoryTotal{Category: name, Total: byCategory[name]})
	}
	return report
}

// ProjectInterest computes the yearly interest and effective blended rate for
// every account that has interest zones configured.
func (g *Generator) ProjectInterest(accounts []models.Account, zonesFor func(accountID string) ([]models.InterestZone, error)) ([]InterestProjection, error) {
	var projections []InterestProjection
	for _, account := range accounts {
		zones, err := zonesFor(account.ID)
		if err != nil {
			return nil, fmt.Errorf("fetching zones for account %s: %w", account.ID, err)
		}
		if len(zones) == 0 {
			continue
		}
		projections = append(projections, InterestProjection{
			AccountID:      account.ID,
			AccountName:    account.Name,
			Currency:       account.Currency,
			Balance:        account.Balance,
			YearlyInterest: interest.ComputeYearlyInterest(account.Balance, zones),
			EffectiveRate:  interest.EffectiveRate(account.Balance, zones),
		})
	}
	return projections, nil
}

// Render serializes a report value as json, yaml or csv.
func (g *Generator) Render(report *CashflowReport, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
		}
		return out, nil
	case "yaml":
		out, err := yaml.Marshal(report)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
		}
		return out, nil
	case "csv":
		return g.renderCSV(report)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *Generator) renderCSV(report *CashflowReport) ([]byte, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	if err := writer.Write([]string{"Month", "Income", "Expenses", "Net"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV report: %w", err)
	}
	for _, month := range report.Months {
		record := []string{
			month.Month,
			month.Income.StringFixed(2),
			month.Expenses.StringFixed(2),
			month.Net.StringFixed(2),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV report: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to write CSV report: %w", err)
	}
	return []byte(sb.String()), nil
}

func sortedKeys(m map[string]*MonthCashflow) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedCategoryKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
