package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"mwehrli/finview/internal/currency"
	"mwehrli/finview/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(date time.Time, amount, ccy, category string) models.Transaction {
	money, _ := models.NewMoneyFromString(amount, ccy)
	t := models.NewTransaction("acct-1", date, money, "Party", "Description")
	t.Category = category
	return t
}

func chfGenerator() *Generator {
	rates := currency.NewRateTable("CHF")
	rates.SetRate("EUR", decimal.NewFromFloat(0.95))
	return NewGenerator(rates, nil)
}

func TestCashflowMonthlyBuckets(t *testing.T) {
	g := chfGenerator()

	transactions := []models.Transaction{
		tx(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), "-100", "CHF", models.CategoryGroceries),
		tx(time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), "5000", "CHF", models.CategorySalary),
		tx(time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), "-200", "CHF", models.CategoryGroceries),
	}

	report := g.Cashflow(transactions)

	require.Len(t, report.Months, 2)
	assert.Equal(t, "2026-01", report.Months[0].Month)
	assert.Equal(t, "4900.00", report.Months[0].Net.StringFixed(2))
	assert.Equal(t, "100.00", report.Months[0].Expenses.StringFixed(2))
	assert.Equal(t, "5000.00", report.Months[0].Income.StringFixed(2))
	assert.Equal(t, "2026-02", report.Months[1].Month)
	assert.Equal(t, "-200.00", report.Months[1].Net.StringFixed(2))

	assert.Equal(t, "4700.00", report.TotalNet.StringFixed(2))
	assert.Equal(t, "CHF", report.BaseCurrency)
	assert.NotEmpty(t, report.ReportID)
}

func TestCashflowConvertsToBase(t *testing.T) {
	g := chfGenerator()

	transactions := []models.Transaction{
		tx(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), "-100", "EUR", ""),
	}
	report := g.Cashflow(transactions)

	require.Len(t, report.Months, 1)
	assert.Equal(t, "95.00", report.Months[0].Expenses.StringFixed(2))

	// Empty category lands in the Uncategorized bucket.
	require.Len(t, report.Categories, 1)
	assert.Equal(t, models.CategoryUncategorized, report.Categories[0].Category)
}

func TestCashflowSkipsUnknownCurrency(t *testing.T) {
	g := chfGenerator()

	transactions := []models.Transaction{
		tx(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), "-100", "XXX", ""),
		tx(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "-50", "CHF", ""),
	}
	report := g.Cashflow(transactions)

	require.Len(t, report.Months, 1)
	assert.Equal(t, "50.00", report.Months[0].Expenses.StringFixed(2))
}

func TestProjectInterest(t *testing.T) {
	g := chfGenerator()

	savings := models.NewAccount("Savings", models.AccountKindSavings, "CHF", decimal.NewFromInt(150000))
	checking := models.NewAccount("Checking", models.AccountKindBank, "CHF", decimal.NewFromInt(2000))

	zones := map[string][]models.InterestZone{
		savings.ID: {
			{AccountID: savings.ID, FromAmount: decimal.Zero, ToAmount: decimal.NewFromInt(100000), InterestRate: decimal.NewFromInt(1)},
			{AccountID: savings.ID, FromAmount: decimal.NewFromInt(100000), ToAmount: decimal.Zero, InterestRate: decimal.NewFromInt(2)},
		},
	}

	projections, err := g.ProjectInterest(
		[]models.Account{savings, checking},
		func(id string) ([]models.InterestZone, error) { return zones[id], nil },
	)
	require.NoError(t, err)

	// Accounts without zones are left out.
	require.Len(t, projections, 1)
	assert.Equal(t, savings.ID, projections[0].AccountID)
	assert.Equal(t, "2000.00", projections[0].YearlyInterest.StringFixed(2))
	assert.Equal(t, "1.3333", projections[0].EffectiveRate.StringFixed(4))
}

func TestRenderFormats(t *testing.T) {
	g := chfGenerator()
	report := g.Cashflow([]models.Transaction{
		tx(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), "-100", "CHF", models.CategoryGroceries),
	})

	jsonOut, err := g.Render(report, "json")
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(jsonOut, &decoded))
	assert.Equal(t, "CHF", decoded["base_currency"])

	yamlOut, err := g.Render(report, "yaml")
	require.NoError(t, err)
	assert.Contains(t, string(yamlOut), "base_currency: CHF")

	csvOut, err := g.Render(report, "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(csvOut)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Month,Income,Expenses,Net", lines[0])
	assert.Equal(t, "2026-01,0.00,100.00,-100.00", lines[1])

	_, err = g.Render(report, "pdf")
	assert.Error(t, err)
}
