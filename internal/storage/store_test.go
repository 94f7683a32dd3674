package storage

import (
	"os"
	"path/filepath"
	"testing"

	"mwehrli/finview/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAccountsMissingFile(t *testing.T) {
	store := NewStore(t.TempDir())

	accounts, err := store.LoadAccounts()
	assert.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestSaveAndLoadAccounts(t *testing.T) {
	store := NewStore(t.TempDir())

	account := models.NewAccount("Savings", models.AccountKindSavings, "CHF", decimal.NewFromInt(150000))
	require.NoError(t, store.SaveAccounts([]models.Account{account}))

	loaded, err := store.LoadAccounts()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, account.ID, loaded[0].ID)
	assert.Equal(t, models.AccountKindSavings, loaded[0].Kind)
	assert.True(t, loaded[0].Balance.Equal(decimal.NewFromInt(150000)))
}

func TestSaveAndLoadZonesForAccount(t *testing.T) {
	store := NewStore(t.TempDir())

	zones := []models.InterestZone{
		{AccountID: "a1", FromAmount: decimal.Zero, ToAmount: decimal.NewFromInt(100000), InterestRate: decimal.NewFromInt(1)},
		{AccountID: "a1", FromAmount: decimal.NewFromInt(100000), ToAmount: decimal.Zero, InterestRate: decimal.NewFromInt(2)},
		{AccountID: "a2", FromAmount: decimal.Zero, ToAmount: decimal.Zero, InterestRate: decimal.NewFromFloat(0.5)},
	}
	require.NoError(t, store.SaveZones(zones))

	forA1, err := store.LoadZonesForAccount("a1")
	require.NoError(t, err)
	assert.Len(t, forA1, 2)

	forA2, err := store.LoadZonesForAccount("a2")
	require.NoError(t, err)
	require.Len(t, forA2, 1)
	assert.True(t, forA2[0].IsUnbounded())
}

func TestSaveAndLoadPartyMappings(t *testing.T) {
	store := NewStore(t.TempDir())

	require.NoError(t, store.SaveCreditorMappings(map[string]string{"migros": models.CategoryGroceries}))

	creditors, err := store.LoadCreditorMappings()
	require.NoError(t, err)
	assert.Equal(t, models.CategoryGroceries, creditors["migros"])

	// Missing debitors file yields an empty, non-nil map.
	debitors, err := store.LoadDebitorMappings()
	require.NoError(t, err)
	assert.NotNil(t, debitors)
	assert.Empty(t, debitors)
}

func TestLoadRates(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	// Missing file: empty table with the requested base.
	table, err := store.LoadRates("CHF")
	require.NoError(t, err)
	assert.Equal(t, "CHF", table.Base)

	table.SetRate("EUR", decimal.NewFromFloat(0.95))
	require.NoError(t, store.SaveRates(table))

	reloaded, err := store.LoadRates("CHF")
	require.NoError(t, err)
	got, err := reloaded.ToBase(decimal.NewFromInt(100), "EUR")
	require.NoError(t, err)
	assert.Equal(t, "95.00", got.StringFixed(2))
}

func TestLoadMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, AccountsFile), []byte("accounts: [not: closed"), 0600))

	store := NewStore(dir)
	_, err := store.LoadAccounts()
	assert.Error(t, err)
}
