// Package importer contains the CSV statement import command
package importer

import (
	"fmt"

	"mwehrli/finview/cmd/root"
	"mwehrli/finview/internal/csvimport"

	"github.com/spf13/cobra"
)

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Import a CSV bank statement",
	Long: `Import a CSV bank statement, categorize its transactions and write them
out as a normalized CSV file. Column headers are matched against common
English, German and French bank export names and the delimiter is detected
automatically.

Example:
  finview import -i statement.csv -o normalized.csv --account savings`,
	Run: importFunc,
}

// bankProfile pre-sets the currency for exports that never carry one.
type bankProfile struct {
	Currency string
}

var profiles = map[string]bankProfile{
	"generic":  {},
	"swiss":    {Currency: "CHF"},
	"european": {Currency: "EUR"},
}

var profileFlag string

func init() {
	Cmd.Flags().StringVarP(&root.AccountRef, "account", "a", "", "Account ID or name to attach transactions to")
	Cmd.Flags().StringVarP(&profileFlag, "profile", "p", "generic", "Bank profile (generic, swiss, european)")
}

func importFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Import command called")

	inputFile := root.SharedFlags.Input
	outputFile := root.SharedFlags.Output
	if inputFile == "" {
		root.Log.Fatal("Input file must be specified")
	}

	profile, ok := profiles[profileFlag]
	if !ok {
		root.Log.Fatalf("Unknown profile: %s", profileFlag)
	}
	defaultCurrency := profile.Currency
	if defaultCurrency == "" {
		defaultCurrency = root.Cfg.Currency.Base
	}

	accountID := ""
	if root.AccountRef != "" {
		account, err := root.Client.GetAccount(root.AccountRef)
		if err != nil {
			root.Log.Fatalf("Failed to load account: %v", err)
		}
		accountID = account.ID
	}

	im := csvimport.NewImporter(defaultCurrency)
	transactions, err := im.ImportFile(inputFile, accountID)
	if err != nil {
		root.Log.Fatalf("Failed to import %s: %v", inputFile, err)
	}

	root.Cat.CategorizeTransactions(cmd.Context(), transactions)
	root.Log.Infof("Imported %d transactions from %s", len(transactions), inputFile)

	if outputFile == "" {
		fmt.Printf("Imported %d transactions.\n", len(transactions))
		return
	}
	if err := csvimport.WriteTransactionsToCSV(transactions, outputFile); err != nil {
		root.Log.Fatalf("Failed to write %s: %v", outputFile, err)
	}
	root.Log.Infof("Wrote %s", outputFile)
}
