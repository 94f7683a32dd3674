// Package batch contains the directory import command
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mwehrli/finview/cmd/root"
	"mwehrli/finview/internal/csvimport"
	"mwehrli/finview/internal/models"
	"mwehrli/finview/internal/xmlimport"

	"github.com/spf13/cobra"
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch process statements from a directory",
	Long: `Batch process all statement files from an input directory and write the
normalized CSV files to an output directory. CSV statements and CAMT.053
XML statements are handled, everything else is skipped. Each file is
converted independently so one broken statement does not stop the run.

Example:
  finview batch -i statements/ -o normalized/`,
	Run: batchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.AccountRef, "account", "a", "", "Account ID or name to attach transactions to")
}

func batchFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Batch command called")

	inputDir := root.SharedFlags.Input
	outputDir := root.SharedFlags.Output
	if inputDir == "" || outputDir == "" {
		root.Log.Fatal("Input and output directories must be specified")
	}
	if err := os.MkdirAll(outputDir, 0750); err != nil {
		root.Log.Fatalf("Failed to create output directory: %v", err)
	}

	accountID := ""
	if root.AccountRef != "" {
		account, err := root.Client.GetAccount(root.AccountRef)
		if err != nil {
			root.Log.Fatalf("Failed to load account: %v", err)
		}
		accountID = account.ID
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		root.Log.Fatalf("Failed to read input directory: %v", err)
	}

	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		inputFile := filepath.Join(inputDir, entry.Name())

		transactions, ok := importOne(inputFile, accountID)
		if !ok {
			continue
		}

		root.Cat.CategorizeTransactions(cmd.Context(), transactions)

		base := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		outputFile := filepath.Join(outputDir, base+".csv")
		if err := csvimport.WriteTransactionsToCSV(transactions, outputFile); err != nil {
			root.Log.WithError(err).Errorf("Failed to write %s", outputFile)
			continue
		}
		root.Log.Infof("Converted %s -> %s (%d transactions)", inputFile, outputFile, len(transactions))
		count++
	}

	root.Log.Info(fmt.Sprintf("Batch processing completed. %d files converted.", count))
}

// importOne dispatches on the file extension. Broken files are logged and
// skipped rather than aborting the batch.
func importOne(inputFile, accountID string) ([]models.Transaction, bool) {
	switch strings.ToLower(filepath.Ext(inputFile)) {
	case ".csv":
		transactions, err := csvimport.NewImporter(root.Cfg.Currency.Base).ImportFile(inputFile, accountID)
		if err != nil {
			root.Log.WithError(err).Errorf("Failed to import %s", inputFile)
			return nil, false
		}
		return transactions, true
	case ".xml":
		if valid, err := xmlimport.ValidateFormat(inputFile); err != nil || !valid {
			root.Log.Warnf("Skipping %s: not a CAMT.053 statement", inputFile)
			return nil, false
		}
		statement, err := xmlimport.ImportFile(inputFile, accountID)
		if err != nil {
			root.Log.WithError(err).Errorf("Failed to import %s", inputFile)
			return nil, false
		}
		return statement.Transactions, true
	default:
		root.Log.Debugf("Skipping %s: unsupported extension", inputFile)
		return nil, false
	}
}
