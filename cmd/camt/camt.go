// Package camt contains the CAMT.053 statement import command
package camt

import (
	"fmt"

	"mwehrli/finview/cmd/root"
	"mwehrli/finview/internal/csvimport"
	"mwehrli/finview/internal/xmlimport"

	"github.com/spf13/cobra"
)

// Cmd represents the camt command
var Cmd = &cobra.Command{
	Use:   "camt",
	Short: "Process CAMT.053 files",
	Long: `Process CAMT.053 XML bank statements: convert them to normalized CSV and
categorize the transactions. With --validate the file is only checked for
being a CAMT.053 statement.`,
	Run: camtFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.AccountRef, "account", "a", "", "Account ID or name to attach transactions to")
}

func camtFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("CAMT command called")

	inputFile := root.SharedFlags.Input
	outputFile := root.SharedFlags.Output
	if inputFile == "" {
		root.Log.Fatal("Input file must be specified")
	}

	if root.SharedFlags.Validate {
		valid, err := xmlimport.ValidateFormat(inputFile)
		if err != nil {
			root.Log.Fatalf("Failed to validate %s: %v", inputFile, err)
		}
		if !valid {
			root.Log.Fatalf("%s is not a valid CAMT.053 statement", inputFile)
		}
		fmt.Printf("%s is a valid CAMT.053 statement.\n", inputFile)
		return
	}

	accountID := ""
	if root.AccountRef != "" {
		account, err := root.Client.GetAccount(root.AccountRef)
		if err != nil {
			root.Log.Fatalf("Failed to load account: %v", err)
		}
		accountID = account.ID
	}

	statement, err := xmlimport.ImportFile(inputFile, accountID)
	if err != nil {
		root.Log.Fatalf("Failed to import %s: %v", inputFile, err)
	}
	root.Log.WithField("iban", statement.IBAN).Infof("Imported %d transactions", len(statement.Transactions))
	if !statement.ClosingBalance.IsZero() {
		root.Log.Infof("Closing balance: %s", statement.ClosingBalance.String())
	}

	root.Cat.CategorizeTransactions(cmd.Context(), statement.Transactions)

	if outputFile == "" {
		fmt.Printf("Imported %d transactions.\n", len(statement.Transactions))
		return
	}
	if err := csvimport.WriteTransactionsToCSV(statement.Transactions, outputFile); err != nil {
		root.Log.Fatalf("Failed to write %s: %v", outputFile, err)
	}
	root.Log.Infof("Wrote %s", outputFile)
}
