// Package categorize contains the transaction categorization command
package categorize

import (
	"fmt"

	"mwehrli/finview/cmd/root"
	"mwehrli/finview/internal/categorizer"

	"github.com/spf13/cobra"
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a transaction by party name",
	Long: `Categorize a transaction based on the party's name. Learned mappings are
checked first, then keyword rules, then the optional Gemini model.`,
	Run: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.PartyName, "party", "p", "", "Party name to categorize")
	Cmd.Flags().BoolVarP(&root.IsDebtor, "debtor", "d", false, "Whether the party is a debtor (default: creditor)")
	Cmd.Flags().StringVarP(&root.Amount, "amount", "a", "", "Transaction amount (optional)")
	Cmd.Flags().StringVarP(&root.Date, "date", "t", "", "Transaction date (optional)")
	Cmd.Flags().StringVarP(&root.Info, "info", "n", "", "Additional transaction info (optional)")
	_ = Cmd.MarkFlagRequired("party")
}

func categorizeFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Categorize command called")

	transaction := categorizer.Transaction{
		PartyName: root.PartyName,
		IsDebtor:  root.IsDebtor,
		Amount:    root.Amount,
		Date:      root.Date,
		Info:      root.Info,
	}

	category := root.Cat.Categorize(cmd.Context(), transaction)
	root.Log.Infof("Transaction categorized as: %s", category.Name)
	fmt.Println(category.Name)
}
