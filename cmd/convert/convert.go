// Package convert contains the currency conversion command
package convert

import (
	"fmt"

	"mwehrli/finview/cmd/root"
	"mwehrli/finview/internal/currency"

	"github.com/spf13/cobra"
)

// Cmd represents the convert command
var Cmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert an amount between currencies",
	Long: `Convert an amount between currencies using the stored rate table. Rates
are expressed against the configured base currency and cross rates are
derived through it.

Example:
  finview convert --amount 100 --from EUR --to CHF`,
	Run: convertFunc,
}

var (
	amountFlag string
	fromFlag   string
	toFlag     string
)

func init() {
	Cmd.Flags().StringVarP(&amountFlag, "amount", "a", "", "Amount to convert")
	Cmd.Flags().StringVarP(&fromFlag, "from", "f", "", "Source currency code")
	Cmd.Flags().StringVarP(&toFlag, "to", "t", "", "Target currency code (defaults to the configured base)")
	_ = Cmd.MarkFlagRequired("amount")
	_ = Cmd.MarkFlagRequired("from")
}

func convertFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Convert command called")

	amount, err := currency.ParseAmount(amountFlag)
	if err != nil {
		root.Log.Fatalf("Invalid amount %q: %v", amountFlag, err)
	}

	target := toFlag
	if target == "" {
		target = root.Cfg.Currency.Base
	}

	rates, err := root.LoadRates()
	if err != nil {
		root.Log.Fatalf("Failed to load exchange rates: %v", err)
	}

	converted, err := rates.Convert(amount, fromFlag, target)
	if err != nil {
		root.Log.Fatalf("Failed to convert: %v", err)
	}

	fmt.Printf("%s = %s\n", currency.FormatAmount(amount, fromFlag), currency.FormatAmount(converted, target))
}
