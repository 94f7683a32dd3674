// Package report contains the reporting commands
package report

import (
	"fmt"
	"os"

	"mwehrli/finview/cmd/root"
	"mwehrli/finview/internal/csvimport"
	"mwehrli/finview/internal/models"
	"mwehrli/finview/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Generate cashflow and interest reports",
	Long: `Generate a cashflow report from a normalized CSV file, or project the
yearly interest of every stored account with --projections. Amounts are
converted into the configured base currency using the stored rate table.

Example:
  finview report -i normalized.csv --format yaml
  finview report --projections`,
	Run: reportFunc,
}

var (
	formatFlag      string
	projectionsFlag bool
)

func init() {
	Cmd.Flags().StringVarP(&formatFlag, "format", "f", "json", "Report format (json, yaml, csv)")
	Cmd.Flags().BoolVarP(&projectionsFlag, "projections", "p", false, "Project yearly interest for all accounts")
}

func reportFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Report command called")

	rates, err := root.LoadRates()
	if err != nil {
		root.Log.Fatalf("Failed to load exchange rates: %v", err)
	}
	generator := report.NewGenerator(rates, root.Log)

	if projectionsFlag {
		printProjections(generator)
		return
	}

	inputFile := root.SharedFlags.Input
	if inputFile == "" {
		root.Log.Fatal("Input file must be specified (or use --projections)")
	}

	transactions, err := csvimport.ReadNormalizedCSV(inputFile)
	if err != nil {
		root.Log.Fatalf("Failed to read %s: %v", inputFile, err)
	}

	cashflow := generator.Cashflow(transactions)
	out, err := generator.Render(cashflow, formatFlag)
	if err != nil {
		root.Log.Fatalf("Failed to render report: %v", err)
	}
	writeOut(out)
}

func printProjections(generator *report.Generator) {
	accounts, err := root.Client.ListAccounts()
	if err != nil {
		root.Log.Fatalf("Failed to list accounts: %v", err)
	}

	projections, err := generator.ProjectInterest(accounts, func(accountID string) ([]models.InterestZone, error) {
		return root.Client.FetchZones(accountID)
	})
	if err != nil {
		root.Log.Fatalf("Failed to project interest: %v", err)
	}
	if len(projections) == 0 {
		fmt.Println("No accounts with interest zones configured.")
		return
	}

	fmt.Printf("%-20s  %15s  %15s  %10s\n", "ACCOUNT", "BALANCE", "YEARLY INTEREST", "RATE")
	for _, p := range projections {
		fmt.Printf("%-20s  %15s  %15s  %9s%%\n",
			p.AccountName, p.Balance.StringFixed(2), p.YearlyInterest.StringFixed(2), p.EffectiveRate.StringFixed(4))
	}
}

func writeOut(data []byte) {
	outputFile := root.SharedFlags.Output
	if outputFile == "" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(outputFile, data, 0600); err != nil {
		root.Log.Fatalf("Failed to write %s: %v", outputFile, err)
	}
	root.Log.Infof("Wrote %s", outputFile)
}
