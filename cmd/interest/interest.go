// Package interest contains the interest projection command
package interest

import (
	"fmt"
	"strings"

	"mwehrli/finview/cmd/root"
	"mwehrli/finview/internal/interest"
	"mwehrli/finview/internal/models"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Cmd represents the interest command
var Cmd = &cobra.Command{
	Use:   "interest",
	Short: "Project yearly interest for a tiered savings account",
	Long: `Project yearly interest for a balance split across tiered interest zones.

Either reference a stored account with --account, or pass an ad-hoc balance
with --balance and one or more --zone flags in FROM:TO:RATE form. A TO of 0
marks an unbounded top zone.

Example:
  finview interest --balance 150000 --zone 0:100000:1 --zone 100000:0:2`,
	Run: interestFunc,
}

var (
	balanceFlag string
	zoneFlags   []string
)

func init() {
	Cmd.Flags().StringVarP(&root.AccountRef, "account", "a", "", "Account ID or name to project")
	Cmd.Flags().StringVarP(&balanceFlag, "balance", "b", "", "Balance to project (ignored with --account)")
	Cmd.Flags().StringArrayVarP(&zoneFlags, "zone", "z", nil, "Interest zone as FROM:TO:RATE (repeatable)")
}

func interestFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Interest command called")

	if root.AccountRef != "" {
		account, err := root.Client.GetAccount(root.AccountRef)
		if err != nil {
			root.Log.Fatalf("Failed to load account: %v", err)
		}
		zones, err := root.Client.FetchZones(account.ID)
		if err != nil {
			root.Log.Fatalf("Failed to load interest zones: %v", err)
		}
		if len(zones) == 0 {
			root.Log.Warnf("Account %s has no interest zones configured", account.Name)
		}
		printProjection(account.Name, account.Balance, account.Currency, zones)
		return
	}

	if balanceFlag == "" {
		root.Log.Fatal("Either --account or --balance must be specified")
	}

	zones := make([]models.InterestZone, 0, len(zoneFlags))
	for _, spec := range zoneFlags {
		zone, err := parseZoneFlag(spec)
		if err != nil {
			root.Log.Fatalf("Invalid zone %q: %v", spec, err)
		}
		zones = append(zones, zone)
	}

	balance := interest.ParseDecimalOrZero(balanceFlag)
	printProjection("ad-hoc", balance, root.Cfg.Currency.Base, zones)
}

// parseZoneFlag parses a FROM:TO:RATE flag value. Unparsable numbers fall
// back to zero, matching the behavior of stored zones.
func parseZoneFlag(value string) (models.InterestZone, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return models.InterestZone{}, fmt.Errorf("expected FROM:TO:RATE, got %d parts", len(parts))
	}
	return interest.ZoneFromStrings("", parts[0], parts[1], parts[2]), nil
}

func printProjection(name string, balance decimal.Decimal, currencyCode string, zones []models.InterestZone) {
	yearly := interest.ComputeYearlyInterest(balance, zones)
	rate := interest.EffectiveRate(balance, zones)

	fmt.Printf("Account:          %s\n", name)
	fmt.Printf("Balance:          %s %s\n", balance.StringFixed(2), currencyCode)
	fmt.Printf("Yearly interest:  %s %s\n", yearly.StringFixed(2), currencyCode)
	fmt.Printf("Effective rate:   %s%%\n", rate.StringFixed(4))
}
