// Package zones contains the interest zone management commands
package zones

import (
	"fmt"

	"mwehrli/finview/cmd/root"
	"mwehrli/finview/internal/interest"

	"github.com/spf13/cobra"
)

// Cmd represents the zones command
var Cmd = &cobra.Command{
	Use:   "zones",
	Short: "Manage interest zones",
	Long: `Manage the tiered interest zones of an account. Each zone covers the
balance slice between its from and to amount and carries a yearly rate in
percent. A to amount of 0 marks an unbounded top zone.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the interest zones of an account",
	Run:   listFunc,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an interest zone to an account",
	Run:   addFunc,
}

var rmCmd = &cobra.Command{
	Use:   "rm",
	Short: "Remove all interest zones of an account",
	Run:   rmFunc,
}

var (
	fromFlag string
	toFlag   string
	rateFlag string
)

func init() {
	for _, sub := range []*cobra.Command{listCmd, addCmd, rmCmd} {
		sub.Flags().StringVarP(&root.AccountRef, "account", "a", "", "Account ID or name")
		_ = sub.MarkFlagRequired("account")
	}
	addCmd.Flags().StringVarP(&fromFlag, "from", "f", "0", "Lower bound of the zone")
	addCmd.Flags().StringVarP(&toFlag, "to", "t", "0", "Upper bound of the zone (0 for unbounded)")
	addCmd.Flags().StringVarP(&rateFlag, "rate", "r", "0", "Yearly interest rate in percent")

	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(rmCmd)
}

func listFunc(cmd *cobra.Command, args []string) {
	account, err := root.Client.GetAccount(root.AccountRef)
	if err != nil {
		root.Log.Fatalf("Failed to load account: %v", err)
	}
	zones, err := root.Client.FetchZones(account.ID)
	if err != nil {
		root.Log.Fatalf("Failed to load interest zones: %v", err)
	}
	if len(zones) == 0 {
		fmt.Printf("Account %s has no interest zones.\n", account.Name)
		return
	}

	fmt.Printf("%15s  %15s  %10s\n", "FROM", "TO", "RATE")
	for _, zone := range zones {
		to := zone.ToAmount.StringFixed(2)
		if zone.IsUnbounded() {
			to = "unbounded"
		}
		fmt.Printf("%15s  %15s  %9s%%\n", zone.FromAmount.StringFixed(2), to, zone.InterestRate.String())
	}
}

func addFunc(cmd *cobra.Command, args []string) {
	account, err := root.Client.GetAccount(root.AccountRef)
	if err != nil {
		root.Log.Fatalf("Failed to load account: %v", err)
	}

	zone := interest.ZoneFromStrings(account.ID, fromFlag, toFlag, rateFlag)
	if err := root.Client.CreateZone(zone); err != nil {
		root.Log.Fatalf("Failed to create interest zone: %v", err)
	}
	root.Log.WithField("account", account.Name).Info("Interest zone created")
}

func rmFunc(cmd *cobra.Command, args []string) {
	account, err := root.Client.GetAccount(root.AccountRef)
	if err != nil {
		root.Log.Fatalf("Failed to load account: %v", err)
	}
	if err := root.Client.DeleteZones(account.ID); err != nil {
		root.Log.Fatalf("Failed to delete interest zones: %v", err)
	}
	root.Log.WithField("account", account.Name).Info("Interest zones deleted")
}
