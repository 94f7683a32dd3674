// Package accounts contains the account management commands
package accounts

import (
	"fmt"
	"strings"

	"mwehrli/finview/cmd/root"
	"mwehrli/finview/internal/interest"
	"mwehrli/finview/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the accounts command
var Cmd = &cobra.Command{
	Use:   "accounts",
	Short: "Manage accounts",
	Long:  `Manage the stored accounts: list, show, add and remove them.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all accounts",
	Run:   listFunc,
}

var showCmd = &cobra.Command{
	Use:   "show <id-or-name>",
	Short: "Show one account with its interest zones",
	Args:  cobra.ExactArgs(1),
	Run:   showFunc,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new account",
	Run:   addFunc,
}

var rmCmd = &cobra.Command{
	Use:   "rm <id-or-name>",
	Short: "Remove an account and its interest zones",
	Args:  cobra.ExactArgs(1),
	Run:   rmFunc,
}

var (
	nameFlag        string
	kindFlag        string
	currencyFlag    string
	balanceFlag     string
	ibanFlag        string
	institutionFlag string
)

func init() {
	addCmd.Flags().StringVarP(&nameFlag, "name", "n", "", "Account name")
	addCmd.Flags().StringVarP(&kindFlag, "kind", "k", string(models.AccountKindBank), "Account kind ("+strings.Join(kindNames(), ", ")+")")
	addCmd.Flags().StringVarP(&currencyFlag, "currency", "c", "", "Account currency (defaults to the configured base)")
	addCmd.Flags().StringVarP(&balanceFlag, "balance", "b", "0", "Opening balance")
	addCmd.Flags().StringVar(&ibanFlag, "iban", "", "Account IBAN (optional)")
	addCmd.Flags().StringVar(&institutionFlag, "institution", "", "Holding institution (optional)")
	_ = addCmd.MarkFlagRequired("name")

	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(rmCmd)
}

func kindNames() []string {
	names := make([]string, 0, len(models.KnownAccountKinds))
	for _, kind := range models.KnownAccountKinds {
		names = append(names, string(kind))
	}
	return names
}

func listFunc(cmd *cobra.Command, args []string) {
	accounts, err := root.Client.ListAccounts()
	if err != nil {
		root.Log.Fatalf("Failed to list accounts: %v", err)
	}
	if len(accounts) == 0 {
		fmt.Println("No accounts configured.")
		return
	}

	fmt.Printf("%-36s  %-20s  %-10s  %15s\n", "ID", "NAME", "KIND", "BALANCE")
	for _, account := range accounts {
		fmt.Printf("%-36s  %-20s  %-10s  %15s\n",
			account.ID, account.Name, account.Kind, account.BalanceMoney().String())
	}
}

func showFunc(cmd *cobra.Command, args []string) {
	account, err := root.Client.GetAccount(args[0])
	if err != nil {
		root.Log.Fatalf("Failed to load account: %v", err)
	}
	zones, err := root.Client.FetchZones(account.ID)
	if err != nil {
		root.Log.Fatalf("Failed to load interest zones: %v", err)
	}

	fmt.Printf("ID:           %s\n", account.ID)
	fmt.Printf("Name:         %s\n", account.Name)
	fmt.Printf("Kind:         %s\n", account.Kind)
	fmt.Printf("Balance:      %s\n", account.BalanceMoney().String())
	if account.IBAN != "" {
		fmt.Printf("IBAN:         %s\n", account.IBAN)
	}
	if account.Institution != "" {
		fmt.Printf("Institution:  %s\n", account.Institution)
	}

	if len(zones) == 0 {
		fmt.Println("No interest zones configured.")
		return
	}
	fmt.Println("Interest zones:")
	for _, zone := range zones {
		to := zone.ToAmount.StringFixed(2)
		if zone.IsUnbounded() {
			to = "unbounded"
		}
		fmt.Printf("  %15s  to  %-15s  at  %s%%\n", zone.FromAmount.StringFixed(2), to, zone.InterestRate.String())
	}
	fmt.Printf("Projected yearly interest: %s %s\n",
		interest.ComputeYearlyInterest(account.Balance, zones).StringFixed(2), account.Currency)
}

func addFunc(cmd *cobra.Command, args []string) {
	currencyCode := currencyFlag
	if currencyCode == "" {
		currencyCode = root.Cfg.Currency.Base
	}

	account := models.NewAccount(nameFlag, models.AccountKind(kindFlag), currencyCode,
		interest.ParseDecimalOrZero(balanceFlag))
	account.IBAN = ibanFlag
	account.Institution = institutionFlag

	created, err := root.Client.CreateAccount(account)
	if err != nil {
		root.Log.Fatalf("Failed to create account: %v", err)
	}
	root.Log.WithField("id", created.ID).Info("Account created")
	fmt.Println(created.ID)
}

func rmFunc(cmd *cobra.Command, args []string) {
	account, err := root.Client.GetAccount(args[0])
	if err != nil {
		root.Log.Fatalf("Failed to load account: %v", err)
	}
	if err := root.Client.DeleteAccount(account.ID); err != nil {
		root.Log.Fatalf("Failed to delete account: %v", err)
	}
	root.Log.WithField("id", account.ID).Info("Account deleted")
}
