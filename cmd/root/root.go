// Package root contains the root command for the application
package root

import (
	"time"

	"mwehrli/finview/internal/api"
	"mwehrli/finview/internal/categorizer"
	"mwehrli/finview/internal/config"
	"mwehrli/finview/internal/csvimport"
	"mwehrli/finview/internal/currency"
	"mwehrli/finview/internal/interest"
	"mwehrli/finview/internal/storage"
	"mwehrli/finview/internal/xmlimport"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	Validate bool
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg holds the resolved application configuration
	Cfg *config.Config

	// Store is the shared YAML persistence layer
	Store *storage.Store

	// Client is the shared account/zone API client
	Client *api.Client

	// Cat is the shared transaction categorizer
	Cat *categorizer.Categorizer

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "finview",
		Short: "A CLI tool to track accounts, project tiered savings interest and categorize transactions.",
		Long: `finview is a CLI tool for personal finance bookkeeping.
It manages accounts with tiered interest zones, projects yearly savings
interest, imports bank statements (CSV and CAMT.053 XML) and categorizes
transactions based on the party's name.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to finview!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
			Cfg = cfg

			Log = config.ConfigureLoggingFromConfig(cfg)

			// Propagate the configured logger into every package
			storage.SetLogger(Log)
			api.SetLogger(Log)
			interest.SetLogger(Log)
			currency.SetLogger(Log)
			csvimport.SetLogger(Log)
			xmlimport.SetLogger(Log)

			if cfg.CSV.Delimiter != "" {
				csvimport.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
			}

			Store = storage.NewStore(cfg.Data.Directory)

			var opts []api.Option
			if cfg.API.ZoneCacheSeconds > 0 {
				opts = append(opts, api.WithZoneCacheTTL(time.Duration(cfg.API.ZoneCacheSeconds)*time.Second))
			}
			Client = api.NewClient(Store, opts...)

			Cat = buildCategorizer(cmd, cfg)
		},
		// Save learned party mappings back to disk when ANY command finishes
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if Cat == nil {
				return
			}
			if err := Cat.SaveMappings(); err != nil {
				Log.Warnf("Failed to save categorization mappings: %v", err)
			}
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}

	// Account reference shared by the accounts, zones and interest commands
	AccountRef string

	// Specific categorize command flags
	PartyName string
	IsDebtor  bool
	Amount    string
	Date      string
	Info      string
)

// buildCategorizer wires the categorization chain from the configuration.
// The AI fallback is only attached when enabled and an API key is present.
func buildCategorizer(cmd *cobra.Command, cfg *config.Config) *categorizer.Categorizer {
	opts := categorizer.Options{
		AutoLearn:        cfg.Categorization.AutoLearn,
		FallbackCategory: cfg.AI.FallbackCategory,
	}

	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		client, err := categorizer.NewGeminiClient(cmd.Context(), cfg.AI.APIKey, cfg.AI.Model, Log)
		if err != nil {
			Log.WithError(err).Warn("AI categorization unavailable, falling back to mappings and keywords")
		} else {
			opts.AIClient = client
		}
	}

	return categorizer.New(Store, Log, opts)
}

// LoadRates loads the exchange rate table for the configured base currency.
func LoadRates() (*currency.RateTable, error) {
	return Store.LoadRates(Cfg.Currency.Base)
}

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().BoolVarP(&SharedFlags.Validate, "validate", "v", false, "Validate file format before conversion")
}
