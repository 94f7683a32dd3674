package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mwehrli/finview/cmd/accounts"
	"mwehrli/finview/cmd/batch"
	"mwehrli/finview/cmd/camt"
	"mwehrli/finview/cmd/categorize"
	"mwehrli/finview/cmd/convert"
	"mwehrli/finview/cmd/importer"
	"mwehrli/finview/cmd/interest"
	"mwehrli/finview/cmd/report"
	"mwehrli/finview/cmd/root"
	"mwehrli/finview/cmd/zones"
	"mwehrli/finview/internal/logging"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	loadEnvSilently()

	// 2. Configure global log level directly - this affects ALL new loggers
	logLevel := configureLogLevelDirectly()

	// 3. Force this level on ALL existing and future loggers
	logging.SetAllLogLevels(logLevel)

	// 4. Now that logging is properly configured, initialize root command
	root.Init()

	// 5. Add all subcommands
	root.Cmd.AddCommand(accounts.Cmd)
	root.Cmd.AddCommand(zones.Cmd)
	root.Cmd.AddCommand(interest.Cmd)
	root.Cmd.AddCommand(importer.Cmd)
	root.Cmd.AddCommand(camt.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(convert.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

// configureLogLevelDirectly sets the global log level for all logrus instances
// and returns the configured level
func configureLogLevelDirectly() logrus.Level {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}

	logrus.SetLevel(logLevel)
	return logLevel
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
