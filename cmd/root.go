package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/lboucha/linkearn/internal/config"
	"github.com/spf13/cobra"
)

// Cfg is the global variable that will contain the loaded configuration
// It will be accessible to all Cobra commands throughout the application
var Cfg *config.Config

// RootCmd is the base command for the CLI application
// All other commands (run-server, migrate, stats, create-user) are added as subcommands
var RootCmd = &cobra.Command{
	Use:   "linkearn",
	Short: "A monetized URL shortener",
	Long: `A URL shortener where registered users create short links and earn
per-click revenue based on the visitor's country.`,
}

// Execute is the main entry point for the Cobra application
// It is called from 'main.go' and handles command execution and error handling
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Set up configuration initialization to run before any command executes
	cobra.OnInitialize(initConfig)

	// Subcommands register themselves via their own init() functions,
	// which keeps command packages decoupled and avoids import cycles.
}

// initConfig loads the application configuration before every command runs,
// thanks to cobra.OnInitialize set up above.
func initConfig() {
	var err error

	Cfg, err = config.LoadConfig()
	if err != nil {
		log.Printf("Warning: Problem loading configuration: %v. Using default values.", err)
	}
}
