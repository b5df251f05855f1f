// Package cmd implements the fabricsync command tree.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ifacegroup/fabricsync/internal/cmd/output"
	"github.com/ifacegroup/fabricsync/pkg/logging"
)

var (
	configFile string

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
	// BuiltBy is the build system identifier.
	BuiltBy = "unknown"
)

// Global flag values shared by the subcommands.
var (
	flagController string
	flagUsername   string
	flagBlueprint  string
	flagInsecure   bool
	flagOutput     string
	flagVerbose    bool
	flagQuiet      bool
	flagLogLevel   string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "fabricsync",
	Short: "Network cabling reconciliation CLI",
	Long: `Fabricsync reconciles spreadsheet-derived cabling rows against the
live connectivity reported by a network controller.

It reads rows from a CSV export, fetches switch-to-server connectivity
from the controller's graph query endpoint, merges the two views field
by field, and reports matches, conflicts, and one-sided entries.`,
	PersistentPreRunE: setupCommand,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(version, commit, date, builtBy string) {
	Version = version
	Commit = commit
	Date = date
	BuiltBy = builtBy

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Accept snake_case spellings of every flag; spreadsheet users type
	// the column names as they appear in the export.
	rootCmd.SetGlobalNormalizationFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.fabricsync.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagController, "controller", "", "controller base URL (env CONTROLLER_URL)")
	rootCmd.PersistentFlags().StringVar(&flagUsername, "username", "", "controller username (env CONTROLLER_USERNAME)")
	rootCmd.PersistentFlags().StringVarP(&flagBlueprint, "blueprint", "b", "", "blueprint identifier")
	rootCmd.PersistentFlags().BoolVar(&flagInsecure, "insecure", false, "skip TLS certificate verification")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "output format: table, json, yaml, csv")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: trace, debug, info, warn, error")

	for _, name := range []string{"controller", "username", "blueprint", "insecure"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(fmt.Sprintf("Failed to bind %s flag: %v", name, err))
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".fabricsync")
	}

	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.SetEnvPrefix("controller")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// The controller URL and credentials usually arrive via environment
	// rather than flags, so bind them explicitly.
	for _, key := range []string{"url", "username", "password"} {
		_ = viper.BindEnv(key, "CONTROLLER_"+strings.ToUpper(key))
	}

	if err := viper.ReadInConfig(); err == nil && flagVerbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	configureLogging()
}

// setupCommand is called before any command runs.
func setupCommand(_ *cobra.Command, _ []string) error {
	if flagOutput == "" {
		flagOutput = string(output.DetectFormat(""))
	}
	return nil
}

// configureLogging sets up the logging system based on configuration.
func configureLogging() {
	level := zerolog.InfoLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	if flagQuiet {
		level = zerolog.WarnLevel
	}
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		if parsed, err := zerolog.ParseLevel(envLevel); err == nil {
			level = parsed
		}
	}
	if flagLogLevel != "" {
		if parsed, err := zerolog.ParseLevel(flagLogLevel); err == nil {
			level = parsed
		} else {
			fmt.Fprintf(os.Stderr, "Unknown log level %q, using %s\n", flagLogLevel, level)
		}
	}

	config := &logging.Config{
		Level:     level.String(),
		Format:    os.Getenv("LOG_FORMAT"),
		Output:    os.Getenv("LOG_OUTPUT"),
		AddCaller: level <= zerolog.DebugLevel,
	}
	if config.Format == "" {
		config.Format = "auto"
	}
	if config.Output == "" {
		config.Output = "stderr"
	}

	logging.Configure(config)
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// .env.local overrides .env
	for _, envFile := range []string{".env", ".env.local"} {
		if err := godotenv.Load(envFile); err == nil && flagVerbose {
			fmt.Fprintf(os.Stderr, "Loaded %s\n", envFile)
		}
	}
}

// controllerURL resolves the controller base URL from flag, env, or config.
func controllerURL() string {
	if flagController != "" {
		return flagController
	}
	return viper.GetString("url")
}

// credentials resolves the controller username and password.
func credentials() (string, string) {
	username := flagUsername
	if username == "" {
		username = viper.GetString("username")
	}
	return username, viper.GetString("password")
}
