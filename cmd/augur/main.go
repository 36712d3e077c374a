package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/fang"
	"github.com/mark3labs/augur/internal/config"
	"github.com/mark3labs/augur/internal/i18n"
	"github.com/mark3labs/augur/internal/logger"
	"github.com/mark3labs/augur/internal/tui/theme"
	"github.com/spf13/cobra"
)

const (
	logoText1 = "▄▀█ █ █ █▀▀ █ █ █▀█"
	logoText2 = "█▀█ █▄█ █▄█ █▄█ █▀▄"
)

// Version set via ldflags during build
var version = "dev"

// cfg is loaded before every command runs.
var cfg = config.Default()

var rootFlags struct {
	locale    string
	dataDir   string
	logLevel  string
	noPersist bool
}

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "augur",
	Short:             "Guided multi-step forms for readings and naming",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

augur walks you through short multi-step forms (birth chart, numerology,
baby naming, career reading, tarot). Each step is validated before you can
move on, and completed forms are stored in an embedded NATS JetStream.

The same wizards can be filled from the terminal UI, from flags, or by an
AI agent over MCP.`

	rootCmd.PersistentFlags().StringVar(&rootFlags.locale, "locale", "", "Locale for labels and messages (e.g. en, vi)")
	rootCmd.PersistentFlags().StringVar(&rootFlags.dataDir, "data-dir", "", "Data directory for the submission store")
	rootCmd.PersistentFlags().StringVar(&rootFlags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&rootFlags.noPersist, "no-persist", false, "Do not store submissions")

	rootCmd.AddCommand(featuresCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(fillCmd)
	rootCmd.AddCommand(lastCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(setupCmd)
}

// loadConfig resolves files and env, then applies flags on top.
func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("locale") {
		loaded.Locale = rootFlags.locale
	}
	if flags.Changed("data-dir") {
		loaded.DataDir = rootFlags.dataDir
	}
	if flags.Changed("log-level") {
		loaded.LogLevel = rootFlags.logLevel
	}
	if rootFlags.noPersist {
		loaded.Persist = false
	}

	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := logger.Configure(loaded.LogLevel, loaded.LogFile); err != nil {
		return fmt.Errorf("configure logger: %w", err)
	}

	cfg = loaded
	logger.Debug("Config loaded: locale=%s data_dir=%s persist=%v", cfg.Locale, cfg.DataDir, cfg.Persist)
	return nil
}

// stdoutProfile detects the colour support of stdout. Redirected output
// gets no escape sequences.
func stdoutProfile() colorprofile.Profile {
	return colorprofile.Detect(os.Stdout, os.Environ())
}

func localizer() *i18n.Localizer {
	return i18n.Default().Localizer(cfg.Locale)
}
