package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/cppmaven/singularity/pkg/config"
	"github.com/cppmaven/singularity/pkg/logging"
)

var (
	// Global flags
	verbose      bool
	quiet        bool
	settingsPath string

	// Settings loaded once for all commands
	settings config.Settings
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "singularity-demo",
	Short: "Demonstrates single-instance lifecycle management",
	Long: `singularity-demo exercises the singularity lifecycle manager: explicit
create/destroy intervals, at most one live instance per type, and opt-in
global retrieval.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.SetGlobalLogger(newLogger())

		var err error
		settings, err = config.LoadSettings(settingsPath, config.NewManager())
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}
		return nil
	},
}

func newLogger() logging.Logger {
	cfg := logging.Config{
		Output: os.Stderr,
		Format: logging.FormatText,
	}

	// Structured output when logs are redirected.
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		cfg.Format = logging.FormatJSON
		cfg.AddTime = true
	}

	switch {
	case quiet:
		return logging.NewQuietLogger()
	case verbose:
		cfg.Level = slog.LevelDebug
	default:
		cfg.Level = slog.LevelInfo
	}

	return logging.NewLogger(cfg)
}

// Execute runs the CLI with all commands.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show debug output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only show errors")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "path to a settings YAML file (default ~/.singularity/settings.yaml)")
}
