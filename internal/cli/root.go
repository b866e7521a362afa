package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/btxtech/prontuario/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Database string
	PIN      string // pre-supplied PIN for destructive commands
	LogLevel string
	LogJSON  bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the prontuario CLI.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "prontuario",
		Short: "Prontuário clínico offline",
		Long: `Prontuário eletrônico single-user, offline-first.

Patients, an append-only clinical timeline, printable documents
(prescriptions, certificates, budgets, receipts) and versioned JSON
backups, all stored in one local SQLite file.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", cfg.Format, "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", cfg.DBPath, "path to SQLite database")
	cmd.PersistentFlags().StringVar(&opts.PIN, "pin", "", "access PIN for destructive commands (prompts when omitted)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", cfg.LogLevel, "log level (trace|debug|info|warn|error)")
	opts.LogJSON = cfg.LogJSON

	// Add subcommands
	cmd.AddCommand(NewPatientCommand(opts))
	cmd.AddCommand(NewEventCommand(opts))
	cmd.AddCommand(NewRenderCommand(opts))
	cmd.AddCommand(NewBackupCommand(opts))
	cmd.AddCommand(NewSettingsCommand(opts))
	cmd.AddCommand(NewWipeCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
