package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/btxtech/prontuario/internal/backup"
	"github.com/btxtech/prontuario/internal/record"
)

// BackupOptions holds flags for the backup subcommands.
type BackupOptions struct {
	*RootOptions
	Out string
}

// NewBackupCommand creates the backup command group.
func NewBackupCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BackupOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export and import JSON backups",
	}

	export := &cobra.Command{
		Use:   "export",
		Short: "Export the whole database to a JSON file",
		Long: `Export every patient, event and the settings to a versioned JSON
file. The file is self-contained and can be imported into a fresh
database.

Examples:
  prontuario backup export
  prontuario backup export --out backup.json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackupExport(opts, cmd)
		},
	}
	export.Flags().StringVarP(&opts.Out, "out", "o", "", "output file (default: dated name)")

	imp := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the whole database with a backup (PIN required)",
		Long: `Validate and import a backup file, replacing everything currently in
the database. The file is fully validated before anything is deleted,
so a rejected file leaves the database untouched.

Exit codes:
  0 - imported
  1 - invalid backup file or PIN refused
  2 - command error (unreadable file, database unavailable)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackupImport(opts, args[0], cmd)
		},
	}

	cmd.AddCommand(export, imp)
	return cmd
}

func runBackupExport(opts *BackupOptions, cmd *cobra.Command) error {
	sess, closer, err := openSession(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer closer()

	snap, err := sess.ExportSnapshot(cmd.Context())
	if err != nil {
		return err
	}

	out := opts.Out
	if out == "" {
		out = backup.FileName(record.SystemClock{})
	}
	if err := backup.WriteFile(out, snap); err != nil {
		return WrapExitError(ExitCommandError, "failed to write backup", err)
	}

	f := newFormatter(opts.RootOptions, cmd)
	if opts.Format == "json" {
		return f.Success(map[string]interface{}{
			"file":     out,
			"patients": len(snap.Patients),
			"events":   len(snap.Events),
		})
	}
	fmt.Fprintf(f.Writer, "Backup exportado: %s (%d paciente(s), %d evento(s))\n",
		out, len(snap.Patients), len(snap.Events))
	return nil
}

func runBackupImport(opts *BackupOptions, path string, cmd *cobra.Command) error {
	snap, err := backup.ReadFile(path)
	if err != nil {
		return err
	}

	sess, closer, err := openSession(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer closer()

	if err := sess.ImportSnapshot(cmd.Context(), snap, pinGate(cmd, opts.RootOptions, sess)); err != nil {
		return err
	}

	f := newFormatter(opts.RootOptions, cmd)
	if opts.Format == "json" {
		return f.Success(map[string]interface{}{
			"patients": len(snap.Patients),
			"events":   len(snap.Events),
		})
	}
	fmt.Fprintf(f.Writer, "Backup importado: %d paciente(s), %d evento(s)\n",
		len(snap.Patients), len(snap.Events))
	return nil
}
