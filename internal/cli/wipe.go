package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewWipeCommand creates the wipe command.
func NewWipeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "wipe",
		Short: "Erase every patient, event and setting (PIN required)",
		Long: `Erase the whole database. Settings are re-seeded with defaults so
the application stays usable. Irreversible; export a backup first.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, closer, err := openSession(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer closer()

			if err := sess.WipeAll(cmd.Context(), pinGate(cmd, rootOpts, sess)); err != nil {
				return err
			}

			f := newFormatter(rootOpts, cmd)
			if rootOpts.Format == "json" {
				return f.Success(map[string]string{"wiped": "all"})
			}
			fmt.Fprintln(f.Writer, "Todos os dados foram apagados.")
			return nil
		},
	}
}
