package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// RenderOptions holds flags for the render subcommands.
type RenderOptions struct {
	*RootOptions
	Patient string
	Out     string
}

// NewRenderCommand creates the render command group.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render printable HTML documents",
	}

	event := &cobra.Command{
		Use:   "event <event-id>",
		Short: "Render the document for one event",
		Long: `Render the printable HTML document for one event.

Document events render their specific layout (prescription table,
certificate statement, budget, receipt); clinical notes render a
generic layout. The output goes to --out, or to a file named after
the document in the current directory.

Examples:
  prontuario render event <id>
  prontuario render event <id> --out receita.html`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRenderEvent(opts, args[0], cmd)
		},
	}
	event.Flags().StringVarP(&opts.Out, "out", "o", "", "output file (default: suggested name)")

	history := &cobra.Command{
		Use:           "history",
		Short:         "Render a patient's full timeline",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRenderHistory(opts, cmd)
		},
	}
	history.Flags().StringVar(&opts.Patient, "patient", "", "patient ID (default: selected)")
	history.Flags().StringVarP(&opts.Out, "out", "o", "", "output file (default: suggested name)")

	cmd.AddCommand(event, history)
	return cmd
}

func writeDocument(opts *RenderOptions, cmd *cobra.Command, html, suggested string) error {
	out := opts.Out
	if out == "" {
		out = suggested
	}
	if err := os.WriteFile(out, []byte(html), 0o644); err != nil {
		return WrapExitError(ExitCommandError, "failed to write document", err)
	}

	f := newFormatter(opts.RootOptions, cmd)
	if opts.Format == "json" {
		return f.Success(map[string]string{"file": out})
	}
	abs, err := filepath.Abs(out)
	if err != nil {
		abs = out
	}
	fmt.Fprintf(f.Writer, "Documento gerado: %s\n", abs)
	return nil
}

func runRenderEvent(opts *RenderOptions, eventID string, cmd *cobra.Command) error {
	sess, closer, err := openSession(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer closer()

	html, suggested, err := sess.EventDocument(cmd.Context(), eventID)
	if err != nil {
		return err
	}
	return writeDocument(opts, cmd, html, suggested)
}

func runRenderHistory(opts *RenderOptions, cmd *cobra.Command) error {
	sess, closer, err := openSession(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer closer()

	html, suggested, err := sess.HistoryDocument(cmd.Context(), opts.Patient)
	if err != nil {
		return err
	}
	return writeDocument(opts, cmd, html, suggested)
}
