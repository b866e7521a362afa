package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/btxtech/prontuario/internal/record"
)

// EventOptions holds flags for the event subcommands.
type EventOptions struct {
	*RootOptions
	Patient string
	Type    string
	Chief   string
	Vitals  string
	CID     string
	Text    string
	Title   string
	Query   string
}

// NewEventCommand creates the event command group.
func NewEventCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EventOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage the clinical timeline",
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Append a clinical note to a patient's timeline",
		Long: `Append a clinical note (evolution, procedure, exam or note).

The event is appended to the selected patient unless --patient is
given. Events are immutable; correcting a mistake means deleting the
event and appending a new one.

Examples:
  prontuario event add --type evolution --chief "dor de cabeça" --cid R51 --text "paciente estável"
  prontuario event add --patient <id> --type note --text "retorno em 30 dias"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEventAdd(opts, cmd)
		},
	}
	add.Flags().StringVar(&opts.Patient, "patient", "", "patient ID (default: selected)")
	add.Flags().StringVar(&opts.Type, "type", "", "event type: evolution|procedure|exam|note (required)")
	add.Flags().StringVar(&opts.Chief, "chief", "", "chief complaint")
	add.Flags().StringVar(&opts.Vitals, "vitals", "", "vital signs")
	add.Flags().StringVar(&opts.CID, "cid", "", "CID code")
	add.Flags().StringVar(&opts.Text, "text", "", "note body")
	_ = add.MarkFlagRequired("type")

	addDoc := &cobra.Command{
		Use:   "add-doc <draft.yaml>",
		Short: "Append a document event from a YAML draft",
		Long: `Append a document event (rx, certificate, budget or receipt) whose
payload is described by a YAML draft file.

Draft format:

  type: rx
  title: ""          # optional, overrides the derived summary
  rx:
    items:
      - drug: Amoxicilina 500mg
        pos: 1 cápsula 8/8h por 7 dias
    obs: Retornar se persistirem os sintomas.

  type: certificate
  certificate:
    days: 3
    start: 2024-01-10

Examples:
  prontuario event add-doc receita.yaml
  prontuario event add-doc --patient <id> atestado.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEventAddDoc(opts, args[0], cmd)
		},
	}
	addDoc.Flags().StringVar(&opts.Patient, "patient", "", "patient ID (default: selected)")
	addDoc.Flags().StringVar(&opts.Title, "title", "", "summary override")

	list := &cobra.Command{
		Use:           "list",
		Short:         "List timeline events, newest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEventList(opts, cmd)
		},
	}
	list.Flags().StringVar(&opts.Patient, "patient", "", "patient ID (default: selected)")
	list.Flags().StringVar(&opts.Type, "type", "", "filter by event type across all patients")
	list.Flags().StringVarP(&opts.Query, "query", "q", "", "filter by substring (timeline search)")

	del := &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete one event (PIN required)",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEventDelete(opts, args[0], cmd)
		},
	}

	cmd.AddCommand(add, addDoc, list, del)
	return cmd
}

func runEventAdd(opts *EventOptions, cmd *cobra.Command) error {
	sess, closer, err := openSession(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer closer()

	ev, err := sess.AddClinicalEvent(cmd.Context(), opts.Patient,
		record.EventType(opts.Type), opts.Chief, opts.Vitals, opts.CID, opts.Text)
	if err != nil {
		return err
	}

	f := newFormatter(opts.RootOptions, cmd)
	if opts.Format == "json" {
		return f.Success(ev)
	}
	fmt.Fprintf(f.Writer, "Evento registrado: %s (%s)\n", ev.Summary, ev.ID)
	return nil
}

func runEventAddDoc(opts *EventOptions, draftPath string, cmd *cobra.Command) error {
	data, err := os.ReadFile(draftPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read draft file", err)
	}
	t, title, payload, err := parseDocDraft(data)
	if err != nil {
		return err
	}
	if opts.Title != "" {
		title = opts.Title
	}

	sess, closer, err := openSession(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer closer()

	ev, err := sess.AddDocumentEvent(cmd.Context(), opts.Patient, t, title, payload)
	if err != nil {
		return err
	}

	f := newFormatter(opts.RootOptions, cmd)
	if opts.Format == "json" {
		return f.Success(ev)
	}
	fmt.Fprintf(f.Writer, "Documento registrado: %s (%s)\n", ev.Summary, ev.ID)
	return nil
}

func runEventList(opts *EventOptions, cmd *cobra.Command) error {
	sess, closer, err := openSession(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer closer()

	var events []record.Event
	switch {
	case opts.Type != "":
		events, err = sess.EventsOfType(cmd.Context(), record.EventType(opts.Type))
	default:
		events, err = sess.SearchTimeline(cmd.Context(), opts.Patient, opts.Query)
	}
	if err != nil {
		return err
	}

	f := newFormatter(opts.RootOptions, cmd)
	if opts.Format == "json" {
		return f.Success(events)
	}
	if len(events) == 0 {
		fmt.Fprintln(f.Writer, "Nenhum evento encontrado.")
		return nil
	}
	for _, ev := range events {
		when := time.UnixMilli(ev.CreatedAt).UTC().Format("02/01/2006 15:04")
		fmt.Fprintf(f.Writer, "%s  %s  %-12s  %s\n", ev.ID, when, record.TypeLabel(ev.Type), ev.Summary)
	}
	return nil
}

func runEventDelete(opts *EventOptions, id string, cmd *cobra.Command) error {
	sess, closer, err := openSession(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer closer()

	if err := sess.DeleteEvent(cmd.Context(), id, pinGate(cmd, opts.RootOptions, sess)); err != nil {
		return err
	}
	f := newFormatter(opts.RootOptions, cmd)
	if opts.Format == "json" {
		return f.Success(map[string]string{"deleted": id})
	}
	fmt.Fprintf(f.Writer, "Evento excluído: %s\n", id)
	return nil
}
