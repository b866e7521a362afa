package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/btxtech/prontuario/internal/record"
)

// PatientOptions holds flags for the patient subcommands.
type PatientOptions struct {
	*RootOptions
	ID         string
	Name       string
	Identifier string
	Phone      string
	Birth      string
	Notes      string
	Query      string
}

// NewPatientCommand creates the patient command group.
func NewPatientCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PatientOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "patient",
		Short: "Manage the patient roster",
	}

	save := &cobra.Command{
		Use:   "save",
		Short: "Create or update a patient",
		Long: `Create or update a patient.

Without --id a new patient is created; with --id the existing record
is updated. The saved patient becomes the selected one.

Examples:
  prontuario patient save --name "José dos Santos" --phone "(91) 98888-7777"
  prontuario patient save --id <id> --name "José dos Santos" --notes "alérgico a dipirona"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatientSave(opts, cmd)
		},
	}
	save.Flags().StringVar(&opts.ID, "id", "", "patient ID (update)")
	save.Flags().StringVar(&opts.Name, "name", "", "full name (required)")
	save.Flags().StringVar(&opts.Identifier, "identifier", "", "CPF/CNS")
	save.Flags().StringVar(&opts.Phone, "phone", "", "contact phone")
	save.Flags().StringVar(&opts.Birth, "birth", "", "birth date (yyyy-mm-dd)")
	save.Flags().StringVar(&opts.Notes, "notes", "", "free-form notes")
	_ = save.MarkFlagRequired("name")

	list := &cobra.Command{
		Use:           "list",
		Short:         "List patients, most recently active first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatientList(opts, cmd)
		},
	}
	list.Flags().StringVarP(&opts.Query, "query", "q", "", "filter by name, identifier, phone or notes")

	show := &cobra.Command{
		Use:           "show [id]",
		Short:         "Show one patient (the selected one by default)",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return runPatientShow(opts, id, cmd)
		},
	}

	sel := &cobra.Command{
		Use:           "select <id>",
		Short:         "Move the selection cursor to a patient",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatientSelect(opts, args[0], cmd)
		},
	}

	del := &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete a patient and its whole timeline (PIN required)",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatientDelete(opts, args[0], cmd)
		},
	}

	cmd.AddCommand(save, list, show, sel, del)
	return cmd
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

func runPatientSave(opts *PatientOptions, cmd *cobra.Command) error {
	sess, closer, err := openSession(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer closer()

	p, err := sess.SavePatient(cmd.Context(), record.Patient{
		ID:         opts.ID,
		Name:       opts.Name,
		Identifier: opts.Identifier,
		Phone:      opts.Phone,
		Birth:      opts.Birth,
		Notes:      opts.Notes,
	})
	if err != nil {
		return err
	}

	f := newFormatter(opts.RootOptions, cmd)
	if opts.Format == "json" {
		return f.Success(p)
	}
	fmt.Fprintf(f.Writer, "Paciente salvo: %s (%s)\n", p.Name, p.ID)
	return nil
}

func runPatientList(opts *PatientOptions, cmd *cobra.Command) error {
	sess, closer, err := openSession(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer closer()

	patients := sess.SearchPatients(opts.Query)

	f := newFormatter(opts.RootOptions, cmd)
	if opts.Format == "json" {
		return f.Success(patients)
	}
	if len(patients) == 0 {
		fmt.Fprintln(f.Writer, "Nenhum paciente encontrado.")
		return nil
	}
	for _, p := range patients {
		marker := " "
		if p.ID == sess.SelectedPatientID {
			marker = "*"
		}
		line := fmt.Sprintf("%s %s  %s", marker, p.ID, p.Name)
		if p.Phone != "" {
			line += "  " + p.Phone
		}
		if alerts := sess.PatientAlerts(p.ID); len(alerts) > 0 {
			notes := make([]string, 0, len(alerts))
			for _, a := range alerts {
				notes = append(notes, a.Message)
			}
			line += "  [" + strings.Join(notes, "; ") + "]"
		}
		fmt.Fprintln(f.Writer, line)
	}
	return nil
}

func runPatientShow(opts *PatientOptions, id string, cmd *cobra.Command) error {
	sess, closer, err := openSession(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer closer()

	var p record.Patient
	if id == "" {
		p, err = sess.Selected(cmd.Context())
	} else {
		p, err = func() (record.Patient, error) {
			for _, cand := range sess.Patients {
				if cand.ID == id {
					return cand, nil
				}
			}
			return record.Patient{}, record.NewNotFoundError("patients", id)
		}()
	}
	if err != nil {
		return err
	}

	f := newFormatter(opts.RootOptions, cmd)
	if opts.Format == "json" {
		return f.Success(p)
	}
	fmt.Fprintf(f.Writer, "ID:          %s\n", p.ID)
	fmt.Fprintf(f.Writer, "Nome:        %s\n", p.Name)
	if p.Identifier != "" {
		fmt.Fprintf(f.Writer, "CPF/CNS:     %s\n", p.Identifier)
	}
	if p.Phone != "" {
		fmt.Fprintf(f.Writer, "Telefone:    %s\n", p.Phone)
	}
	if p.Birth != "" {
		fmt.Fprintf(f.Writer, "Nascimento:  %s\n", p.Birth)
	}
	if p.Notes != "" {
		fmt.Fprintf(f.Writer, "Observações: %s\n", p.Notes)
	}
	for _, a := range sess.PatientAlerts(p.ID) {
		fmt.Fprintf(f.Writer, "Alerta (%s): %s\n", a.Level, a.Message)
	}
	return nil
}

func runPatientSelect(opts *PatientOptions, id string, cmd *cobra.Command) error {
	sess, closer, err := openSession(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer closer()

	if err := sess.Select(cmd.Context(), id); err != nil {
		return err
	}
	f := newFormatter(opts.RootOptions, cmd)
	if opts.Format == "json" {
		return f.Success(map[string]string{"selected": id})
	}
	fmt.Fprintf(f.Writer, "Paciente selecionado: %s\n", id)
	return nil
}

func runPatientDelete(opts *PatientOptions, id string, cmd *cobra.Command) error {
	sess, closer, err := openSession(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer closer()

	if err := sess.DeletePatient(cmd.Context(), id, pinGate(cmd, opts.RootOptions, sess)); err != nil {
		return err
	}
	f := newFormatter(opts.RootOptions, cmd)
	if opts.Format == "json" {
		return f.Success(map[string]string{"deleted": id})
	}
	fmt.Fprintf(f.Writer, "Paciente excluído: %s\n", id)
	return nil
}
