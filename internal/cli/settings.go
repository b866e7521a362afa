package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// SettingsOptions holds flags for the settings subcommands.
type SettingsOptions struct {
	*RootOptions
	Name    string
	Reg     string
	Contact string
	Email   string
	Address string
	Clinic  string
	NewPIN  string
}

// NewSettingsCommand creates the settings command group.
func NewSettingsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SettingsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage the professional and clinic identity",
	}

	show := &cobra.Command{
		Use:           "show",
		Short:         "Show the current settings",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsShow(opts, cmd)
		},
	}

	set := &cobra.Command{
		Use:   "set",
		Short: "Update settings fields",
		Long: `Update the settings printed on documents. Only the given flags
change; everything else is kept.

Examples:
  prontuario settings set --name "Dra. Ana Souza" --reg "CRO-PA 12345"
  prontuario settings set --clinic "Clínica Aurora" --new-pin 4321`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsSet(opts, cmd)
		},
	}
	set.Flags().StringVar(&opts.Name, "name", "", "professional name")
	set.Flags().StringVar(&opts.Reg, "reg", "", "professional registration (CRM/CRO)")
	set.Flags().StringVar(&opts.Contact, "contact", "", "contact phone")
	set.Flags().StringVar(&opts.Email, "email", "", "contact email")
	set.Flags().StringVar(&opts.Address, "address", "", "clinic address")
	set.Flags().StringVar(&opts.Clinic, "clinic", "", "clinic name")
	set.Flags().StringVar(&opts.NewPIN, "new-pin", "", "new access PIN")

	cmd.AddCommand(show, set)
	return cmd
}

func runSettingsShow(opts *SettingsOptions, cmd *cobra.Command) error {
	sess, closer, err := openSession(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer closer()

	st := sess.Settings
	f := newFormatter(opts.RootOptions, cmd)
	if opts.Format == "json" {
		// never leak the PIN through JSON output
		st.AccessPIN = ""
		return f.Success(st)
	}
	fmt.Fprintf(f.Writer, "Profissional: %s\n", st.ProfessionalName)
	fmt.Fprintf(f.Writer, "Registro:     %s\n", st.ProfessionalReg)
	fmt.Fprintf(f.Writer, "Contato:      %s\n", st.ProfessionalContact)
	fmt.Fprintf(f.Writer, "Email:        %s\n", st.ProfessionalEmail)
	fmt.Fprintf(f.Writer, "Endereço:     %s\n", st.ProfessionalAddress)
	fmt.Fprintf(f.Writer, "Clínica:      %s\n", st.ClinicName)
	if st.AccessPIN != "" {
		fmt.Fprintln(f.Writer, "PIN:          configurado")
	} else {
		fmt.Fprintln(f.Writer, "PIN:          padrão")
	}
	return nil
}

func runSettingsSet(opts *SettingsOptions, cmd *cobra.Command) error {
	sess, closer, err := openSession(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer closer()

	st := sess.Settings
	flags := cmd.Flags()
	if flags.Changed("name") {
		st.ProfessionalName = opts.Name
	}
	if flags.Changed("reg") {
		st.ProfessionalReg = opts.Reg
	}
	if flags.Changed("contact") {
		st.ProfessionalContact = opts.Contact
	}
	if flags.Changed("email") {
		st.ProfessionalEmail = opts.Email
	}
	if flags.Changed("address") {
		st.ProfessionalAddress = opts.Address
	}
	if flags.Changed("clinic") {
		st.ClinicName = opts.Clinic
	}
	if flags.Changed("new-pin") {
		st.AccessPIN = opts.NewPIN
	}

	if err := sess.SaveSettings(cmd.Context(), st); err != nil {
		return err
	}

	f := newFormatter(opts.RootOptions, cmd)
	if opts.Format == "json" {
		st.AccessPIN = ""
		return f.Success(st)
	}
	fmt.Fprintln(f.Writer, "Configurações salvas.")
	return nil
}
