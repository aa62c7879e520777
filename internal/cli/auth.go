package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/itson-folio/folio/internal/pages"
)

func init() {
	rootCmd.AddCommand(
		newRegisterCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
	)
}

func newRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Long: `Create an account on the portfolio API. The ITSON ID must be exactly
six digits and both passwords must match; otherwise nothing is sent.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireDeps(); err != nil {
				return err
			}
			recordFlags(cmd, map[string]string{
				"name":     "name",
				"email":    "reg-email",
				"itson-id": "itsonId",
				"password": "reg-pass",
			})
			confirm := "password"
			if cmd.Flags().Changed("password-confirm") {
				confirm = "password-confirm"
			}
			recordFlags(cmd, map[string]string{confirm: "reg-pass2"})

			if err := runPage(cmd, pages.NewRegister(deps.Env()), nil, pages.PageLogin); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Run 'folio login' to sign in.")
			return nil
		},
	}
	f := cmd.Flags()
	f.String("name", "", "full name")
	f.String("email", "", "email address")
	f.String("itson-id", "", "six-digit ITSON ID")
	f.String("password", "", "password")
	f.String("password-confirm", "", "password confirmation (defaults to --password)")
	return cmd
}

func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireDeps(); err != nil {
				return err
			}
			recordFlags(cmd, map[string]string{
				"email":    "email",
				"password": "password",
			})
			if err := runPage(cmd, pages.NewLogin(deps.Env()), nil, pages.PageHome); err != nil {
				return err
			}
			user := deps.Session.User()
			who := user.String("name")
			if who == "" {
				who = user.String("email")
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderCard("Signed in", who))
			return nil
		},
	}
	cmd.Flags().String("email", "", "email address")
	cmd.Flags().String("password", "", "password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireDeps(); err != nil {
				return err
			}
			if err := deps.Session.Clear(); err != nil {
				return fmt.Errorf("clear session: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			user := deps.Session.User()
			var lines []string
			for _, key := range []string{"name", "email", "itsonId"} {
				if v := user.String(key); v != "" {
					lines = append(lines, fmt.Sprintf("%-8s %s", key+":", v))
				}
			}
			if id := user.ID(); id != "" {
				lines = append(lines, fmt.Sprintf("%-8s %s", "id:", id))
			}
			title := "Signed in"
			if len(lines) == 0 {
				title = "Signed in (no profile stored)"
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderCard(title, lines...))
			return nil
		},
	}
}
