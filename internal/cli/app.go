package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/itson-folio/folio/internal/pages"
	"github.com/itson-folio/folio/internal/session"
	"github.com/itson-folio/folio/internal/ui"
)

func init() {
	rootCmd.AddCommand(newAppCmd())
}

func newAppCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "app",
		Short: "Run the interactive client",
		Long: `Run the interactive client. It starts on the project list when a
session is stored and on the login page otherwise, then follows page
navigation until you quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireDeps(); err != nil {
				return err
			}

			start := pages.PageLogin
			if session.HasSession(deps.Session) {
				start = pages.PageHome
			}
			if s, _ := cmd.Flags().GetString("start"); s != "" {
				start = pages.PageID(s)
			}

			router := pages.NewRouter(deps.Env(), nil)
			router.Retry = !deps.Headless.IsHeadless()

			last, err := router.Run(commandContext(cmd), start, nil)
			if errors.Is(err, ui.ErrCancelled) {
				return nil
			}
			if err != nil {
				return err
			}
			deps.Logger.Debug("app finished", "page", last, "history", fmt.Sprint(router.History()))
			return nil
		},
	}
	cmd.Flags().String("start", "", "first page: register, login, home, project-new or project-edit")
	return cmd
}
