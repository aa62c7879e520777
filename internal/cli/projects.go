package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/itson-folio/folio/internal/pages"
	"github.com/itson-folio/folio/internal/ui"
)

// projectFlagFields maps project flags to form field ids.
var projectFlagFields = map[string]string{
	"title":        "title",
	"description":  "description",
	"technologies": "technologies",
	"repository":   "repository",
	"images":       "images",
}

var projectsCmd = &cobra.Command{
	Use:     "projects",
	Aliases: []string{"p"},
	Short:   "List and manage your projects",
	Args:    cobra.NoArgs,
	RunE:    runProjectsList,
}

func init() {
	rootCmd.AddCommand(projectsCmd)

	projectsCmd.AddCommand(
		newProjectsListCmd(),
		newProjectsShowCmd(),
		newProjectsNewCmd(),
		newProjectsEditCmd(),
		newProjectsDeleteCmd(),
	)
}

func addProjectFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("title", "", "project title")
	f.String("description", "", "project description")
	f.String("technologies", "", "comma-separated technologies")
	f.String("repository", "", "repository URL")
	f.String("images", "", "comma-separated image URLs")
}

func newProjectsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all projects",
		Args:    cobra.NoArgs,
		RunE:    runProjectsList,
	}
}

func runProjectsList(cmd *cobra.Command, _ []string) error {
	if err := requireSession(); err != nil {
		return err
	}
	list := pages.NewProjectList(deps.Env())
	t := list.Render(commandContext(cmd))
	if t.To == pages.PageLogin {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), loginHint)
		return errReported
	}
	if list.Err() != nil {
		return errReported
	}
	return nil
}

func newProjectsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one project in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			p, err := pages.LoadProject(commandContext(cmd), deps.API, args[0])
			if err != nil {
				if t := deps.Env().Report(err); t.To == pages.PageLogin {
					_, _ = fmt.Fprintln(cmd.ErrOrStderr(), loginHint)
				}
				return errReported
			}
			out, err := deps.Renderer.Detail(*p)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newProjectsNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			recordFlags(cmd, projectFlagFields)
			return runPage(cmd, pages.NewProjectNew(deps.Env()), nil, pages.PageHome)
		},
	}
	addProjectFlags(cmd)
	return cmd
}

func newProjectsEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a project (full replace)",
		Long: `Edit a project. The form is pre-filled with the current values; flags
replace individual fields. The whole project is sent back as a replacement.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			recordFlags(cmd, projectFlagFields)
			params := url.Values{"id": {args[0]}}
			return runPage(cmd, pages.NewProjectEdit(deps.Env()), params, pages.PageHome)
		},
	}
	addProjectFlags(cmd)
	return cmd
}

func newProjectsDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a project",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			if yes, _ := cmd.Flags().GetBool("yes"); yes {
				deps.Headless.SetValue(ui.ConfirmKey, "true")
			}

			list := pages.NewProjectList(deps.Env())
			t, err := list.Delete(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			if t.To == pages.PageLogin {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), loginHint)
				return errReported
			}
			if list.Err() != nil {
				return errReported
			}
			if list.Declined() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Not deleted.")
			}
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	return cmd
}
