package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/itson-folio/folio/pkg/version"
)

// Global flags.
var (
	flagConfigDir string
	flagAPIURL    string
	flagSession   string
	flagNoColor   bool
	flagHeadless  bool
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Terminal client for the ITSON portfolio API",
	Long: `folio signs you in to the ITSON portfolio API and manages your
projects from the terminal: register, log in, then list, create, edit
and delete projects. Run "folio app" for the interactive client.`,
	Version:       version.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if deps != nil {
			return nil
		}
		d, err := InitDependencies(Options{
			ConfigDir: flagConfigDir,
			APIURL:    flagAPIURL,
			Session:   flagSession,
			NoColor:   flagNoColor,
			Headless:  flagHeadless,
			Verbose:   flagVerbose,
			Out:       cmd.OutOrStdout(),
			Err:       cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}
		deps = d
		return nil
	},
}

// @MX:ANCHOR: [AUTO] Execute is the main entry point for the folio CLI
// @MX:REASON: [AUTO] called from cmd/folio/main.go and the command tests
// Execute runs the root command. Errors other than a reported page failure
// are printed to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		_, _ = fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("folio %s\n", version.GetFullVersion()))

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfigDir, "config", "", "config directory (default $FOLIO_CONFIG_DIR or ~/.folio)")
	pf.StringVar(&flagAPIURL, "api-url", "", "portfolio API base URL")
	pf.StringVar(&flagSession, "session", "", "session backend: file, memory or redis")
	pf.BoolVar(&flagNoColor, "no-color", false, "disable colored output")
	pf.BoolVar(&flagHeadless, "headless", false, "never prompt; take input from flags only")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "log requests to stderr")
}
