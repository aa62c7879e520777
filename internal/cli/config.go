package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/itson-folio/folio/internal/config"
)

// configSetters maps the keys accepted by "config set" to the field they
// change. Each setter parses the raw value.
var configSetters = map[string]func(c *config.Config, v string) error{
	"api.base_url": func(c *config.Config, v string) error {
		c.API.BaseURL = v
		return nil
	},
	"session.backend": func(c *config.Config, v string) error {
		c.Session.Backend = strings.ToLower(v)
		return nil
	},
	"session.redis.addr": func(c *config.Config, v string) error {
		c.Session.Redis.Addr = v
		return nil
	},
	"ui.no_color": func(c *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		c.UI.NoColor = b
		return err
	},
	"ui.theme": func(c *config.Config, v string) error {
		c.UI.Theme = strings.ToLower(v)
		return nil
	},
	"ui.shared_form": func(c *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		c.UI.SharedForm = b
		return err
	},
	"ui.width": func(c *config.Config, v string) error {
		n, err := strconv.Atoi(v)
		c.UI.Width = n
		return err
	},
	"log.level": func(c *config.Config, v string) error {
		c.Log.Level = strings.ToLower(v)
		return nil
	},
}

func configKeys() []string {
	keys := make([]string, 0, len(configSetters))
	for k := range configSetters {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func init() {
	rootCmd.AddCommand(newConfigCmd())
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the saved configuration",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(newConfigShowCmd(), newConfigSetCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireConfig(); err != nil {
				return err
			}
			cfg := *deps.Config.Get()
			if cfg.Session.Redis.Password != "" {
				cfg.Session.Redis.Password = "********"
			}
			data, err := yaml.Marshal(&cfg)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}

			source := deps.Config.Path()
			if !deps.Config.FromFile() {
				source += " (not saved, using defaults)"
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "# %s\n", source)
			_, _ = fmt.Fprint(out, string(data))
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting in config.yaml",
		Long: "Change one setting and save config.yaml. Flags and FOLIO_* variables\n" +
			"in effect are not written.\n\nKeys: " + strings.Join(configKeys(), ", "),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireConfig(); err != nil {
				return err
			}
			key, value := args[0], args[1]
			set, ok := configSetters[key]
			if !ok {
				return fmt.Errorf("unknown key %q (known: %s)", key, strings.Join(configKeys(), ", "))
			}

			if err := set(&config.Config{}, value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", key, err)
			}
			if err := deps.Config.Save(func(c *config.Config) { _ = set(c, value) }); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderCard("Saved", key+" = "+value, deps.Config.Path()))
			return nil
		},
	}
}

func requireConfig() error {
	if err := requireDeps(); err != nil {
		return err
	}
	if deps.Config == nil || deps.Config.Get() == nil {
		return config.ErrNotInitialized
	}
	return nil
}
