package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// configCommand creates the config command printing the effective settings.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective icon settings",
		Long: `Show the effective icon settings.

Settings come from the [plugins.svg-extension] table of the config file and
are overridden by SVGEXT_PATH, SVGEXT_DEFAULT_CLASS, SVGEXT_REMOVE_SCRIPT_TAGS
and SVGEXT_CACHE_SIZE.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, path, err := c.loadSettings()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			source := path
			if source == "" {
				source = "(defaults)"
			}
			fmt.Fprintf(w, "%s %s\n", StyleDim.Render("# config:"), source)
			fmt.Fprintf(w, "%s %s\n", StyleDim.Render("# icon dirs:"), fmt.Sprint(c.newLocator().Expand(settings.Path)))

			m := settings.Map()
			keys := make([]string, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(w, "%s = %q\n", k, m[k])
			}
			return nil
		},
	}

	return cmd
}
