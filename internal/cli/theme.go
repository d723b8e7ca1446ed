package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"garage/internal/prefs"
)

func newThemeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "theme [NAME]",
		Short: "Show or set the colour theme",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openPrefs()
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if len(args) > 0 {
				// Theme names may contain spaces: "garage theme Dark Mode".
				t, err := store.SetTheme(strings.Join(args, " "))
				if err != nil {
					return fmt.Errorf("%w (available: %s)", err, themeNames())
				}
				_, _ = fmt.Fprintf(out, "Theme set to %s\n", t)
				return nil
			}

			current, err := store.Theme()
			if err != nil {
				return err
			}
			for _, t := range prefs.Themes {
				marker := " "
				if t == current {
					marker = "*"
				}
				_, _ = fmt.Fprintf(out, "%s %s\n", marker, t)
			}
			return nil
		},
	}
}

func themeNames() string {
	names := make([]string, len(prefs.Themes))
	for i, t := range prefs.Themes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
