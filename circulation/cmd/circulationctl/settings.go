package main

import (
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell/settings"
)

func newSettingsCmd(a *app) *cobra.Command {
	var writePath string

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Print the settings in effect as YAML",
		Long: `Settings come from the --settings file, CIRCULATION_LOAN_PERIOD_DAYS,
CIRCULATION_FINE_PER_DAY and CIRCULATION_BORROWING_LIMIT, or the defaults.
With --write the effective settings are saved as a settings file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := a.settingsProvider()
			if err != nil {
				return err
			}

			current, err := provider.GetSettings(cmd.Context())
			if err != nil {
				return err
			}

			if writePath != "" {
				if err = settings.WriteFile(writePath, current); err != nil {
					return err
				}

				a.ok("settings written to %s", writePath)

				return nil
			}

			out, err := settings.MarshalYAML(current)
			if err != nil {
				return err
			}

			_, err = a.out.Write(out)

			return err
		},
	}

	cmd.Flags().StringVar(&writePath, "write", "", "Write the settings to this file instead of printing them")

	return cmd
}
