package main

import (
	"errors"

	"github.com/spf13/cobra"
)

var errMigrateNeedsPostgres = errors.New("migrate needs --engine postgres")

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the events table and its indexes if they do not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.v.GetString(engineKey) != enginePostgres {
				return errMigrateNeedsPostgres
			}

			es, err := a.openPostgres(cmd.Context())
			if err != nil {
				return err
			}

			if err = es.Migrate(cmd.Context()); err != nil {
				return err
			}

			a.ok("schema is up to date")

			return nil
		},
	}
}
