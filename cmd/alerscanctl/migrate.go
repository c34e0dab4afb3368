package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"alerscan/internal/db"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			database, err := connect(cmd)
			if err != nil {
				return err
			}
			defer closeDatabase(database)

			if err := db.Migrate(cmd.Context(), database); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Migrate and insert the reference allergens into an empty catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			database, err := connect(cmd)
			if err != nil {
				return err
			}
			defer closeDatabase(database)

			if err := db.Migrate(cmd.Context(), database); err != nil {
				return err
			}
			inserted, err := db.SeedAllergens(cmd.Context(), database)
			if err != nil {
				return err
			}
			if inserted == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "allergens already present, nothing to seed")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d allergens\n", inserted)
			return nil
		},
	}
}
