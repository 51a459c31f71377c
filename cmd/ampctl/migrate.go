package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/florenciacomuzzi/amp-report/internal/database"
)

func migrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the embedded schema migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.withMigrator(func(m *database.Migrator) error {
				return m.Up()
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back migrations (default 1 step)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			steps := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid step count %q: %w", args[0], err)
				}
				steps = n
			}
			return a.withMigrator(func(m *database.Migrator) error {
				return m.Down(steps)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return a.withMigrator(func(m *database.Migrator) error {
				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				if dirty {
					fmt.Fprintf(c.OutOrStdout(), "%d (dirty)\n", version)
					return nil
				}
				fmt.Fprintln(c.OutOrStdout(), version)
				return nil
			})
		},
	})

	return cmd
}

func (a *app) withMigrator(fn func(*database.Migrator) error) error {
	m, err := database.NewMigrator(a.db, a.log)
	if err != nil {
		return err
	}
	defer m.Close()
	return fn(m)
}
