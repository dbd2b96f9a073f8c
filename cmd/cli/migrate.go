package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iho/splitledger/internal/infrastructure/logger"
	"github.com/iho/splitledger/internal/infrastructure/postgres"
)

func migrateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Ledger schema migrations",
	}

	cmd.PersistentFlags().String("database-url", "", "PostgreSQL URL (env SPLITLEDGER_DATABASE_URL)")
	cmd.PersistentFlags().String("path", "migrations", "Migrations directory")
	_ = v.BindPFlag("database_url", cmd.PersistentFlags().Lookup("database-url"))
	_ = v.BindPFlag("migrations_path", cmd.PersistentFlags().Lookup("path"))

	open := func() (*postgres.Migrator, error) {
		dbURL := v.GetString("database_url")
		if dbURL == "" {
			return nil, fmt.Errorf("--database-url or %s_DATABASE_URL is required", envPrefix)
		}
		return postgres.NewMigrator(dbURL, v.GetString("migrations_path"))
	}

	log := logger.New(logger.Config{Level: "info", Format: "console"})

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := open()
				if err != nil {
					return err
				}
				defer m.Close()
				return m.Up(log)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the last migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := open()
				if err != nil {
					return err
				}
				defer m.Close()
				return m.Down(log)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := open()
				if err != nil {
					return err
				}
				defer m.Close()

				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %v)\n", version, dirty)
				return nil
			},
		},
	)

	return cmd
}
