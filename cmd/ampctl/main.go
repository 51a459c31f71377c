// Command ampctl runs database maintenance for the amp-report API:
// schema migrations and the amenity catalog seed.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/florenciacomuzzi/amp-report/internal/config"
	"github.com/florenciacomuzzi/amp-report/internal/database"
	"github.com/florenciacomuzzi/amp-report/internal/logger"
)

// app holds what every subcommand needs once the root pre-run has finished.
type app struct {
	log *logger.Logger
	db  *database.Database
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var logLevel string

	root := &cobra.Command{
		Use:           "ampctl",
		Short:         "Maintenance commands for the amp-report API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			server, dbCfg, err := config.LoadOps()
			if err != nil {
				return err
			}
			if logLevel == "" {
				logLevel = server.LogLevel
			}
			a.log = logger.NewWithOptions(logger.Options{Env: server.Env, Level: logLevel})

			a.db, err = database.NewPostgresPool(cmd.Context(), dbCfg)
			if err != nil {
				return fmt.Errorf("failed to connect to database %s@%s: %w", dbCfg.Name, dbCfg.Host, err)
			}
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.db != nil {
				a.db.Close()
			}
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); defaults to LOG_LEVEL")

	root.AddCommand(migrateCmd(a))
	root.AddCommand(seedCmd(a))
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "ampctl:", err)
		os.Exit(1)
	}
}
