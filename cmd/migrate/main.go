package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"service-courier-tracking/internal/config"
	"service-courier-tracking/internal/repository"
)

var (
	dsn     string
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Applies the service-courier database schema",
	Long: `migrate runs the embedded goose migrations of service-courier.
The database is taken from POSTGRES_* variables (and .env) unless --dsn is set.`,
	SilenceUsage: true,
}

func command(cmd repository.MigrateCommand, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(cmd),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			target, err := resolveDSN()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(c.Context(), timeout)
			defer cancel()
			return repository.Migrate(ctx, target, cmd)
		},
	}
}

func resolveDSN() (string, error) {
	if dsn != "" {
		return dsn, nil
	}
	cfg, err := config.LoadFrom(pflag.NewFlagSet("migrate", pflag.ContinueOnError), nil)
	if err != nil {
		return "", fmt.Errorf("load config: %w", err)
	}
	return cfg.DB.DSN(), nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "postgres connection string, overrides POSTGRES_* variables")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", time.Minute, "time limit for the whole run")

	rootCmd.AddCommand(
		command(repository.MigrateUp, "Apply all pending migrations"),
		command(repository.MigrateDown, "Roll back the latest migration"),
		command(repository.MigrateStatus, "Print the migration status"),
	)
}

func execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return rootCmd.ExecuteContext(ctx)
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
