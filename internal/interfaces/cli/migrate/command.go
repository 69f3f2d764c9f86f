// Package migrate implements the `reelpop migrate` commands.
package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reelpop-inc/reelpop/internal/infrastructure/config"
	"github.com/reelpop-inc/reelpop/internal/infrastructure/database"
	"github.com/reelpop-inc/reelpop/internal/infrastructure/migration"
	"github.com/reelpop-inc/reelpop/internal/interfaces/cli/server"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
)

const defaultScriptsRoot = "internal/infrastructure/migration"

var (
	env         string
	steps       int
	driver      string
	scriptsRoot string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Apply, roll back and inspect the versioned database migrations embedded in the binary.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	down := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}
	down.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	create := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new SQL migration script",
		Args:  cobra.ExactArgs(1),
		RunE:  runCreate,
	}
	create.Flags().StringVar(&driver, "driver", "mysql", "Database driver whose script set receives the file (mysql, postgres)")
	create.Flags().StringVar(&scriptsRoot, "root", defaultScriptsRoot, "Path of the migration package in the source tree")

	cmd.AddCommand(
		create,
		&cobra.Command{
			Use:   "up",
			Short: "Run all pending migrations",
			RunE:  runUp,
		},
		down,
		&cobra.Command{
			Use:   "status",
			Short: "Show migration status",
			RunE:  runStatus,
		},
	)

	return cmd
}

func initEnv() (*migration.GooseStrategy, logger.Interface, error) {
	cfg, err := config.Load(server.MapEnvToGinMode(env))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, false); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	strategy, err := migration.NewGooseStrategy(cfg.Database.Driver)
	if err != nil {
		database.Close()
		return nil, nil, err
	}

	return strategy, logger.WithComponent("migrate"), nil
}

func runUp(cmd *cobra.Command, args []string) error {
	strategy, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running up migrations", "environment", env)
	if err := strategy.Migrate(database.Get()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	strategy, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running down migrations", "environment", env, "steps", steps)
	if err := strategy.MigrateDown(database.Get(), steps); err != nil {
		return fmt.Errorf("down migration failed: %w", err)
	}
	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	strategy, _, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	version, err := strategy.GetVersion(database.Get())
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	fmt.Printf("\nMigration Status:\n")
	fmt.Printf("  Environment:     %s\n", env)
	fmt.Printf("  Current Version: %d\n\n", version)

	return strategy.Status(database.Get())
}

// runCreate only touches the source tree, so it needs neither config nor a
// database connection.
func runCreate(cmd *cobra.Command, args []string) error {
	strategy, err := migration.NewGooseStrategy(driver)
	if err != nil {
		return err
	}
	return strategy.Create(scriptsRoot, args[0])
}
