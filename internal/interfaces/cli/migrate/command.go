package migrate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/assetflow/assetflow/internal/infrastructure/database"
	"github.com/assetflow/assetflow/internal/infrastructure/migration"
	"github.com/assetflow/assetflow/internal/infrastructure/migration/scripts"
	"github.com/assetflow/assetflow/internal/interfaces/cli/bootstrap"
)

var (
	env        string
	configPath string
	name       string
	steps      int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, and creating new migration files.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				return os.Setenv("ASSETFLOW_CONFIG_FILE", configPath)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the database schema up to date.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display every embedded migration script and whether it has been applied.`,
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create a new sequentially numbered SQL migration in the scripts directory.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runUp(cmd *cobra.Command, args []string) error {
	rt, err := initMySQL()
	if err != nil {
		return err
	}
	defer rt.Close()

	rt.Logger.Infow("running up migrations", "environment", env)

	strategy := migration.NewGooseStrategy(scripts.FS, "mysql", rt.Logger)
	if err := strategy.Migrate(database.Get()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	rt.Logger.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	rt, err := initMySQL()
	if err != nil {
		return err
	}
	defer rt.Close()

	rt.Logger.Infow("running down migrations", "environment", env, "steps", steps)

	strategy := migration.NewGooseStrategy(scripts.FS, "mysql", rt.Logger)
	if err := strategy.MigrateDown(database.Get(), steps); err != nil {
		return fmt.Errorf("down migration failed: %w", err)
	}

	rt.Logger.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	rt, err := initMySQL()
	if err != nil {
		return err
	}
	defer rt.Close()

	strategy := migration.NewGooseStrategy(scripts.FS, "mysql", rt.Logger)
	statuses, err := strategy.Status(database.Get())
	if err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}

	renderStatus(cmd.OutOrStdout(), statuses)
	return nil
}

// initMySQL opens the database for the goose commands, which only run
// against MySQL. SQLite databases are built with `server --auto-migrate`.
func initMySQL() (*bootstrap.Runtime, error) {
	rt, err := bootstrap.Init(bootstrap.Env(env), true)
	if err != nil {
		return nil, err
	}
	if rt.Config.Database.Driver == database.DriverSQLite {
		rt.Close()
		return nil, fmt.Errorf("goose migrations require the mysql driver")
	}
	return rt, nil
}

func renderStatus(w io.Writer, statuses []migration.MigrationStatus) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Version", "Script", "Applied"})

	pending := 0
	for _, s := range statuses {
		applied := "yes"
		if !s.Applied {
			applied = "pending"
			pending++
		}
		t.AppendRow(table.Row{s.Version, filepath.Base(s.Source), applied})
	}
	t.AppendFooter(table.Row{"", "pending", pending})
	t.Render()
}

func runCreate(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap.Init(bootstrap.Env(env), false)
	if err != nil {
		return err
	}
	defer rt.Close()

	dir := rt.Config.Database.MigrationsDir
	if err := migration.Create(dir, name, rt.Logger); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Migration '%s' created in %s\n", name, dir)
	return nil
}
