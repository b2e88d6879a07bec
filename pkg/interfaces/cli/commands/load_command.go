package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vsinha/bigen/pkg/apperrors"
	"github.com/vsinha/bigen/pkg/domain/repositories"
	"github.com/vsinha/bigen/pkg/infrastructure/config"
	"github.com/vsinha/bigen/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/bigen/pkg/infrastructure/warehouse/mysql"
	"github.com/vsinha/bigen/pkg/infrastructure/warehouse/postgres"
)

// LoadConfig holds configuration for a warehouse load
type LoadConfig struct {
	Dir       string
	Warehouse config.WarehouseConfig
	Verbose   bool
	Logger    *zap.Logger
	Stdout    io.Writer
}

// LoadCommand loads a snapshot directory into the warehouse
type LoadCommand struct {
	config LoadConfig
}

// NewLoadCommand creates a new load command
func NewLoadCommand(config LoadConfig) *LoadCommand {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}
	return &LoadCommand{config: config}
}

// Execute migrates the warehouse and replaces its contents with the snapshot
func (cmd *LoadCommand) Execute(ctx context.Context) error {
	out := cmd.config.Stdout
	loader := csv.NewLoader(cmd.config.Dir)

	snapshotID := uuid.New()
	manifest, err := csv.ReadManifest(cmd.config.Dir)
	switch {
	case err == nil:
		snapshotID = manifest.RunID
	case errors.Is(err, fs.ErrNotExist):
		cmd.config.Logger.Warn("no manifest found, using a new snapshot id", zap.String("dir", cmd.config.Dir))
	default:
		return err
	}

	if cmd.config.Verbose {
		fmt.Fprintf(out, "📂 Reading snapshot from %s\n", loader.Dir())
	}
	snapshot, err := loader.LoadSnapshot()
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	warehouse, err := OpenWarehouse(ctx, cmd.config.Warehouse, cmd.config.Logger)
	if err != nil {
		return err
	}
	defer warehouse.Close()

	if cmd.config.Verbose {
		fmt.Fprintf(out, "🗄️  Migrating %s warehouse %s\n", cmd.config.Warehouse.Driver, cmd.config.Warehouse.Database)
	}
	if err := warehouse.Migrate(ctx); err != nil {
		return err
	}

	result, err := warehouse.Load(ctx, snapshotID, snapshot)
	if err != nil {
		return fmt.Errorf("failed to load warehouse: %w", err)
	}

	for _, tl := range result.Tables {
		fmt.Fprintf(out, "📦 %-18s %8d rows\n", tl.Table, tl.Rows)
	}
	fmt.Fprintf(out, "✅ Loaded %d rows into %s in %s (run %s, snapshot %s)\n",
		result.TotalRows(), result.Driver, result.Duration(), result.RunID, result.SnapshotID)
	return nil
}

// OpenWarehouse connects to the configured warehouse driver
func OpenWarehouse(ctx context.Context, cfg config.WarehouseConfig, logger *zap.Logger) (repositories.WarehouseRepository, error) {
	switch cfg.Driver {
	case "postgres":
		return postgres.Open(ctx, PostgresConfig(cfg), logger)
	case "mysql":
		return mysql.Open(ctx, mysql.Config{
			Host:           cfg.Host,
			Port:           cfg.Port,
			User:           cfg.User,
			Password:       cfg.Password,
			Database:       cfg.Database,
			MaxConnections: int(cfg.MaxConnections),
		}, logger)
	default:
		return nil, fmt.Errorf("%w: unsupported warehouse driver %q", apperrors.ErrInvalidConfig, cfg.Driver)
	}
}

// PostgresConfig maps the warehouse settings onto the postgres loader config
func PostgresConfig(cfg config.WarehouseConfig) postgres.Config {
	return postgres.Config{
		Host:           cfg.Host,
		Port:           cfg.Port,
		User:           cfg.User,
		Password:       cfg.Password,
		Database:       cfg.Database,
		SSLMode:        cfg.SSLMode,
		MaxConnections: cfg.MaxConnections,
	}
}
