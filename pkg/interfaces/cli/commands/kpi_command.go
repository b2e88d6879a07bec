package commands

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/vsinha/bigen/pkg/apperrors"
	"github.com/vsinha/bigen/pkg/infrastructure/config"
	"github.com/vsinha/bigen/pkg/infrastructure/warehouse/kpi"
	"github.com/vsinha/bigen/pkg/interfaces/cli/output"
)

// KPIConfig holds configuration for the KPI summary
type KPIConfig struct {
	Warehouse config.WarehouseConfig
	Format    string
	Logger    *zap.Logger
	Stdout    io.Writer
}

// KPICommand prints the dashboard KPI summary of a loaded warehouse
type KPICommand struct {
	config KPIConfig
}

// NewKPICommand creates a new kpi command
func NewKPICommand(config KPIConfig) *KPICommand {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return &KPICommand{config: config}
}

// Execute runs the aggregations and prints them
func (cmd *KPICommand) Execute(ctx context.Context) error {
	if cmd.config.Warehouse.Driver != "postgres" {
		return fmt.Errorf("%w: kpi summary needs the postgres warehouse, got %q",
			apperrors.ErrInvalidConfig, cmd.config.Warehouse.Driver)
	}

	reader, err := kpi.Open(PostgresConfig(cmd.config.Warehouse).URL(), cmd.config.Logger)
	if err != nil {
		return err
	}
	defer reader.Close()

	summary, err := reader.Summary(ctx)
	if err != nil {
		return err
	}

	return output.GenerateKPI(summary, output.Config{
		Format: cmd.config.Format,
		Stdout: cmd.config.Stdout,
	})
}
