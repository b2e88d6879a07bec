package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/vsinha/bigen/pkg/apperrors"
	"github.com/vsinha/bigen/pkg/infrastructure/config"
)

// ScheduleConfig holds configuration for scheduled regeneration
type ScheduleConfig struct {
	Interval  time.Duration
	Generate  GenerateConfig
	Check     CheckConfig
	Load      bool // Load each passing snapshot into the warehouse
	Warehouse config.WarehouseConfig
	Logger    *zap.Logger
}

// ScheduleCommand regenerates and checks the snapshot on an interval
type ScheduleCommand struct {
	config ScheduleConfig
}

// NewScheduleCommand creates a new schedule command
func NewScheduleCommand(config ScheduleConfig) *ScheduleCommand {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return &ScheduleCommand{config: config}
}

// Execute starts the scheduler and blocks until ctx is cancelled.
// The first run starts immediately.
func (cmd *ScheduleCommand) Execute(ctx context.Context) error {
	if cmd.config.Interval <= 0 {
		return fmt.Errorf("%w: schedule interval must be positive", apperrors.ErrInvalidConfig)
	}

	scheduler := gocron.NewScheduler(time.UTC)
	logger := cmd.config.Logger

	logger.Info("starting scheduler", zap.Duration("interval", cmd.config.Interval))

	_, err := scheduler.Every(cmd.config.Interval).SingletonMode().Do(func() {
		if err := cmd.RunOnce(ctx); err != nil {
			logger.Error("scheduled run failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule regeneration: %w", err)
	}

	scheduler.StartAsync()
	<-ctx.Done()
	scheduler.Stop()

	logger.Info("scheduler stopped")
	return nil
}

// RunOnce generates a snapshot, checks it and optionally loads it
func (cmd *ScheduleCommand) RunOnce(ctx context.Context) error {
	startTime := time.Now()

	generated, err := NewGenerateCommand(cmd.config.Generate).Run(ctx)
	if err != nil {
		return err
	}

	check := cmd.config.Check
	check.Dir = generated.Dir
	if err := NewCheckCommand(check).Execute(ctx); err != nil {
		if errors.Is(err, apperrors.ErrQualityFailed) {
			cmd.config.Logger.Warn("snapshot failed quality checks, skipping load",
				zap.String("run_id", generated.Manifest.RunID.String()))
		}
		return err
	}

	if cmd.config.Load {
		err := NewLoadCommand(LoadConfig{
			Dir:       generated.Dir,
			Warehouse: cmd.config.Warehouse,
			Logger:    cmd.config.Logger,
			Stdout:    cmd.config.Generate.Stdout,
		}).Execute(ctx)
		if err != nil {
			return err
		}
	}

	cmd.config.Logger.Info("scheduled run finished",
		zap.String("run_id", generated.Manifest.RunID.String()),
		zap.String("dir", generated.Dir),
		zap.Duration("elapsed", time.Since(startTime)))
	return nil
}
