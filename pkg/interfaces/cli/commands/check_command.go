package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/bigen/pkg/application/dto"
	"github.com/vsinha/bigen/pkg/apperrors"
	"github.com/vsinha/bigen/pkg/domain/services"
	"github.com/vsinha/bigen/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/bigen/pkg/interfaces/cli/output"
)

// CheckConfig holds configuration for the quality check
type CheckConfig struct {
	Dir           string // Snapshot directory to check
	ResultsDir    string // Where the report files go; empty skips them
	Format        string // text or json
	AllowWarnings bool   // Only FAIL makes the check fail
	Verbose       bool
	Logger        *zap.Logger
	Stdout        io.Writer
}

// CheckCommand runs the data quality checks over a snapshot directory
type CheckCommand struct {
	config  CheckConfig
	checker *services.QualityChecker
}

// NewCheckCommand creates a new check command
func NewCheckCommand(config CheckConfig) *CheckCommand {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}
	return &CheckCommand{config: config, checker: services.NewQualityChecker()}
}

// Execute runs the check and fails with ErrQualityFailed unless every file passed
func (cmd *CheckCommand) Execute(ctx context.Context) error {
	report, err := cmd.Run(ctx)
	if err != nil {
		return err
	}

	failed := !report.Passed()
	if cmd.config.AllowWarnings {
		failed = report.HasFailures()
	}
	if failed {
		return fmt.Errorf("%w: %d issues across %d files", apperrors.ErrQualityFailed, report.TotalIssues(), len(report.Files))
	}
	return nil
}

// Run checks every file and writes the report
func (cmd *CheckCommand) Run(ctx context.Context) (*dto.QualityReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cmd.config.Verbose {
		fmt.Fprintf(cmd.config.Stdout, "🔍 Checking data quality in %s\n", cmd.config.Dir)
	}

	startTime := time.Now()
	files := cmd.checker.Check(csv.NewLoader(cmd.config.Dir))
	report := dto.NewQualityReport(cmd.config.Dir, files, time.Now())

	cmd.config.Logger.Info("quality check finished",
		zap.String("dir", cmd.config.Dir),
		zap.Int("records", report.TotalRecords()),
		zap.Int("issues", report.TotalIssues()),
		zap.Float64("score", report.Score()),
		zap.Duration("elapsed", time.Since(startTime)))

	err := output.Generate(report, output.Config{
		Format:    cmd.config.Format,
		OutputDir: cmd.config.ResultsDir,
		Verbose:   cmd.config.Verbose,
		Stdout:    cmd.config.Stdout,
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}
