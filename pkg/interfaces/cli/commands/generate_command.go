package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vsinha/bigen/pkg/application/dto"
	"github.com/vsinha/bigen/pkg/application/services/generation"
	"github.com/vsinha/bigen/pkg/apperrors"
	"github.com/vsinha/bigen/pkg/domain/entities"
	"github.com/vsinha/bigen/pkg/domain/services"
	"github.com/vsinha/bigen/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/bigen/pkg/infrastructure/repositories/memory"
)

// GenerateConfig holds configuration for snapshot generation
type GenerateConfig struct {
	Generation  generation.Config
	OutputDir   string // Directory the CSV files are written to
	FallbackDir string // Used when OutputDir is not writable
	Precheck    bool   // Run the quality checks in memory before writing
	Verbose     bool
	Logger      *zap.Logger
	Stdout      io.Writer
}

// GenerateResult describes a finished generation run
type GenerateResult struct {
	Dir      string
	Manifest *csv.Manifest
	Report   *csv.WriteReport
}

// GenerateCommand generates a star-schema snapshot and writes it as CSV
type GenerateCommand struct {
	config GenerateConfig
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(config GenerateConfig) *GenerateCommand {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}
	return &GenerateCommand{config: config}
}

// Execute runs the generate command
func (cmd *GenerateCommand) Execute(ctx context.Context) error {
	_, err := cmd.Run(ctx)
	return err
}

// Run generates, writes and records one snapshot
func (cmd *GenerateCommand) Run(ctx context.Context) (*GenerateResult, error) {
	out := cmd.config.Stdout
	startTime := time.Now()

	generator, err := generation.NewGenerator(cmd.config.Generation, cmd.config.Logger)
	if err != nil {
		return nil, err
	}
	gen := generator.Config()

	if cmd.config.Verbose {
		fmt.Fprintf(out, "🔧 Generating Bevco snapshot %s to %s with %d sales rows\n",
			gen.StartDate.Format(entities.DateLayout), gen.EndDate.Format(entities.DateLayout), gen.SalesRows)
		fmt.Fprintf(out, "📁 Output directory: %s\n", cmd.config.OutputDir)
		fmt.Fprintf(out, "🎲 Random seed: %d\n", generator.Seed())
	}

	snapshot, err := generator.Generate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate snapshot: %w", err)
	}

	if cmd.config.Precheck {
		if err := cmd.precheck(snapshot); err != nil {
			return nil, err
		}
	}

	writer := csv.NewWriter(cmd.config.OutputDir, cmd.config.FallbackDir, cmd.config.Logger)
	report, err := writer.Write(ctx, snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to write snapshot: %w", err)
	}
	if report.UsedFallback {
		fmt.Fprintf(out, "⚠️  %s is not writable, files written to %s\n", cmd.config.OutputDir, report.Dir)
	}

	manifest := csv.NewManifest(uuid.New(), generator.Seed(), gen.StartDate, gen.EndDate, gen.SalesRows, report)
	if _, err := csv.WriteManifest(report.Dir, manifest); err != nil {
		return nil, err
	}

	for _, f := range report.Files {
		fmt.Fprintf(out, "📦 %-22s %8d rows\n", f.Table.FileName(), f.Rows)
	}
	fmt.Fprintf(out, "✅ Generated %d rows in %s (run %s)\n",
		report.TotalRows(), time.Since(startTime).Round(time.Millisecond), manifest.RunID)

	return &GenerateResult{Dir: report.Dir, Manifest: manifest, Report: report}, nil
}

// precheck runs the quality checks over the encoded snapshot without touching disk
func (cmd *GenerateCommand) precheck(snapshot *entities.Snapshot) error {
	repo := memory.NewTableRepository()
	for _, table := range entities.Tables {
		raw, err := csv.EncodeRawTable(snapshot, table)
		if err != nil {
			return err
		}
		if err := repo.SaveTable(raw); err != nil {
			return err
		}
	}

	report := dto.NewQualityReport("memory", services.NewQualityChecker().Check(repo), time.Now())
	if cmd.config.Verbose {
		fmt.Fprintf(cmd.config.Stdout, "🔍 Pre-write quality score: %.1f%%\n", report.Score())
	}
	if !report.Passed() {
		return fmt.Errorf("%w: generated snapshot has %d issues", apperrors.ErrQualityFailed, report.TotalIssues())
	}
	return nil
}
