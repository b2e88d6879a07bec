package commands

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vsinha/bigen/pkg/apperrors"
	"github.com/vsinha/bigen/pkg/domain/entities"
	"github.com/vsinha/bigen/pkg/infrastructure/config"
	"github.com/vsinha/bigen/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/bigen/pkg/infrastructure/testhelpers"
	"github.com/vsinha/bigen/pkg/interfaces/cli/output"
)

func generate(t *testing.T, dir string) (*GenerateResult, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	result, err := NewGenerateCommand(GenerateConfig{
		Generation: testhelpers.SnapshotConfig(200),
		OutputDir:  dir,
		Precheck:   true,
		Verbose:    true,
		Logger:     zaptest.NewLogger(t),
		Stdout:     &out,
	}).Run(context.Background())
	require.NoError(t, err)
	return result, &out
}

func TestGenerateCommand_WritesSnapshotAndManifest(t *testing.T) {
	dir := t.TempDir()
	result, out := generate(t, dir)

	assert.Equal(t, dir, result.Dir)
	for _, table := range entities.Tables {
		assert.FileExists(t, filepath.Join(dir, table.FileName()))
	}

	manifest, err := csv.ReadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, result.Manifest.RunID, manifest.RunID)
	assert.Equal(t, int64(42), manifest.Seed)

	rows, ok := manifest.Rows(entities.FactSales)
	require.True(t, ok)
	assert.Equal(t, 200, rows)

	assert.Contains(t, out.String(), "🎲 Random seed: 42")
	assert.Contains(t, out.String(), "Pre-write quality score: 100.0%")
	assert.Contains(t, out.String(), "✅ Generated")
}

func TestCheckCommand_PassesOnGeneratedSnapshot(t *testing.T) {
	dir := t.TempDir()
	generate(t, dir)
	results := t.TempDir()

	var out bytes.Buffer
	err := NewCheckCommand(CheckConfig{
		Dir:        dir,
		ResultsDir: results,
		Logger:     zaptest.NewLogger(t),
		Stdout:     &out,
	}).Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Quality Score: 100.0%")
	for _, name := range []string{output.ReportFileName, output.SummaryFileName, output.IssuesFileName} {
		assert.FileExists(t, filepath.Join(results, name))
	}
}

func TestCheckCommand_FailsOnMissingFiles(t *testing.T) {
	err := NewCheckCommand(CheckConfig{
		Dir:    t.TempDir(),
		Stdout: io.Discard,
	}).Execute(context.Background())

	assert.ErrorIs(t, err, apperrors.ErrQualityFailed)
}

func TestCheckCommand_AllowWarnings(t *testing.T) {
	dir := t.TempDir()
	generate(t, dir)

	// A negative quantity is a warning, not a failure.
	path := filepath.Join(dir, entities.FactSales.FileName())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := bytes.SplitN(data, []byte("\n"), 3)
	fields := bytes.Split(lines[1], []byte(","))
	fields[6] = []byte("-3")
	lines[1] = bytes.Join(fields, []byte(","))
	require.NoError(t, os.WriteFile(path, bytes.Join(lines, []byte("\n")), 0644))

	strict := NewCheckCommand(CheckConfig{Dir: dir, Stdout: io.Discard})
	assert.ErrorIs(t, strict.Execute(context.Background()), apperrors.ErrQualityFailed)

	lenient := NewCheckCommand(CheckConfig{Dir: dir, AllowWarnings: true, Stdout: io.Discard})
	assert.NoError(t, lenient.Execute(context.Background()))
}

func TestOpenWarehouse_UnknownDriver(t *testing.T) {
	_, err := OpenWarehouse(context.Background(), config.WarehouseConfig{Driver: "sqlite"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidConfig)
}

func TestKPICommand_RequiresPostgres(t *testing.T) {
	err := NewKPICommand(KPIConfig{Warehouse: config.WarehouseConfig{Driver: "mysql"}}).Execute(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrInvalidConfig)
}

type recordingPutter struct {
	keys []string
}

func (r *recordingPutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	r.keys = append(r.keys, aws.ToString(params.Key))
	return &s3.PutObjectOutput{}, nil
}

func TestPublishCommand(t *testing.T) {
	dir := t.TempDir()
	result, _ := generate(t, dir)
	putter := &recordingPutter{}

	var out bytes.Buffer
	err := NewPublishCommand(PublishConfig{
		Dir:     dir,
		Publish: config.PublishConfig{Bucket: "bevco-bi", Prefix: "snapshots", Compress: true},
		Logger:  zaptest.NewLogger(t),
		Stdout:  &out,
		Client:  putter,
	}).Execute(context.Background())
	require.NoError(t, err)

	require.Len(t, putter.keys, len(entities.Tables)+1)
	assert.Equal(t, "snapshots/"+result.Manifest.RunID.String()+"/dim_date.csv.sz", putter.keys[0])
	assert.Contains(t, out.String(), "Published 9 objects")
}

func TestScheduleCommand(t *testing.T) {
	dir := t.TempDir()
	logger := zaptest.NewLogger(t)
	cmd := NewScheduleCommand(ScheduleConfig{
		Interval: time.Hour,
		Generate: GenerateConfig{
			Generation: testhelpers.SnapshotConfig(100),
			OutputDir:  dir,
			Logger:     logger,
			Stdout:     io.Discard,
		},
		Check:  CheckConfig{Logger: logger, Stdout: io.Discard},
		Logger: logger,
	})

	require.NoError(t, cmd.RunOnce(context.Background()))
	assert.FileExists(t, filepath.Join(dir, csv.ManifestFileName))

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	assert.NoError(t, cmd.Execute(ctx))

	bad := NewScheduleCommand(ScheduleConfig{})
	assert.ErrorIs(t, bad.Execute(context.Background()), apperrors.ErrInvalidConfig)
}
