package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/bigen/pkg/apperrors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bigen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 36400, cfg.SalesRows)
	assert.Equal(t, "data/master", cfg.OutputDir)
	assert.Equal(t, "postgres", cfg.Warehouse.Driver)
	assert.Equal(t, 5432, cfg.Warehouse.Port)

	gen, err := cfg.Generation()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), gen.StartDate)
	assert.True(t, gen.SalesFrom.IsZero())
}

func TestLoad_FileWithEnvOverride(t *testing.T) {
	path := writeConfig(t, `
seed: 7
start_date: "2022-01-01"
end_date: "2023-12-31"
sales_rows: 5000
warehouse:
  driver: mysql
  port: 3306
schedule:
  interval: 6h
`)
	t.Setenv("BIGEN_SALES_ROWS", "100")
	t.Setenv("BIGEN_WAREHOUSE_PASSWORD", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 100, cfg.SalesRows)
	assert.Equal(t, "mysql", cfg.Warehouse.Driver)
	assert.Equal(t, 3306, cfg.Warehouse.Port)
	assert.Equal(t, "secret", cfg.Warehouse.Password)

	interval, err := cfg.Schedule.Duration()
	require.NoError(t, err)
	assert.Equal(t, 6*time.Hour, interval)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad date", "start_date: 01/01/2022\n"},
		{"end before start", "start_date: \"2024-01-01\"\nend_date: \"2023-01-01\"\n"},
		{"bad interval", "schedule:\n  interval: daily\n"},
		{"bad driver", "warehouse:\n  driver: sqlite\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, apperrors.ErrInvalidConfig)
		})
	}
}
