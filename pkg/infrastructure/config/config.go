package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/vsinha/bigen/pkg/apperrors"
	"github.com/vsinha/bigen/pkg/application/services/generation"
	"github.com/vsinha/bigen/pkg/domain/entities"
)

// DefaultPath is the config file read when no path is given
const DefaultPath = "bigen.yaml"

// Config holds all configuration for bigen.
// Values come from an optional YAML file with environment variable overrides.
// Secrets only come from environment variables.
type Config struct {
	// Generation
	Seed      int64  `yaml:"seed" env:"BIGEN_SEED" env-default:"42"`
	StartDate string `yaml:"start_date" env:"BIGEN_START_DATE" env-default:"2022-01-01"`
	EndDate   string `yaml:"end_date" env:"BIGEN_END_DATE" env-default:"2025-12-31"`
	SalesFrom string `yaml:"sales_from" env:"BIGEN_SALES_FROM" env-default:""` // empty draws from the whole range
	SalesRows int    `yaml:"sales_rows" env:"BIGEN_SALES_ROWS" env-default:"36400"`

	// Directories
	OutputDir   string `yaml:"output_dir" env:"BIGEN_OUTPUT_DIR" env-default:"data/master"`
	FallbackDir string `yaml:"fallback_dir" env:"BIGEN_FALLBACK_DIR" env-default:"output/data"`
	ResultsDir  string `yaml:"results_dir" env:"BIGEN_RESULTS_DIR" env-default:"data/processed"`

	Log       LogConfig       `yaml:"log"`
	Warehouse WarehouseConfig `yaml:"warehouse"`
	Publish   PublishConfig   `yaml:"publish"`
	Schedule  ScheduleConfig  `yaml:"schedule"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level" env:"BIGEN_LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"BIGEN_LOG_FORMAT" env-default:"console"`
}

// WarehouseConfig holds the star-schema database the snapshot is loaded into.
type WarehouseConfig struct {
	Driver         string `yaml:"driver" env:"BIGEN_WAREHOUSE_DRIVER" env-default:"postgres"`
	Host           string `yaml:"host" env:"BIGEN_WAREHOUSE_HOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"BIGEN_WAREHOUSE_PORT" env-default:"5432"`
	User           string `yaml:"user" env:"BIGEN_WAREHOUSE_USER" env-default:"bigen"`
	Password       string `yaml:"-" env:"BIGEN_WAREHOUSE_PASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"BIGEN_WAREHOUSE_DATABASE" env-default:"bevco_dw"`
	SSLMode        string `yaml:"ssl_mode" env:"BIGEN_WAREHOUSE_SSL_MODE" env-default:"disable"`
	MaxConnections int32  `yaml:"max_connections" env:"BIGEN_WAREHOUSE_MAX_CONNECTIONS" env-default:"10"`
}

// PublishConfig holds the object storage target for published snapshots.
type PublishConfig struct {
	Region   string `yaml:"region" env:"BIGEN_PUBLISH_REGION" env-default:"af-south-1"`
	Bucket   string `yaml:"bucket" env:"BIGEN_PUBLISH_BUCKET" env-default:""`
	Prefix   string `yaml:"prefix" env:"BIGEN_PUBLISH_PREFIX" env-default:"bevco/snapshots"`
	Compress bool   `yaml:"compress" env:"BIGEN_PUBLISH_COMPRESS" env-default:"false"`
}

// ScheduleConfig holds the regeneration interval, e.g. "24h".
type ScheduleConfig struct {
	Interval string `yaml:"interval" env:"BIGEN_SCHEDULE_INTERVAL" env-default:"24h"`
}

// Load reads configuration from path with environment variable overrides.
// A missing file is not an error; defaults and the environment apply.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	cfg := &Config{}
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else if errors.Is(err, fs.ErrNotExist) {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	} else {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields that are not checked where they are used
func (c *Config) Validate() error {
	if _, err := c.Generation(); err != nil {
		return err
	}
	if _, err := c.Schedule.Duration(); err != nil {
		return err
	}
	switch c.Warehouse.Driver {
	case "postgres", "mysql":
	default:
		return fmt.Errorf("%w: warehouse driver must be postgres or mysql, got %q", apperrors.ErrInvalidConfig, c.Warehouse.Driver)
	}
	return nil
}

// Generation converts the generation fields into a generation.Config
func (c *Config) Generation() (generation.Config, error) {
	start, err := parseDate("start_date", c.StartDate)
	if err != nil {
		return generation.Config{}, err
	}
	end, err := parseDate("end_date", c.EndDate)
	if err != nil {
		return generation.Config{}, err
	}

	var salesFrom time.Time
	if c.SalesFrom != "" {
		if salesFrom, err = parseDate("sales_from", c.SalesFrom); err != nil {
			return generation.Config{}, err
		}
	}

	gen := generation.Config{
		Seed:      c.Seed,
		StartDate: start,
		EndDate:   end,
		SalesFrom: salesFrom,
		SalesRows: c.SalesRows,
	}
	if err := gen.Validate(); err != nil {
		return generation.Config{}, err
	}
	return gen, nil
}

// Duration parses the schedule interval
func (s ScheduleConfig) Duration() (time.Duration, error) {
	d, err := time.ParseDuration(s.Interval)
	if err != nil {
		return 0, fmt.Errorf("%w: schedule interval %q: %v", apperrors.ErrInvalidConfig, s.Interval, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: schedule interval must be positive, got %s", apperrors.ErrInvalidConfig, d)
	}
	return d, nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(entities.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q is not a YYYY-MM-DD date", apperrors.ErrInvalidConfig, field, value)
	}
	return t, nil
}
