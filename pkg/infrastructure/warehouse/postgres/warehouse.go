package postgres

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/bigen/pkg/domain/entities"
	"github.com/vsinha/bigen/pkg/infrastructure/warehouse"
)

// Config holds PostgreSQL connection settings
type Config struct {
	Host           string
	Port           int
	User           string
	Password       string
	Database       string
	SSLMode        string
	MaxConnections int32
}

// URL builds the pgx connection string
func (c Config) URL() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + strconv.Itoa(c.Port),
		Path:     "/" + c.Database,
		RawQuery: "sslmode=" + url.QueryEscape(sslMode),
	}
	return u.String()
}

// Warehouse loads snapshots into a PostgreSQL star schema
type Warehouse struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// Open creates a connection pool and verifies it
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (*Warehouse, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConnections
	if poolConfig.MaxConns == 0 {
		poolConfig.MaxConns = 10
	}
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	return &Warehouse{pool: pool, logger: logger}, nil
}

// Pool exposes the connection pool for read-side queries
func (w *Warehouse) Pool() *pgxpool.Pool {
	return w.pool
}

// Migrate applies the star-schema migrations over a separate database/sql
// connection built from the pool's settings
func (w *Warehouse) Migrate(ctx context.Context) error {
	db := stdlib.OpenDB(*w.pool.Config().ConnConfig)
	defer db.Close()
	return warehouse.RunMigrations(db, "postgres", w.logger)
}

// Load replaces the warehouse contents with the snapshot in one transaction,
// streaming each table with COPY.
func (w *Warehouse) Load(ctx context.Context, snapshotID uuid.UUID, snapshot *entities.Snapshot) (*entities.LoadResult, error) {
	runID := uuid.New()
	result := &entities.LoadResult{RunID: runID, SnapshotID: snapshotID, Driver: "postgres", StartedAt: time.Now().UTC()}

	if _, err := w.pool.Exec(ctx,
		`INSERT INTO load_run_log (run_id, snapshot_id, driver, started_at, status) VALUES ($1, $2, $3, $4, 'in_progress')`,
		runID.String(), snapshotID.String(), result.Driver, result.StartedAt); err != nil {
		return nil, fmt.Errorf("failed to create load run log entry: %w", err)
	}

	if err := w.load(ctx, snapshot, result); err != nil {
		w.finishRun(runID, "failed", 0, err)
		return nil, err
	}

	result.FinishedAt = time.Now().UTC()
	w.finishRun(runID, "success", result.TotalRows(), nil)
	return result, nil
}

func (w *Warehouse) load(ctx context.Context, snapshot *entities.Snapshot, result *entities.LoadResult) error {
	tx, err := w.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var tables []string
	for _, table := range warehouse.DeleteOrder() {
		tables = append(tables, pgx.Identifier{string(table)}.Sanitize())
	}
	if _, err := tx.Exec(ctx, "TRUNCATE "+strings.Join(tables, ", ")); err != nil {
		return fmt.Errorf("failed to truncate warehouse tables: %w", err)
	}

	for _, table := range warehouse.LoadOrder() {
		startTime := time.Now()
		rows, err := warehouse.Rows(snapshot, table)
		if err != nil {
			return err
		}
		for _, row := range rows {
			for i, v := range row {
				row[i] = toPG(v)
			}
		}

		copied, err := tx.CopyFrom(ctx, pgx.Identifier{string(table)}, warehouse.Columns(table), pgx.CopyFromRows(rows))
		if err != nil {
			return fmt.Errorf("failed to copy %s: %w", table, err)
		}

		result.Tables = append(result.Tables, entities.TableLoad{Table: table, Rows: int(copied)})
		w.logger.Info("table loaded",
			zap.String("table", string(table)),
			zap.Int64("rows", copied),
			zap.Duration("elapsed", time.Since(startTime)))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit load: %w", err)
	}
	return nil
}

// finishRun closes the run log entry; failures here are only logged
func (w *Warehouse) finishRun(runID uuid.UUID, status string, rows int, loadErr error) {
	var message *string
	if loadErr != nil {
		s := loadErr.Error()
		message = &s
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := w.pool.Exec(ctx,
		`UPDATE load_run_log SET finished_at = $1, status = $2, rows_loaded = $3, error_message = $4 WHERE run_id = $5`,
		time.Now().UTC(), status, rows, message, runID.String())
	if err != nil {
		w.logger.Warn("failed to update load run log", zap.String("run_id", runID.String()), zap.Error(err))
	}
}

// Close closes the connection pool
func (w *Warehouse) Close() error {
	w.pool.Close()
	return nil
}

// toPG converts values pgx cannot encode as numeric on its own
func toPG(v any) any {
	if d, ok := v.(decimal.Decimal); ok {
		return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
	}
	return v
}
