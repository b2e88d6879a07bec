package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vsinha/bigen/pkg/domain/entities"
	"github.com/vsinha/bigen/pkg/infrastructure/warehouse"
)

const progressEvery = 1000

// Config holds MySQL connection settings
type Config struct {
	Host           string
	Port           int
	User           string
	Password       string
	Database       string
	MaxConnections int
}

// DSN builds the driver connection string
func (c Config) DSN() string {
	cfg := gomysql.NewConfig()
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", c.Host, c.Port)
	cfg.DBName = c.Database
	cfg.ParseTime = true
	cfg.MultiStatements = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN()
}

// Warehouse loads snapshots into a MySQL star schema
type Warehouse struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open connects to MySQL and verifies the connection
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (*Warehouse, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql warehouse: %w", err)
	}

	maxConns := cfg.MaxConnections
	if maxConns == 0 {
		maxConns = 10
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns / 2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping mysql warehouse: %w", err)
	}

	return New(db, logger), nil
}

// New wraps an open database handle
func New(db *sql.DB, logger *zap.Logger) *Warehouse {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Warehouse{db: db, logger: logger}
}

// Migrate applies the star-schema migrations
func (w *Warehouse) Migrate(ctx context.Context) error {
	return warehouse.RunMigrations(w.db, "mysql", w.logger)
}

// Load replaces the warehouse contents with the snapshot in one transaction.
// Any row error rolls the whole load back.
func (w *Warehouse) Load(ctx context.Context, snapshotID uuid.UUID, snapshot *entities.Snapshot) (*entities.LoadResult, error) {
	runID := uuid.New()
	result := &entities.LoadResult{RunID: runID, SnapshotID: snapshotID, Driver: "mysql", StartedAt: time.Now().UTC()}

	if _, err := w.db.ExecContext(ctx,
		`INSERT INTO load_run_log (run_id, snapshot_id, driver, started_at, status) VALUES (?, ?, ?, ?, 'in_progress')`,
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
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// TRUNCATE commits implicitly in MySQL, DELETE keeps the replace atomic
	if _, err := tx.ExecContext(ctx, "UPDATE dim_employee SET reports_to = NULL"); err != nil {
		return fmt.Errorf("failed to detach employee hierarchy: %w", err)
	}
	for _, table := range warehouse.DeleteOrder() {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+string(table)); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, table := range warehouse.LoadOrder() {
		rows, err := warehouse.Rows(snapshot, table)
		if err != nil {
			return err
		}
		if err := w.insertTable(ctx, tx, table, rows); err != nil {
			return err
		}
		result.Tables = append(result.Tables, entities.TableLoad{Table: table, Rows: len(rows)})
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit load: %w", err)
	}
	return nil
}

func (w *Warehouse) insertTable(ctx context.Context, tx *sql.Tx, table entities.Table, rows [][]any) error {
	startTime := time.Now()
	columns := warehouse.Columns(table)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), placeholders)

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert into %s: %w", table, err)
	}
	defer stmt.Close()

	for i, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return fmt.Errorf("failed to insert row %d into %s: %w", i+1, table, err)
		}
		if (i+1)%progressEvery == 0 {
			w.logger.Debug("loading", zap.String("table", string(table)), zap.Int("rows", i+1), zap.Int("total", len(rows)))
		}
	}

	w.logger.Info("table loaded",
		zap.String("table", string(table)),
		zap.Int("rows", len(rows)),
		zap.Duration("elapsed", time.Since(startTime)))
	return nil
}

// finishRun closes the run log entry; failures here are only logged
func (w *Warehouse) finishRun(runID uuid.UUID, status string, rows int, loadErr error) {
	var message any
	if loadErr != nil {
		message = loadErr.Error()
	}
	_, err := w.db.Exec(
		`UPDATE load_run_log SET finished_at = ?, status = ?, rows_loaded = ?, error_message = ? WHERE run_id = ?`,
		time.Now().UTC(), status, rows, message, runID.String())
	if err != nil {
		w.logger.Warn("failed to update load run log", zap.String("run_id", runID.String()), zap.Error(err))
	}
}

// Close closes the database handle
func (w *Warehouse) Close() error {
	return w.db.Close()
}
