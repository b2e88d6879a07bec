package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/vsinha/bigen/pkg/domain/entities"
)

// FileReport describes one written table
type FileReport struct {
	Table   entities.Table
	Path    string
	Rows    int
	Columns int
}

// WriteReport describes a finished snapshot write
type WriteReport struct {
	Dir          string
	UsedFallback bool
	Files        []FileReport
}

// TotalRows sums the data rows of every file
func (r *WriteReport) TotalRows() int {
	total := 0
	for _, f := range r.Files {
		total += f.Rows
	}
	return total
}

// Writer writes a snapshot as one CSV file per table
type Writer struct {
	dir         string
	fallbackDir string
	logger      *zap.Logger
}

// NewWriter creates a writer for dir. When dir cannot be written for lack of
// permission the snapshot goes to fallbackDir instead, if one is set.
func NewWriter(dir, fallbackDir string, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{dir: dir, fallbackDir: fallbackDir, logger: logger}
}

// Write serializes every table of the snapshot in entities.Tables order.
// A partially written directory is not cleaned up; rerun the write.
func (w *Writer) Write(ctx context.Context, snapshot *entities.Snapshot) (*WriteReport, error) {
	dir, usedFallback, err := w.resolveDir()
	if err != nil {
		return nil, err
	}

	report := &WriteReport{Dir: dir, UsedFallback: usedFallback}
	for _, table := range entities.Tables {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rows, err := encodeTable(snapshot, table)
		if err != nil {
			return nil, err
		}

		path := filepath.Join(dir, table.FileName())
		if err := writeFile(path, table.Columns(), rows); err != nil {
			return nil, err
		}

		report.Files = append(report.Files, FileReport{
			Table:   table,
			Path:    path,
			Rows:    len(rows),
			Columns: len(table.Columns()),
		})
		w.logger.Debug("table written", zap.String("file", path), zap.Int("rows", len(rows)))
	}

	return report, nil
}

// resolveDir picks the directory the snapshot is written to
func (w *Writer) resolveDir() (string, bool, error) {
	err := ensureWritable(w.dir)
	if err == nil {
		return w.dir, false, nil
	}
	if !errors.Is(err, fs.ErrPermission) || w.fallbackDir == "" {
		return "", false, fmt.Errorf("failed to prepare output directory %s: %w", w.dir, err)
	}

	w.logger.Warn("output directory not writable, using fallback",
		zap.String("dir", w.dir),
		zap.String("fallback", w.fallbackDir),
		zap.Error(err))

	if err := ensureWritable(w.fallbackDir); err != nil {
		return "", false, fmt.Errorf("failed to prepare fallback directory %s: %w", w.fallbackDir, err)
	}
	return w.fallbackDir, true, nil
}

// ensureWritable creates dir if missing and probes it with a temp file
func ensureWritable(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	probe, err := os.CreateTemp(dir, ".bigen-probe-*")
	if err != nil {
		return err
	}
	name := probe.Name()
	probe.Close()
	return os.Remove(name)
}

func writeFile(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write rows to %s: %w", path, err)
	}

	return file.Close()
}
