package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// Status is the outcome of loading one file.
type Status string

const (
	StatusLoaded  Status = "loaded"
	StatusMissing Status = "missing"
	StatusEmpty   Status = "empty"
	StatusFailed  Status = "failed"
)

// TableResult reports the outcome for one file and its table.
type TableResult struct {
	File   string `json:"file"`
	Table  string `json:"table"`
	Status Status `json:"status"`
	Rows   int    `json:"rows"`
	Error  string `json:"error,omitempty"`
}

// Result summarizes one LoadAll pass.
type Result struct {
	RunID  string        `json:"run_id"`
	Mode   WriteMode     `json:"mode"`
	Total  int           `json:"total"`
	Tables []TableResult `json:"tables"`
}

// Loader reads the known CSV files from a data directory and writes them
// to their tables one after another. Concurrent LoadAll calls run one at a
// time.
type Loader struct {
	writer  TableWriter
	dataDir string
	tables  []Table
	logger  *slog.Logger

	mu sync.Mutex
}

// NewLoader creates a loader over the standard tables. A nil logger uses
// slog.Default.
func NewLoader(w TableWriter, dataDir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{writer: w, dataDir: dataDir, tables: Tables(), logger: logger}
}

// DataDir returns the directory the loader reads from.
func (l *Loader) DataDir() string {
	return l.dataDir
}

// LoadAll runs one ingestion pass. A failure in one file is logged and
// recorded in the result; the remaining files are still loaded. The only
// error returned is context cancellation between files.
func (l *Loader) LoadAll(ctx context.Context, mode WriteMode) (*Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	res := &Result{RunID: uuid.NewString(), Mode: mode}
	log := l.logger.With("run_id", res.RunID)

	if info, err := os.Stat(l.dataDir); err != nil || !info.IsDir() {
		log.Warn("data directory not available", "dir", l.dataDir, "error", err)
	}

	log.Info("ingestion started", "dir", l.dataDir, "mode", mode)
	for _, t := range l.tables {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		tr := l.loadTable(ctx, log, t, mode)
		res.Tables = append(res.Tables, tr)
		res.Total += tr.Rows
	}
	log.Info("ingestion finished", "total_rows", res.Total)

	return res, nil
}

func (l *Loader) loadTable(ctx context.Context, log *slog.Logger, t Table, mode WriteMode) TableResult {
	tr := TableResult{File: t.File, Table: t.Name}
	log = log.With("file", t.File, "table", t.Name)

	rows, err := l.readTable(log, t)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info("csv file not found, skipping")
		tr.Status = StatusMissing
		return tr
	}
	if err != nil {
		log.Error("failed to load csv file", "error", err)
		tr.Status = StatusFailed
		tr.Error = err.Error()
		return tr
	}

	if len(rows) == 0 {
		log.Warn("no data to load")
		tr.Status = StatusEmpty
		return tr
	}

	n, err := l.writer.Write(ctx, t, rows, mode)
	if err != nil {
		log.Error("failed to write rows", "error", err)
		tr.Status = StatusFailed
		tr.Error = err.Error()
		return tr
	}

	log.Info("rows loaded", "rows", n, "mode", mode)
	tr.Status = StatusLoaded
	tr.Rows = n
	return tr
}

// readTable opens, parses and transforms one file. A missing file is
// reported as fs.ErrNotExist.
func (l *Loader) readTable(log *slog.Logger, t Table) ([]Row, error) {
	path := filepath.Join(l.dataDir, t.File)

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil {
		log.Info("csv file found", "path", path, "size", humanize.Bytes(uint64(info.Size())))
	}

	records, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", t.File, err)
	}

	if len(records) > 0 {
		log.Debug("csv columns", "columns", records[0].Columns())
		log.Debug("csv first row", "row", records[0].Map())
	}

	rows := t.Transform(records)
	log.Info("rows mapped", "rows", len(rows))
	return rows, nil
}
