package ingest

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secopslab/incidentdb/testutil"
)

const (
	incidentsCSV = "Date,Type,Title,Description\n" +
		"2024-03-01,Phishing,Fake invoice,Email with link\n" +
		"2024-03-02,Malware,Trojan,Detected on laptop\n" +
		",DDoS,Outage,Edge saturated\n"
	datasetsCSV = "dataset_name,source_organization,last_updated,description\n" +
		"Census,ONS,2023-06-30,Population\n" +
		"Weather,Met Office,,Daily readings\n"
	ticketsCSV = "Category,Customer Input\n" +
		"Network,VPN drops\n" +
		"Hardware,Printer jam\n" +
		",Reset password\n" +
		"Software,Install request\n"
)

func writeAll(t *testing.T, dir string) {
	t.Helper()
	testutil.WriteDataFile(t, dir, "cyber_incidents.csv", incidentsCSV)
	testutil.WriteDataFile(t, dir, "datasets_metadata.csv", datasetsCSV)
	testutil.WriteDataFile(t, dir, "it_tickets.csv", ticketsCSV)
}

func newTestLoader(t *testing.T, conn *sql.DB, dir string) (*Loader, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewLoader(NewSQLWriter(conn), dir, logger), &buf
}

func statuses(res *Result) map[string]Status {
	m := make(map[string]Status, len(res.Tables))
	for _, tr := range res.Tables {
		m[tr.Table] = tr.Status
	}
	return m
}

func TestLoadAll_AllFiles(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	dir := t.TempDir()
	writeAll(t, dir)

	loader, logs := newTestLoader(t, conn, dir)
	res, err := loader.LoadAll(context.Background(), WriteModeReplace)
	require.NoError(t, err)

	assert.Equal(t, 3+2+4, res.Total)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, WriteModeReplace, res.Mode)
	require.Len(t, res.Tables, 3)

	sum := 0
	for _, tr := range res.Tables {
		assert.Equal(t, StatusLoaded, tr.Status, tr.Table)
		assert.Empty(t, tr.Error)
		sum += tr.Rows
		assert.EqualValues(t, tr.Rows, testutil.CountRows(t, conn, tr.Table))
	}
	assert.Equal(t, sum, res.Total)

	assert.Contains(t, logs.String(), "csv columns")
	assert.Contains(t, logs.String(), "run_id="+res.RunID)
}

func TestLoadAll_StoredValues(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	dir := t.TempDir()
	writeAll(t, dir)

	loader, _ := newTestLoader(t, conn, dir)
	_, err := loader.LoadAll(context.Background(), WriteModeReplace)
	require.NoError(t, err)

	var date, desc, severity string
	err = conn.QueryRow(`SELECT date_reported, description, severity FROM cyber_incidents WHERE incident_type = 'DDoS'`).
		Scan(&date, &desc, &severity)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", date)
	assert.Equal(t, "Outage - Edge saturated", desc)
	assert.Equal(t, "Medium", severity)

	var lastUpdated string
	var recordCount int64
	err = conn.QueryRow(`SELECT last_updated, record_count FROM datasets_metadata WHERE dataset_name = 'Weather'`).
		Scan(&lastUpdated, &recordCount)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", lastUpdated)
	assert.Zero(t, recordCount)

	rows, err := conn.Query(`SELECT ticket_id, priority FROM it_tickets ORDER BY id`)
	require.NoError(t, err)
	defer rows.Close()

	var ids, priorities []string
	for rows.Next() {
		var id, priority string
		require.NoError(t, rows.Scan(&id, &priority))
		ids = append(ids, id)
		priorities = append(priorities, priority)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"TICKET_1000", "TICKET_1001", "TICKET_1002", "TICKET_1003"}, ids)
	assert.Equal(t, []string{"Network", "Hardware", "Medium", "Software"}, priorities)
}

func TestLoadAll_MissingFile(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	dir := t.TempDir()
	testutil.WriteDataFile(t, dir, "cyber_incidents.csv", incidentsCSV)
	testutil.WriteDataFile(t, dir, "it_tickets.csv", ticketsCSV)

	loader, logs := newTestLoader(t, conn, dir)
	res, err := loader.LoadAll(context.Background(), WriteModeReplace)
	require.NoError(t, err)

	assert.Equal(t, 3+4, res.Total)
	assert.Equal(t, StatusMissing, statuses(res)["datasets_metadata"])
	assert.Zero(t, testutil.CountRows(t, conn, "datasets_metadata"))
	assert.Contains(t, logs.String(), "csv file not found")
}

func TestLoadAll_MissingDataDir(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	loader, _ := newTestLoader(t, conn, filepath.Join(t.TempDir(), "nope"))
	res, err := loader.LoadAll(context.Background(), WriteModeReplace)
	require.NoError(t, err)

	assert.Zero(t, res.Total)
	for _, tr := range res.Tables {
		assert.Equal(t, StatusMissing, tr.Status)
	}
}

func TestLoadAll_MalformedFileContinues(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	dir := t.TempDir()
	writeAll(t, dir)
	testutil.WriteDataFile(t, dir, "datasets_metadata.csv", "dataset_name,source_organization\nCensus,ONS,extra\n")

	loader, logs := newTestLoader(t, conn, dir)
	res, err := loader.LoadAll(context.Background(), WriteModeReplace)
	require.NoError(t, err)

	assert.Equal(t, 3+4, res.Total)
	st := statuses(res)
	assert.Equal(t, StatusLoaded, st["cyber_incidents"])
	assert.Equal(t, StatusFailed, st["datasets_metadata"])
	assert.Equal(t, StatusLoaded, st["it_tickets"], "files after the failure are still loaded")
	assert.NotEmpty(t, res.Tables[1].Error)
	assert.Contains(t, logs.String(), "failed to load csv file")
}

func TestLoadAll_EmptyFiles(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	dir := t.TempDir()
	testutil.WriteDataFile(t, dir, "cyber_incidents.csv", "Date,Type,Title,Description\n")
	testutil.WriteDataFile(t, dir, "datasets_metadata.csv", "")
	testutil.WriteDataFile(t, dir, "it_tickets.csv", ticketsCSV)

	loader, _ := newTestLoader(t, conn, dir)
	res, err := loader.LoadAll(context.Background(), WriteModeReplace)
	require.NoError(t, err)

	st := statuses(res)
	assert.Equal(t, StatusEmpty, st["cyber_incidents"])
	assert.Equal(t, StatusFailed, st["datasets_metadata"])
	assert.Equal(t, StatusLoaded, st["it_tickets"])
	assert.Equal(t, 4, res.Total)
}

func TestLoadAll_ReplaceVsAppend(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	dir := t.TempDir()
	writeAll(t, dir)
	loader, _ := newTestLoader(t, conn, dir)
	ctx := context.Background()

	_, err := loader.LoadAll(ctx, WriteModeReplace)
	require.NoError(t, err)
	_, err = loader.LoadAll(ctx, WriteModeReplace)
	require.NoError(t, err)
	assert.EqualValues(t, 4, testutil.CountRows(t, conn, "it_tickets"), "replace keeps counts stable")

	res, err := loader.LoadAll(ctx, WriteModeAppend)
	require.NoError(t, err)
	assert.Equal(t, 9, res.Total)
	assert.EqualValues(t, 8, testutil.CountRows(t, conn, "it_tickets"), "append adds to existing rows")
	assert.EqualValues(t, 6, testutil.CountRows(t, conn, "cyber_incidents"))
}

func TestLoadAll_ReplaceClearsIncidentsCreatedElsewhere(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	testutil.CreateTestIncident(t, conn, "Phishing", "Open")

	dir := t.TempDir()
	writeAll(t, dir)
	loader, _ := newTestLoader(t, conn, dir)

	_, err := loader.LoadAll(context.Background(), WriteModeReplace)
	require.NoError(t, err)
	assert.EqualValues(t, 3, testutil.CountRows(t, conn, "cyber_incidents"))
}

type failingWriter struct {
	failOn string
	inner  TableWriter
}

func (w failingWriter) Write(ctx context.Context, t Table, rows []Row, mode WriteMode) (int, error) {
	if t.Name == w.failOn {
		return 0, errors.New("disk full")
	}
	return w.inner.Write(ctx, t, rows, mode)
}

func TestLoadAll_WriteFailureContinues(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	dir := t.TempDir()
	writeAll(t, dir)

	w := failingWriter{failOn: "cyber_incidents", inner: NewSQLWriter(conn)}
	loader := NewLoader(w, dir, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	res, err := loader.LoadAll(context.Background(), WriteModeReplace)
	require.NoError(t, err)

	assert.Equal(t, 2+4, res.Total)
	assert.Equal(t, StatusFailed, res.Tables[0].Status)
	assert.Equal(t, "disk full", res.Tables[0].Error)
	assert.Zero(t, testutil.CountRows(t, conn, "cyber_incidents"))
}

// overlapWriter counts writers running at the same time
type overlapWriter struct {
	inner   TableWriter
	active  atomic.Int32
	maxSeen atomic.Int32
}

func (w *overlapWriter) Write(ctx context.Context, t Table, rows []Row, mode WriteMode) (int, error) {
	n := w.active.Add(1)
	defer w.active.Add(-1)
	for {
		seen := w.maxSeen.Load()
		if n <= seen || w.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	return w.inner.Write(ctx, t, rows, mode)
}

func TestLoadAll_ConcurrentReplaceRunsSerialized(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	dir := t.TempDir()
	writeAll(t, dir)

	w := &overlapWriter{inner: NewSQLWriter(conn)}
	loader := NewLoader(w, dir, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := loader.LoadAll(context.Background(), WriteModeReplace); err != nil {
				t.Errorf("LoadAll: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), w.maxSeen.Load())
	assert.Equal(t, int64(3), testutil.CountRows(t, conn, "cyber_incidents"))
	assert.Equal(t, int64(4), testutil.CountRows(t, conn, "it_tickets"))
}

func TestLoadAll_Cancelled(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	dir := t.TempDir()
	writeAll(t, dir)
	loader, _ := newTestLoader(t, conn, dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := loader.LoadAll(ctx, WriteModeReplace)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, res.Total)
}

func TestSQLWriter_RollsBackOnFailure(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	testutil.CreateTestIncident(t, conn, "Phishing", "Open")

	// NULL violates the NOT NULL constraint on incident_type
	rows := []Row{
		{"date_reported": "2024-01-01", "incident_type": "Malware", "severity": "Medium", "status": "Open", "description": "", "reported_by": "System"},
		{"date_reported": "2024-01-01", "incident_type": nil, "severity": "Medium", "status": "Open", "description": "", "reported_by": "System"},
	}

	_, err := NewSQLWriter(conn).Write(context.Background(), cyberIncidents, rows, WriteModeReplace)
	require.Error(t, err)

	// The delete and first insert are rolled back with the failed row
	assert.EqualValues(t, 1, testutil.CountRows(t, conn, "cyber_incidents"))
}
