package cleanup

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"testing"
)

type fakeResult struct {
	rowsAffected int64
}

func (r *fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r *fakeResult) RowsAffected() (int64, error) { return r.rowsAffected, nil }

// Querier インターフェースに対するモック実装。
// QueryContextはuploadDirを空にしたテストでは呼ばれない。
type mockQuerier struct {
	execCalled bool
	query      string
	args       []interface{}
	result     sql.Result
	err        error
}

func (m *mockQuerier) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	m.execCalled = true
	m.query = query
	m.args = args
	return m.result, m.err
}

func (m *mockQuerier) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, sql.ErrConnDone
}

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

func TestNewCleanupJob_SetsRetentionDays(t *testing.T) {
	var buf bytes.Buffer
	job := NewCleanupJob(&mockQuerier{result: &fakeResult{}}, newTestLogger(&buf), "")

	if job.RetentionDays != 365 {
		t.Errorf("RetentionDays = %d, want 365", job.RetentionDays)
	}
}

func TestCleanupJob_Run_ExecutesDeleteQuery(t *testing.T) {
	var buf bytes.Buffer
	mock := &mockQuerier{result: &fakeResult{rowsAffected: 5}}
	job := NewCleanupJob(mock, newTestLogger(&buf), "")

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !mock.execCalled {
		t.Fatal("delete query should be executed")
	}
	if !strings.Contains(mock.query, "DELETE FROM contact_messages") {
		t.Errorf("query = %q", mock.query)
	}
	if len(mock.args) != 1 || mock.args[0] != "365 days" {
		t.Errorf("args = %v, want [365 days]", mock.args)
	}
}

func TestCleanupJob_Run_CustomRetention(t *testing.T) {
	var buf bytes.Buffer
	mock := &mockQuerier{result: &fakeResult{}}
	job := NewCleanupJob(mock, newTestLogger(&buf), "")
	job.RetentionDays = 30

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if mock.args[0] != "30 days" {
		t.Errorf("args = %v, want [30 days]", mock.args)
	}
}

func TestCleanupJob_Run_PropagatesExecError(t *testing.T) {
	var buf bytes.Buffer
	mock := &mockQuerier{err: sql.ErrConnDone}
	job := NewCleanupJob(mock, newTestLogger(&buf), "")

	if err := job.Run(context.Background()); err == nil {
		t.Error("exec error should be propagated")
	}
}

func TestAddFilename(t *testing.T) {
	set := make(map[string]bool)
	addFilename(set, "http://localhost:8080/uploads/abc.png")
	addFilename(set, "not-an-upload-url")
	addFilename(set, "http://localhost:8080/uploads/")

	if !set["abc.png"] {
		t.Error("abc.png should be referenced")
	}
	if len(set) != 1 {
		t.Errorf("set = %v, want only abc.png", set)
	}
}
