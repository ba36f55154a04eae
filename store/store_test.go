package store

import (
	"path/filepath"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := setupTestStore(t)

	runs := []Execution{
		{Target: "web", Host: "web-1", Remote: "local", Command: "uptime", ExitStatus: 0, DurationMs: 12},
		{Target: "db", Host: "db-1", Remote: "local", Command: "pg_isready", ExitStatus: 2, DurationMs: 40},
		{Target: "web", Host: "web-1", Remote: "local", Command: "whoami", ExitStatus: 0, DurationMs: 8},
	}
	for i := range runs {
		if err := s.Record(&runs[i]); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	recent, err := s.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(recent))
	}
	if recent[0].Command != "whoami" {
		t.Errorf("expected newest first, got %q", recent[0].Command)
	}
	if recent[0].CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be stamped")
	}
}

func TestRecentHonorsLimit(t *testing.T) {
	s := setupTestStore(t)

	for range 5 {
		if err := s.Record(&Execution{Target: "web", Host: "web-1", Remote: "local", Command: "true"}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	recent, err := s.Recent(2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("expected 2 rows, got %d", len(recent))
	}
}

func TestRecentForTarget(t *testing.T) {
	s := setupTestStore(t)

	if err := s.Record(&Execution{Target: "web", Host: "web-1", Remote: "local", Command: "uptime"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := s.Record(&Execution{Target: "db", Host: "db-1", Remote: "local", Command: "psql"}); err != nil {
		t.Fatalf("record: %v", err)
	}

	rows, err := s.RecentForTarget("db", 10)
	if err != nil {
		t.Fatalf("recent for target: %v", err)
	}
	if len(rows) != 1 || rows[0].Command != "psql" {
		t.Errorf("unexpected rows: %+v", rows)
	}
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer func() { _ = s.Close() }()

	if err := s.Record(&Execution{Target: "web", Host: "web-1", Remote: "local", Command: "true"}); err != nil {
		t.Errorf("record after nested open: %v", err)
	}
}
