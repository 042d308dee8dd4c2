package database

import (
	"path/filepath"
	"testing"
	"time"
)

// newTestHistory creates a new in-memory history with schema applied.
func newTestHistory(t *testing.T) *SQLiteHistory {
	t.Helper()

	h, err := NewSQLiteHistory(":memory:")
	if err != nil {
		t.Fatalf("failed to create history: %v", err)
	}
	t.Cleanup(func() {
		h.Close()
	})
	return h
}

var testStart = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func TestSQLiteHistory_CreateAndFinishOperation(t *testing.T) {
	h := newTestHistory(t)

	id, err := h.CreateOperation("zip", "/home/user/docs", testStart)
	if err != nil {
		t.Fatalf("CreateOperation() error = %v", err)
	}
	if id <= 0 {
		t.Fatalf("CreateOperation() id = %d, want > 0", id)
	}

	ops, err := h.ListOperations(10)
	if err != nil {
		t.Fatalf("ListOperations() error = %v", err)
	}
	if len(ops) != 1 {
		t.Fatalf("got %d ops, want 1", len(ops))
	}
	if ops[0].Status != "running" {
		t.Errorf("Status = %q, want %q", ops[0].Status, "running")
	}
	if ops[0].FinishedAt != nil {
		t.Errorf("FinishedAt = %v, want nil", ops[0].FinishedAt)
	}

	finish := testStart.Add(3 * time.Second)
	if err := h.FinishOperation(id, "zip -r docs_archive.zip /home/user/docs/*", "success", finish); err != nil {
		t.Fatalf("FinishOperation() error = %v", err)
	}

	ops, err = h.ListOperations(10)
	if err != nil {
		t.Fatalf("ListOperations() error = %v", err)
	}
	got := ops[0]
	if got.Operation != "zip" {
		t.Errorf("Operation = %q, want %q", got.Operation, "zip")
	}
	if got.Target != "/home/user/docs" {
		t.Errorf("Target = %q, want %q", got.Target, "/home/user/docs")
	}
	if got.Command != "zip -r docs_archive.zip /home/user/docs/*" {
		t.Errorf("Command = %q", got.Command)
	}
	if got.Status != "success" {
		t.Errorf("Status = %q, want %q", got.Status, "success")
	}
	if !got.StartedAt.Equal(testStart) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, testStart)
	}
	if got.FinishedAt == nil || !got.FinishedAt.Equal(finish) {
		t.Errorf("FinishedAt = %v, want %v", got.FinishedAt, finish)
	}
}

func TestSQLiteHistory_FinishOperation_UnknownID(t *testing.T) {
	h := newTestHistory(t)

	if err := h.FinishOperation(42, "tar -xvf a.tar", "success", testStart); err == nil {
		t.Error("FinishOperation() expected error for unknown id, got nil")
	}
}

func TestSQLiteHistory_ListOperations(t *testing.T) {
	t.Run("newest first with limit", func(t *testing.T) {
		h := newTestHistory(t)

		for _, target := range []string{"/a", "/b", "/c"} {
			if _, err := h.CreateOperation("tar", target, testStart); err != nil {
				t.Fatalf("CreateOperation() error = %v", err)
			}
		}

		ops, err := h.ListOperations(2)
		if err != nil {
			t.Fatalf("ListOperations() error = %v", err)
		}
		if len(ops) != 2 {
			t.Fatalf("got %d ops, want 2", len(ops))
		}
		if ops[0].Target != "/c" || ops[1].Target != "/b" {
			t.Errorf("got targets %q, %q, want /c, /b", ops[0].Target, ops[1].Target)
		}
	})

	t.Run("empty history returns empty slice", func(t *testing.T) {
		h := newTestHistory(t)

		ops, err := h.ListOperations(50)
		if err != nil {
			t.Fatalf("ListOperations() error = %v", err)
		}
		if ops == nil || len(ops) != 0 {
			t.Fatalf("ListOperations() = %v, want empty slice", ops)
		}
	})
}

func TestSQLiteHistory_MaxOperationID(t *testing.T) {
	h := newTestHistory(t)

	id, err := h.MaxOperationID()
	if err != nil {
		t.Fatalf("MaxOperationID() error = %v", err)
	}
	if id != 0 {
		t.Errorf("MaxOperationID() = %d, want 0 for empty history", id)
	}

	h.CreateOperation("extract", "/a.tar", testStart)
	last, _ := h.CreateOperation("extract", "/b.tar", testStart)

	id, err = h.MaxOperationID()
	if err != nil {
		t.Fatalf("MaxOperationID() error = %v", err)
	}
	if id != last {
		t.Errorf("MaxOperationID() = %d, want %d", id, last)
	}
}

func TestSQLiteHistory_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	h, err := NewSQLiteHistory(path)
	if err != nil {
		t.Fatalf("NewSQLiteHistory() error = %v", err)
	}
	if _, err := h.CreateOperation("zip", "/docs", testStart); err != nil {
		t.Fatalf("CreateOperation() error = %v", err)
	}
	h.Close()

	reopened, err := NewSQLiteHistory(path)
	if err != nil {
		t.Fatalf("reopening NewSQLiteHistory() error = %v", err)
	}
	defer reopened.Close()

	if err := reopened.CheckMigrations(); err != nil {
		t.Errorf("CheckMigrations() error = %v", err)
	}
	ops, err := reopened.ListOperations(10)
	if err != nil {
		t.Fatalf("ListOperations() error = %v", err)
	}
	if len(ops) != 1 || ops[0].Target != "/docs" {
		t.Errorf("ListOperations() = %v, want one operation on /docs", ops)
	}
}
