package archie

import "time"

// OperationRecord is one recorded run.
type OperationRecord struct {
	ID         int64
	Operation  string
	Target     string
	Command    string
	Status     string
	StartedAt  time.Time
	FinishedAt *time.Time
}

// History stores a log of the operations archie ran.
type History interface {
	// CreateOperation records the start of an operation and returns its ID.
	CreateOperation(operation, target string, startedAt time.Time) (int64, error)

	// FinishOperation stores the command that ran and its outcome.
	FinishOperation(id int64, command, status string, finishedAt time.Time) error

	// ListOperations returns up to limit operations, newest first.
	ListOperations(limit int) ([]*OperationRecord, error)

	// MaxOperationID returns the highest operation ID, or 0 when empty.
	MaxOperationID() (int64, error)

	// Close closes the underlying store.
	Close() error
}
