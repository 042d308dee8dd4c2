package testutil

import (
	"context"
	"sync"

	"archie-go/internal/archie"
)

// RecordingRunner records commands instead of running them. Commands listed
// in ExitCodes fail with that exit code.
type RecordingRunner struct {
	mu        sync.Mutex
	commands  []archie.Command
	ExitCodes map[archie.Command]int
}

func NewRecordingRunner() *RecordingRunner {
	return &RecordingRunner{ExitCodes: make(map[archie.Command]int)}
}

func (r *RecordingRunner) Run(_ context.Context, cmd archie.Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = append(r.commands, cmd)
	if code, ok := r.ExitCodes[cmd]; ok && code != 0 {
		return &archie.CommandError{Command: cmd, ExitCode: code}
	}
	return nil
}

// Commands returns every command passed to Run, in order.
func (r *RecordingRunner) Commands() []archie.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]archie.Command(nil), r.commands...)
}

var _ archie.Runner = (*RecordingRunner)(nil)
