// Package runner executes synthesized archive commands.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"archie-go/internal/archie"
)

// ErrUnsupportedPlatform is returned by ShellRunner on systems without sh.
var ErrUnsupportedPlatform = errors.New("running commands through sh is not supported on " + runtime.GOOS)

// IO holds the streams a command is attached to. Nil fields use the process's own.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (s IO) withDefaults() IO {
	if s.Stdin == nil {
		s.Stdin = os.Stdin
	}
	if s.Stdout == nil {
		s.Stdout = os.Stdout
	}
	if s.Stderr == nil {
		s.Stderr = os.Stderr
	}
	return s
}

// Validate parses cmd as POSIX shell without running it.
func Validate(cmd archie.Command) error {
	if _, err := parse(cmd); err != nil {
		return err
	}
	return nil
}

func parse(cmd archie.Command) (*syntax.File, error) {
	prog, err := syntax.NewParser(syntax.Variant(syntax.LangPOSIX)).Parse(strings.NewReader(cmd.String()), "command")
	if err != nil {
		return nil, fmt.Errorf("failed to parse command: %w", err)
	}
	return prog, nil
}

// VirtualRunner interprets commands in-process. Globs and && chains are
// handled by the interpreter; tar and zip still run as external programs.
type VirtualRunner struct {
	// Dir is the working directory. Empty means the current directory.
	Dir string
	IO  IO
}

func NewVirtualRunner(dir string, streams IO) *VirtualRunner {
	return &VirtualRunner{Dir: dir, IO: streams}
}

func (r *VirtualRunner) Run(ctx context.Context, cmd archie.Command) error {
	if cmd.IsEmpty() {
		return nil
	}

	prog, err := parse(cmd)
	if err != nil {
		return err
	}

	streams := r.IO.withDefaults()
	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.StdIO(streams.Stdin, streams.Stdout, streams.Stderr),
	}
	if r.Dir != "" {
		opts = append(opts, interp.Dir(r.Dir))
	}

	sh, err := interp.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create interpreter: %w", err)
	}

	if err := sh.Run(ctx, prog); err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return &archie.CommandError{Command: cmd, ExitCode: int(status)}
		}
		return fmt.Errorf("running command: %w", err)
	}
	return nil
}

// ShellRunner hands commands to "sh -c".
type ShellRunner struct {
	Dir string
	IO  IO
}

func NewShellRunner(dir string, streams IO) *ShellRunner {
	return &ShellRunner{Dir: dir, IO: streams}
}

func (r *ShellRunner) Run(ctx context.Context, cmd archie.Command) error {
	if cmd.IsEmpty() {
		return nil
	}
	if runtime.GOOS == "windows" {
		return ErrUnsupportedPlatform
	}

	streams := r.IO.withDefaults()
	c := exec.CommandContext(ctx, "sh", "-c", cmd.String())
	c.Dir = r.Dir
	c.Stdin = streams.Stdin
	c.Stdout = streams.Stdout
	c.Stderr = streams.Stderr

	if err := c.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &archie.CommandError{Command: cmd, ExitCode: exitErr.ExitCode()}
		}
		return fmt.Errorf("running command: %w", err)
	}
	return nil
}

// New returns the runner selected by runnerType: "virtual" (or empty) or "sh".
func New(runnerType, dir string, streams IO) (archie.Runner, error) {
	switch runnerType {
	case "", "virtual":
		return NewVirtualRunner(dir, streams), nil
	case "sh":
		return NewShellRunner(dir, streams), nil
	default:
		return nil, fmt.Errorf("unknown runner type: %s", runnerType)
	}
}

var (
	_ archie.Runner = (*VirtualRunner)(nil)
	_ archie.Runner = (*ShellRunner)(nil)
)
