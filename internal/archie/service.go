package archie

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Operation outcomes stored in history.
const (
	StatusRunning = "running"
	StatusSuccess = "success"
	StatusError   = "error"
	StatusNoop    = "noop"
)

const sealedExt = ".age"

// Runner executes a synthesized command.
type Runner interface {
	// Run executes cmd and returns a *CommandError when it exits non-zero.
	Run(ctx context.Context, cmd Command) error
}

// Sealer encrypts and decrypts archives with a passphrase.
type Sealer interface {
	SealFile(src, dst, passphrase string) error
	UnsealFile(src, dst, passphrase string) error
}

// Request describes one user action. Path is the raw input path; Files is the
// raw path of the files to add and is only used by OpAppend, where Path names
// the archive.
type Request struct {
	Op    Operation
	Path  string
	Files string

	// BeforeRun, if set, receives the synthesized command right before it
	// runs. It is also called with an empty command for a no-op.
	BeforeRun func(Command)
}

// Service is the orchestration layer the CLI and the menu talk to. It resolves
// paths, synthesizes commands, runs them and records every run in history.
type Service struct {
	fsmgr   FilesystemManager
	synth   *Synthesizer
	runner  Runner
	history History
	sealer  Sealer
	logger  Logger
	clock   Clock
}

// NewService creates a Service. history and sealer may be nil: runs are then
// not recorded and sealing is unavailable. A nil logger discards output and a
// nil clock uses the real time.
func NewService(fsmgr FilesystemManager, synth *Synthesizer, runner Runner, history History, sealer Sealer, logger Logger, clock Clock) *Service {
	if synth == nil {
		synth = &Synthesizer{}
	}
	if logger == nil {
		logger = NewNopLogger()
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &Service{
		fsmgr:   fsmgr,
		synth:   synth,
		runner:  runner,
		history: history,
		sealer:  sealer,
		logger:  logger,
		clock:   clock,
	}
}

// Command resolves the request's paths and returns the command that would
// carry it out. Nothing is executed or recorded.
func (s *Service) Command(req Request) (Command, error) {
	if req.Op == OpAppend {
		archive, err := s.resolveArchive(req.Path)
		if err != nil {
			return "", err
		}
		files, err := Resolve(s.fsmgr, req.Files)
		if err != nil {
			return "", err
		}
		return s.synth.Append(NewFilePath(archive), files)
	}

	p, err := Resolve(s.fsmgr, req.Path)
	if err != nil {
		return "", err
	}

	switch req.Op {
	case OpExtract:
		return s.synth.Extract(p)
	case OpZip:
		return s.synth.Zip(p, false)
	case OpZipEncrypted:
		return s.synth.Zip(p, true)
	case OpTar:
		return s.synth.Tar(p)
	case OpExtractAll:
		return s.synth.ExtractAll(s.fsmgr, p)
	default:
		return "", fmt.Errorf("%w: %v", ErrInvalidOperation, req.Op)
	}
}

// Execute synthesizes the request's command once and runs exactly that
// command. The run is recorded in history before the command starts and
// finished with its outcome, failed synthesis included. An empty command is
// recorded as a no-op and not run.
func (s *Service) Execute(ctx context.Context, req Request) (Command, error) {
	target := req.Path
	if req.Op == OpAppend {
		target = req.Path + " <- " + req.Files
	}

	opID, err := s.startOperation(req.Op, target)
	if err != nil {
		return "", err
	}

	cmd, err := s.Command(req)
	if err != nil {
		s.finishOperation(opID, cmd, StatusError)
		return "", err
	}
	if req.BeforeRun != nil {
		req.BeforeRun(cmd)
	}
	if cmd.IsEmpty() {
		s.logger.Info("nothing to do", "operation", req.Op.String(), "path", req.Path)
		s.finishOperation(opID, cmd, StatusNoop)
		return cmd, nil
	}

	s.logger.Info("running command", "operation", req.Op.String(), "command", cmd.String())
	if err := s.runner.Run(ctx, cmd); err != nil {
		s.logger.Error("command failed", "command", cmd.String(), "error", err)
		s.finishOperation(opID, cmd, StatusError)
		return cmd, err
	}

	s.finishOperation(opID, cmd, StatusSuccess)
	return cmd, nil
}

// Seal encrypts the archive at rawPath into "<archive>.age" next to it and
// returns the new path. The source archive is left in place.
func (s *Service) Seal(rawPath, passphrase string) (string, error) {
	if s.sealer == nil {
		return "", errors.New("sealing is not configured")
	}
	src, err := s.resolveArchive(rawPath)
	if err != nil {
		return "", err
	}

	dst := src + sealedExt
	if err := s.ensureAbsent(dst); err != nil {
		return "", err
	}
	if err := s.sealer.SealFile(src, dst, passphrase); err != nil {
		return "", fmt.Errorf("sealing %s: %w", src, err)
	}

	s.logger.Info("archive sealed", "archive", src, "sealed", dst)
	return dst, nil
}

// Unseal decrypts a "<archive>.age" file back to "<archive>" and returns that path.
func (s *Service) Unseal(rawPath, passphrase string) (string, error) {
	if s.sealer == nil {
		return "", errors.New("sealing is not configured")
	}
	src, err := s.resolveArchive(rawPath)
	if err != nil {
		return "", err
	}

	dst, ok := strings.CutSuffix(src, sealedExt)
	if !ok || dst == "" {
		return "", fmt.Errorf("not a sealed archive (missing %s suffix): %s", sealedExt, src)
	}
	if err := s.ensureAbsent(dst); err != nil {
		return "", err
	}
	if err := s.sealer.UnsealFile(src, dst, passphrase); err != nil {
		return "", fmt.Errorf("unsealing %s: %w", src, err)
	}

	s.logger.Info("archive unsealed", "sealed", src, "archive", dst)
	return dst, nil
}

// History returns the most recent operations, newest first.
func (s *Service) History(limit int) ([]*OperationRecord, error) {
	if s.history == nil {
		return nil, nil
	}
	ops, err := s.history.ListOperations(limit)
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}
	return ops, nil
}

func (s *Service) resolveArchive(rawPath string) (string, error) {
	if strings.Contains(rawPath, wildcard) {
		return "", pathError(rawPath, ErrWildcardOnFile)
	}
	p, err := Resolve(s.fsmgr, rawPath)
	if err != nil {
		return "", err
	}
	if p.IsDir() {
		return "", pathError(p.Base(), ErrArchiveIsDirectory)
	}
	return p.Base(), nil
}

func (s *Service) ensureAbsent(path string) error {
	exists, _, err := s.fsmgr.Stat(path)
	if err != nil {
		return &PathError{Path: path, Err: ErrCouldNotCheckFile, Cause: err}
	}
	if exists {
		return fmt.Errorf("refusing to overwrite existing file: %s", path)
	}
	return nil
}

func (s *Service) startOperation(op Operation, target string) (int64, error) {
	if s.history == nil {
		return 0, nil
	}
	id, err := s.history.CreateOperation(op.String(), target, s.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("recording operation: %w", err)
	}
	return id, nil
}

// finishOperation logs rather than returns history failures so they never
// mask the outcome of the command itself.
func (s *Service) finishOperation(id int64, cmd Command, status string) {
	if s.history == nil {
		return
	}
	if err := s.history.FinishOperation(id, cmd.String(), status, s.clock.Now()); err != nil {
		s.logger.Warn("failed to finish operation record", "id", id, "error", err)
	}
}
