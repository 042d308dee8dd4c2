package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"archie-go/internal/archie"
	"archie-go/internal/config"
	"archie-go/internal/database"
	"archie-go/internal/encryption"
	"archie-go/internal/fs"
	"archie-go/internal/runner"
)

// ignoreFileName is read from the base dir and merged with [discovery] ignore.
const ignoreFileName = "ignore"

// ArchieApp is the application layer between the CLI and archie.Service.
// It constructs all dependencies from config, exposes operations that accept
// raw string paths, and closes the history store and log file on Close.
type ArchieApp struct {
	cfg     *config.Config
	history *database.SQLiteHistory
	fsmgr   archie.FilesystemManager
	service *archie.Service
	logFile *os.File
}

// NewArchieApp creates a fully wired ArchieApp from the given config.
// Commands run attached to streams. The caller must call Close when done.
func NewArchieApp(cfg *config.Config, streams runner.IO) (*ArchieApp, error) {
	fsmgr := fs.NewOSFilesystemManager()

	namer, err := newNamer(cfg.Naming, fsmgr, archie.UUIDGenerator{})
	if err != nil {
		return nil, err
	}

	ignoreLines, err := fs.ParseIgnoreFile(filepath.Join(cfg.BaseDir, ignoreFileName))
	if err != nil {
		return nil, err
	}
	ignore := fs.NewIgnoreMatcher(cfg.Discovery.Ignore, ignoreLines)

	outputDir := cfg.Naming.OutputDir
	if outputDir == "." {
		outputDir = ""
	}
	synth := archie.NewSynthesizer(namer, outputDir, ignore)

	run, err := runner.New(cfg.Runner.Type, "", streams)
	if err != nil {
		return nil, err
	}

	history, err := database.NewHistoryFromConfig(cfg.History)
	if err != nil {
		return nil, fmt.Errorf("creating history: %w", err)
	}
	if err := history.CheckMigrations(); err != nil {
		history.Close()
		return nil, fmt.Errorf("history schema out of date: %w", err)
	}

	opID := time.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.LogDir, opID, cfg.LogLevel, streams.Stderr)
	if err != nil {
		history.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	sealer := encryption.NewAgeSealer(cfg.Encryption)
	svc := archie.NewService(fsmgr, synth, run, history, sealer, &slogAdapter{l: logger}, archie.RealClock{})

	return &ArchieApp{
		cfg:     cfg,
		history: history,
		fsmgr:   fsmgr,
		service: svc,
		logFile: logFile,
	}, nil
}

// newNamer builds the archive namer selected by the naming strategy.
func newNamer(cfg config.NamingConfig, fsmgr archie.FilesystemManager, ids archie.IDGenerator) (archie.Namer, error) {
	switch cfg.Strategy {
	case "", "derived":
		dir := cfg.OutputDir
		if dir == "" {
			dir = "."
		}
		return &archie.CollisionSafeNamer{FS: fsmgr, OutputDir: dir}, nil
	case "plain":
		return archie.PlainNamer{}, nil
	case "unique":
		return &archie.UniqueNamer{IDs: ids}, nil
	default:
		return nil, fmt.Errorf("unknown naming strategy: %s", cfg.Strategy)
	}
}

// Command returns the command for op without running it.
func (a *ArchieApp) Command(op archie.Operation, rawPath, rawFiles string) (archie.Command, error) {
	return a.service.Command(archie.Request{Op: op, Path: rawPath, Files: rawFiles})
}

// Execute synthesizes and runs the command for op. beforeRun, if not nil, is
// handed the exact command about to run. The command is returned even when
// running it failed.
func (a *ArchieApp) Execute(ctx context.Context, op archie.Operation, rawPath, rawFiles string, beforeRun func(archie.Command)) (archie.Command, error) {
	return a.service.Execute(ctx, archie.Request{Op: op, Path: rawPath, Files: rawFiles, BeforeRun: beforeRun})
}

// Seal encrypts the archive at rawPath and returns the sealed file's path.
func (a *ArchieApp) Seal(rawPath, passphrase string) (string, error) {
	return a.service.Seal(rawPath, passphrase)
}

// Unseal decrypts a sealed archive and returns the restored path.
func (a *ArchieApp) Unseal(rawPath, passphrase string) (string, error) {
	return a.service.Unseal(rawPath, passphrase)
}

// History returns the most recent operations, newest first.
func (a *ArchieApp) History(limit int) ([]*archie.OperationRecord, error) {
	return a.service.History(limit)
}

// DoctorReport describes the environment archie runs in.
type DoctorReport struct {
	Tools          []runner.ToolStatus
	HistoryPath    string
	LastOperation  int64
	IgnorePatterns int
}

// Doctor checks for the external tools and the history store. The report is
// filled in as far as possible even when an error is returned.
func (a *ArchieApp) Doctor() (*DoctorReport, error) {
	report := &DoctorReport{HistoryPath: a.history.Path()}

	tools, toolErr := runner.CheckTools(nil)
	report.Tools = tools

	lastID, histErr := a.history.MaxOperationID()
	report.LastOperation = lastID

	ignoreLines, _ := fs.ParseIgnoreFile(filepath.Join(a.cfg.BaseDir, ignoreFileName))
	report.IgnorePatterns = fs.NewIgnoreMatcher(a.cfg.Discovery.Ignore, ignoreLines).Len()

	return report, errors.Join(toolErr, histErr)
}

// Close closes the history store and the log file.
func (a *ArchieApp) Close() error {
	var firstErr error
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			firstErr = fmt.Errorf("closing history: %w", err)
		}
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}
