package database

import (
	"fmt"
	"os"
	"path/filepath"

	"archie-go/internal/config"
)

// HistoryFileName is the database file created inside data_dir.
const HistoryFileName = "history.db"

// NewHistoryFromConfig creates the history store selected by cfg.Type.
func NewHistoryFromConfig(cfg config.HistoryConfig) (*SQLiteHistory, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite history")
		}
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data dir: %w", err)
		}
		return NewSQLiteHistory(filepath.Join(cfg.DataDir, HistoryFileName))
	case "memory":
		return NewSQLiteHistory(memoryPath)
	default:
		return nil, fmt.Errorf("unknown history type: %s", cfg.Type)
	}
}
