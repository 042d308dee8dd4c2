package app

import (
	"fmt"
	"os"
	"path/filepath"

	"archie-go/internal/database"
)

// Environment variables that move archie's files.
const (
	envConfigPath = "ARCHIE_CONFIG_PATH" // config file, default ~/.config/archie.toml
	envHome       = "ARCHIE_HOME"        // data dir, default ~/.local/share/archie
)

// GetDefaults returns the paths archie uses when the config does not say
// otherwise:
//   - config_path: the TOML config file
//   - base_dir:    data dir holding logs, history and the ignore file
//   - log_dir:     <base_dir>/log, where archie.log is appended to
//   - history_db:  <base_dir>/db/history.db, the operation history
//   - ignore_file: <base_dir>/ignore, one extract-all ignore pattern per line
func GetDefaults() (map[string]string, error) {
	configPath, err := fromEnvOrHome(envConfigPath, ".config", "archie.toml")
	if err != nil {
		return nil, err
	}
	baseDir, err := fromEnvOrHome(envHome, ".local", "share", "archie")
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
		"history_db":  filepath.Join(baseDir, "db", database.HistoryFileName),
		"ignore_file": filepath.Join(baseDir, ignoreFileName),
	}, nil
}

// fromEnvOrHome returns $env if set, else the path below the home directory.
func fromEnvOrHome(env string, underHome ...string) (string, error) {
	if path := os.Getenv(env); path != "" {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory for %s: %w", env, err)
	}
	return filepath.Join(append([]string{homeDir}, underHome...)...), nil
}
