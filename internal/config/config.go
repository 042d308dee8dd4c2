package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for archie.
type Config struct {
	BaseDir    string           `toml:"base_dir"`
	LogDir     string           `toml:"log_dir"`
	LogLevel   string           `toml:"log_level"` // stderr threshold: "debug", "info", "warn" or "error"
	Naming     NamingConfig     `toml:"naming"`
	Discovery  DiscoveryConfig  `toml:"discovery"`
	History    HistoryConfig    `toml:"history"`
	Runner     RunnerConfig     `toml:"runner"`
	Encryption EncryptionConfig `toml:"encryption"`
}

// NamingConfig controls how new archives are named.
type NamingConfig struct {
	Strategy  string `toml:"strategy"`   // "derived" (default), "plain" or "unique"
	OutputDir string `toml:"output_dir"` // directory new archives are written to; "." is the working directory
}

// DiscoveryConfig holds settings for extract-all.
type DiscoveryConfig struct {
	Ignore []string `toml:"ignore"`
}

// HistoryConfig represents configuration for the operation history store.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type HistoryConfig struct {
	Type    string `toml:"type"`               // "sqlite" or "memory"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// RunnerConfig selects how commands are executed.
type RunnerConfig struct {
	Type string `toml:"type"` // "virtual" (in-process shell, default) or "sh"
}

// EncryptionConfig holds settings for sealing archives with a passphrase.
type EncryptionConfig struct {
	WorkFactor int `toml:"work_factor"` // scrypt log2 work factor; 0 uses the library default
}

// NewConfig creates a Config with defaults rooted at baseDir.
func NewConfig(baseDir string) *Config {
	return &Config{
		BaseDir:  baseDir,
		LogDir:   filepath.Join(baseDir, "log"),
		LogLevel: "warn",
		Naming: NamingConfig{
			Strategy:  "derived",
			OutputDir: ".",
		},
		History: HistoryConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(baseDir, "db"),
		},
		Runner: RunnerConfig{Type: "virtual"},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// Load reads the config at path. A missing file is not an error: the defaults
// from NewConfig(baseDir) are returned instead. Values absent from the file
// keep their defaults.
func Load(path, baseDir string) (*Config, error) {
	cfg := NewConfig(baseDir)

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if _, err := toml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the enumerated fields.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level: %s", c.LogLevel)
	}
	switch c.Naming.Strategy {
	case "", "derived", "plain", "unique":
	default:
		return fmt.Errorf("unknown naming strategy: %s", c.Naming.Strategy)
	}
	switch c.Runner.Type {
	case "", "virtual", "sh":
	default:
		return fmt.Errorf("unknown runner type: %s", c.Runner.Type)
	}
	if c.Encryption.WorkFactor < 0 || c.Encryption.WorkFactor > 30 {
		return fmt.Errorf("work_factor out of range: %d", c.Encryption.WorkFactor)
	}
	return nil
}

// writeToFile writes a Config to the specified file path, creating its directory.
func writeToFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
