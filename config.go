package bench

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config describes where benchmark results live and how to read them.
type Config struct {
	Prefix      string            `yaml:"prefix"`
	Separator   string            `yaml:"separator"`
	MaxFileSize string            `yaml:"max_file_size"`
	Snapshot    string            `yaml:"snapshot"` // LevelDB snapshot dir, replaces Backends
	Backends    map[string]string `yaml:"backends"` // backend id -> result file
}

// DefaultConfig returns the result files of the sqlite, mysql, postgres and
// redis comparison runs.
func DefaultConfig() Config {
	return Config{
		Prefix:    DefaultPrefix,
		Separator: ",",
		Backends: map[string]string{
			"sqlite":   "resultsqlite.csv",
			"mysql":    "resultmsql.csv",
			"postgres": "resultpostgres1.csv",
			"redis":    "resultredis.csv",
		},
	}
}

// LoadConfig reads a YAML config file. Fields missing from the file keep their
// default values. Relative result paths are resolved against the directory of
// the config file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	var fc Config
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parse config YAML: %w", err)
	}
	if fc.Prefix != "" {
		cfg.Prefix = fc.Prefix
	}
	if fc.Separator != "" {
		cfg.Separator = fc.Separator
	}
	cfg.MaxFileSize = fc.MaxFileSize
	if fc.Snapshot != "" {
		cfg.Snapshot = resolve(path, fc.Snapshot)
	}
	if len(fc.Backends) > 0 {
		cfg.Backends = make(map[string]string, len(fc.Backends))
		for id, p := range fc.Backends {
			cfg.Backends[id] = resolve(path, p)
		}
	}
	return cfg, cfg.Validate()
}

// LoadConfigEnv loads the optional .env file and then the config named by
// DBB_CONFIG, falling back to the defaults. DBB_PREFIX overrides the prefix.
func LoadConfigEnv(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil {
		slog.Debug("Skipping .env ...", "path", envFile, "error", err)
	}
	cfg := DefaultConfig()
	if p := os.Getenv("DBB_CONFIG"); p != "" {
		var err error
		if cfg, err = LoadConfig(p); err != nil {
			return cfg, err
		}
	}
	if prefix := os.Getenv("DBB_PREFIX"); prefix != "" {
		cfg.Prefix = prefix
	}
	return cfg, cfg.Validate()
}

// Validate checks that the config can be used for loading.
func (cfg Config) Validate() error {
	if cfg.Prefix == "" {
		return errors.New("prefix must not be empty")
	}
	if len([]rune(cfg.Separator)) != 1 {
		return fmt.Errorf("separator must be a single character, got %q", cfg.Separator)
	}
	if cfg.Snapshot == "" && len(cfg.Backends) == 0 {
		return errors.New("no backends configured")
	}
	for id, p := range cfg.Backends {
		if id == "" || p == "" {
			return fmt.Errorf("invalid backend entry %q: %q", id, p)
		}
	}
	if _, err := ParseSize(cfg.MaxFileSize); err != nil {
		return fmt.Errorf("max_file_size: %w", err)
	}
	return nil
}

// BackendIDs returns the configured backend ids, sorted.
func (cfg Config) BackendIDs() []string {
	ids := make([]string, 0, len(cfg.Backends))
	for id := range cfg.Backends {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ReadOptions derives the loader options from the config.
func (cfg Config) ReadOptions() ReadOptions {
	limit, _ := ParseSize(cfg.MaxFileSize)
	sep := ','
	if r := []rune(cfg.Separator); len(r) > 0 {
		sep = r[0]
	}
	return ReadOptions{
		Prefix:      cfg.Prefix,
		Separator:   sep,
		MaxFileSize: limit,
	}
}

func resolve(configPath, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(configPath), p)
}
