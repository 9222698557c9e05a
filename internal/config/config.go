// Package config loads the caretaker configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/tailscale/hujson"

	"github.com/Tiliavir/caretaker-log/internal/catalog"
	"github.com/Tiliavir/caretaker-log/internal/store"
)

// Config is the root configuration, stored in ~/.caretaker/config.json.
// The file is JSON with comments and trailing commas allowed.
type Config struct {
	Storage  StorageConfig      `json:"storage"`
	Snapshot SnapshotConfig     `json:"snapshot"`
	Timezone string             `json:"timezone"`
	Log      LogConfig          `json:"log"`
	Catalog  []catalog.Category `json:"catalog,omitempty"`
}

// StorageConfig selects the key-value store backend.
type StorageConfig struct {
	// Driver is "file" or "sqlite".
	Driver string `json:"driver"`
	// Path is the data directory (file) or database file (sqlite). Empty uses
	// the default location under the caretaker home.
	Path string `json:"path"`
}

// SnapshotConfig says where the external snapshot is probed. BaseURL wins
// over Dir when both are set.
type SnapshotConfig struct {
	Dir     string `json:"dir"`
	BaseURL string `json:"base_url"`
	Token   string `json:"token"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Env   string `json:"env"`
	Level string `json:"level"`
}

const (
	DefaultDriver   = "file"
	DefaultSnapshot = "."
	DefaultLogEnv   = "development"
	DefaultLogLevel = "warn"
)

var errConfigInvalid = errors.New("invalid config file")

// Default returns a Config pre-filled with the built-in defaults.
func Default() Config {
	return Config{
		Storage:  StorageConfig{Driver: DefaultDriver},
		Snapshot: SnapshotConfig{Dir: DefaultSnapshot},
		Log:      LogConfig{Env: DefaultLogEnv, Level: DefaultLogLevel},
	}
}

// configTemplate is the annotated config written on first run.
const configTemplate = `// caretaker configuration
//
// All settings are optional. Comments and trailing commas are allowed.
{
  // Where log entries and comments are kept.
  "storage": {
    // "file" keeps one JSON file per collection, "sqlite" a single database.
    "driver": "file",
    // Data directory (file) or database path (sqlite). Empty = ~/.caretaker.
    "path": "",
  },

  // External snapshot probed on every start. The first of logs.json,
  // reports/caretaker-logs-export.json and caretaker-logs-export.json that
  // holds a non-empty JSON array overrides local records with the same id.
  "snapshot": {
    "dir": ".",
    // Set to probe over HTTP instead, e.g. "https://example.org/caretaker/".
    "base_url": "",
    // Optional bearer token sent with HTTP probes.
    "token": "",
  },

  // IANA timezone for entry dates, e.g. "America/Vancouver". Empty = local.
  "timezone": "",

  "log": {
    // "production" logs JSON, anything else human readable console output.
    "env": "development",
    "level": "warn",
  },

  // Uncomment to replace the built-in task catalog. Categories named
  // "Daily (Winter)", "Daily (All-Year)", "Weekly", "Monthly" and
  // "Twice-Yearly" feed the report tables.
  // "catalog": [
  //   {"name": "Daily (All-Year)", "tasks": ["Emptying (4) Waste cans"]},
  // ],
}
`

// Path returns the default config file path.
func Path() (string, error) {
	dir, err := store.BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the default config file, creating it on first run.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. A missing file is created from the
// annotated template and the defaults are returned. Zero fields are filled
// from the defaults so callers always get a usable Config.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg, err := parse(data)
	if err != nil {
		return Default(), fmt.Errorf("%w %s: %w\nTip: delete the file to regenerate defaults", errConfigInvalid, path, err)
	}
	return cfg, nil
}

func parse(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	def := Default()
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = def.Storage.Driver
	}
	if cfg.Snapshot.Dir == "" {
		cfg.Snapshot.Dir = def.Snapshot.Dir
	}
	if cfg.Log.Env == "" {
		cfg.Log.Env = def.Log.Env
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if _, err := cfg.Location(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Location resolves Timezone. Empty means the machine's local zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// TaskCatalog returns the configured catalog, or the built-in one when none
// is configured.
func (c Config) TaskCatalog() *catalog.Catalog {
	if len(c.Catalog) == 0 {
		return catalog.Default()
	}
	return catalog.New(c.Catalog)
}

// StoreOptions maps the storage section to store.Options.
func (c Config) StoreOptions() store.Options {
	return store.Options{Driver: c.Storage.Driver, Path: c.Storage.Path}
}

func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
