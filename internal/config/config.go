// Package config loads the saplings YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"go.hasen.dev/saplings"
)

// EnvPath names the environment variable holding the config file path.
const EnvPath = "SAPLINGS_CONFIG"

type Config struct {
	// DataDir holds the save file, its backups and the history database.
	DataDir string `yaml:"data_dir"`
	// SaveFile is relative to DataDir unless absolute.
	SaveFile      string                `yaml:"save_file"`
	FormatVersion uint16                `yaml:"format_version"`
	LogLevel      string                `yaml:"log_level"`
	Rewards       saplings.RewardLayout `yaml:"rewards"`
	Backups       Backups               `yaml:"backups"`
	History       History               `yaml:"history"`
}

type Backups struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
	Keep    int    `yaml:"keep"`
}

type History struct {
	Enabled bool   `yaml:"enabled"`
	DB      string `yaml:"db"`
}

func Default() Config {
	return Config{
		DataDir:       ".",
		SaveFile:      saplings.DefaultFileName,
		FormatVersion: saplings.FormatVersion,
		LogLevel:      "info",
		Backups:       Backups{Dir: "backups", Keep: 5},
		History:       History{DB: "history.db"},
	}
}

// Load reads path over the defaults. An empty path, or a missing file, yields
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.SaveFile == "" {
		return errors.New("save_file is empty")
	}
	if c.FormatVersion == 0 {
		return errors.New("format_version must be positive")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	for i, n := range c.Rewards.PowerupPieces {
		if n < 0 {
			return fmt.Errorf("rewards.powerup_pieces[%d] is negative", i)
		}
	}
	for i, n := range c.Rewards.CollectablePieces {
		if n < 0 {
			return fmt.Errorf("rewards.collectable_pieces[%d] is negative", i)
		}
	}
	if c.Backups.Keep < 0 {
		return errors.New("backups.keep is negative")
	}
	return nil
}

func (c Config) SavePath() string {
	return c.resolve(c.SaveFile)
}

func (c Config) BackupDir() string {
	return c.resolve(c.Backups.Dir)
}

func (c Config) HistoryPath() string {
	return c.resolve(c.History.DB)
}

func (c Config) Codec() saplings.Codec {
	return saplings.Codec{Version: c.FormatVersion}
}

func (c Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.DataDir, p)
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log_level %q", s)
}
