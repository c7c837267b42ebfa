package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// AppName names the per-user configuration directory
const AppName = "textshortcut"

type Config struct {
	Injection InjectionConfig `toml:"injection"`
	Log       LogConfig       `toml:"log"`
	History   HistoryConfig   `toml:"history"`
	Web       WebConfig       `toml:"web"`
	Tray      TrayConfig      `toml:"tray"`

	// Dir holds the config file and the history database. Not read from TOML.
	Dir string `toml:"-"`
}

type InjectionConfig struct {
	Method string `toml:"method"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type HistoryConfig struct {
	Enabled bool `toml:"enabled"`
}

type WebConfig struct {
	Enabled bool `toml:"enabled"`
	Port    int  `toml:"port"`
}

type TrayConfig struct {
	Enabled bool `toml:"enabled"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Injection: InjectionConfig{Method: "type"},
		Log:       LogConfig{Level: "info", Format: "text"},
		History:   HistoryConfig{Enabled: false},
		Web:       WebConfig{Enabled: false, Port: 8765},
		Tray:      TrayConfig{Enabled: true},
	}
}

// Dir returns the per-user configuration directory
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// Load reads config.toml from the per-user configuration directory
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(dir)
}

// LoadFrom reads dir/config.toml. A missing file yields the defaults and
// nothing is written to disk.
func LoadFrom(dir string) (*Config, error) {
	cfg := Default()
	cfg.Dir = dir

	path := filepath.Join(dir, "config.toml")
	md, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config keys in %s: %v", path, undecoded)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Path returns the config file location
func (c *Config) Path() string {
	return filepath.Join(c.Dir, "config.toml")
}

// Save writes the configuration to Path, creating Dir if needed
func (c *Config) Save() error {
	if err := os.MkdirAll(c.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(c.Path())
	if err != nil {
		return err
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(c)
}

// Validate checks enumerated values and ranges
func (c *Config) Validate() error {
	switch c.Injection.Method {
	case "type", "paste":
	default:
		return fmt.Errorf("injection.method must be \"type\" or \"paste\", got %q", c.Injection.Method)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %s", c.Log.Level)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format: %s", c.Log.Format)
	}

	if c.Web.Enabled && (c.Web.Port <= 0 || c.Web.Port > 65535) {
		return fmt.Errorf("web.port out of range: %d", c.Web.Port)
	}

	return nil
}
