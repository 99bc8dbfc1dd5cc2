// Package config loads the optional qrterm config file.
//
// The file lives at ~/.config/qrterm/config.toml (XDG aware) and provides
// defaults for rendering and for the serve command. Command-line flags
// override anything set here; a missing file is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/qrterm/qrterm/pkg/qr"
)

// appName is the directory name used under the XDG config root.
const appName = "qrterm"

// Duration wraps time.Duration so TOML values like "30m" parse directly.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Config holds rendering and serve defaults.
type Config struct {
	Level     string `toml:"level"`      // recovery level: L, M, Q, H
	QuietZone int    `toml:"quiet_zone"` // border width in modules
	Inverse   bool   `toml:"inverse"`    // swap dark/light for dark terminals
	Plain     bool   `toml:"plain"`      // no ANSI colors

	Serve Serve `toml:"serve"`
}

// Serve holds defaults for the HTTP surface.
type Serve struct {
	Addr      string   `toml:"addr"`
	Cache     string   `toml:"cache"` // file, redis, or none
	RedisAddr string   `toml:"redis_addr"`
	TTL       Duration `toml:"ttl"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Level:     qr.LevelMedium.String(),
		QuietZone: qr.DefaultQuietZone,
		Serve: Serve{
			Addr:      ":8080",
			Cache:     "file",
			RedisAddr: "localhost:6379",
			TTL:       Duration(time.Hour),
		},
	}
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file returns the defaults with no error; a file that
// exists but fails to parse is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		var err error
		if path, err = Path(); err != nil {
			return cfg, nil
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}

	if _, err := qr.ParseLevel(cfg.Level); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Path returns the config file location using the XDG standard
// (~/.config/qrterm/config.toml).
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
