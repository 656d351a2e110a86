// Package config loads mpdkeys settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Notification modes.
const (
	NotifyAuto   = "auto"   // notify when XDG_SEAT is set
	NotifyAlways = "always" // always notify
	NotifyNever  = "never"  // print to stdout
)

type Config struct {
	Socket  string `toml:"socket"`
	IconDir string `toml:"icon_dir"`
	Notify  string `toml:"notify"`
	Timeout int32  `toml:"timeout"` // notification expiry in ms, -1 for the server default
	DB      string `toml:"db"`
}

// Default returns the settings used when nothing else is given.
func Default(home string) Config {
	return Config{
		Socket:  filepath.Join(home, ".config", "mpd", "socket"),
		IconDir: filepath.Join(home, ".local", "share", "icons"),
		Notify:  NotifyAuto,
		Timeout: -1,
		DB:      filepath.Join(home, ".cache", "mpdkeys.db"),
	}
}

// DefaultPath is where Load looks when no file is named.
func DefaultPath(home string) string {
	return filepath.Join(home, ".config", "mpdkeys", "config.toml")
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path, home string) (Config, error) {
	cfg := Default(home)
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Notify {
	case NotifyAuto, NotifyAlways, NotifyNever:
	default:
		return fmt.Errorf("notify must be %q, %q or %q, not %q", NotifyAuto, NotifyAlways, NotifyNever, c.Notify)
	}
	if c.Socket == "" {
		return errors.New("socket must not be empty")
	}
	return nil
}

// Notifications reports whether replies go to desktop notifications
// rather than stdout.
func (c Config) Notifications(getenv func(string) string) bool {
	switch c.Notify {
	case NotifyAlways:
		return true
	case NotifyNever:
		return false
	}
	return getenv("XDG_SEAT") != ""
}
