package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/tomz197/hurricaneship/internal/game"
)

// ErrUnsupportedFormat is returned by Load for files that are neither TOML nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Config is the full runtime configuration of the game binaries.
type Config struct {
	Game    game.Config `toml:"game" yaml:"game"`
	Host    Host        `toml:"host" yaml:"host"`
	Logging Logging     `toml:"logging" yaml:"logging"`
	SSH     SSH         `toml:"ssh" yaml:"ssh"`
	Web     Web         `toml:"web" yaml:"web"`
}

// Host tunes the terminal frontend.
type Host struct {
	FPS int `toml:"fps" yaml:"fps"`
	// Viewport in logical units; the canvas scales it to the terminal.
	ViewWidth  int `toml:"view_width" yaml:"view_width"`
	ViewHeight int `toml:"view_height" yaml:"view_height"`
	// Cursor speed in field units per second while a direction key is held.
	CursorSpeed float64 `toml:"cursor_speed" yaml:"cursor_speed"`
	// Seconds of no input before the warning and the disconnect. 0 disables.
	InactivityWarn       float64 `toml:"inactivity_warn" yaml:"inactivity_warn"`
	InactivityDisconnect float64 `toml:"inactivity_disconnect" yaml:"inactivity_disconnect"`
	// Seconds the shutdown notice stays up before the session closes.
	ShutdownDisplay float64 `toml:"shutdown_display" yaml:"shutdown_display"`
}

// FrameTime is the target duration of one frame.
func (h Host) FrameTime() time.Duration {
	if h.FPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(h.FPS)
}

type Logging struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

type SSH struct {
	Host            string        `toml:"host" yaml:"host"`
	Port            string        `toml:"port" yaml:"port"`
	HostKeyPath     string        `toml:"host_key_path" yaml:"host_key_path"`
	MaxSessions     int           `toml:"max_sessions" yaml:"max_sessions"` // 0 means unlimited
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
}

type Web struct {
	Host        string `toml:"host" yaml:"host"`
	Port        string `toml:"port" yaml:"port"`
	DisplayHost string `toml:"display_host" yaml:"display_host"` // shown in the ssh instructions
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Game: game.DefaultConfig(),
		Host: Host{
			FPS:                  60,
			ViewWidth:            160,
			ViewHeight:           90,
			CursorSpeed:          900,
			InactivityWarn:       90,
			InactivityDisconnect: 120,
			ShutdownDisplay:      10,
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
		SSH: SSH{
			Host:            "::",
			Port:            "2222",
			HostKeyPath:     "/app/keys/host_key",
			ShutdownTimeout: 15 * time.Second,
		},
		Web: Web{
			Host:        "0.0.0.0",
			Port:        "8080",
			DisplayHost: "your-server.com",
		},
	}
}

// Load reads a TOML or YAML file (chosen by extension) over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var md toml.MetaData
		md, err = toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
		if err == nil {
			if keys := md.Undecoded(); len(keys) > 0 {
				err = fmt.Errorf("unknown keys %v", keys)
			}
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(cfg)
	default:
		return nil, fmt.Errorf("config %s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Game.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv loads the file named by HURRICANE_CONFIG, or the defaults when it is
// unset, then applies the environment overrides.
func FromEnv() (*Config, error) {
	cfg := Default()
	if path := GetEnv("HURRICANE_CONFIG", ""); path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GameConfig returns the validated simulation settings.
func (c *Config) GameConfig() (game.Config, error) {
	if err := c.Game.Validate(); err != nil {
		return game.Config{}, err
	}
	return c.Game, nil
}
