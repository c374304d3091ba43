// Package config provides the jiggler settings, their TOML file format and the
// live-reloading loader the coordinator polls on every tick.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Policy selects how the coordinator decides the user has gone idle.
type Policy string

const (
	// PolicyDualSignal requires both the OS idle counter and local cursor
	// stillness to cross the threshold. This is the default.
	PolicyDualSignal Policy = "dual-signal"

	// PolicyIdleOnly relies on the OS idle counter alone.
	PolicyIdleOnly Policy = "idle-only"
)

// Default values, matching the menu-bar app this tool replaces.
const (
	DefaultIdleThreshold     = 30 * time.Second
	DefaultMoveInterval      = 10 * time.Second
	DefaultPositionThreshold = 5.0
	DefaultLogLevel          = "info"
)

var (
	ErrInvalidThreshold = errors.New("idle threshold must be positive")
	ErrInvalidInterval  = errors.New("move interval must be positive")
	ErrInvalidPixels    = errors.New("position threshold must not be negative")
	ErrInvalidPolicy    = errors.New("unknown policy")
)

// Duration is a time.Duration that reads and writes as a string ("30s") in TOML.
type Duration struct {
	time.Duration
}

// Dur wraps d.
func Dur(d time.Duration) Duration {
	return Duration{Duration: d}
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// LogConfig controls the zap logger and its lumberjack file rotation.
type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// Settings is everything the coordinator and its collaborators read at runtime.
type Settings struct {
	IdleThreshold          Duration  `toml:"idle_threshold"`
	MoveInterval           Duration  `toml:"move_interval"`
	PositionThreshold      float64   `toml:"position_threshold"`
	Policy                 Policy    `toml:"policy"`
	ShowNotifications      bool      `toml:"show_notifications"`
	EnableKeyboardShortcut bool      `toml:"enable_keyboard_shortcut"`
	Log                    LogConfig `toml:"log"`
}

// Defaults returns the settings used when no file or flag says otherwise.
func Defaults() Settings {
	return Settings{
		IdleThreshold:          Dur(DefaultIdleThreshold),
		MoveInterval:           Dur(DefaultMoveInterval),
		PositionThreshold:      DefaultPositionThreshold,
		Policy:                 PolicyDualSignal,
		ShowNotifications:      true,
		EnableKeyboardShortcut: true,
		Log: LogConfig{
			Level:      DefaultLogLevel,
			File:       DefaultLogFile(),
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Validate reports the first out-of-range value.
func (s Settings) Validate() error {
	if s.IdleThreshold.Duration <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidThreshold, s.IdleThreshold.Duration)
	}
	if s.MoveInterval.Duration <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, s.MoveInterval.Duration)
	}
	if s.PositionThreshold < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidPixels, s.PositionThreshold)
	}
	if _, err := ParsePolicy(string(s.Policy)); err != nil {
		return err
	}
	return nil
}

// ParsePolicy accepts the policy names used in flags and the settings file.
// An empty name selects the default policy.
func ParsePolicy(name string) (Policy, error) {
	switch Policy(name) {
	case "", PolicyDualSignal:
		return PolicyDualSignal, nil
	case PolicyIdleOnly:
		return PolicyIdleOnly, nil
	default:
		return "", fmt.Errorf("%w %q (want %q or %q)", ErrInvalidPolicy, name, PolicyDualSignal, PolicyIdleOnly)
	}
}

// Provider supplies the current settings. Implementations must be safe for
// concurrent use; callers treat the returned value as a snapshot.
type Provider interface {
	Settings() Settings
}

// Static is a Provider that always returns the same settings.
type Static Settings

func (s Static) Settings() Settings {
	return Settings(s)
}

// DefaultPath is where the settings file lives when --config is not given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "jiggler.toml"
	}
	return filepath.Join(dir, "jiggler", "config.toml")
}

// DefaultLogFile is where the TUI writes its log.
func DefaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "jiggler.log"
	}
	return filepath.Join(dir, "jiggler", "jiggler.log")
}
