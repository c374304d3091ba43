package config

import (
	"time"

	"github.com/spf13/pflag"
	"github.com/stigoleg/jiggler/internal/util"
)

// Flags holds the raw command line values that can override the settings file.
type Flags struct {
	ConfigPath string
	Idle       string
	Interval   string
	PixelDelta float64
	Policy     string
	NoNotify   bool
	NoShortcut bool
	LogLevel   string
	LogFile    string
}

// Register binds the flags to fs.
func (f *Flags) Register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.ConfigPath, "config", "c", DefaultPath(), "Settings file (TOML)")
	fs.StringVarP(&f.Idle, "idle", "i", "", "Idle time before jiggling starts (e.g., \"30s\", or \"2\" for minutes)")
	fs.StringVarP(&f.Interval, "interval", "n", "", "Time between moves while jiggling (e.g., \"10s\", or \"10\" for seconds)")
	fs.Float64Var(&f.PixelDelta, "threshold-px", DefaultPositionThreshold, "Cursor movement in pixels that counts as user activity")
	fs.StringVar(&f.Policy, "policy", "", "Idle detection policy: dual-signal or idle-only")
	fs.BoolVar(&f.NoNotify, "no-notify", false, "Disable desktop notifications")
	fs.BoolVar(&f.NoShortcut, "no-shortcut", false, "Disable the space-bar toggle shortcut")
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.LogFile, "log-file", "", "Log file path")
}

// Overrides converts every flag that was set on fs into an Override.
func (f *Flags) Overrides(fs *pflag.FlagSet) ([]Override, error) {
	var overrides []Override

	if fs.Changed("idle") {
		d, err := util.ParseDuration(f.Idle, time.Minute)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, func(s *Settings) { s.IdleThreshold = Dur(d) })
	}

	if fs.Changed("interval") {
		d, err := util.ParseDuration(f.Interval, time.Second)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, func(s *Settings) { s.MoveInterval = Dur(d) })
	}

	if fs.Changed("threshold-px") {
		px := f.PixelDelta
		overrides = append(overrides, func(s *Settings) { s.PositionThreshold = px })
	}

	if fs.Changed("policy") {
		p, err := ParsePolicy(f.Policy)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, func(s *Settings) { s.Policy = p })
	}

	if f.NoNotify {
		overrides = append(overrides, func(s *Settings) { s.ShowNotifications = false })
	}

	if f.NoShortcut {
		overrides = append(overrides, func(s *Settings) { s.EnableKeyboardShortcut = false })
	}

	if f.LogLevel != "" {
		level := f.LogLevel
		overrides = append(overrides, func(s *Settings) { s.Log.Level = level })
	}

	if f.LogFile != "" {
		file := f.LogFile
		overrides = append(overrides, func(s *Settings) { s.Log.File = file })
	}

	return overrides, nil
}
