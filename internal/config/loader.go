package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDebounce = 100 * time.Millisecond

// Override mutates settings after the file has been read. CLI flags are
// applied this way so they keep winning across hot reloads.
type Override func(*Settings)

// Loader reads the settings file, applies overrides and keeps the result
// current while Watch is running.
type Loader struct {
	path      string
	overrides []Override
	logger    *zap.Logger

	mu       sync.RWMutex
	current  Settings
	onChange []func(Settings)
}

// NewLoader creates a loader for path. Until Load succeeds it serves Defaults.
func NewLoader(path string, logger *zap.Logger, overrides ...Override) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		path:      path,
		overrides: overrides,
		logger:    logger,
		current:   Defaults(),
	}
}

// SetLogger replaces the logger. It must be called before Watch.
func (l *Loader) SetLogger(logger *zap.Logger) {
	if logger != nil {
		l.logger = logger
	}
}

// Path returns the settings file location.
func (l *Loader) Path() string {
	return l.path
}

// Load reads the file and makes the result current. A missing file is not an
// error: defaults plus overrides are used instead.
func (l *Loader) Load() (Settings, error) {
	s, err := l.read()
	if err != nil {
		return Settings{}, err
	}

	l.mu.Lock()
	l.current = s
	l.mu.Unlock()
	return s, nil
}

// Settings implements Provider.
func (l *Loader) Settings() Settings {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// OnChange registers fn to run after every successful reload.
func (l *Loader) OnChange(fn func(Settings)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, fn)
}

// Save writes s to path as TOML, creating its directory.
func Save(path string, s Settings) error {
	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Encode writes s as TOML.
func Encode(w io.Writer, s Settings) error {
	if err := toml.NewEncoder(w).Encode(s); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return nil
}

// Watch reloads the settings whenever the file is written or replaced, until
// ctx is done. The parent directory is watched so editors that write via
// rename are picked up.
func (l *Loader) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		watcher.Close()
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}

	go l.watchLoop(ctx, watcher)
	return nil
}

func (l *Loader) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer watcher.Close()

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(l.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(reloadDebounce, l.reload)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			l.logger.Warn("config watcher error", zap.Error(err))
		}
	}
}

func (l *Loader) reload() {
	s, err := l.read()
	if err != nil {
		l.logger.Warn("config reload rejected, keeping previous settings", zap.Error(err))
		return
	}

	l.mu.Lock()
	l.current = s
	callbacks := make([]func(Settings), len(l.onChange))
	copy(callbacks, l.onChange)
	l.mu.Unlock()

	l.logger.Info("config reloaded",
		zap.Duration("idle_threshold", s.IdleThreshold.Duration),
		zap.Duration("move_interval", s.MoveInterval.Duration),
		zap.String("policy", string(s.Policy)),
	)

	for _, fn := range callbacks {
		fn(s)
	}
}

func (l *Loader) read() (Settings, error) {
	s := Defaults()

	md, err := toml.DecodeFile(l.path, &s)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		l.logger.Debug("no config file, using defaults", zap.String("path", l.path))
	case err != nil:
		return Settings{}, fmt.Errorf("read %s: %w", l.path, err)
	default:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			l.logger.Warn("ignoring unknown config keys", zap.String("keys", strings.Join(keys, ", ")))
		}
	}

	for _, o := range l.overrides {
		o(&s)
	}

	policy, err := ParsePolicy(string(s.Policy))
	if err != nil {
		return Settings{}, err
	}
	s.Policy = policy

	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("validation failed: %w", err)
	}
	return s, nil
}
