package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stigoleg/jiggler/internal/config"
	"github.com/stigoleg/jiggler/internal/idle"
	"github.com/stigoleg/jiggler/internal/mouse"
	"github.com/stigoleg/jiggler/internal/notify"
)

// lockedBuffer is written by logger goroutines that may outlive the command.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func execute(t *testing.T, ctx context.Context, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand("1.2.3")
	var stdout, stderr lockedBuffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, context.Background(), "version")
	require.NoError(t, err)
	assert.Equal(t, "jiggler version 1.2.3\n", out)
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jiggler", "config.toml")

	out, _, err := execute(t, context.Background(), "config", "init", "--config", path, "--idle", "2", "--policy", "idle-only")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `idle_threshold = "2m0s"`)
	assert.Contains(t, string(data), `policy = "idle-only"`)

	_, _, err = execute(t, context.Background(), "config", "init", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, context.Background(), "config", "init", "--config", path, "--force")
	require.NoError(t, err)

	out, _, err = execute(t, context.Background(), "config", "show", "--config", path, "--interval", "15")
	require.NoError(t, err)
	assert.Contains(t, out, `idle_threshold = "30s"`, "forced init wrote defaults")
	assert.Contains(t, out, `move_interval = "15s"`, "flags override the file")
}

func TestConfigInitRejectsInvalidSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	_, _, err := execute(t, context.Background(), "config", "init", "--config", path, "--interval", "0")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidInterval)
	assert.NoFileExists(t, path)
}

func TestInvalidPolicyIsReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	_, _, err := execute(t, context.Background(), "--config", path, "--policy", "sometimes")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidPolicy)

	msg := FormatError(err)
	assert.Contains(t, msg, "sometimes")
	assert.Contains(t, msg, "dual-signal, idle-only")
}

func TestFormatErrorWithoutHint(t *testing.T) {
	msg := FormatError(errors.New("plain failure"))
	assert.Contains(t, msg, "Error: plain failure")
	assert.NotContains(t, msg, "\n")
}

func TestRejectsArguments(t *testing.T) {
	_, _, err := execute(t, context.Background(), "unexpected")
	require.Error(t, err)
}

type fakeCursor struct {
	mu    sync.Mutex
	pos   mouse.Point
	moves int
}

func (f *fakeCursor) Location() (mouse.Point, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pos, nil
}

func (f *fakeCursor) ScreenSize() (float64, float64, error) {
	return 1920, 1080, nil
}

func (f *fakeCursor) MoveTo(p mouse.Point) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pos = p
	f.moves++
	return nil
}

func (f *fakeCursor) moveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.moves
}

func TestHeadlessRunJigglesUntilCanceled(t *testing.T) {
	cursor := &fakeCursor{pos: mouse.Point{X: 5, Y: 5}}
	newPlatform = func() platform {
		return platform{
			idle:     idle.QuerierFunc(func() (time.Duration, error) { return time.Hour, nil }),
			cursor:   cursor,
			notifier: func(*zap.Logger) notify.Notifier { return notify.Nop{} },
			idleOpts: []idle.Option{idle.WithInterval(10 * time.Millisecond)},
			moveOpts: []mouse.Option{mouse.WithSleeper(func(context.Context, time.Duration) error { return nil })},
		}
	}
	t.Cleanup(func() { newPlatform = systemPlatform })

	path := filepath.Join(t.TempDir(), "config.toml")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type result struct {
		stderr string
		err    error
	}
	done := make(chan result, 1)
	go func() {
		_, stderr, err := execute(t, ctx, "--headless", "--config", path, "--idle", "1s", "--policy", "idle-only", "--log-level", "debug")
		done <- result{stderr: stderr, err: err}
	}()

	require.Eventually(t, func() bool { return cursor.moveCount() > 0 }, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case res := <-done:
		require.NoError(t, res.err)
		assert.True(t, strings.Contains(res.stderr, "jiggler starting"), "console log goes to stderr")
	case <-time.After(5 * time.Second):
		t.Fatal("headless run did not exit after cancel")
	}
}
