//go:build linux

package idle

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallback(t *testing.T) {
	errX := errors.New("xprintidle not found")
	errBus := errors.New("no session bus")

	tests := []struct {
		name      string
		primary   Querier
		secondary Querier
		want      time.Duration
		wantErrs  []error
	}{
		{
			name:      "primary wins",
			primary:   QuerierFunc(func() (time.Duration, error) { return time.Second, nil }),
			secondary: QuerierFunc(func() (time.Duration, error) { return time.Hour, nil }),
			want:      time.Second,
		},
		{
			name:      "secondary on failure",
			primary:   QuerierFunc(func() (time.Duration, error) { return 0, errX }),
			secondary: QuerierFunc(func() (time.Duration, error) { return 3 * time.Second, nil }),
			want:      3 * time.Second,
		},
		{
			name:      "both fail",
			primary:   QuerierFunc(func() (time.Duration, error) { return 0, errX }),
			secondary: QuerierFunc(func() (time.Duration, error) { return 0, errBus }),
			wantErrs:  []error{errX, errBus},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fallback{primary: tt.primary, secondary: tt.secondary}.IdleTime()
			if len(tt.wantErrs) > 0 {
				require.Error(t, err)
				for _, want := range tt.wantErrs {
					assert.ErrorIs(t, err, want)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSystemPicksBackend(t *testing.T) {
	t.Setenv("WAYLAND_DISPLAY", "wayland-0")
	assert.IsType(t, mutterQuerier{}, System())

	t.Setenv("WAYLAND_DISPLAY", "")
	t.Setenv("XDG_SESSION_TYPE", "x11")
	assert.IsType(t, fallback{}, System())
}
