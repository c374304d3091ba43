package notify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recorder struct {
	title, body string
	err         error
}

func (r *recorder) Notify(title, body string) error {
	r.title, r.body = title, body
	return r.err
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.Notify("a", "b"))
}

func TestNewIsLogged(t *testing.T) {
	n := New(nil)
	require.IsType(t, Logged{}, n)
	assert.NotNil(t, n.(Logged).Logger)
}

func TestLoggedPassesThrough(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	rec := &recorder{}
	n := Logged{Notifier: rec, Logger: zap.New(core)}

	require.NoError(t, n.Notify("Jiggler started", "body"))
	assert.Equal(t, "Jiggler started", rec.title)
	assert.Equal(t, "body", rec.body)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Jiggler started", logs.All()[0].ContextMap()["title"])
}

func TestLoggedWrapsError(t *testing.T) {
	cause := errors.New("no daemon")
	n := Logged{Notifier: &recorder{err: cause}, Logger: zap.NewNop()}

	err := n.Notify("Jiggler stopped", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "Jiggler stopped")
}

func TestAppleScriptQuoting(t *testing.T) {
	tests := []struct {
		name  string
		title string
		body  string
		want  string
	}{
		{
			name:  "plain",
			title: "Jiggler started",
			body:  "Moving the cursor after 30s of inactivity",
			want:  `display notification "Moving the cursor after 30s of inactivity" with title "Jiggler started"`,
		},
		{
			name:  "quotes and backslashes",
			title: `say "hi"`,
			body:  `C:\path`,
			want:  `display notification "C:\\path" with title "say \"hi\""`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, appleScript(tt.title, tt.body))
		})
	}
}
