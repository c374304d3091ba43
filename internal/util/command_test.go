package util

import (
	"runtime"
	"testing"
)

func shellName() string {
	if runtime.GOOS == "windows" {
		return "cmd"
	}
	return "sh"
}

func TestHasCommand(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		expected bool
	}{
		{
			name:     "shell exists",
			command:  shellName(),
			expected: true,
		},
		{
			name:     "nonexistent command",
			command:  "this-command-definitely-does-not-exist-12345",
			expected: false,
		},
		{
			name:     "empty string",
			command:  "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HasCommand(tt.command)
			if got != tt.expected {
				t.Errorf("HasCommand(%q) = %v, want %v", tt.command, got, tt.expected)
			}
		})
	}
}

func TestRequireCommand(t *testing.T) {
	if err := RequireCommand(shellName()); err != nil {
		t.Errorf("RequireCommand(%q) unexpected error: %v", shellName(), err)
	}
	if err := RequireCommand("this-command-definitely-does-not-exist-12345"); err == nil {
		t.Error("RequireCommand expected error for missing command")
	}
	if err := RequireCommand(""); err == nil {
		t.Error("RequireCommand expected error for empty name")
	}
}
