package util

import (
	"strings"
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		unit      time.Duration
		expected  time.Duration
		wantError bool
	}{
		// Bare integers use the unit
		{
			name:     "integer seconds - 30",
			input:    "30",
			unit:     time.Second,
			expected: 30 * time.Second,
		},
		{
			name:     "integer minutes - 2",
			input:    "2",
			unit:     time.Minute,
			expected: 2 * time.Minute,
		},
		{
			name:     "integer - 0",
			input:    "0",
			unit:     time.Second,
			expected: 0,
		},

		// Duration strings ignore the unit
		{
			name:     "duration string - seconds only",
			input:    "45s",
			unit:     time.Minute,
			expected: 45 * time.Second,
		},
		{
			name:     "duration string - minutes and seconds",
			input:    "1m30s",
			unit:     time.Second,
			expected: 90 * time.Second,
		},
		{
			name:     "duration string - fractional",
			input:    "1.5s",
			unit:     time.Second,
			expected: 1500 * time.Millisecond,
		},

		// Error cases
		{
			name:      "invalid format - letters",
			input:     "abc",
			unit:      time.Second,
			wantError: true,
		},
		{
			name:      "invalid format - mixed invalid",
			input:     "2x30m",
			unit:      time.Second,
			wantError: true,
		},
		{
			name:      "empty string",
			input:     "",
			unit:      time.Second,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDuration(tt.input, tt.unit)

			if tt.wantError {
				if err == nil {
					t.Errorf("ParseDuration(%q) expected error but got none", tt.input)
				}
				if err != nil && !strings.Contains(err.Error(), "Valid formats") {
					t.Errorf("ParseDuration(%q) error should contain format help, got: %v", tt.input, err)
				}
				return
			}

			if err != nil {
				t.Errorf("ParseDuration(%q) unexpected error: %v", tt.input, err)
				return
			}

			if got != tt.expected {
				t.Errorf("ParseDuration(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
