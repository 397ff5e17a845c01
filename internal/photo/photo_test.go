package photo

import "testing"

func TestFormatLocation(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "underscores become spaces",
			input:    "new_york_city",
			expected: "New York City",
		},
		{
			name:     "hyphens become spaces",
			input:    "aix-en-provence",
			expected: "Aix En Provence",
		},
		{
			name:     "already clean",
			input:    "Paris",
			expected: "Paris",
		},
		{
			name:     "mixed case is title cased",
			input:    "lake DISTRICT",
			expected: "Lake District",
		},
		{
			name:     "empty becomes unknown",
			input:    "",
			expected: "Unknown Location",
		},
		{
			name:     "separators only becomes unknown",
			input:    "_-_",
			expected: "Unknown Location",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatLocation(tt.input); got != tt.expected {
				t.Fatalf(`FormatLocation(%q) = %q, want %q`, tt.input, got, tt.expected)
			}
		})
	}
}
