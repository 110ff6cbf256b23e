package langhint

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		hint     string
		expected string
		known    bool
	}{
		// Three-letter codes pass through
		{"rus", "rus", true},
		{"ara", "ara", true},
		{"hin", "hin", true},
		{"tgl", "tgl", true},
		{"hbs", "hbs", true},
		{"per", "per", true},
		{"chi", "chi", true},
		// Two-letter codes
		{"ru", "rus", true},
		{"uk", "ukr", true},
		{"zh", "zho", true},
		{"ja", "jpn", true},
		// Regional tags
		{"ru-RU", "rus", true},
		{"pt_BR", "por", true},
		// Case and whitespace
		{" RUS ", "rus", true},
		// Unknown
		{"", "", false},
		{"12x", "12x", false},
	}

	for _, tt := range tests {
		t.Run(tt.hint, func(t *testing.T) {
			got, known := Normalize(tt.hint)
			if got != tt.expected || known != tt.known {
				t.Errorf("Normalize(%q) = (%q, %v), want (%q, %v)",
					tt.hint, got, known, tt.expected, tt.known)
			}
		})
	}
}
