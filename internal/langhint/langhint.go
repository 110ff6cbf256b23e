// Package langhint normalizes caller language hints into the ISO 639-3 codes
// the romanization engine expects.
package langhint

import (
	"strings"

	"golang.org/x/text/language"
)

// Normalize converts a language hint to its ISO 639-3 form.
// Three-letter codes ("rus", "tgl") are kept as given, lower-cased.
// Two-letter codes ("ru") and BCP 47 tags ("ru-RU") are mapped to ISO 639-3.
// Hints that cannot be parsed are passed through lower-cased so the engine
// can still apply its own fallback.
// The second return value reports whether the hint was recognized.
func Normalize(hint string) (string, bool) {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return "", false
	}
	if isAlpha3(hint) {
		return strings.ToLower(hint), true
	}

	tag, err := language.Parse(strings.ReplaceAll(hint, "_", "-"))
	if err != nil {
		return strings.ToLower(hint), false
	}

	base, confidence := tag.Base()
	if confidence == language.No {
		return strings.ToLower(hint), false
	}

	iso3 := base.ISO3()
	if iso3 == "" || iso3 == "und" {
		return strings.ToLower(hint), false
	}
	return iso3, true
}

func isAlpha3(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
