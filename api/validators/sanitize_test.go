package validators

import "testing"

func TestSanitizeStringTrims(t *testing.T) {
	if got := SanitizeString("  Fall Sale  ", 0); got != "Fall Sale" {
		t.Fatalf("expected trimmed string, got %q", got)
	}
}

func TestSanitizeStringCapsLength(t *testing.T) {
	if got := SanitizeString("abcdef", 4); got != "abcd" {
		t.Fatalf("expected 4 runes, got %q", got)
	}
	if got := SanitizeString("abc", 4); got != "abc" {
		t.Fatalf("short input must pass through, got %q", got)
	}
}

func TestSanitizeStringCountsRunes(t *testing.T) {
	// 3-byte runes must not be split mid-character.
	if got := SanitizeString("日本語テスト", 3); got != "日本語" {
		t.Fatalf("expected rune-safe truncation, got %q", got)
	}
}
