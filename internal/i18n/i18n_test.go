package i18n

import "testing"

func TestUntranslatedKeyFallsBack(t *testing.T) {
	const key = "Completely untranslated phrase"
	if got := T(key); got != key {
		t.Fatalf("T(%q) = %q, want the key itself", key, got)
	}
}

func TestLanguageAlwaysSet(t *testing.T) {
	if GetLang() == "" {
		t.Fatal("GetLang() returned an empty language")
	}
}
