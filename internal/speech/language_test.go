package speech

import "testing"

func TestRecognitionLanguage(t *testing.T) {
	cases := map[string]string{
		"english":  "en-US",
		"English":  "en-US",
		" urdu ":   "ur-PK",
		"spanish":  "es-ES",
		"klingon":  "en-US",
		"":         "en-US",
		"pt-br":    "pt-br",
		"japanese": "ja-JP",
	}
	for tag, want := range cases {
		if got := RecognitionLanguage(tag); got != want {
			t.Fatalf("RecognitionLanguage(%q) = %q, want %q", tag, got, want)
		}
	}
}
