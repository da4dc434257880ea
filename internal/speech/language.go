package speech

import "strings"

// recognitionLanguages maps the lowercase language tags accepted by the
// API to the BCP-47 codes the recognizer expects. The tag itself is never
// validated; anything unknown falls back to US English, and tags that
// already look like BCP-47 codes pass through unchanged.
var recognitionLanguages = map[string]string{
	"english":    "en-US",
	"spanish":    "es-ES",
	"french":     "fr-FR",
	"german":     "de-DE",
	"italian":    "it-IT",
	"portuguese": "pt-BR",
	"hindi":      "hi-IN",
	"urdu":       "ur-PK",
	"arabic":     "ar-SA",
	"chinese":    "zh-CN",
	"japanese":   "ja-JP",
	"korean":     "ko-KR",
	"russian":    "ru-RU",
	"turkish":    "tr-TR",
	"dutch":      "nl-NL",
}

const defaultRecognitionLanguage = "en-US"

// RecognitionLanguage resolves a request language tag to a recognizer
// language hint.
func RecognitionLanguage(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if code, ok := recognitionLanguages[tag]; ok {
		return code
	}
	if strings.Contains(tag, "-") {
		return tag
	}
	return defaultRecognitionLanguage
}
