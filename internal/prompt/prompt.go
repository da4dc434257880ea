// Package prompt builds the assistant's system instruction and keeps the
// transcript's system-message invariant: at most one system message, always
// first.
package prompt

import (
	"bytes"
	"strings"
	"text/template"
	"unicode"

	"sanachat/internal/models"
)

const systemPromptTemplate = `You are Sana, a compassionate and supportive mental health assistant.
Your role includes:
- Listening empathetically to the user's emotions and thoughts.
- Offering comfort, encouragement, and perspective tailored to their feelings.
- Asking gentle, open-ended questions to help users reflect and explore their emotions.
- Providing coping strategies and resources when appropriate without giving medical advice or diagnoses.
- Maintaining a warm, non-judgmental tone at all times.
- Encouraging users to seek professional help if they indicate distress or risk.
- Supporting users in multiple languages as specified (respond in {{.Language}}).

Examples of interaction style and expected responses:

User: "I've been feeling overwhelmed and anxious lately."
Assistant: "I'm sorry to hear you're feeling that way. Would you like to share what might be contributing to your anxiety? Remember, taking small steps can sometimes help ease those feelings."

User: "I don't know if I can keep going."
Assistant: "That sounds really tough. Please know that you're not alone. Have you talked to anyone you trust about how you're feeling?"

User: "Sometimes I feel happy, but then it quickly fades."
Assistant: "It's natural for emotions to ebb and flow. What are some things that bring you peace or joy during those moments?"

This guidance is to make sure you respond with empathy, thoughtful questions, supportive advice, and referrals to professional help if needed, always in {{.Language}}.
`

var systemTmpl = template.Must(template.New("systemPrompt").Parse(systemPromptTemplate))

// BuildSystemMessage renders the Sana persona prompt for the given
// interaction language.
func BuildSystemMessage(language string) models.Message {
	var buf bytes.Buffer
	// The template has no failure modes beyond a bad data type, so the
	// error is intentionally ignored after Must.
	_ = systemTmpl.Execute(&buf, struct{ Language string }{Language: displayCase(language)})
	return models.Message{
		Role:    models.RoleSystem,
		Content: buf.String(),
	}
}

// EnsureSystem strips any existing system messages from the transcript and
// inserts a freshly built one at position 0, so a language change between
// requests never accumulates stale prompts. The relative order of all other
// messages is preserved.
func EnsureSystem(transcript []models.Message, language string) []models.Message {
	out := make([]models.Message, 0, len(transcript)+1)
	out = append(out, BuildSystemMessage(language))
	for _, msg := range transcript {
		if msg.Role == models.RoleSystem {
			continue
		}
		out = append(out, msg)
	}
	return out
}

// displayCase title-cases the language for the prompt text: first rune
// upper, the rest lower ("english" -> "English", "URDU" -> "Urdu").
func displayCase(language string) string {
	language = strings.TrimSpace(language)
	if language == "" {
		return language
	}
	runes := []rune(strings.ToLower(language))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
