package speech

import (
	"context"
	"encoding/base64"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Result is the outcome of a synthesis attempt. Audio is a best-effort
// enhancement of the reply, so failures degrade to an unavailable result
// instead of an error.
type Result struct {
	AudioBase64 string
	Available   bool
}

// speakingRate is the fixed synthesis speed in words per minute.
const speakingRate = 150

// runFunc executes the synthesis engine; injected so tests can stub it.
type runFunc func(ctx context.Context, stdin string, name string, args ...string) error

// Synthesizer renders reply text to speech with the local espeak-ng
// engine. The voice and rate are fixed; the language parameter is
// accepted for API symmetry but does not select a voice.
type Synthesizer struct {
	rate int
	run  runFunc
}

func NewSynthesizer() *Synthesizer {
	return &Synthesizer{rate: speakingRate, run: runCommand}
}

// Synthesize renders text through a scoped temp file and returns it
// base64-encoded. Every failure path logs and yields an unavailable
// result; the caller never sees an error.
func (s *Synthesizer) Synthesize(ctx context.Context, text, language string) Result {
	_ = language // fixed default voice regardless of language

	tmp, err := os.CreateTemp("", "speech-*.wav")
	if err != nil {
		log.Printf("tts: create temp file: %v", err)
		return Result{}
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	err = s.run(ctx, text, "espeak-ng", "--stdin", "-s", strconv.Itoa(s.rate), "-w", path)
	if err != nil {
		log.Printf("tts: synthesis failed: %v", err)
		return Result{}
	}

	audio, err := os.ReadFile(path)
	if err != nil {
		log.Printf("tts: read rendered audio: %v", err)
		return Result{}
	}
	if len(audio) == 0 {
		log.Printf("tts: engine produced no audio")
		return Result{}
	}

	return Result{
		AudioBase64: base64.StdEncoding.EncodeToString(audio),
		Available:   true,
	}
}

func runCommand(ctx context.Context, stdin string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	return cmd.Run()
}
