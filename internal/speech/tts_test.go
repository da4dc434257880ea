package speech

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"testing"
)

// stubRunner pretends to be the synthesis engine by writing canned bytes
// to the output path espeak-ng would have filled.
func stubRunner(payload []byte, fail bool) runFunc {
	return func(_ context.Context, _ string, _ string, args ...string) error {
		if fail {
			return errors.New("engine unavailable")
		}
		// last argument is the -w output path
		return os.WriteFile(args[len(args)-1], payload, 0o644)
	}
}

func TestSynthesizeReturnsEncodedAudio(t *testing.T) {
	payload := []byte("RIFF-fake-wave-data")
	s := &Synthesizer{rate: speakingRate, run: stubRunner(payload, false)}

	res := s.Synthesize(context.Background(), "hello there", "english")
	if !res.Available {
		t.Fatalf("expected available result")
	}
	decoded, err := base64.StdEncoding.DecodeString(res.AudioBase64)
	if err != nil {
		t.Fatalf("result is not valid base64: %v", err)
	}
	if string(decoded) != string(payload) {
		t.Fatalf("decoded audio mismatch: %q", decoded)
	}
}

func TestSynthesizeEngineFailureDegrades(t *testing.T) {
	s := &Synthesizer{rate: speakingRate, run: stubRunner(nil, true)}

	res := s.Synthesize(context.Background(), "hello", "english")
	if res.Available {
		t.Fatalf("expected unavailable result on engine failure")
	}
	if res.AudioBase64 != "" {
		t.Fatalf("expected empty audio, got %q", res.AudioBase64)
	}
}

func TestSynthesizeEmptyOutputDegrades(t *testing.T) {
	s := &Synthesizer{rate: speakingRate, run: stubRunner(nil, false)}

	res := s.Synthesize(context.Background(), "hello", "english")
	if res.Available {
		t.Fatalf("expected unavailable result when engine writes no audio")
	}
}

func TestSynthesizeIgnoresLanguage(t *testing.T) {
	payload := []byte("wave")
	s := &Synthesizer{rate: speakingRate, run: stubRunner(payload, false)}

	english := s.Synthesize(context.Background(), "same text", "english")
	urdu := s.Synthesize(context.Background(), "same text", "urdu")
	if english.AudioBase64 != urdu.AudioBase64 {
		t.Fatalf("language should not alter the fixed voice output")
	}
}
