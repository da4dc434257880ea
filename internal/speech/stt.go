// Package speech adapts the external speech services: transcription
// through Google Cloud Speech and local synthesis through espeak-ng.
package speech

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
)

// Recognizer converts uploaded audio into text. Uploads arrive in
// arbitrary container formats; ffmpeg sniffs the real format from the
// content and normalizes it to mono 16 kHz WAV before recognition.
type Recognizer struct {
	client *speech.Client
}

// NewRecognizer creates the Cloud Speech client, authenticating through
// Application Default Credentials.
func NewRecognizer(ctx context.Context) (*Recognizer, error) {
	client, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create speech client: %w", err)
	}
	return &Recognizer{client: client}, nil
}

// Close releases the underlying client connection.
func (r *Recognizer) Close() error {
	return r.client.Close()
}

// Transcribe normalizes the audio blob and runs it through the
// recognizer with a language hint. An empty transcript with a nil error
// means the service detected no speech; decode, transcode and service
// failures are hard errors.
func (r *Recognizer) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	wav, err := normalizeToWAV(ctx, audio)
	if err != nil {
		return "", err
	}

	resp, err := r.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			// Encoding and sample rate are read from the WAV header.
			LanguageCode: RecognitionLanguage(language),
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: wav},
		},
	})
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}

	var parts []string
	for _, result := range resp.GetResults() {
		alts := result.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		if text := strings.TrimSpace(alts[0].GetTranscript()); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " "), nil
}

// normalizeToWAV writes the blob to a scoped temp file and transcodes it
// to a single-channel 16 kHz WAV. Both temp files are removed on every
// exit path.
func normalizeToWAV(ctx context.Context, audio []byte) ([]byte, error) {
	in, err := os.CreateTemp("", "upload-*")
	if err != nil {
		return nil, fmt.Errorf("create upload temp file: %w", err)
	}
	defer os.Remove(in.Name())
	if _, err := in.Write(audio); err != nil {
		in.Close()
		return nil, fmt.Errorf("write upload temp file: %w", err)
	}
	if err := in.Close(); err != nil {
		return nil, fmt.Errorf("close upload temp file: %w", err)
	}

	out, err := os.CreateTemp("", "normalized-*.wav")
	if err != nil {
		return nil, fmt.Errorf("create wav temp file: %w", err)
	}
	outPath := out.Name()
	out.Close()
	defer os.Remove(outPath)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "ffmpeg", "-y", "-i", in.Name(), "-ac", "1", "-ar", "16000", outPath)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("decode audio: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	wav, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("read normalized wav: %w", err)
	}
	return wav, nil
}
