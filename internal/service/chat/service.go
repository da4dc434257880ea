// Package chat orchestrates a conversation turn: transcript management,
// prompt injection, completion, speech synthesis and persistence.
package chat

import (
	"context"
	"strings"

	"sanachat/internal/history"
	"sanachat/internal/models"
	"sanachat/internal/prompt"
	"sanachat/internal/speech"
	"sanachat/internal/worker"
)

// Completer produces an assistant reply for a transcript.
type Completer interface {
	Complete(ctx context.Context, transcript []models.Message) (string, error)
}

// Transcriber converts an uploaded audio blob into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, language string) (string, error)
}

// Synthesizer renders reply text to speech. It never fails the caller;
// a degraded attempt yields an unavailable Result.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, language string) speech.Result
}

// Service is the application context for the two endpoints. Every
// collaborator is injected so tests can substitute stubs.
type Service struct {
	store       history.Store
	completer   Completer
	transcriber Transcriber
	synthesizer Synthesizer
	pool        *worker.Pool
	defaultLang string
}

func NewService(store history.Store, completer Completer, transcriber Transcriber, synthesizer Synthesizer, pool *worker.Pool, defaultLanguage string) *Service {
	return &Service{
		store:       store,
		completer:   completer,
		transcriber: transcriber,
		synthesizer: synthesizer,
		pool:        pool,
		defaultLang: defaultLanguage,
	}
}

// Chat runs one conversation turn. The transcript is only persisted
// after the completion succeeded, so a failed turn leaves stored history
// untouched. Synthesis failures degrade to an unavailable result and
// never fail the turn.
func (s *Service) Chat(ctx context.Context, message, language string) (string, speech.Result, error) {
	language = s.normalizeLanguage(language)

	// A client disconnect must not cancel in-flight external calls or
	// persistence; the request context only guards the wait for a free
	// worker.
	callCtx := context.WithoutCancel(ctx)

	transcript := s.store.Load(callCtx)
	transcript = prompt.EnsureSystem(transcript, language)
	transcript = append(transcript, models.Message{
		Role:    models.RoleUser,
		Content: strings.TrimSpace(message),
	})

	var reply string
	err := s.pool.Do(ctx, func() error {
		var err error
		reply, err = s.completer.Complete(callCtx, transcript)
		return err
	})
	if err != nil {
		return "", speech.Result{}, err
	}

	transcript = append(transcript, models.Message{
		Role:    models.RoleAssistant,
		Content: reply,
	})

	var audio speech.Result
	// Submission with the detached context: the reply exists, so the
	// synthesis and save always run even if the caller already left.
	_ = s.pool.Do(callCtx, func() error {
		audio = s.synthesizer.Synthesize(callCtx, reply, language)
		return nil
	})

	s.store.Save(callCtx, transcript)
	return reply, audio, nil
}

// Transcribe converts uploaded audio to text. An empty transcript with a
// nil error means no speech was recognized.
func (s *Service) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	language = s.normalizeLanguage(language)

	callCtx := context.WithoutCancel(ctx)
	var transcript string
	err := s.pool.Do(ctx, func() error {
		var err error
		transcript, err = s.transcriber.Transcribe(callCtx, audio, language)
		return err
	})
	if err != nil {
		return "", err
	}
	return transcript, nil
}

func (s *Service) normalizeLanguage(language string) string {
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		return s.defaultLang
	}
	return language
}
