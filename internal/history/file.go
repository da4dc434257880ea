package history

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"sync"

	"sanachat/internal/models"
)

// FileStore keeps the transcript as an indented JSON array in a single
// file, rewritten wholesale on every save. The mutex only prevents torn
// writes to the file itself; two interleaved chat requests still follow
// last-writer-wins semantics.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(_ context.Context) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("history: failed to load %s: %v", s.path, err)
		}
		return nil
	}

	var transcript []models.Message
	if err := json.Unmarshal(data, &transcript); err != nil {
		log.Printf("history: malformed transcript in %s: %v", s.path, err)
		return nil
	}
	return transcript
}

func (s *FileStore) Save(_ context.Context, transcript []models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if transcript == nil {
		transcript = []models.Message{}
	}
	data, err := json.MarshalIndent(transcript, "", "  ")
	if err != nil {
		log.Printf("history: failed to encode transcript: %v", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		log.Printf("history: failed to save %s: %v", s.path, err)
	}
}
