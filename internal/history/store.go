// Package history persists the chat transcript. All backends share the same
// soft-failure contract: a load that fails for any reason yields an empty
// transcript and a save that fails is logged and dropped, so persistence
// problems never abort a chat request.
package history

import (
	"context"
	"fmt"

	"sanachat/internal/config"
	"sanachat/internal/models"
	"sanachat/internal/redis"
)

// Store is the transcript persistence contract.
type Store interface {
	// Load returns the full transcript in chronological order. Missing or
	// unreadable state yields an empty transcript, never an error.
	Load(ctx context.Context) []models.Message
	// Save replaces the stored transcript wholesale. Failures are logged
	// and swallowed.
	Save(ctx context.Context, transcript []models.Message)
}

// Open builds the store selected by config. The file backend needs no
// external services and is the default.
func Open(cfg *config.Config) (Store, func() error, error) {
	switch cfg.BasicConfig.HistoryBackend {
	case "", "file":
		return NewFileStore(cfg.BasicConfig.HistoryPath), func() error { return nil }, nil
	case "sqlite", "sqlite3":
		store, err := OpenSQLite(cfg.BasicConfig.HistoryPath)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case "redis":
		client, err := redis.NewClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisStore(client), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported history backend: %s", cfg.BasicConfig.HistoryBackend)
	}
}
