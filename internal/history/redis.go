package history

import (
	"context"
	"encoding/json"
	"log"

	"sanachat/internal/models"
	"sanachat/internal/redis"
)

const transcriptKey = "sana:transcript"

// RedisStore keeps the transcript as a redis list of JSON-encoded
// messages. A save replaces the list atomically inside one pipeline.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, key: transcriptKey}
}

func (s *RedisStore) Load(ctx context.Context) []models.Message {
	entries, err := s.client.Raw().LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		log.Printf("history: redis load failed: %v", err)
		return nil
	}
	var transcript []models.Message
	for _, entry := range entries {
		var msg models.Message
		if err := json.Unmarshal([]byte(entry), &msg); err != nil {
			log.Printf("history: malformed redis entry: %v", err)
			return nil
		}
		transcript = append(transcript, msg)
	}
	return transcript
}

func (s *RedisStore) Save(ctx context.Context, transcript []models.Message) {
	encoded := make([]interface{}, 0, len(transcript))
	for _, msg := range transcript {
		data, err := json.Marshal(msg)
		if err != nil {
			log.Printf("history: failed to encode message: %v", err)
			return
		}
		encoded = append(encoded, data)
	}

	pipe := s.client.Raw().TxPipeline()
	pipe.Del(ctx, s.key)
	if len(encoded) > 0 {
		pipe.RPush(ctx, s.key, encoded...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("history: redis save failed: %v", err)
	}
}
