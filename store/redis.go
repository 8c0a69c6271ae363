// Package store provides HistoryStore backends beyond the in-memory
// default, for hosts that want the transcript to survive the engine
// process (e.g. a supervising shell that restarts the simulation).
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	narrativesdk "github.com/hollowcast/narrative-sdk-go"
)

// RedisHistoryStore implements narrativesdk.HistoryStore on Redis.
// The transcript lives at "nar:{session}:transcript" and the event
// mirror at "nar:{session}:events", both as JSON-encoded lists.
type RedisHistoryStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	ctx    context.Context
}

// RedisStoreConfig configures the Redis store.
type RedisStoreConfig struct {
	Prefix string        // key prefix, default "nar"
	TTL    time.Duration // session key expiry, refreshed on append, 0 = no expiry
}

// NewRedisHistoryStore creates a HistoryStore backed by Redis.
func NewRedisHistoryStore(client redis.UniversalClient, config ...RedisStoreConfig) *RedisHistoryStore {
	cfg := RedisStoreConfig{Prefix: "nar"}
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "nar"
	}
	return &RedisHistoryStore{
		client: client,
		prefix: cfg.Prefix,
		ttl:    cfg.TTL,
		ctx:    context.Background(),
	}
}

var _ narrativesdk.HistoryStore = (*RedisHistoryStore)(nil)

func (s *RedisHistoryStore) key(session, kind string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, session, kind)
}

func (s *RedisHistoryStore) appendJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := s.client.RPush(s.ctx, key, data).Err(); err != nil {
		return err
	}
	if s.ttl > 0 {
		return s.client.Expire(s.ctx, key, s.ttl).Err()
	}
	return nil
}

func (s *RedisHistoryStore) rangeJSON(key string, limit int) ([]string, error) {
	start := int64(0)
	if limit > 0 {
		start = int64(-limit)
	}
	vals, err := s.client.LRange(s.ctx, key, start, -1).Result()
	if err == redis.Nil {
		return nil, nil
	}
	return vals, err
}

func (s *RedisHistoryStore) AppendMessage(session string, msg narrativesdk.Message) error {
	return s.appendJSON(s.key(session, "transcript"), msg)
}

func (s *RedisHistoryStore) Messages(session string, limit int) ([]narrativesdk.Message, error) {
	vals, err := s.rangeJSON(s.key(session, "transcript"), limit)
	if err != nil {
		return nil, err
	}
	out := make([]narrativesdk.Message, 0, len(vals))
	for _, v := range vals {
		var m narrativesdk.Message
		if json.Unmarshal([]byte(v), &m) == nil {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *RedisHistoryStore) TrimMessages(session string, max int) error {
	if max <= 0 {
		return nil
	}
	return s.client.LTrim(s.ctx, s.key(session, "transcript"), int64(-max), -1).Err()
}

func (s *RedisHistoryStore) AppendEvent(session string, ev narrativesdk.NarrativeEvent) error {
	return s.appendJSON(s.key(session, "events"), ev)
}

func (s *RedisHistoryStore) Events(session string, limit int) ([]narrativesdk.NarrativeEvent, error) {
	vals, err := s.rangeJSON(s.key(session, "events"), limit)
	if err != nil {
		return nil, err
	}
	out := make([]narrativesdk.NarrativeEvent, 0, len(vals))
	for _, v := range vals {
		var ev narrativesdk.NarrativeEvent
		if json.Unmarshal([]byte(v), &ev) == nil {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (s *RedisHistoryStore) Clear(session string) error {
	return s.client.Del(s.ctx,
		s.key(session, "transcript"),
		s.key(session, "events"),
	).Err()
}
