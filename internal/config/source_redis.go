package config

import (
	"context"

	redis "github.com/redis/go-redis/v9"

	"github.com/chaosforge/damage-api/internal/errors"
	redisclient "github.com/chaosforge/damage-api/internal/redis"
)

const defaultDocumentKey = "damage:config:documents"

// RedisSource loads configuration documents from a single redis key, for
// deployments that push document sets through a shared store instead of
// shipping files.
type RedisSource struct {
	client redisclient.Client
	key    string
}

// NewRedisSource creates a redis-backed document source. An empty key uses
// the default document key.
func NewRedisSource(client redisclient.Client, key string) (*RedisSource, error) {
	if client == nil {
		return nil, errors.InvalidArgument("client is required")
	}
	if key == "" {
		key = defaultDocumentKey
	}
	return &RedisSource{client: client, key: key}, nil
}

// Load reads and decodes the document set.
func (s *RedisSource) Load(ctx context.Context) (*Documents, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.Configurationf("no configuration documents at key %q", s.key)
		}
		return nil, errors.WrapWithCodef(err, errors.CodeConfiguration, "failed to read configuration from redis key %q", s.key)
	}
	return ParseDocuments(data)
}
