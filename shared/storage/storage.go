package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hostel/config"
	"hostel/infras/otel"
	infraRedis "hostel/infras/redis"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName           = "storage"
	otelStorageKeyAttribute = "storage.key"
)

// ErrMissing is returned by Get when nothing is stored under the key.
var ErrMissing = errors.New("storage: key not found")

// Storage persists small JSON documents, such as the auth session, across process restarts.
type Storage interface {
	Save(ctx context.Context, key string, value any, ttl time.Duration) (err error)
	Get(ctx context.Context, key string, value any) (err error)
	Delete(ctx context.Context, key string) error
}

// New picks Redis when a host is configured and process memory otherwise.
func New(cfg *config.Config, ot otel.Otel) Storage {
	if infraRedis.Enabled(cfg) {
		return NewRedisStorage(infraRedis.New(cfg), ot)
	}

	log.Info().Msg("No Redis host configured, the auth session will not survive restarts")

	return NewMemoryStorage()
}

type redisStorage struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisStorage(client *redis.Client, ot otel.Otel) Storage {
	return &redisStorage{
		client: client,
		otel:   ot,
	}
}

// Delete implements Storage.
func (s *redisStorage) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, otelScopeName, otelScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelStorageKeyAttribute, key)

	if err = s.client.Del(ctx, key).Err(); err != nil {
		log.Error().Str("key", key).Err(err).Str("Storage", "Delete").Msg("failed to delete stored value")

		return fmt.Errorf("failed to delete stored value: %w", err)
	}

	return nil
}

// Get implements Storage.
func (s *redisStorage) Get(ctx context.Context, key string, value any) (err error) {
	ctx, scope := s.otel.NewScope(ctx, otelScopeName, otelScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelStorageKeyAttribute, key)

	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMissing
	}

	if err != nil {
		return fmt.Errorf("failed to get stored value: %w", err)
	}

	if err = json.Unmarshal(raw, value); err != nil {
		log.Error().Err(err).Str("Storage", "Get").Msg("failed to unmarshal stored value")

		return fmt.Errorf("failed to unmarshal stored value: %w", err)
	}

	return nil
}

// Save implements Storage. A zero ttl keeps the value until deleted.
func (s *redisStorage) Save(ctx context.Context, key string, value any, ttl time.Duration) (err error) {
	ctx, scope := s.otel.NewScope(ctx, otelScopeName, otelScopeName+".Save")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelStorageKeyAttribute, key)

	raw, err := json.Marshal(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Str("Storage", "Save").Msg("failed to marshal value")

		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if err = s.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Str("Storage", "Save").Msg("failed to store value")

		return fmt.Errorf("failed to store value: %w", err)
	}

	log.Debug().Str("Storage", "Save").Str("key", key).Msg("value stored")

	return nil
}

type memoryEntry struct {
	raw       []byte
	expiresAt time.Time
}

type memoryStorage struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStorage keeps values in process memory; they are lost on exit.
func NewMemoryStorage() Storage {
	return &memoryStorage{
		entries: map[string]memoryEntry{},
		now:     time.Now,
	}
}

func (s *memoryStorage) Save(_ context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	entry := memoryEntry{raw: raw}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry
	s.mu.Unlock()

	return nil
}

func (s *memoryStorage) Get(_ context.Context, key string, value any) error {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || (!entry.expiresAt.IsZero() && s.now().After(entry.expiresAt)) {
		return ErrMissing
	}

	if err := json.Unmarshal(entry.raw, value); err != nil {
		return fmt.Errorf("failed to unmarshal stored value: %w", err)
	}

	return nil
}

func (s *memoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()

	return nil
}
