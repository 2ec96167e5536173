package storage_test

import (
	"context"
	"hostel/config"
	"hostel/infras/otel/mocks"
	"hostel/shared/storage"
	"net"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func newRedisStorage(t *testing.T) (storage.Storage, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	t.Cleanup(func() { _ = client.Close() })

	return storage.NewRedisStorage(client, mocks.NewOtel()), server
}

func TestStorage(t *testing.T) {
	redisStore, _ := newRedisStorage(t)

	implementations := []struct {
		name  string
		store storage.Storage
	}{
		{name: "redis", store: redisStore},
		{name: "memory", store: storage.NewMemoryStorage()},
	}

	for _, impl := range implementations {
		t.Run(impl.name, func(t *testing.T) {
			ctx := context.Background()
			key := "hostel:auth:session"

			var missing tokenPair
			assert.ErrorIs(t, impl.store.Get(ctx, key, &missing), storage.ErrMissing)

			require.NoError(t, impl.store.Save(ctx, key, tokenPair{AccessToken: "a", RefreshToken: "r"}, time.Hour))

			var got tokenPair
			require.NoError(t, impl.store.Get(ctx, key, &got))
			assert.Equal(t, tokenPair{AccessToken: "a", RefreshToken: "r"}, got)

			require.NoError(t, impl.store.Delete(ctx, key))
			assert.ErrorIs(t, impl.store.Get(ctx, key, &got), storage.ErrMissing)
		})
	}
}

func TestRedisStorage_Expiry(t *testing.T) {
	store, server := newRedisStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "k", tokenPair{AccessToken: "a"}, time.Minute))

	server.FastForward(2 * time.Minute)

	var got tokenPair
	assert.ErrorIs(t, store.Get(ctx, "k", &got), storage.ErrMissing)
}

func TestRedisStorage_CorruptValue(t *testing.T) {
	store, server := newRedisStorage(t)

	require.NoError(t, server.Set("k", "not json"))

	var got tokenPair
	err := store.Get(context.Background(), "k", &got)

	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrMissing)
}

func TestRedisStorage_Unreachable(t *testing.T) {
	store, server := newRedisStorage(t)
	server.Close()

	err := store.Save(context.Background(), "k", tokenPair{}, 0)

	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("memory without a redis host", func(t *testing.T) {
		store := storage.New(&config.Config{}, mocks.NewOtel())

		require.NoError(t, store.Save(ctx, "k", tokenPair{AccessToken: "a"}, 0))

		var got tokenPair
		require.NoError(t, store.Get(ctx, "k", &got))
		assert.Equal(t, "a", got.AccessToken)
	})

	t.Run("redis when a host is configured", func(t *testing.T) {
		server := miniredis.RunT(t)
		host, port, err := net.SplitHostPort(server.Addr())
		require.NoError(t, err)

		cfg := &config.Config{}
		cfg.Cache.Redis.Primary.Host = host
		cfg.Cache.Redis.Primary.Port = port

		store := storage.New(cfg, mocks.NewOtel())
		require.NoError(t, store.Save(ctx, "k", tokenPair{AccessToken: "a"}, time.Minute))

		assert.True(t, server.Exists("k"))
	})
}
