package cache

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/encoder/pb"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttlSeconds int) (*RedisLayoutCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	c, err := NewRedisLayoutCache(client, &pb.Protobuf{}, ttlSeconds)
	require.NoError(t, err)
	return c, mr
}

func newTestRecord(t *testing.T) *domain.MazeRecord {
	t.Helper()
	layout, err := maze.Generate(3, 5, maze.NewSeededSource(21))
	require.NoError(t, err)
	return domain.NewMazeRecord(uuid.New(), 21, layout, time.UnixMilli(1700000000000))
}

func TestNewRedisLayoutCache(t *testing.T) {
	t.Run("Nil client", func(t *testing.T) {
		_, err := NewRedisLayoutCache(nil, &pb.Protobuf{}, 60)
		assert.Error(t, err)
	})

	t.Run("TTL", func(t *testing.T) {
		c, _ := newTestCache(t, 30)
		assert.Equal(t, 30*time.Second, c.ttl)

		c, _ = newTestCache(t, 0)
		assert.Equal(t, defaultTTL, c.ttl)
	})

	t.Run("Keys", func(t *testing.T) {
		c, _ := newTestCache(t, 30)

		id := uuid.MustParse("0b7e4f0e-3c53-4a44-9f0a-8c1b2a3d4e5f")
		assert.Equal(t, "maze:layout:0b7e4f0e-3c53-4a44-9f0a-8c1b2a3d4e5f", c.layoutKey(id))
	})
}

func TestRedisLayoutCacheGetSet(t *testing.T) {
	ctx := context.Background()

	t.Run("Miss", func(t *testing.T) {
		c, _ := newTestCache(t, 30)

		_, err := c.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrLayoutNotFound)
	})

	t.Run("Set then get", func(t *testing.T) {
		c, _ := newTestCache(t, 30)
		record := newTestRecord(t)

		require.NoError(t, c.Set(ctx, record))
		found, err := c.Get(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, record, found)
	})

	t.Run("Entries expire", func(t *testing.T) {
		c, mr := newTestCache(t, 30)
		record := newTestRecord(t)

		require.NoError(t, c.Set(ctx, record))
		assert.Equal(t, 30*time.Second, mr.TTL(c.layoutKey(record.ID)))

		mr.FastForward(31 * time.Second)
		_, err := c.Get(ctx, record.ID)
		assert.ErrorIs(t, err, domain.ErrLayoutNotFound)
	})

	t.Run("Corrupt entry", func(t *testing.T) {
		c, mr := newTestCache(t, 30)
		id := uuid.New()
		require.NoError(t, mr.Set(c.layoutKey(id), "\xff\xff"))

		_, err := c.Get(ctx, id)
		assert.ErrorIs(t, err, pb.ErrMalformedRecord)
	})

	t.Run("Server down", func(t *testing.T) {
		c, mr := newTestCache(t, 30)
		mr.Close()

		_, err := c.Get(ctx, uuid.New())
		assert.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrLayoutNotFound)
	})
}

func TestRedisLayoutCacheWithSeedLock(t *testing.T) {
	ctx := context.Background()

	t.Run("Runs fn and releases", func(t *testing.T) {
		c, _ := newTestCache(t, 30)

		calls := 0
		fn := func() error { calls++; return nil }
		require.NoError(t, c.WithSeedLock(ctx, 4, 4, 9, fn))
		require.NoError(t, c.WithSeedLock(ctx, 4, 4, 9, fn))
		assert.Equal(t, 2, calls)
	})

	t.Run("Returns fn error", func(t *testing.T) {
		c, _ := newTestCache(t, 30)

		err := c.WithSeedLock(ctx, 4, 4, 9, func() error { return domain.ErrDuplicateLayout })
		assert.ErrorIs(t, err, domain.ErrDuplicateLayout)
	})

	t.Run("Blocks a second holder", func(t *testing.T) {
		c, _ := newTestCache(t, 30)

		held := make(chan struct{})
		release := make(chan struct{})
		done := make(chan error, 1)
		go func() {
			done <- c.WithSeedLock(ctx, 4, 4, 9, func() error {
				close(held)
				<-release
				return nil
			})
		}()
		<-held

		var ran atomic.Bool
		waitCtx, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
		defer cancel()
		err := c.WithSeedLock(waitCtx, 4, 4, 9, func() error { ran.Store(true); return nil })
		assert.Error(t, err)
		assert.False(t, ran.Load())

		// Other seeds are not affected.
		assert.NoError(t, c.WithSeedLock(ctx, 4, 4, 10, func() error { return nil }))

		close(release)
		require.NoError(t, <-done)
		assert.NoError(t, c.WithSeedLock(ctx, 4, 4, 9, func() error { ran.Store(true); return nil }))
		assert.True(t, ran.Load())
	})
}
