package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/butlerian/directory/internal/testhelpers"
)

func newTestCache(t *testing.T) (*PageCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return New(client, 5*time.Minute, testhelpers.NewTestLogger()), mr
}

func TestPageCache_SetGet(t *testing.T) {
	pc, _ := newTestCache(t)
	ctx := context.Background()

	assert.Nil(t, pc.Get(ctx, "/api/v1/news"))

	body := []byte(`{"articles":[],"count":0}`)
	pc.Set(ctx, "/api/v1/news", body)

	assert.Equal(t, body, pc.Get(ctx, "/api/v1/news"))
	assert.Nil(t, pc.Get(ctx, "/api/v1/news?limit=10"), "query variants are separate keys")
}

func TestPageCache_Expires(t *testing.T) {
	pc, mr := newTestCache(t)
	ctx := context.Background()

	pc.Set(ctx, "/api/v1/companies", []byte(`[]`))
	require.NotNil(t, pc.Get(ctx, "/api/v1/companies"))

	mr.FastForward(6 * time.Minute)
	assert.Nil(t, pc.Get(ctx, "/api/v1/companies"))
}

func TestPageCache_Invalidate(t *testing.T) {
	pc, _ := newTestCache(t)
	ctx := context.Background()

	pc.Set(ctx, "/api/v1/news", []byte(`{}`))
	require.NoError(t, pc.Invalidate(ctx, "/api/v1/news"))
	assert.Nil(t, pc.Get(ctx, "/api/v1/news"))

	// invalidating an absent key is not an error
	assert.NoError(t, pc.Invalidate(ctx, "/api/v1/news"))
}

func TestPageCache_NilIsNoop(t *testing.T) {
	var pc *PageCache
	ctx := context.Background()

	assert.Nil(t, pc.Get(ctx, "/x"))
	pc.Set(ctx, "/x", []byte("y"))
	assert.NoError(t, pc.Invalidate(ctx, "/x"))

	assert.Nil(t, New(nil, time.Minute, nil))
}

func TestPageCache_RedisDownIsMiss(t *testing.T) {
	pc, mr := newTestCache(t)
	ctx := context.Background()

	pc.Set(ctx, "/api/v1/news", []byte(`{}`))
	mr.Close()

	assert.Nil(t, pc.Get(ctx, "/api/v1/news"))
	pc.Set(ctx, "/api/v1/news", []byte(`{}`)) // must not panic
}
