package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func setupCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestGetSetJSON(t *testing.T) {
	setupCache(t)
	ctx := context.Background()

	var missed payload
	err := GetJSON(ctx, "prompt:1", &missed)
	assert.ErrorIs(t, err, ErrMiss)

	SetJSON(ctx, "prompt:1", payload{ID: 1, Name: "daily standup summarizer"}, time.Minute)

	var got payload
	require.NoError(t, GetJSON(ctx, "prompt:1", &got))
	assert.Equal(t, uint(1), got.ID)
	assert.Equal(t, "daily standup summarizer", got.Name)
}

func TestGetJSONNilClient(t *testing.T) {
	SetClient(nil)
	var dest payload
	assert.ErrorIs(t, GetJSON(context.Background(), "anything", &dest), ErrMiss)
}

func TestAside(t *testing.T) {
	setupCache(t)
	ctx := context.Background()

	calls := 0
	load := func() (payload, error) {
		calls++
		return payload{ID: 7, Name: "loaded"}, nil
	}

	first, err := Aside(ctx, "prompt:7", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, uint(7), first.ID)
	assert.Equal(t, 1, calls)

	second, err := Aside(ctx, "prompt:7", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "second read should be served from cache")
}

func TestAsideLoadError(t *testing.T) {
	setupCache(t)

	boom := errors.New("db down")
	_, err := Aside(context.Background(), "prompt:8", time.Minute, func() (payload, error) {
		return payload{}, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestInvalidatePromptLists(t *testing.T) {
	mr := setupCache(t)
	ctx := context.Background()

	SetJSON(ctx, PromptListKey("AI", "new", 1, 20), []payload{{ID: 1}}, time.Minute)
	SetJSON(ctx, PromptListKey("", "top", 2, 20), []payload{{ID: 2}}, time.Minute)
	SetJSON(ctx, PromptKey(1), payload{ID: 1}, time.Minute)

	InvalidatePromptLists(ctx)

	assert.False(t, mr.Exists(PromptListKey("AI", "new", 1, 20)))
	assert.False(t, mr.Exists(PromptListKey("", "top", 2, 20)))
	assert.True(t, mr.Exists(PromptKey(1)), "entity keys survive list invalidation")
}
