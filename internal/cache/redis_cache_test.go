package cache

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

type cachedQuizView struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func newTestCache(t *testing.T) (CacheService, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return NewRedisCache(client, logger), mr
}

func TestCacheSetGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	in := cachedQuizView{ID: "quiz-1", Title: "Go Basics"}
	assert.NoError(t, c.Set(ctx, "quiz:quiz-1:public", in, time.Minute))

	var out cachedQuizView
	assert.NoError(t, c.Get(ctx, "quiz:quiz-1:public", &out))
	assert.Equal(t, in, out)
}

func TestCacheMiss(t *testing.T) {
	c, _ := newTestCache(t)

	var out cachedQuizView
	err := c.Get(context.Background(), "quiz:absent:public", &out)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCacheExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "quiz:quiz-2:public", cachedQuizView{ID: "quiz-2"}, time.Second))
	mr.FastForward(2 * time.Second)

	var out cachedQuizView
	assert.ErrorIs(t, c.Get(ctx, "quiz:quiz-2:public", &out), ErrCacheMiss)
}

func TestCacheDelete(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "quiz:quiz-3:public", cachedQuizView{ID: "quiz-3"}, time.Minute))
	assert.NoError(t, c.Delete(ctx, "quiz:quiz-3:public"))

	var out cachedQuizView
	assert.ErrorIs(t, c.Get(ctx, "quiz:quiz-3:public", &out), ErrCacheMiss)
}
