// Package cache decorates the blog store with a Redis read-through cache.
//
// Reads go through a circuit breaker; when Redis is unavailable or the
// breaker is open the decorator serves straight from the wrapped store.
// Concurrent misses for the same key are coalesced. Every mutation drops the
// affected keys, and the TTL bounds staleness if a drop fails. A fill whose
// store read overlapped a mutation is discarded.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/singleflight"

	"github.com/baharkarakas/bloglist-backend/internal/models"
	"github.com/baharkarakas/bloglist-backend/internal/repository"
)

const listKey = "blogs:all"

func blogKey(id string) string { return "blog:" + id }

type Blogs struct {
	next repository.Blogs
	rdb  *redis.Client
	cb   *gobreaker.CircuitBreaker
	sf   singleflight.Group
	ttl  time.Duration
	log  *slog.Logger

	// mu orders fills against invalidations; epoch counts mutations.
	mu    sync.Mutex
	epoch uint64
}

var _ repository.Blogs = (*Blogs)(nil)

func NewBlogs(next repository.Blogs, rdb *redis.Client, ttl time.Duration, log *slog.Logger) *Blogs {
	if log == nil {
		log = slog.Default()
	}
	st := gobreaker.Settings{
		Name:        "blogs-redis",
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	}
	return &Blogs{
		next: next,
		rdb:  rdb,
		cb:   gobreaker.NewCircuitBreaker(st),
		ttl:  ttl,
		log:  log,
	}
}

func (c *Blogs) List(ctx context.Context) ([]models.Blog, error) {
	var cached []models.Blog
	if c.get(ctx, listKey, &cached) {
		return cached, nil
	}
	v, err, _ := c.sf.Do(listKey, func() (any, error) {
		seen := c.currentEpoch()
		blogs, err := c.next.List(ctx)
		if err != nil {
			return nil, err
		}
		c.fill(ctx, listKey, blogs, seen)
		return blogs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Blog), nil
}

func (c *Blogs) GetByID(ctx context.Context, id string) (models.Blog, error) {
	key := blogKey(id)
	var cached models.Blog
	if c.get(ctx, key, &cached) {
		return cached, nil
	}
	v, err, _ := c.sf.Do(key, func() (any, error) {
		seen := c.currentEpoch()
		b, err := c.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		c.fill(ctx, key, b, seen)
		return b, nil
	})
	if err != nil {
		return models.Blog{}, err
	}
	return v.(models.Blog), nil
}

func (c *Blogs) ListByOwner(ctx context.Context, ownerID string) ([]models.Blog, error) {
	return c.next.ListByOwner(ctx, ownerID)
}

func (c *Blogs) Create(ctx context.Context, nb models.NewBlog) (models.Blog, error) {
	b, err := c.next.Create(ctx, nb)
	if err != nil {
		return models.Blog{}, err
	}
	c.invalidate(ctx, listKey)
	return b, nil
}

func (c *Blogs) Update(ctx context.Context, b models.Blog) (models.Blog, error) {
	updated, err := c.next.Update(ctx, b)
	if err != nil {
		return models.Blog{}, err
	}
	c.invalidate(ctx, listKey, blogKey(b.ID))
	return updated, nil
}

func (c *Blogs) Delete(ctx context.Context, id string) error {
	if err := c.next.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, listKey, blogKey(id))
	return nil
}

func (c *Blogs) currentEpoch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch
}

// fill caches v unless a mutation happened since seen was taken.
func (c *Blogs) fill(ctx context.Context, key string, v any, seen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != seen {
		return
	}
	c.set(ctx, key, v)
}

func (c *Blogs) invalidate(ctx context.Context, keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	c.drop(ctx, keys...)
}

// get reports whether key was found in Redis and decoded into dst.
func (c *Blogs) get(ctx context.Context, key string, dst any) bool {
	val, err := c.cb.Execute(func() (any, error) {
		s, err := c.rdb.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return s, nil
	})
	if err != nil {
		c.log.Warn("cache read failed, using store", "key", key, "err", err)
		return false
	}
	s, ok := val.(string)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(s), dst); err != nil {
		c.log.Error("cache entry undecodable", "key", key, "err", err)
		return false
	}
	return true
}

func (c *Blogs) set(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, err = c.cb.Execute(func() (any, error) {
		return nil, c.rdb.Set(ctx, key, data, c.ttl).Err()
	})
	if err != nil {
		c.log.Warn("cache write failed", "key", key, "err", err)
	}
}

func (c *Blogs) drop(ctx context.Context, keys ...string) {
	_, err := c.cb.Execute(func() (any, error) {
		return nil, c.rdb.Del(ctx, keys...).Err()
	})
	if err != nil {
		c.log.Warn("cache invalidation failed", "keys", keys, "err", err)
	}
}
