package relations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/btto/orgaccess/internal/access"
)

const (
	cacheVersionKey = "relations:version"
	// sharedLookupTimeout bounds a collapsed source lookup, which outlives
	// any single caller's context.
	sharedLookupTimeout = 30 * time.Second
	// BumpChannel carries the new cache version after the hierarchy changes.
	BumpChannel = "relations.bump"
)

// ErrCacheDisabled is returned by Bump when no Redis client is configured.
var ErrCacheDisabled = errors.New("relations: cache disabled")

// CacheObserver is notified of cache hits and misses.
type CacheObserver interface {
	ObserveRelationCache(hit bool)
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithCacheLogger reports Redis failures; lookups then fall through to the source.
func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *Cache) {
		c.logger = logger
	}
}

// WithCacheObserver attaches hit/miss instrumentation.
func WithCacheObserver(observer CacheObserver) CacheOption {
	return func(c *Cache) {
		c.observer = observer
	}
}

// Cache memoizes IsManager answers in Redis under versioned keys. Bumping the
// version invalidates every cached answer at once.
type Cache struct {
	source    access.RelationOracle
	client    *redis.Client
	ttl       time.Duration
	group     singleflight.Group
	version   atomic.Int64
	listening atomic.Bool
	logger    *slog.Logger
	observer  CacheObserver
}

// NewCache wraps source. A nil client or non-positive ttl disables caching.
func NewCache(source access.RelationOracle, client *redis.Client, ttl time.Duration, opts ...CacheOption) *Cache {
	c := &Cache{source: source, client: client, ttl: ttl}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) enabled() bool {
	return c.client != nil && c.ttl > 0
}

// IsManager answers from Redis when possible and from the source otherwise.
func (c *Cache) IsManager(ctx context.Context, manager, subordinate access.User) (bool, error) {
	if !c.enabled() {
		return c.source.IsManager(ctx, manager, subordinate)
	}
	key, err := c.key(ctx, manager.ID, subordinate.ID)
	if err != nil {
		c.warn(ctx, "relations cache version", err)
		return c.source.IsManager(ctx, manager, subordinate)
	}

	cached, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		c.observe(true)
		return cached == "1", nil
	case !errors.Is(err, redis.Nil):
		c.warn(ctx, "relations cache get", err)
		return c.source.IsManager(ctx, manager, subordinate)
	}
	c.observe(false)

	resultCh := c.group.DoChan(key, func() (interface{}, error) {
		// Joined callers must not inherit the first caller's cancellation.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLookupTimeout)
		defer cancel()
		found, err := c.source.IsManager(ctx, manager, subordinate)
		if err != nil {
			return false, err
		}
		value := "0"
		if found {
			value = "1"
		}
		if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
			c.warn(ctx, "relations cache set", err)
		}
		return found, nil
	})
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case res := <-resultCh:
		if res.Err != nil {
			return false, res.Err
		}
		return res.Val.(bool), nil
	}
}

// Version returns the current cache version, initialising it when missing.
func (c *Cache) Version(ctx context.Context) (int64, error) {
	if c.listening.Load() {
		if local := c.version.Load(); local > 0 {
			return local, nil
		}
	}
	if c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.SetNX(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		ver, err = c.client.Get(ctx, cacheVersionKey).Int64()
	}
	if err != nil {
		return 0, err
	}
	if c.listening.Load() {
		c.adopt(ver)
	}
	return ver, nil
}

// Bump invalidates all cached answers and announces the new version.
func (c *Cache) Bump(ctx context.Context) (int64, error) {
	if c.client == nil {
		return 0, ErrCacheDisabled
	}
	ver, err := c.client.Incr(ctx, cacheVersionKey).Result()
	if err != nil {
		return 0, fmt.Errorf("relations: bump version: %w", err)
	}
	c.adopt(ver)
	if err := c.client.Publish(ctx, BumpChannel, strconv.FormatInt(ver, 10)).Err(); err != nil {
		return ver, fmt.Errorf("relations: publish bump: %w", err)
	}
	return ver, nil
}

// ListenForInvalidation keeps an in-process copy of the version in sync with
// bumps published by other processes, saving a Redis round trip per lookup.
// It returns once subscribed; the listener stops when ctx is done.
func (c *Cache) ListenForInvalidation(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	pubsub := c.client.Subscribe(ctx, BumpChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return fmt.Errorf("relations: subscribe: %w", err)
	}
	ver, err := c.Version(ctx)
	if err != nil {
		_ = pubsub.Close()
		return err
	}
	c.adopt(ver)
	c.listening.Store(true)

	go func() {
		defer func() {
			c.listening.Store(false)
			_ = pubsub.Close()
		}()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				if ver, err := strconv.ParseInt(msg.Payload, 10, 64); err == nil {
					c.adopt(ver)
					continue
				}
				// Unknown payload: drop the local copy and re-read from Redis.
				c.version.Store(0)
			}
		}
	}()
	return nil
}

// adopt moves the local version forward, never backward.
func (c *Cache) adopt(ver int64) {
	for {
		current := c.version.Load()
		if ver <= current || c.version.CompareAndSwap(current, ver) {
			return
		}
	}
}

func (c *Cache) key(ctx context.Context, managerID, subordinateID int64) (string, error) {
	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("relations:is_manager:%d:%d:%d", managerID, subordinateID, ver), nil
}

func (c *Cache) observe(hit bool) {
	if c.observer != nil {
		c.observer.ObserveRelationCache(hit)
	}
}

func (c *Cache) warn(ctx context.Context, msg string, err error) {
	if c.logger != nil {
		c.logger.WarnContext(ctx, msg, slog.Any("error", err))
	}
}
