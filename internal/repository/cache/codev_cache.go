package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"codev-directory-backend/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

// SnapshotKey holds the JSON-encoded directory snapshot.
const SnapshotKey = "codevs:snapshot"

type codevCache struct {
	client *goredis.Client
	ttl    time.Duration
	now    func() time.Time

	// in-process copy, served when Redis is not configured or failing
	mu        sync.RWMutex
	local     []domain.CodevProfile
	localExp  time.Time
	localFull bool
}

// NewCodevCache returns a Redis-backed snapshot cache that also keeps the last
// snapshot in memory. With a nil client only the in-memory copy is used.
func NewCodevCache(client *goredis.Client, ttl time.Duration) domain.CodevSnapshotCache {
	return &codevCache{client: client, ttl: ttl, now: time.Now}
}

func (c *codevCache) Get(ctx context.Context) ([]domain.CodevProfile, bool, error) {
	if c.client == nil {
		profiles, ok := c.getLocal()
		return profiles, ok, nil
	}

	raw, err := c.client.Get(ctx, SnapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		profiles, ok := c.getLocal()
		return profiles, ok, fmt.Errorf("redis get snapshot: %w", err)
	}

	var profiles []domain.CodevProfile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return profiles, true, nil
}

func (c *codevCache) Set(ctx context.Context, profiles []domain.CodevProfile) error {
	c.setLocal(profiles)
	if c.client == nil {
		return nil
	}

	raw, err := json.Marshal(profiles)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := c.client.Set(ctx, SnapshotKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set snapshot: %w", err)
	}
	return nil
}

func (c *codevCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return errors.New("redis: client not initialized")
	}
	return c.client.Ping(ctx).Err()
}

func (c *codevCache) getLocal() ([]domain.CodevProfile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.localFull || (c.ttl > 0 && c.now().After(c.localExp)) {
		return nil, false
	}
	return c.local, true
}

// setLocal keeps the caller's slice; snapshots are never mutated after load.
func (c *codevCache) setLocal(profiles []domain.CodevProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.local = profiles
	c.localExp = c.now().Add(c.ttl)
	c.localFull = true
}
