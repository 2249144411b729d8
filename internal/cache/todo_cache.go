package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	dom "taskflow/internal/domain"

	"github.com/redis/go-redis/v9"
)

// Keys are namespaced per owner so invalidation never touches another user's entries.
const keyPrefix = "todo:"

// TodoCache caches per-owner task lists, search and overdue results in Redis.
type TodoCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTodoCache returns a new TodoCache.
func NewTodoCache(rdb *redis.Client, ttl time.Duration) *TodoCache {
	return &TodoCache{rdb: rdb, ttl: ttl}
}

func ownerKey(ownerID int64) string {
	return keyPrefix + strconv.FormatInt(ownerID, 10) + ":"
}

func listKey(ownerID int64) string    { return ownerKey(ownerID) + "list" }
func overdueKey(ownerID int64) string { return ownerKey(ownerID) + "overdue" }
func searchKey(ownerID int64, q string) string {
	return ownerKey(ownerID) + "search:" + NormalizeQuery(q)
}

// GetList returns the cached list or nil on a miss.
func (c *TodoCache) GetList(ctx context.Context, ownerID int64) ([]dom.Task, error) {
	return c.get(ctx, listKey(ownerID))
}

// SetList stores the list in cache.
func (c *TodoCache) SetList(ctx context.Context, ownerID int64, list []dom.Task) error {
	return c.set(ctx, listKey(ownerID), list)
}

// GetSearch returns the cached search result for q, or nil on a miss.
func (c *TodoCache) GetSearch(ctx context.Context, ownerID int64, q string) ([]dom.Task, error) {
	return c.get(ctx, searchKey(ownerID, q))
}

// SetSearch stores the search result in cache.
func (c *TodoCache) SetSearch(ctx context.Context, ownerID int64, q string, list []dom.Task) error {
	return c.set(ctx, searchKey(ownerID, q), list)
}

// GetOverdue returns the cached overdue list or nil on a miss.
func (c *TodoCache) GetOverdue(ctx context.Context, ownerID int64) ([]dom.Task, error) {
	return c.get(ctx, overdueKey(ownerID))
}

// SetOverdue stores the overdue list in cache.
func (c *TodoCache) SetOverdue(ctx context.Context, ownerID int64, list []dom.Task) error {
	return c.set(ctx, overdueKey(ownerID), list)
}

// InvalidateAll removes the owner's list, overdue and search keys.
func (c *TodoCache) InvalidateAll(ctx context.Context, ownerID int64) error {
	if err := c.rdb.Del(ctx, listKey(ownerID), overdueKey(ownerID)).Err(); err != nil {
		return err
	}
	iter := c.rdb.Scan(ctx, 0, ownerKey(ownerID)+"search:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *TodoCache) get(ctx context.Context, key string) ([]dom.Task, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	list := []dom.Task{}
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *TodoCache) set(ctx context.Context, key string, list []dom.Task) error {
	if list == nil {
		list = []dom.Task{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

// NormalizeQuery lowercases and trims a search query.
func NormalizeQuery(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
