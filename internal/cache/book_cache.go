package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"liblend/internal/api/models"

	"github.com/redis/go-redis/v9"
)

// BookCache is a small read-through cache for single-book lookups. A nil
// *BookCache is valid and turns every operation into a no-op, so callers and
// tests can run without Redis.
type BookCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewBookCache(addr, password string, ttl time.Duration) (*BookCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &BookCache{client: rdb, ttl: ttl}, nil
}

func bookKey(id int64) string {
	return fmt.Sprintf("book:%d", id)
}

// Get returns the cached book and true on a hit. Cache errors are swallowed;
// a broken cache must never fail a read that the database can serve.
func (c *BookCache) Get(ctx context.Context, id int64) (*models.Book, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, bookKey(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var book models.Book
	if err := json.Unmarshal(payload, &book); err != nil {
		return nil, false
	}
	return &book, true
}

func (c *BookCache) Set(ctx context.Context, book *models.Book) {
	if c == nil || c.client == nil || book == nil {
		return
	}
	payload, err := json.Marshal(book)
	if err != nil {
		return
	}
	c.client.Set(ctx, bookKey(book.ID), payload, c.ttl)
}

// Invalidate drops the cached entry; called on any mutation that can change
// what a book read returns, average score recomputation included.
func (c *BookCache) Invalidate(ctx context.Context, id int64) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, bookKey(id))
}

func (c *BookCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
