package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const megabyte = 1024 * 1024

// UserCache keeps at most one value per user. A value is only returned for
// the variant it was stored under (e.g. "2024-01-02|3"), so stale variants
// are replaced instead of piling up, and Invalidate drops everything a user has.
type UserCache[T any] struct {
	prefix string
	cache  *freecache.Cache
	ttl    time.Duration
}

type entry[T any] struct {
	Variant string `json:"variant"`
	Value   T      `json:"value"`
}

func NewUserCache[T any](prefix string, sizeMB int, ttl time.Duration) *UserCache[T] {
	if sizeMB <= 0 {
		sizeMB = 1
	}
	return &UserCache[T]{
		prefix: prefix,
		cache:  freecache.NewCache(sizeMB * megabyte),
		ttl:    ttl,
	}
}

func (c *UserCache[T]) key(userID string) []byte {
	return []byte(fmt.Sprintf("%s::%s", c.prefix, userID))
}

// Get returns the cached value of userID if it was stored for variant.
func (c *UserCache[T]) Get(userID, variant string) (T, bool) {
	var zero T

	raw, err := c.cache.Get(c.key(userID))
	if err != nil {
		if !errors.Is(err, freecache.ErrNotFound) {
			log.Errorf("cache %s get for user %s: %s", c.prefix, userID, err)
		}
		return zero, false
	}

	var e entry[T]
	if err := json.Unmarshal(raw, &e); err != nil {
		log.Errorf("cache %s decode for user %s: %s", c.prefix, userID, err)
		c.Invalidate(userID)
		return zero, false
	}
	if e.Variant != variant {
		return zero, false
	}
	return e.Value, true
}

func (c *UserCache[T]) Set(userID, variant string, value T) {
	raw, err := json.Marshal(entry[T]{Variant: variant, Value: value})
	if err != nil {
		log.Errorf("cache %s encode for user %s: %s", c.prefix, userID, err)
		return
	}
	if err = c.cache.Set(c.key(userID), raw, int(c.ttl.Seconds())); err != nil {
		log.Errorf("cache %s set for user %s: %s", c.prefix, userID, err)
	}
}

func (c *UserCache[T]) Invalidate(userID string) {
	c.cache.Del(c.key(userID))
}
