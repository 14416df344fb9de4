package cache

import (
	"fmt"
	"github.com/golang/groupcache/lru"
	lru2 "github.com/hashicorp/golang-lru/v2"
	"github.com/mitchellh/hashstructure/v2"
	"github.com/rotblauer/polytag/tagger"
)

type containKey struct {
	container, contained uint64
}

// MemoContains wraps a contain func with an LRU of its answers,
// keyed by the hashstructure hashes of the container and the contained geometry.
// Values which cannot be hashed skip the cache.
// The returned func is safe for concurrent use.
func MemoContains[C, G any](fn tagger.ContainFn[C, G], size int) (tagger.ContainFn[C, G], error) {
	c, err := lru2.New[containKey, bool](size)
	if err != nil {
		return nil, err
	}
	return func(container C, contained G) bool {
		ck, err := hashstructure.Hash(container, hashstructure.FormatV2, nil)
		if err != nil {
			return fn(container, contained)
		}
		gk, err := hashstructure.Hash(contained, hashstructure.FormatV2, nil)
		if err != nil {
			return fn(container, contained)
		}
		key := containKey{ck, gk}
		if v, ok := c.Get(key); ok {
			return v
		}
		v := fn(container, contained)
		c.Add(key, v)
		return v
	}, nil
}

// NewDedupePassLRUFunc returns a func which is true the first time it sees a value,
// and false while that value (by hash) stays in its LRU.
// Values which cannot be hashed always pass.
// Not safe for concurrent use.
func NewDedupePassLRUFunc[T any](size int) func(T) bool {
	var dedupeCache = lru.New(size)
	return func(v T) bool {
		hash, err := hashstructure.Hash(v, hashstructure.FormatV2, nil)
		if err != nil {
			return true
		}
		key := fmt.Sprintf("%d", hash)
		if _, ok := dedupeCache.Get(key); ok {
			return false
		}
		dedupeCache.Add(key, true)
		return true
	}
}
