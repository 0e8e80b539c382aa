package securesql

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// ResultCache, ExecuteCached tarafından kullanılan SELECT sonuç deposudur.
// Anahtarlar CacheKey ile üretilir.
type ResultCache interface {
	Get(ctx context.Context, key string) (*Result, bool, error)
	Set(ctx context.Context, key string, res *Result) error
}

// MemoryCache is a process-local memoization map. It has no eviction and no
// expiry; entries live as long as the cache value does. Safe for use by
// several builders.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*Result
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]*Result)}
}

// Get implements ResultCache.
func (c *MemoryCache) Get(_ context.Context, key string) (*Result, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res, ok := c.entries[key]
	return res.Clone(), ok, nil
}

// Set implements ResultCache.
func (c *MemoryCache) Set(_ context.Context, key string, res *Result) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = res.Clone()
	return nil
}

// Len reports the number of memoized results.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// CacheKey, ifade metni ve parametre haritasından kararlı bir anahtar üretir:
// metin ile parametrelerin JSON kodlamasının xxhash64 özeti (hex).
// encoding/json map anahtarlarını sıraladığından aynı girdi her zaman aynı
// anahtarı verir.
func CacheKey(statement string, params Params) string {
	d := xxhash.New()
	_, _ = d.WriteString(statement)
	_, _ = d.Write([]byte{0})

	if raw, err := json.Marshal(params); err == nil {
		_, _ = d.Write(raw)
	} else {
		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			_, _ = fmt.Fprintf(d, "%s=%#v;", k, params[k])
		}
	}

	return strconv.FormatUint(d.Sum64(), 16)
}
