package fetch

import (
	"context"
	"sync"
	"time"
)

// Caches fetched responses in memory
type Memory struct {
	mutex sync.Mutex
	cache map[string]cacheEntry

	TimeNow func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		cache:   make(map[string]cacheEntry),
		TimeNow: time.Now,
	}
}

type cacheEntry struct {
	data       []byte
	expiration time.Time
}

// The mutex guards the cache map only. It is not held across the HTTP
// round-trip, so an arrivals fetch and a status fetch can run
// concurrently. Concurrent misses on the same URL may both hit
// upstream; last write wins.
func (f *Memory) Get(
	ctx context.Context,
	url string,
	headers map[string]string,
	options Options,
) ([]byte, error) {
	if options.Cache {
		if data, ok := f.cached(url); ok {
			return data, nil
		}
	}

	body, err := HTTPGet(ctx, url, headers, options)
	if err != nil {
		return nil, err
	}

	if options.Cache {
		f.mutex.Lock()
		f.cache[url] = cacheEntry{
			data:       body,
			expiration: f.TimeNow().Add(options.CacheTTL),
		}
		f.mutex.Unlock()
	}

	return body, nil
}

func (f *Memory) cached(url string) ([]byte, bool) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	entry, ok := f.cache[url]
	if !ok || !entry.expiration.After(f.TimeNow()) {
		return nil, false
	}
	return entry.data, true
}
