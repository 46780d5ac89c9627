package cache

import (
	"sync"
	"time"
)

type fallbackEntry struct {
	data      []byte
	expiresAt time.Time
}

type FallbackCache struct {
	mu      sync.RWMutex
	entries map[string]fallbackEntry
	maxSize int
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

func NewFallbackCache(maxSize int) *FallbackCache {
	fc := &FallbackCache{
		entries: make(map[string]fallbackEntry),
		maxSize: maxSize,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go fc.cleanup()
	return fc
}

func (fc *FallbackCache) Get(key string) ([]byte, bool) {
	fc.mu.RLock()
	defer fc.mu.RUnlock()

	entry, ok := fc.entries[key]
	if !ok {
		return nil, false
	}

	if fc.now().After(entry.expiresAt) {
		return nil, false
	}

	return entry.data, true
}

func (fc *FallbackCache) Set(key string, data []byte, ttl time.Duration) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if _, exists := fc.entries[key]; !exists && len(fc.entries) >= fc.maxSize {
		fc.evictOldest()
	}

	fc.entries[key] = fallbackEntry{
		data:      data,
		expiresAt: fc.now().Add(ttl),
	}
}

func (fc *FallbackCache) Close() {
	fc.once.Do(func() { close(fc.stop) })
}

func (fc *FallbackCache) evictOldest() {
	var oldestKey string
	var oldestTime time.Time

	for key, entry := range fc.entries {
		if oldestKey == "" || entry.expiresAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.expiresAt
		}
	}

	if oldestKey != "" {
		delete(fc.entries, oldestKey)
	}
}

func (fc *FallbackCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-fc.stop:
			return
		case <-ticker.C:
			fc.mu.Lock()
			now := fc.now()
			for key, entry := range fc.entries {
				if now.After(entry.expiresAt) {
					delete(fc.entries, key)
				}
			}
			fc.mu.Unlock()
		}
	}
}
