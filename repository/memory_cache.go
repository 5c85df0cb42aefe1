package repository

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// DefaultMemoryCacheEntries bounds MemoryCache when no limit is configured.
const DefaultMemoryCacheEntries = 10_000

type memoryEntry struct {
	key       string
	value     string
	expiresAt time.Time
}

// MemoryCache is an in-process CacheRepository for single-instance runs
// and tests. It holds at most maxEntries keys, dropping the least recently
// used one on overflow, and entries expire after ttl (zero keeps them).
type MemoryCache struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	order      *list.List
	items      map[string]*list.Element
	now        func() time.Time
}

func NewMemoryCache(ttl time.Duration, maxEntries int) *MemoryCache {
	if maxEntries < 1 {
		maxEntries = DefaultMemoryCacheEntries
	}
	return &MemoryCache{
		ttl:        ttl,
		maxEntries: maxEntries,
		order:      list.New(),
		items:      make(map[string]*list.Element),
		now:        time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.items[key]
	if !ok {
		return "", false
	}
	entry := el.Value.(*memoryEntry)
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		m.remove(el)
		return "", false
	}
	m.order.MoveToFront(el)
	return entry.value, true
}

func (m *MemoryCache) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expiresAt time.Time
	if m.ttl > 0 {
		expiresAt = m.now().Add(m.ttl)
	}

	if el, ok := m.items[key]; ok {
		entry := el.Value.(*memoryEntry)
		entry.value = value
		entry.expiresAt = expiresAt
		m.order.MoveToFront(el)
		return nil
	}

	m.items[key] = m.order.PushFront(&memoryEntry{key: key, value: value, expiresAt: expiresAt})
	for m.order.Len() > m.maxEntries {
		m.remove(m.order.Back())
	}
	return nil
}

func (m *MemoryCache) remove(el *list.Element) {
	m.order.Remove(el)
	delete(m.items, el.Value.(*memoryEntry).key)
}

func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}
