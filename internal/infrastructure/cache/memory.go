package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryHistoryStore is an in-memory HistoryStore with expiration. It backs
// search history when Redis is disabled.
type MemoryHistoryStore struct {
	mu    sync.RWMutex
	items map[string]*memoryItem
	size  int
	ttl   time.Duration
	stop  chan struct{}
	once  sync.Once
}

type memoryItem struct {
	queries    []string
	expireTime time.Time
}

// NewMemoryHistoryStore creates a new in-memory history store
func NewMemoryHistoryStore(size int, ttl time.Duration) *MemoryHistoryStore {
	store := &MemoryHistoryStore{
		items: make(map[string]*memoryItem),
		size:  size,
		ttl:   ttl,
		stop:  make(chan struct{}),
	}

	// Start cleanup goroutine to remove expired items
	go store.cleanupExpired(5 * time.Minute)

	return store
}

var _ HistoryStore = (*MemoryHistoryStore)(nil)

// Push records query at the front of the user's history
func (ms *MemoryHistoryStore) Push(_ context.Context, userID uuid.UUID, query string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	key := historyKey(userID)
	var current []string
	if item, ok := ms.items[key]; ok && !ms.expired(item, time.Now()) {
		current = item.queries
	}

	ms.items[key] = &memoryItem{
		queries:    pushFront(current, query, ms.size),
		expireTime: ms.expiry(),
	}
	return nil
}

// Recent returns the user's history, newest first
func (ms *MemoryHistoryStore) Recent(_ context.Context, userID uuid.UUID) ([]string, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	item, exists := ms.items[historyKey(userID)]
	if !exists || ms.expired(item, time.Now()) {
		return []string{}, nil
	}
	return append([]string(nil), item.queries...), nil
}

// Clear drops the user's history
func (ms *MemoryHistoryStore) Clear(_ context.Context, userID uuid.UUID) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.items, historyKey(userID))
	return nil
}

// Close stops the cleanup goroutine
func (ms *MemoryHistoryStore) Close() {
	ms.once.Do(func() { close(ms.stop) })
}

func (ms *MemoryHistoryStore) expiry() time.Time {
	if ms.ttl <= 0 {
		return time.Time{}
	}
	return time.Now().Add(ms.ttl)
}

func (ms *MemoryHistoryStore) expired(item *memoryItem, now time.Time) bool {
	return !item.expireTime.IsZero() && now.After(item.expireTime)
}

// cleanupExpired periodically removes expired items
func (ms *MemoryHistoryStore) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ms.stop:
			return
		case <-ticker.C:
			ms.mu.Lock()
			now := time.Now()
			for key, item := range ms.items {
				if ms.expired(item, now) {
					delete(ms.items, key)
				}
			}
			ms.mu.Unlock()
		}
	}
}
