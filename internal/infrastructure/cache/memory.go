package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const cleanupInterval = time.Hour

// MemoryNameIDs keeps item name ids in process memory.
type MemoryNameIDs struct {
	items *gocache.Cache
}

func NewMemoryNameIDs(ttl time.Duration) *MemoryNameIDs {
	return &MemoryNameIDs{
		items: gocache.New(ttl, cleanupInterval),
	}
}

func (m *MemoryNameIDs) Get(_ context.Context, hashName string) (string, bool) {
	v, found := m.items.Get(hashName)
	if !found {
		return "", false
	}

	id, ok := v.(string)

	return id, ok
}

func (m *MemoryNameIDs) Set(_ context.Context, hashName, nameID string) {
	m.items.Set(hashName, nameID, gocache.DefaultExpiration)
}

func (m *MemoryNameIDs) Len() int {
	return m.items.ItemCount()
}
