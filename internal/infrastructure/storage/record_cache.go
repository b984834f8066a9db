package storage

import (
	"sync"
	"time"

	"pokedex-bot/internal/domain/entity"
	"pokedex-bot/internal/domain/port"
)

// DefaultRecordTTL время жизни карточки в кэше
const DefaultRecordTTL = time.Hour

type cacheEntry struct {
	record    *entity.PokemonRecord
	createdAt time.Time
}

// RecordCache кэш карточек по slug. На один slug хранится одна запись, последняя запись побеждает.
type RecordCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

// NewRecordCache создаёт кэш. now позволяет тестам управлять временем, nil означает time.Now.
func NewRecordCache(ttl time.Duration, now func() time.Time) *RecordCache {
	if ttl <= 0 {
		ttl = DefaultRecordTTL
	}
	if now == nil {
		now = time.Now
	}
	return &RecordCache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]cacheEntry),
	}
}

// Get возвращает копию карточки, если она моложе ttl. Устаревшая запись удаляется.
func (c *RecordCache) Get(slug string) (*entity.PokemonRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[slug]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.createdAt) >= c.ttl {
		delete(c.entries, slug)
		return nil, false
	}
	return entry.record.Clone(), true
}

// Set сохраняет копию карточки со свежей меткой времени
func (c *RecordCache) Set(slug string, record *entity.PokemonRecord) {
	c.mu.Lock()
	c.entries[slug] = cacheEntry{record: record.Clone(), createdAt: c.now()}
	c.mu.Unlock()
}

// Purge удаляет все устаревшие записи и возвращает их количество
func (c *RecordCache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for slug, entry := range c.entries {
		if now.Sub(entry.createdAt) >= c.ttl {
			delete(c.entries, slug)
			removed++
		}
	}
	return removed
}

// Len количество записей, включая ещё не вычищенные устаревшие
func (c *RecordCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

var _ port.RecordCache = (*RecordCache)(nil)

var _ port.ExpiringCache = (*RecordCache)(nil)
