package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pokedex-bot/internal/domain/entity"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestRecordCache_HitWithinTTL(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cache := NewRecordCache(time.Hour, clock.Now)

	cache.Set("pikachu", entity.NewPokemonRecord("Pikachu"))
	clock.Advance(59 * time.Minute)

	record, ok := cache.Get("pikachu")
	require.True(t, ok)
	require.Equal(t, "Pikachu", record.Name)
}

func TestRecordCache_ExpiresAfterTTL(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cache := NewRecordCache(time.Hour, clock.Now)

	cache.Set("pikachu", entity.NewPokemonRecord("Pikachu"))
	clock.Advance(time.Hour)

	_, ok := cache.Get("pikachu")
	require.False(t, ok)
	require.Equal(t, 0, cache.Len())
}

func TestRecordCache_LastWriteWins(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cache := NewRecordCache(time.Hour, clock.Now)

	cache.Set("pikachu", entity.NewPokemonRecord("Old"))
	clock.Advance(50 * time.Minute)
	cache.Set("pikachu", entity.NewPokemonRecord("New"))
	clock.Advance(30 * time.Minute)

	record, ok := cache.Get("pikachu")
	require.True(t, ok)
	require.Equal(t, "New", record.Name)
	require.Equal(t, 1, cache.Len())
}

func TestRecordCache_CallersGetCopies(t *testing.T) {
	cache := NewRecordCache(time.Hour, nil)

	record := entity.NewPokemonRecord("Pikachu")
	record.Types = []string{"Electric"}
	cache.Set("pikachu", record)
	record.Types[0] = "Water"

	first, ok := cache.Get("pikachu")
	require.True(t, ok)
	require.Equal(t, []string{"Electric"}, first.Types)

	first.Types[0] = "Fire"
	first.Stats[entity.StatHP] = 999

	second, ok := cache.Get("pikachu")
	require.True(t, ok)
	require.Equal(t, []string{"Electric"}, second.Types)
	require.Equal(t, 0, second.Stat(entity.StatHP))
}

func TestRecordCache_Purge(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cache := NewRecordCache(time.Hour, clock.Now)

	cache.Set("pikachu", entity.NewPokemonRecord("Pikachu"))
	clock.Advance(2 * time.Hour)
	cache.Set("eevee", entity.NewPokemonRecord("Eevee"))

	require.Equal(t, 1, cache.Purge())
	require.Equal(t, 1, cache.Len())
}

func TestNewRecordCache_Defaults(t *testing.T) {
	cache := NewRecordCache(0, nil)
	require.Equal(t, DefaultRecordTTL, cache.ttl)
	require.NotNil(t, cache.now)
}
