package port

import (
	"context"

	"pokedex-bot/internal/domain/entity"
)

// PokemonSource интерфейс справочника покемонов
type PokemonSource interface {
	// Fetch ищет карточку по нормализованному имени
	Fetch(ctx context.Context, slug string) entity.Lookup
}

// RecordCache интерфейс кэша карточек с ограниченным временем жизни
type RecordCache interface {
	// Get возвращает карточку, если она ещё не устарела
	Get(slug string) (*entity.PokemonRecord, bool)

	// Set сохраняет карточку, перезаписывая предыдущую
	Set(slug string, record *entity.PokemonRecord)
}

// ExpiringCache кэш, из которого можно вычистить устаревшие записи
type ExpiringCache interface {
	// Purge удаляет устаревшие записи и возвращает их количество
	Purge() int

	// Len количество записей в кэше
	Len() int
}
