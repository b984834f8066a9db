package port

import (
	"context"

	"pokedex-bot/internal/domain/entity"
)

// PokemonIdentifier интерфейс распознавания покемона на снимке
type PokemonIdentifier interface {
	// Identify возвращает имя покемона или отрицательный результат с причиной.
	// Ошибка возвращается только при entity.ErrConfiguration.
	Identify(ctx context.Context, image []byte) (entity.Identification, error)
}
