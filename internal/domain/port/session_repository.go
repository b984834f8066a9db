package port

import (
	"context"
	"time"

	"pokedex-bot/internal/domain/entity"
)

// SessionRepository интерфейс хранилища сессий
type SessionRepository interface {
	// Get возвращает сессию по ID, создаёт новую если не найдена
	Get(ctx context.Context, sessionID string) (*entity.Session, error)

	// Find возвращает сессию по ID без создания
	Find(ctx context.Context, sessionID string) (*entity.Session, error)

	// Save сохраняет состояние сессии
	Save(ctx context.Context, session *entity.Session) error

	// UpdateState обновляет только состояние, снимок и карточка сохраняются
	UpdateState(ctx context.Context, sessionID string, state entity.WorkflowState) error

	// IdleSince возвращает ID сессий, не менявшихся с момента before
	IdleSince(ctx context.Context, before time.Time) ([]string, error)

	// Delete удаляет сессию, отсутствие сессии не ошибка
	Delete(ctx context.Context, sessionID string) error
}
