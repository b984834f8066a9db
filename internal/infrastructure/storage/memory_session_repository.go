package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"pokedex-bot/internal/domain/entity"
	"pokedex-bot/internal/domain/port"
)

// ErrSessionNotFound сессия с таким ID не создавалась
var ErrSessionNotFound = errors.New("session not found")

// MemorySessionRepository in-memory хранилище сессий.
// Наружу отдаются копии, поэтому сессии не разделяются между горутинами.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*entity.Session
}

// NewMemorySessionRepository создаёт новое in-memory хранилище
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]*entity.Session),
	}
}

// Get возвращает сессию по ID, создаёт новую если не найдена
func (r *MemorySessionRepository) Get(ctx context.Context, sessionID string) (*entity.Session, error) {
	r.mu.RLock()
	session, exists := r.sessions[sessionID]
	r.mu.RUnlock()

	if exists {
		return session.Clone(), nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Пока ждали блокировку, сессию мог создать другой запрос
	if session, exists = r.sessions[sessionID]; exists {
		return session.Clone(), nil
	}
	session = entity.NewSession(sessionID)
	r.sessions[sessionID] = session

	return session.Clone(), nil
}

// Find возвращает сессию по ID или ErrSessionNotFound
func (r *MemorySessionRepository) Find(ctx context.Context, sessionID string) (*entity.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.sessions[sessionID]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return session.Clone(), nil
}

// Save сохраняет состояние сессии
func (r *MemorySessionRepository) Save(ctx context.Context, session *entity.Session) error {
	r.mu.Lock()
	r.sessions[session.ID] = session.Clone()
	r.mu.Unlock()

	return nil
}

// UpdateState обновляет состояние сессии
func (r *MemorySessionRepository) UpdateState(ctx context.Context, sessionID string, state entity.WorkflowState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, exists := r.sessions[sessionID]
	if !exists {
		return ErrSessionNotFound
	}
	session.SetState(state)

	return nil
}

// IdleSince возвращает ID сессий, у которых UpdatedAt раньше before
func (r *MemorySessionRepository) IdleSince(ctx context.Context, before time.Time) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	for id, session := range r.sessions {
		if session.UpdatedAt.Before(before) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Delete удаляет сессию вместе со снимком
func (r *MemorySessionRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.sessions, sessionID)
	r.mu.Unlock()

	return nil
}

// Проверка реализации интерфейса
var _ port.SessionRepository = (*MemorySessionRepository)(nil)
