package app

import (
	"context"
	"sync"
	"time"

	"github.com/apex/log"

	"pokedex-bot/internal/domain/entity"
	"pokedex-bot/internal/domain/port"
)

type SessionService struct {
	repo  port.SessionRepository
	locks sync.Map // sessionID -> *sync.Mutex
}

func NewSessionService(repo port.SessionRepository) *SessionService {
	return &SessionService{repo: repo}
}

func (s *SessionService) Get(ctx context.Context, sessionID string) (*entity.Session, error) {
	return s.repo.Get(ctx, sessionID)
}

func (s *SessionService) Find(ctx context.Context, sessionID string) (*entity.Session, error) {
	return s.repo.Find(ctx, sessionID)
}

func (s *SessionService) Save(ctx context.Context, session *entity.Session) error {
	return s.repo.Save(ctx, session)
}

// SetState меняет только состояние существующей сессии и возвращает её новое значение
func (s *SessionService) SetState(ctx context.Context, sessionID string, state entity.WorkflowState) (*entity.Session, error) {
	if err := s.repo.UpdateState(ctx, sessionID, state); err != nil {
		return nil, err
	}
	return s.repo.Find(ctx, sessionID)
}

// Lock сериализует действия над одной сессией. Вернёт функцию разблокировки.
func (s *SessionService) Lock(sessionID string) func() {
	for {
		value, _ := s.locks.LoadOrStore(sessionID, &sync.Mutex{})
		mu := value.(*sync.Mutex)
		mu.Lock()

		// Пока ждали, сессию могли вычистить вместе с мьютексом
		if current, ok := s.locks.Load(sessionID); ok && current == value {
			return mu.Unlock
		}
		mu.Unlock()
	}
}

// EvictIdle удаляет сессии, не менявшиеся с момента before, вместе со снимками и мьютексами.
func (s *SessionService) EvictIdle(ctx context.Context, before time.Time) (int, error) {
	ids, err := s.repo.IdleSince(ctx, before)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, id := range ids {
		evicted, err := s.evict(ctx, id, before)
		if err != nil {
			return removed, err
		}
		if evicted {
			removed++
		}
	}
	return removed, nil
}

func (s *SessionService) evict(ctx context.Context, sessionID string, before time.Time) (bool, error) {
	unlock := s.Lock(sessionID)
	defer unlock()

	// Под блокировкой сессия могла обновиться
	session, err := s.repo.Find(ctx, sessionID)
	if err != nil || !session.UpdatedAt.Before(before) {
		return false, nil
	}

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return false, err
	}
	s.locks.Delete(sessionID)

	log.WithField("session", sessionID).WithField("state", session.State).Debug("idle session evicted")
	return true, nil
}
