package app

import (
	"context"
	"time"

	"github.com/apex/log"

	"pokedex-bot/internal/domain/port"
)

// DefaultSessionTTL сколько живёт сессия без изменений
const DefaultSessionTTL = 24 * time.Hour

// Janitor периодически вычищает заброшенные сессии и устаревшие карточки.
type Janitor struct {
	sessions   *SessionService
	cache      port.ExpiringCache
	sessionTTL time.Duration
	now        func() time.Time
}

// SweepResult сколько записей удалено за один проход
type SweepResult struct {
	Sessions int
	Records  int
}

// NewJanitor создаёт уборщика. cache может быть nil.
func NewJanitor(sessions *SessionService, cache port.ExpiringCache, sessionTTL time.Duration) *Janitor {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	return &Janitor{
		sessions:   sessions,
		cache:      cache,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

// Sweep выполняет один проход уборки
func (j *Janitor) Sweep(ctx context.Context) (SweepResult, error) {
	var result SweepResult

	removed, err := j.sessions.EvictIdle(ctx, j.now().Add(-j.sessionTTL))
	result.Sessions = removed
	if err != nil {
		return result, err
	}

	if j.cache != nil {
		result.Records = j.cache.Purge()
	}
	return result, nil
}

// Run запускает уборку каждые interval до отмены ctx
func (j *Janitor) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			result, err := j.Sweep(ctx)
			if err != nil {
				log.WithError(err).Error("sweep failed")
				continue
			}
			entry := log.WithField("sessions", result.Sessions).WithField("records", result.Records)
			if j.cache != nil {
				entry = entry.WithField("cached", j.cache.Len())
			}
			entry.Debug("sweep finished")
		}
	}
}
