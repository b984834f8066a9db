package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"

	"pokedex-bot/internal/domain/entity"
	"pokedex-bot/internal/domain/port"
	"pokedex-bot/internal/metrics"
)

var (
	// ErrNoImage анализ запрошен без снимка
	ErrNoImage = errors.New("no captured image to analyze")
	// ErrInvalidTransition действие недопустимо в текущем состоянии
	ErrInvalidTransition = errors.New("action is not allowed in current state")
	// ErrEmptyImage пустой снимок
	ErrEmptyImage = errors.New("captured image is empty")
)

// PokedexService ведёт сценарий: снимок -> распознавание -> карточка -> сброс.
type PokedexService struct {
	sessions   *SessionService
	identifier port.PokemonIdentifier
	source     port.PokemonSource
}

// AnalysisOutput итог анализа с причинами для логов и тестов
type AnalysisOutput struct {
	Session        *entity.Session
	Identification entity.Identification
	Lookup         entity.Lookup
}

// NewPokedexService создаёт сервис, который управляет сценарием распознавания.
func NewPokedexService(sessions *SessionService, identifier port.PokemonIdentifier, source port.PokemonSource) *PokedexService {
	return &PokedexService{
		sessions:   sessions,
		identifier: identifier,
		source:     source,
	}
}

// Session возвращает текущее состояние сессии, создавая её при необходимости.
func (s *PokedexService) Session(ctx context.Context, sessionID string) (*entity.Session, error) {
	return s.sessions.Get(ctx, sessionID)
}

// Capture сохраняет снимок. Повторный снимок до анализа заменяет предыдущий,
// после результата нужен сброс.
func (s *PokedexService) Capture(ctx context.Context, sessionID string, image []byte) (*entity.Session, error) {
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}

	unlock := s.sessions.Lock(sessionID)
	defer unlock()

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch session.State {
	case entity.StateIdle, entity.StateImageCaptured:
	default:
		return session, fmt.Errorf("capture in state %s: %w", session.State, ErrInvalidTransition)
	}

	session.Capture(image)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	log.WithField("session", sessionID).WithField("bytes", len(image)).Info("image captured")
	return session, nil
}

// Analyze распознаёт покемона на снимке и ищет его карточку.
// Отрицательный результат любого шага переводит сессию в StateNotFound.
func (s *PokedexService) Analyze(ctx context.Context, sessionID string) (*AnalysisOutput, error) {
	unlock := s.sessions.Lock(sessionID)
	defer unlock()

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != entity.StateImageCaptured || len(session.Image) == 0 {
		return &AnalysisOutput{Session: session}, ErrNoImage
	}

	image := session.Image
	session, err = s.sessions.SetState(ctx, sessionID, entity.StateAnalyzing)
	if err != nil {
		return nil, err
	}

	logger := log.WithField("session", sessionID)
	output := &AnalysisOutput{Session: session}

	identification, err := s.identifier.Identify(ctx, image)
	output.Identification = identification
	if err != nil {
		// Без ключа анализ невозможен: возвращаем снимок пользователю
		restored, stateErr := s.sessions.SetState(ctx, sessionID, entity.StateImageCaptured)
		if stateErr != nil {
			return nil, stateErr
		}
		output.Session = restored
		logger.WithError(err).Error("identification is not configured")
		return output, err
	}

	if !identification.Found() {
		logger.WithField("outcome", identification.Outcome).Info("no pokemon identified")
		return s.finish(ctx, output, "", nil)
	}

	slug := entity.NormalizeName(identification.Name)
	lookup := s.source.Fetch(ctx, slug)
	output.Lookup = lookup

	if !lookup.Found() {
		logger.WithField("slug", slug).WithField("outcome", lookup.Outcome).Info("pokemon not found")
		return s.finish(ctx, output, identification.Name, nil)
	}

	logger.WithField("slug", slug).WithField("outcome", lookup.Outcome).Info("pokemon found")
	return s.finish(ctx, output, identification.Name, lookup.Record)
}

func (s *PokedexService) finish(ctx context.Context, output *AnalysisOutput, name string, record *entity.PokemonRecord) (*AnalysisOutput, error) {
	output.Session.Complete(name, record)
	if err := s.sessions.Save(ctx, output.Session); err != nil {
		return nil, err
	}
	metrics.WorkflowsTotal.WithLabelValues(string(output.Session.State)).Inc()
	return output, nil
}

// Reset возвращает сессию в начальное состояние из любого состояния
func (s *PokedexService) Reset(ctx context.Context, sessionID string) (*entity.Session, error) {
	unlock := s.sessions.Lock(sessionID)
	defer unlock()

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.Reset()
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	log.WithField("session", sessionID).Info("session reset")
	return session, nil
}
