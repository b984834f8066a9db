package entity

import "time"

// WorkflowState состояние сценария "снимок -> распознавание -> карточка"
type WorkflowState string

const (
	StateIdle          WorkflowState = "idle"           // Ожидание снимка
	StateImageCaptured WorkflowState = "image_captured" // Снимок получен
	StateAnalyzing     WorkflowState = "analyzing"      // Идёт распознавание и поиск
	StateFound         WorkflowState = "found"          // Карточка найдена
	StateNotFound      WorkflowState = "not_found"      // Покемон не найден
)

// Finished сообщает, что сценарий завершён и ждёт сброса
func (s WorkflowState) Finished() bool {
	return s == StateFound || s == StateNotFound
}

// Session представляет сценарий одного пользователя
type Session struct {
	ID        string         // Telegram User ID или UUID веб-сессии
	State     WorkflowState  // Текущее состояние
	Image     []byte         // Снимок, хранится до конца анализа или сброса
	Name      string         // Имя, которое вернула модель
	Record    *PokemonRecord // Карточка в состоянии StateFound
	UpdatedAt time.Time
}

// NewSession создаёт новую сессию с начальным состоянием
func NewSession(id string) *Session {
	return &Session{
		ID:        id,
		State:     StateIdle,
		UpdatedAt: time.Now(),
	}
}

// SetState обновляет состояние сессии
func (s *Session) SetState(state WorkflowState) {
	s.State = state
	s.UpdatedAt = time.Now()
}

// Capture сохраняет снимок, предыдущий снимок заменяется.
func (s *Session) Capture(image []byte) {
	s.Image = image
	s.Name = ""
	s.Record = nil
	s.SetState(StateImageCaptured)
}

// Complete фиксирует итог анализа. Снимок больше не нужен.
func (s *Session) Complete(name string, record *PokemonRecord) {
	s.Image = nil
	s.Name = name
	s.Record = record
	if record != nil {
		s.SetState(StateFound)
		return
	}
	s.SetState(StateNotFound)
}

// Reset возвращает сессию в начальное состояние
func (s *Session) Reset() {
	s.Image = nil
	s.Name = ""
	s.Record = nil
	s.SetState(StateIdle)
}

// Clone копия для выдачи наружу из хранилища
func (s *Session) Clone() *Session {
	c := *s
	if s.Image != nil {
		c.Image = append([]byte(nil), s.Image...)
	}
	c.Record = s.Record.Clone()
	return &c
}
