package entity

import "errors"

// ErrConfiguration не задан ключ модели распознавания. Повторять запрос бессмысленно.
var ErrConfiguration = errors.New("vision api key is not configured")

// IdentifyOutcome причина результата распознавания
type IdentifyOutcome string

const (
	IdentifyIdentified IdentifyOutcome = "identified"
	IdentifyEmpty      IdentifyOutcome = "empty"      // модель вернула пустой текст
	IdentifyDenylisted IdentifyOutcome = "denylisted" // "none", "unknown" и т.п.
	IdentifyFailed     IdentifyOutcome = "failed"     // транспорт, статус или разбор ответа
)

// Identification итог распознавания изображения.
// Для пользователя все отрицательные исходы одинаковы, причина нужна для логов и тестов.
type Identification struct {
	Name    string
	Outcome IdentifyOutcome
	Raw     string // необработанный ответ модели
	Err     error
}

// Found сообщает, удалось ли получить имя
func (i Identification) Found() bool {
	return i.Outcome == IdentifyIdentified && i.Name != ""
}

// LookupOutcome причина результата запроса в PokéAPI
type LookupOutcome string

const (
	LookupFound     LookupOutcome = "found"
	LookupCached    LookupOutcome = "cached"
	LookupNotFound  LookupOutcome = "not_found"
	LookupEmptySlug LookupOutcome = "empty_slug"
	LookupFailed    LookupOutcome = "failed"
)

// Lookup итог поиска карточки покемона.
type Lookup struct {
	Record  *PokemonRecord
	Outcome LookupOutcome
	Err     error
}

// Found сообщает, есть ли карточка
func (l Lookup) Found() bool {
	return l.Record != nil && (l.Outcome == LookupFound || l.Outcome == LookupCached)
}
