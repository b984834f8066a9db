package entity

import (
	"maps"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// StatKey ключ базовой характеристики покемона
type StatKey string

const (
	StatHP             StatKey = "hp"
	StatAttack         StatKey = "attack"
	StatDefense        StatKey = "defense"
	StatSpecialAttack  StatKey = "special-attack"
	StatSpecialDefense StatKey = "special-defense"
	StatSpeed          StatKey = "speed"
)

// MaxStatValue верхняя граница базовой характеристики в PokéAPI.
const MaxStatValue = 255

// StatKeys фиксированный порядок вывода характеристик.
var StatKeys = []StatKey{
	StatHP,
	StatAttack,
	StatDefense,
	StatSpecialAttack,
	StatSpecialDefense,
	StatSpeed,
}

var statLabels = map[StatKey]string{
	StatHP:             "HP",
	StatAttack:         "Attack",
	StatDefense:        "Defense",
	StatSpecialAttack:  "Sp. Atk",
	StatSpecialDefense: "Sp. Def",
	StatSpeed:          "Speed",
}

// Label возвращает короткую подпись для карточки
func (k StatKey) Label() string {
	if label, ok := statLabels[k]; ok {
		return label
	}
	return string(k)
}

// PokemonRecord карточка покемона, готовая к отображению
type PokemonRecord struct {
	Name      string          `json:"name"`
	SpriteURL string          `json:"sprite_url"`
	Types     []string        `json:"types"`
	HeightM   float64         `json:"height_m"`  // рост в метрах
	WeightKg  float64         `json:"weight_kg"` // вес в килограммах
	Stats     map[StatKey]int `json:"stats"`
	Abilities []string        `json:"abilities"`
}

// NewPokemonRecord создаёт карточку со всеми шестью характеристиками, равными нулю.
func NewPokemonRecord(name string) *PokemonRecord {
	stats := make(map[StatKey]int, len(StatKeys))
	for _, key := range StatKeys {
		stats[key] = 0
	}
	return &PokemonRecord{
		Name:      name,
		Types:     []string{},
		Stats:     stats,
		Abilities: []string{},
	}
}

// Stat возвращает значение характеристики, отсутствующая считается нулевой
func (r *PokemonRecord) Stat(key StatKey) int {
	return r.Stats[key]
}

// SetStat записывает характеристику, неизвестные ключи игнорируются.
func (r *PokemonRecord) SetStat(key string, value int) {
	k := StatKey(key)
	if _, ok := statLabels[k]; !ok {
		return
	}
	if r.Stats == nil {
		r.Stats = make(map[StatKey]int, len(StatKeys))
	}
	r.Stats[k] = value
}

// Clone глубокая копия: кэш и сессии не должны делить срезы и map.
func (r *PokemonRecord) Clone() *PokemonRecord {
	if r == nil {
		return nil
	}
	c := *r
	c.Types = slices.Clone(r.Types)
	c.Abilities = slices.Clone(r.Abilities)
	c.Stats = maps.Clone(r.Stats)
	return &c
}

// NormalizeName приводит свободное имя к slug, который понимает PokéAPI:
// " Mr Mime " -> "mr-mime".
func NormalizeName(raw string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), " ", "-")
}

// Capitalize делает первую букву заглавной, остальные строчными ("mr-mime" -> "Mr-mime").
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}

// DecimetersToMeters переводит рост PokéAPI в метры.
func DecimetersToMeters(dm int) float64 {
	return float64(dm) / 10
}

// HectogramsToKilograms переводит вес PokéAPI в килограммы.
func HectogramsToKilograms(hg int) float64 {
	return float64(hg) / 10
}
