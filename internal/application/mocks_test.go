package app

import (
	"context"

	"pokedex-bot/internal/domain/entity"
)

// fakeIdentifier возвращает заранее заданный результат и считает вызовы
type fakeIdentifier struct {
	result entity.Identification
	err    error
	calls  int
	images [][]byte
	during func() // вызывается внутри Identify
}

func (f *fakeIdentifier) Identify(ctx context.Context, image []byte) (entity.Identification, error) {
	f.calls++
	f.images = append(f.images, image)
	if f.during != nil {
		f.during()
	}
	return f.result, f.err
}

// fakeSource отдаёт карточки из map, остальные slug считаются ненайденными
type fakeSource struct {
	records map[string]*entity.PokemonRecord
	slugs   []string
}

func (f *fakeSource) Fetch(ctx context.Context, slug string) entity.Lookup {
	f.slugs = append(f.slugs, slug)
	if record, ok := f.records[slug]; ok {
		return entity.Lookup{Record: record, Outcome: entity.LookupFound}
	}
	return entity.Lookup{Outcome: entity.LookupNotFound}
}

func identified(name string) entity.Identification {
	return entity.Identification{Name: name, Outcome: entity.IdentifyIdentified, Raw: name}
}

func pikachuRecord() *entity.PokemonRecord {
	r := entity.NewPokemonRecord("Pikachu")
	r.Types = []string{"Electric"}
	r.HeightM = 0.4
	r.WeightKg = 6.0
	return r
}
