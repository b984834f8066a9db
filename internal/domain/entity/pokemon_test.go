package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "pikachu", NormalizeName("Pikachu"))
	require.Equal(t, "pikachu", NormalizeName(" pikachu "))
	require.Equal(t, "mr-mime", NormalizeName("Mr Mime"))
	require.Equal(t, "", NormalizeName("   "))
}

func TestNormalizeName_Idempotent(t *testing.T) {
	for _, raw := range []string{"Pikachu", " Mr Mime ", "TAPU KOKO", "farfetch'd", "ho-oh"} {
		once := NormalizeName(raw)
		require.Equal(t, once, NormalizeName(once), raw)
	}
}

func TestCapitalize(t *testing.T) {
	require.Equal(t, "Pikachu", Capitalize("pikachu"))
	require.Equal(t, "Mr-mime", Capitalize("mr-mime"))
	require.Equal(t, "Static", Capitalize("STATIC"))
	require.Equal(t, "", Capitalize(""))
}

func TestNewPokemonRecord_AllStatsDefaultToZero(t *testing.T) {
	r := NewPokemonRecord("Pikachu")
	require.Len(t, r.Stats, len(StatKeys))
	for _, key := range StatKeys {
		require.Equal(t, 0, r.Stat(key))
	}
}

func TestSetStat_IgnoresUnknownKeys(t *testing.T) {
	r := NewPokemonRecord("Pikachu")
	r.SetStat("speed", 90)
	r.SetStat("accuracy", 100)
	require.Equal(t, 90, r.Stat(StatSpeed))
	require.Len(t, r.Stats, len(StatKeys))
}

func TestUnitConversions(t *testing.T) {
	require.InDelta(t, 0.4, DecimetersToMeters(4), 1e-9)
	require.InDelta(t, 6.0, HectogramsToKilograms(60), 1e-9)
}

func TestStatKeyLabel(t *testing.T) {
	require.Equal(t, "Sp. Atk", StatSpecialAttack.Label())
	require.Equal(t, "HP", StatHP.Label())
	require.Equal(t, "luck", StatKey("luck").Label())
}

func TestPokemonRecord_Clone(t *testing.T) {
	var empty *PokemonRecord
	require.Nil(t, empty.Clone())

	r := NewPokemonRecord("Pikachu")
	r.Abilities = []string{"Static"}
	r.SetStat("speed", 90)

	c := r.Clone()
	require.Equal(t, r, c)

	c.Abilities = append(c.Abilities[:0], "Lightning-rod")
	c.SetStat("speed", 1)
	require.Equal(t, []string{"Static"}, r.Abilities)
	require.Equal(t, 90, r.Stat(StatSpeed))
}
