package presenter

import (
	"fmt"
	"strings"

	"pokedex-bot/internal/domain/entity"
)

const barWidth = 20

const (
	// HelpText подсказка на главном экране
	HelpText = `📸 Как пользоваться:
1️⃣ Отправьте фото покемона
2️⃣ Отправьте /analyze, чтобы распознать его
3️⃣ Посмотрите характеристики
/reset — начать заново`

	// NotFoundText показывается при любом отрицательном результате
	NotFoundText = "Покемон не найден. Попробуйте более чёткое фото покемона."
)

// Card формирует текстовую карточку покемона
func Card(record *entity.PokemonRecord) string {
	if record == nil {
		return "Нет данных для отображения"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔴 %s\n\n", record.Name)
	fmt.Fprintf(&b, "Types: %s\n", joinOrDash(record.Types))
	fmt.Fprintf(&b, "Height: %.1fm\n", record.HeightM)
	fmt.Fprintf(&b, "Weight: %.1fkg\n", record.WeightKg)
	fmt.Fprintf(&b, "Abilities: %s\n", joinOrDash(record.Abilities))
	b.WriteString("\nBase Stats\n")
	for _, key := range entity.StatKeys {
		value := record.Stat(key)
		fmt.Fprintf(&b, "%-8s %3d %s\n", key.Label()+":", value, Bar(value))
	}

	return b.String()
}

// Bar рисует полоску характеристики относительно entity.MaxStatValue
func Bar(value int) string {
	filled := StatRatio(value) * barWidth
	n := int(filled + 0.5)
	return strings.Repeat("█", n) + strings.Repeat("░", barWidth-n)
}

// StatRatio доля от максимума, обрезанная в [0, 1]
func StatRatio(value int) float64 {
	ratio := float64(value) / entity.MaxStatValue
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "—"
	}
	return strings.Join(items, ", ")
}
