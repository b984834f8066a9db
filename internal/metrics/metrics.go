package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// IdentificationsTotal считает распознавания по исходу.
	IdentificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pokedex",
		Subsystem: "vision",
		Name:      "identifications_total",
		Help:      "Total number of identification requests, labeled by outcome.",
	}, []string{"outcome"})

	// LookupsTotal считает запросы карточек по исходу (found, cached, not_found, ...).
	LookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pokedex",
		Subsystem: "pokeapi",
		Name:      "lookups_total",
		Help:      "Total number of Pokémon record lookups, labeled by outcome.",
	}, []string{"outcome"})

	// OutboundDurationSeconds время исходящих вызовов.
	OutboundDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pokedex",
		Name:      "outbound_duration_seconds",
		Help:      "Duration of outbound calls to the vision model and PokéAPI.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"target"})

	// WorkflowsTotal считает завершённые анализы по итоговому состоянию.
	WorkflowsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pokedex",
		Name:      "workflows_total",
		Help:      "Total number of finished analyses, labeled by final workflow state.",
	}, []string{"state"})
)

// Register регистрирует метрики в реестре Prometheus по умолчанию.
// Повторный вызов безопасен.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			IdentificationsTotal,
			LookupsTotal,
			OutboundDurationSeconds,
			WorkflowsTotal,
		)
	})
}

// ObserveSince записывает длительность вызова target начиная со start.
func ObserveSince(target string, start time.Time) {
	OutboundDurationSeconds.WithLabelValues(target).Observe(time.Since(start).Seconds())
}
