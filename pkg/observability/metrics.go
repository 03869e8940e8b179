package observability

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/aretw0/folium/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by editor events.
type Metrics struct {
	Actions      *prometheus.CounterVec
	HistoryDepth *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folium_actions_total",
				Help: "Total number of dispatched actions",
			},
			[]string{"action", "changed"},
		),
		HistoryDepth: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "folium_history_depth",
				Help: "Undo and redo depth after the last dispatched action",
			},
			[]string{"stack"},
		),
	}
	reg.MustRegister(m.Actions, m.HistoryDepth)
	return m
}

// Hooks returns lifecycle hooks that record every event.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	record := func(_ context.Context, e *domain.DispatchEvent) {
		m.Actions.WithLabelValues(e.Action, strconv.FormatBool(e.Changed)).Inc()
		m.HistoryDepth.WithLabelValues("past").Set(float64(e.PastLen))
		m.HistoryDepth.WithLabelValues("future").Set(float64(e.FutureLen))
	}
	return domain.LifecycleHooks{OnDispatch: record, OnUndo: record, OnRedo: record}
}

// LoggingHooks logs every event at Info level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	log := func(_ context.Context, e *domain.DispatchEvent) {
		logger.Info(string(e.Type),
			"document_id", e.DocumentID,
			"action", e.Action,
			"changed", e.Changed,
			"past", e.PastLen,
			"future", e.FutureLen,
		)
	}
	return domain.LifecycleHooks{OnDispatch: log, OnUndo: log, OnRedo: log}
}
