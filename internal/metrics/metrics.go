// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the service's prometheus instruments. All methods are safe
// on a nil receiver so tests can run handlers without a registry.
type Metrics struct {
	OnlinePlayers    prometheus.Gauge
	ActiveRooms      prometheus.Gauge
	MessagesReceived prometheus.Counter
	RoomsCreated     prometheus.Counter
}

// New creates and registers the service metrics under the given namespace.
func New(namespace string) *Metrics {
	m := &Metrics{
		OnlinePlayers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "online_players",
			Help:      "Number of connected players",
		}),
		ActiveRooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_rooms",
			Help:      "Number of active rooms",
		}),
		MessagesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_received_total",
			Help:      "Total number of inbound websocket messages",
		}),
		RoomsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rooms_created_total",
			Help:      "Total number of rooms created",
		}),
	}

	prometheus.MustRegister(
		m.OnlinePlayers,
		m.ActiveRooms,
		m.MessagesReceived,
		m.RoomsCreated,
	)

	return m
}

func (m *Metrics) IncOnlinePlayers() {
	if m != nil {
		m.OnlinePlayers.Inc()
	}
}

func (m *Metrics) DecOnlinePlayers() {
	if m != nil {
		m.OnlinePlayers.Dec()
	}
}

func (m *Metrics) SetActiveRooms(count int) {
	if m != nil {
		m.ActiveRooms.Set(float64(count))
	}
}

func (m *Metrics) IncMessagesReceived() {
	if m != nil {
		m.MessagesReceived.Inc()
	}
}

func (m *Metrics) IncRoomsCreated() {
	if m != nil {
		m.RoomsCreated.Inc()
	}
}
