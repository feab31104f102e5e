package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics counts reservation lifecycle events.
type BookingMetrics struct {
	createdTotal   *prometheus.CounterVec
	cancelledTotal *prometheus.CounterVec
	conflictsTotal *prometheus.CounterVec
	httpLatency    *prometheus.HistogramVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		createdTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Name:      "bookings_created_total",
			Help:      "Bookings created, by kind and shape (single, paired)",
		}, []string{"kind", "shape"}),
		cancelledTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Name:      "bookings_cancelled_total",
			Help:      "Bookings cancelled, by actor role and kind",
		}, []string{"actor_role", "kind"}),
		conflictsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Name:      "booking_conflicts_total",
			Help:      "Create attempts rejected because the slot was no longer free",
		}, []string{"reason"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "salon",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of API requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.createdTotal, m.cancelledTotal, m.conflictsTotal, m.httpLatency)
	return m
}

func (m *BookingMetrics) ObserveCreated(kind string, paired bool, n int) {
	if m == nil {
		return
	}
	shape := "single"
	if paired {
		shape = "paired"
	}
	m.createdTotal.WithLabelValues(kind, shape).Add(float64(n))
}

func (m *BookingMetrics) ObserveCancelled(actorRole, kind string) {
	if m == nil {
		return
	}
	m.cancelledTotal.WithLabelValues(actorRole, kind).Inc()
}

func (m *BookingMetrics) ObserveConflict(reason string) {
	if m == nil {
		return
	}
	m.conflictsTotal.WithLabelValues(reason).Inc()
}

func (m *BookingMetrics) ObserveRequest(route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpLatency.WithLabelValues(route, status).Observe(seconds)
}
