package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus метрик сервиса
// Все методы Record* безопасны для nil-получателя (метрики выключены)
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec
	DBWaitCount       *prometheus.GaugeVec
	DBQueryDuration   *prometheus.HistogramVec

	ReservationConflicts   *prometheus.CounterVec
	ReservationTransitions *prometheus.CounterVec
	AvailabilityChecks     *prometheus.CounterVec
	ReportsBuilt           *prometheus.CounterVec
}

// New создает и регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в переданном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections to the database",
		}, []string{"service"}),
		DBInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),
		DBIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency by operation",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),
		ReservationConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "room_reservation_conflicts_total",
			Help: "Overlapping reservation attempts by detection path",
		}, []string{"service", "source"}),
		ReservationTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "room_reservation_transitions_total",
			Help: "Reservation lifecycle transitions",
		}, []string{"service", "transition"}),
		AvailabilityChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "room_availability_checks_total",
			Help: "Availability checks by verdict",
		}, []string{"service", "verdict"}),
		ReportsBuilt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "room_cost_reports_total",
			Help: "Cost attribution reports by result",
		}, []string{"service", "result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.DBQueryDuration,
		m.ReservationConflicts,
		m.ReservationTransitions,
		m.AvailabilityChecks,
		m.ReportsBuilt,
	)

	return m
}

// ServiceName возвращает имя сервиса, используемое в лейблах
func (m *Metrics) ServiceName() string {
	if m == nil {
		return ""
	}
	return m.serviceName
}

// RecordConflict фиксирует обнаруженное пересечение (source: live, commit)
func (m *Metrics) RecordConflict(source string) {
	if m == nil {
		return
	}
	m.ReservationConflicts.WithLabelValues(m.serviceName, source).Inc()
}

// RecordTransition фиксирует переход жизненного цикла бронирования
func (m *Metrics) RecordTransition(transition string) {
	if m == nil {
		return
	}
	m.ReservationTransitions.WithLabelValues(m.serviceName, transition).Inc()
}

// RecordAvailabilityCheck фиксирует результат проверки доступности
func (m *Metrics) RecordAvailabilityCheck(verdict string) {
	if m == nil {
		return
	}
	m.AvailabilityChecks.WithLabelValues(m.serviceName, verdict).Inc()
}

// RecordReport фиксирует построение отчёта (result: ok, unavailable, error)
func (m *Metrics) RecordReport(result string) {
	if m == nil {
		return
	}
	m.ReportsBuilt.WithLabelValues(m.serviceName, result).Inc()
}
