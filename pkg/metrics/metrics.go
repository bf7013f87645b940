package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus-метрик сервиса.
// Все методы Record* безопасны для nil-получателя: при выключенных метриках передается nil.
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBConnections   *prometheus.GaugeVec

	SlotsGenerated     *prometheus.CounterVec
	Confirmations      *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	LockWait           *prometheus.HistogramVec
}

// New создает и регистрирует метрики в стандартном registry
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в reg
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database operations",
		}, []string{"service", "operation"}),
		DBConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections",
			Help: "Database connection pool state",
		}, []string{"service", "state"}),
		SlotsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "visit_slots_generated_total",
			Help: "Visit slots produced by the slot generator",
		}, []string{"service", "available"}),
		Confirmations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reservation_confirmations_total",
			Help: "Confirmation attempts by reservation kind and outcome",
		}, []string{"service", "kind", "outcome"}),
		ValidationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stay_validation_failures_total",
			Help: "Stay window validation failures by reason",
		}, []string{"service", "reason"}),
		LockWait: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "resource_lock_wait_seconds",
			Help:    "Time spent waiting for a per-resource confirmation lock",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		}, []string{"service", "kind"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBConnections,
		m.SlotsGenerated,
		m.Confirmations,
		m.ValidationFailures,
		m.LockWait,
	)

	return m
}

// ServiceName возвращает имя сервиса, используемое в label "service"
func (m *Metrics) ServiceName() string {
	if m == nil {
		return ""
	}
	return m.serviceName
}

func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

func (m *Metrics) RecordDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(m.serviceName, operation).Inc()
	}
}

func (m *Metrics) SetDBConnections(state string, value int) {
	if m == nil {
		return
	}
	m.DBConnections.WithLabelValues(m.serviceName, state).Set(float64(value))
}

func (m *Metrics) RecordSlots(available, unavailable int) {
	if m == nil {
		return
	}
	m.SlotsGenerated.WithLabelValues(m.serviceName, "true").Add(float64(available))
	m.SlotsGenerated.WithLabelValues(m.serviceName, "false").Add(float64(unavailable))
}

func (m *Metrics) RecordConfirmation(kind, outcome string) {
	if m == nil {
		return
	}
	m.Confirmations.WithLabelValues(m.serviceName, kind, outcome).Inc()
}

func (m *Metrics) RecordValidationFailure(reason string) {
	if m == nil {
		return
	}
	m.ValidationFailures.WithLabelValues(m.serviceName, reason).Inc()
}

func (m *Metrics) RecordLockWait(kind string, duration time.Duration) {
	if m == nil {
		return
	}
	m.LockWait.WithLabelValues(m.serviceName, kind).Observe(duration.Seconds())
}
