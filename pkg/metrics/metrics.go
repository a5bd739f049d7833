package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "traffic_kpi"

var (
	once     sync.Once
	instance *Metrics
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	KPIAggregationsTotal     *prometheus.CounterVec
	KPIRowsProcessedTotal    prometheus.Counter
	KPIRowsDeduplicatedTotal prometheus.Counter
	KPIAggregationDuration   prometheus.Histogram

	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter

	MetricSyncRowsTotal   *prometheus.CounterVec
	MetricSyncErrorsTotal prometheus.Counter
}

// Get retorna a instância única, registrada no registry padrão do Prometheus
func Get() *Metrics {
	once.Do(func() {
		instance = newMetrics()
	})
	return instance
}

func newMetrics() *Metrics {
	m := &Metrics{}

	m.HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total de requisições HTTP por rota, método e status",
		},
		[]string{"route", "method", "status"},
	)

	m.HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duração das requisições HTTP em segundos",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"route", "method"},
	)

	m.KPIAggregationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kpi_aggregations_total",
			Help:      "Agregações de KPI executadas por nível",
		},
		[]string{"level"},
	)

	m.KPIRowsProcessedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "kpi_rows_processed_total",
		Help:      "Linhas brutas lidas para agregação",
	})

	m.KPIRowsDeduplicatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "kpi_rows_deduplicated_total",
		Help:      "Linhas descartadas por serem versões antigas do mesmo fato",
	})

	m.KPIAggregationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "kpi_aggregation_duration_seconds",
		Help:      "Duração de deduplicação e agregação",
		Buckets:   prometheus.DefBuckets,
	})

	m.CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Consultas de KPI atendidas pelo cache",
	})

	m.CacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Consultas de KPI fora do cache",
	})

	m.MetricSyncRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "metric_sync_rows_total",
			Help:      "Linhas gravadas pela sincronização por tabela",
		},
		[]string{"table"},
	)

	m.MetricSyncErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "metric_sync_errors_total",
		Help:      "Falhas de sincronização de contas",
	})

	return m
}

func (m *Metrics) RecordHTTPRequest(route, method string, statusCode int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

func (m *Metrics) RecordAggregation(level string, rows, deduplicated int, duration time.Duration) {
	m.KPIAggregationsTotal.WithLabelValues(level).Inc()
	m.KPIRowsProcessedTotal.Add(float64(rows))
	m.KPIRowsDeduplicatedTotal.Add(float64(deduplicated))
	m.KPIAggregationDuration.Observe(duration.Seconds())
}

func (m *Metrics) RecordCache(hit bool) {
	if hit {
		m.CacheHitsTotal.Inc()
		return
	}
	m.CacheMissesTotal.Inc()
}
