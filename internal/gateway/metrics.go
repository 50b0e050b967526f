package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики вызовов MyGov backend.
var (
	// backendRequestsTotal — количество запросов к backend по операциям и статусам.
	backendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mg_backend_requests_total",
			Help: "Общее количество запросов к MyGov backend",
		},
		[]string{"operation", "status"},
	)

	// backendRequestDuration — длительность запросов к backend.
	backendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mg_backend_request_duration_seconds",
			Help:    "Длительность запросов к MyGov backend в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// statusNetworkError — значение лейбла status для запросов без ответа.
const statusNetworkError = "network_error"
