// metrics.go — Prometheus HTTP метрики MyGov Admin.
// Регистрирует метрики: mg_http_requests_total, mg_http_request_duration_seconds.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP метрики
var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mg_http_requests_total",
			Help: "Общее количество HTTP-запросов к MyGov Admin",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mg_http_request_duration_seconds",
			Help:    "Длительность HTTP-запросов к MyGov Admin в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// MetricsMiddleware возвращает HTTP middleware для сбора Prometheus метрик.
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := normalizePath(r.URL.Path)

			wrapped := newStatusRecorder(w)
			next.ServeHTTP(wrapped, r)

			httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
			httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}

// statusRecorder — обёртка для перехвата статус-кода.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	if rec, ok := w.(*statusRecorder); ok {
		return rec
	}
	return &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// Unwrap позволяет http.ResponseController получить доступ к оригинальному ResponseWriter.
func (rw *statusRecorder) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// staticPaths — пути без параметров.
var staticPaths = map[string]struct{}{
	"/":                 {},
	"/login":            {},
	"/logout":           {},
	"/dashboard":        {},
	"/documents":        {},
	"/documents/create": {},
	"/files":            {},
	"/admin/users":      {},
	"/admin/users/new":  {},
	"/language":         {},
	"/health/live":      {},
	"/health/ready":     {},
	"/metrics":          {},
	"/api/session":      {},
	"/api/qr":           {},
}

// normalizePath заменяет идентификаторы и имена файлов в пути на {id}/{name},
// чтобы число значений лейбла path оставалось ограниченным.
// /documents/42/delete → /documents/{id}/delete
func normalizePath(path string) string {
	if _, ok := staticPaths[path]; ok {
		return path
	}
	if strings.HasPrefix(path, "/static/") {
		return "/static/*"
	}

	prefixes := []struct {
		prefix string
		param  string
	}{
		{"/documents/", "{id}"},
		{"/admin/users/", "{id}"},
		{"/files/", "{name}"},
	}
	for _, p := range prefixes {
		rest, ok := strings.CutPrefix(path, p.prefix)
		if !ok || rest == "" {
			continue
		}
		result := p.prefix + p.param
		if i := strings.LastIndex(rest, "/"); i >= 0 {
			switch suffix := rest[i:]; suffix {
			case "/delete", "/edit":
				return result + suffix
			}
		}
		return result
	}

	return "other"
}
