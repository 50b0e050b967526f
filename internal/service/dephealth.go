// dephealth.go — интеграция с topologymetrics SDK для мониторинга зависимостей.
//
// MyGov Admin мониторит одну зависимость:
//   - MyGov backend — HTTP checker к {origin}/health (critical)
//
// Метрики доступны на /metrics вместе с остальными Prometheus-метриками:
//   - app_dependency_health — состояние зависимости (1 = ok, 0 = fail)
//   - app_dependency_latency_seconds — задержка проверки
//   - app_dependency_status — категория статуса
//   - app_dependency_status_detail — детальный статус
package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/BigKAA/topologymetrics/sdk-go/dephealth"
	_ "github.com/BigKAA/topologymetrics/sdk-go/dephealth/checks/httpcheck" // HTTP checker для backend
	"github.com/prometheus/client_golang/prometheus"
)

// BackendDependency — имя зависимости в метриках.
const BackendDependency = "mygov-backend"

// backendHealthPath — health endpoint backend относительно origin.
const backendHealthPath = "/health"

// DephealthService — сервис мониторинга зависимостей через topologymetrics.
type DephealthService struct {
	dh     *dephealth.DepHealth
	target string
	logger *slog.Logger
}

// NewDephealthService создаёт сервис мониторинга зависимостей.
// Метрики регистрируются в глобальном Prometheus registry.
//
// Параметры:
//   - serviceID — имя вершины графа текущего приложения ("mygov-admin")
//   - group — имя группы в метриках (MG_DEPHEALTH_GROUP)
//   - backendOrigin — origin backend без суффикса /api
//   - checkInterval — интервал проверки (MG_DEPHEALTH_CHECK_INTERVAL)
func NewDephealthService(
	serviceID string,
	group string,
	backendOrigin string,
	checkInterval time.Duration,
	logger *slog.Logger,
) (*DephealthService, error) {
	return newDephealthService(serviceID, group, backendOrigin, checkInterval, logger)
}

// NewDephealthServiceWithRegisterer создаёт сервис с указанным Prometheus registerer.
// Используется в тестах для изоляции метрик.
func NewDephealthServiceWithRegisterer(
	serviceID string,
	group string,
	backendOrigin string,
	checkInterval time.Duration,
	logger *slog.Logger,
	registerer prometheus.Registerer,
) (*DephealthService, error) {
	return newDephealthService(serviceID, group, backendOrigin, checkInterval, logger,
		dephealth.WithRegisterer(registerer))
}

func newDephealthService(
	serviceID string,
	group string,
	backendOrigin string,
	checkInterval time.Duration,
	logger *slog.Logger,
	extraOpts ...dephealth.Option,
) (*DephealthService, error) {
	target, tls, err := backendTarget(backendOrigin)
	if err != nil {
		return nil, err
	}

	depOpts := []dephealth.DependencyOption{
		dephealth.FromURL(target),
		dephealth.WithHTTPHealthPath(backendHealthPath),
		dephealth.CheckInterval(checkInterval),
		dephealth.Critical(true),
	}
	if tls {
		depOpts = append(depOpts, dephealth.WithHTTPTLSSkipVerify(false))
	}

	opts := make([]dephealth.Option, 0, 2+len(extraOpts))
	opts = append(opts,
		dephealth.WithLogger(logger),
		dephealth.HTTP(BackendDependency, depOpts...),
	)
	opts = append(opts, extraOpts...)

	dh, err := dephealth.New(serviceID, group, opts...)
	if err != nil {
		return nil, err
	}

	return &DephealthService{
		dh:     dh,
		target: target,
		logger: logger.With(slog.String("component", "dephealth")),
	}, nil
}

// backendTarget приводит origin backend к виду scheme://host[:port].
// Путь отбрасывается: checker обращается к backendHealthPath.
func backendTarget(origin string) (target string, tls bool, err error) {
	if origin == "" {
		return "", false, fmt.Errorf("пустой адрес backend")
	}
	u, err := url.Parse(origin)
	if err != nil {
		return "", false, fmt.Errorf("некорректный адрес backend %q: %w", origin, err)
	}
	if u.Host == "" {
		return "", false, fmt.Errorf("в адресе backend %q нет хоста", origin)
	}
	switch u.Scheme {
	case "http", "https":
	default:
		return "", false, fmt.Errorf("неподдерживаемая схема адреса backend: %q", u.Scheme)
	}
	return u.Scheme + "://" + u.Host, u.Scheme == "https", nil
}

// Start запускает периодическую проверку зависимостей.
func (ds *DephealthService) Start(ctx context.Context) error {
	ds.logger.Info("Мониторинг зависимостей запущен",
		slog.String("backend", ds.target+backendHealthPath),
	)
	return ds.dh.Start(ctx)
}

// Stop останавливает мониторинг зависимостей.
func (ds *DephealthService) Stop() {
	ds.dh.Stop()
	ds.logger.Info("Мониторинг зависимостей остановлен")
}

// Health возвращает текущее состояние зависимостей.
// Ключ — имя зависимости, значение — true если ok.
func (ds *DephealthService) Health() map[string]bool {
	return ds.dh.Health()
}
