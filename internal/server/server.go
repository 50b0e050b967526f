// Пакет server — HTTP-сервер MyGov Admin с graceful shutdown.
// Без TLS — HTTP внутри кластера, TLS termination на ingress.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	apihandlers "github.com/bigkaa/mygov-admin/internal/api/handlers"
	"github.com/bigkaa/mygov-admin/internal/api/middleware"
	"github.com/bigkaa/mygov-admin/internal/config"
	"github.com/bigkaa/mygov-admin/internal/domain/rbac"
	uihandlers "github.com/bigkaa/mygov-admin/internal/ui/handlers"
	"github.com/bigkaa/mygov-admin/internal/ui/i18n"
	uimiddleware "github.com/bigkaa/mygov-admin/internal/ui/middleware"
	"github.com/bigkaa/mygov-admin/internal/ui/static"
)

// Components — обработчики, из которых собирается роутер.
type Components struct {
	Health         *apihandlers.HealthHandler
	AuthMiddleware *uimiddleware.UIAuth
	Auth           *uihandlers.AuthHandler
	Dashboard      *uihandlers.DashboardHandler
	Documents      *uihandlers.DocumentsHandler
	DocumentCreate *uihandlers.DocumentCreateHandler
	Files          *uihandlers.FilesHandler
	Users          *uihandlers.UsersHandler
	// LoginLimiter — ограничитель попыток входа; очищается фоном в Run
	LoginLimiter *middleware.RateLimiter
}

// Server — HTTP-сервер MyGov Admin.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
	limiter    *middleware.RateLimiter
}

// New создаёт HTTP-сервер с настроенными маршрутами и middleware.
func New(cfg *config.Config, logger *slog.Logger, c Components) *Server {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      NewRouter(logger, c),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
		cfg:        cfg,
		limiter:    c.LoginLimiter,
	}
}

// NewRouter собирает роутер панели.
// Health и metrics доступны без сессии: их опрашивает Kubernetes.
func NewRouter(logger *slog.Logger, c Components) http.Handler {
	r := chi.NewRouter()

	// Глобальные middleware
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.MetricsMiddleware())

	if c.Health != nil {
		r.Get("/health/live", c.Health.HealthLive)
		r.Get("/health/ready", c.Health.HealthReady)
		r.Get("/metrics", c.Health.GetMetrics)
	}

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(static.FileSystem())))

	r.Group(func(r chi.Router) {
		r.Use(i18n.Middleware())
		r.Use(c.AuthMiddleware.Session())

		// Публичные страницы
		r.Get("/", c.Auth.HandleRoot)
		r.Get("/login", c.Auth.HandleLoginPage)
		r.Post("/login", c.Auth.HandleLogin)
		r.Post("/logout", c.Auth.HandleLogout)
		r.Post("/language", uihandlers.HandleSetLanguage)

		r.Get("/api/session", apihandlers.SessionInfo)
		r.Get("/api/qr", apihandlers.QRCode)

		// Панель MyGov: mygov_admin и super_admin
		r.Group(func(r chi.Router) {
			r.Use(c.AuthMiddleware.Guard(rbac.PanelRoles...))

			r.Get("/dashboard", c.Dashboard.HandleDashboard)
			r.Get("/documents", c.Documents.HandleList)
			r.Get("/documents/create", c.DocumentCreate.HandleForm)
			r.Post("/documents/create", c.DocumentCreate.HandleCreate)
			r.Get("/files", c.Files.HandleList)
		})

		// Удаление документов и файлов, учётные записи: только super_admin
		r.Group(func(r chi.Router) {
			r.Use(c.AuthMiddleware.Guard(rbac.AdminUsersRoles...))

			r.Get("/documents/{id}/delete", c.Documents.HandleDeleteConfirm)
			r.Post("/documents/{id}/delete", c.Documents.HandleDelete)
			r.Get("/files/{name}/delete", c.Files.HandleDeleteConfirm)
			r.Post("/files/{name}/delete", c.Files.HandleDelete)

			r.Get("/admin/users", c.Users.HandleList)
			r.Get("/admin/users/new", c.Users.HandleNew)
			r.Post("/admin/users", c.Users.HandleCreate)
			r.Get("/admin/users/{id}/edit", c.Users.HandleEdit)
			r.Post("/admin/users/{id}", c.Users.HandleUpdate)
			r.Get("/admin/users/{id}/delete", c.Users.HandleDeleteConfirm)
			r.Post("/admin/users/{id}/delete", c.Users.HandleDelete)
		})
	})

	return r
}

// Handler возвращает корневой обработчик сервера.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run запускает сервер и ожидает отмены ctx (SIGINT, SIGTERM в main).
// После отмены выполняется graceful shutdown.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", s.httpServer.Addr),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	if s.limiter != nil {
		go s.cleanupLimiter(ctx)
	}

	select {
	case <-ctx.Done():
		s.logger.Info("Получен сигнал завершения")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ошибка при graceful shutdown: %w", err)
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}

// cleanupLimiter периодически удаляет устаревшие ограничители адресов.
func (s *Server) cleanupLimiter(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.LoginRateWindow)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.limiter.Cleanup()
			s.logger.Debug("Ограничители входа очищены", slog.Int("tracked", s.limiter.Len()))
		}
	}
}
