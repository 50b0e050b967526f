package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	apihandlers "github.com/bigkaa/mygov-admin/internal/api/handlers"
	"github.com/bigkaa/mygov-admin/internal/api/middleware"
	"github.com/bigkaa/mygov-admin/internal/config"
	"github.com/bigkaa/mygov-admin/internal/gateway"
	"github.com/bigkaa/mygov-admin/internal/server"
	"github.com/bigkaa/mygov-admin/internal/service"
	"github.com/bigkaa/mygov-admin/internal/session"
	"github.com/bigkaa/mygov-admin/internal/ui/auth"
	uihandlers "github.com/bigkaa/mygov-admin/internal/ui/handlers"
	"github.com/bigkaa/mygov-admin/internal/ui/i18n"
	uimiddleware "github.com/bigkaa/mygov-admin/internal/ui/middleware"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP-сервер панели",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	ctx := cmd.Context()

	// 1. Конфигурация и логирование
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := config.SetupLogger(cfg)
	logger.Info("MyGov Admin запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("api_base_url", cfg.APIBaseURL),
		slog.String("timezone", cfg.Location.String()),
	)

	// 2. Каталоги переводов
	bundle := i18n.Init(logger)
	if err := i18n.LoadFromEmbedFS(bundle, logger); err != nil {
		return err
	}

	// 3. Session Manager — шифрование cookies сессии (AES-256-GCM)
	sessionMgr, err := auth.NewSessionManager(cfg.SessionSecret, cfg.SecureCookie)
	if err != nil {
		return err
	}
	if cfg.SessionSecret == "" {
		logger.Warn("MG_SESSION_SECRET не задан, сессии не сохраняются между рестартами")
	}

	// 4. Клиент MyGov backend. Токен берётся из сессии запроса,
	// ответ 401 очищает её.
	client := gateway.New(gateway.Options{
		BaseURL:       cfg.APIBaseURL,
		Timeout:       cfg.APITimeout,
		TokenProvider: session.TokenFromContext,
		OnUnauthorized: func(reqCtx context.Context) {
			session.ClearFromContext(reqCtx, session.ReasonUnauthorized)
		},
		Logger: logger,
	})

	// 5. topologymetrics — мониторинг MyGov backend
	var deps apihandlers.DependencyReporter
	dephealthSvc, err := service.NewDephealthService(
		"mygov-admin",
		cfg.DephealthGroup,
		cfg.DownloadOrigin,
		cfg.DephealthCheckInterval,
		logger,
	)
	if err != nil {
		logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
			slog.String("error", err.Error()),
		)
	} else if startErr := dephealthSvc.Start(ctx); startErr != nil {
		logger.Warn("Ошибка запуска topologymetrics", slog.String("error", startErr.Error()))
		dephealthSvc = nil
	} else {
		deps = dephealthSvc
		logger.Info("topologymetrics запущен",
			slog.String("group", cfg.DephealthGroup),
			slog.String("check_interval", cfg.DephealthCheckInterval.String()),
		)
	}

	// 6. Обработчики
	listCfg := uihandlers.ListConfig{
		DefaultPageSize: cfg.DefaultPageSize,
		PageSizes:       cfg.PageSizes,
		Location:        cfg.Location,
	}
	limiter := middleware.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow)

	components := server.Components{
		Health:         apihandlers.NewHealthHandler(client, deps),
		AuthMiddleware: uimiddleware.NewUIAuth(sessionMgr, logger),
		Auth:           uihandlers.NewAuthHandler(client, limiter, logger),
		Dashboard:      uihandlers.NewDashboardHandler(logger),
		Documents:      uihandlers.NewDocumentsHandler(client, cfg.DownloadOrigin, listCfg, logger),
		DocumentCreate: uihandlers.NewDocumentCreateHandler(client, cfg.DownloadOrigin, cfg.Location, logger),
		Files:          uihandlers.NewFilesHandler(client, cfg.DownloadOrigin, listCfg, logger),
		Users:          uihandlers.NewUsersHandler(client, cfg.Location, logger),
		LoginLimiter:   limiter,
	}

	// 7. HTTP-сервер до отмены контекста
	srv := server.New(cfg, logger, components)
	runErr := srv.Run(ctx)

	if dephealthSvc != nil {
		dephealthSvc.Stop()
	}
	logger.Info("MyGov Admin остановлен")
	return runErr
}
