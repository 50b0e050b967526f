package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bigkaa/mygov-admin/internal/config"
	"github.com/bigkaa/mygov-admin/internal/gateway"
	"github.com/bigkaa/mygov-admin/internal/session"
)

type diagnoseOptions struct {
	username string
	password string
	timeout  time.Duration
}

func newDiagnoseCmd() *cobra.Command {
	var opts diagnoseOptions
	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Проверить связь с MyGov backend",
		Long: `Показывает адрес backend из окружения, проверяет /health
и, если заданы --username и --password, выполняет вход и
запрашивает список документов с полученным токеном.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnose(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.username, "username", "u", "", "Имя пользователя для пробного входа")
	cmd.Flags().StringVarP(&opts.password, "password", "p", "", "Пароль для пробного входа")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Таймаут одного запроса")
	return cmd
}

func runDiagnose(ctx context.Context, out io.Writer, opts diagnoseOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cfg.LogLevel <= slog.LevelDebug {
		logger = config.SetupLogger(cfg)
	}

	fmt.Fprintln(out, "Окружение:")
	fmt.Fprintf(out, "  NEXT_PUBLIC_API_URL = %q\n", os.Getenv("NEXT_PUBLIC_API_URL"))
	fmt.Fprintf(out, "  API_URL             = %q\n", os.Getenv("API_URL"))
	fmt.Fprintf(out, "  адрес API           = %s\n", cfg.APIBaseURL)
	fmt.Fprintf(out, "  адрес скачивания    = %s\n", cfg.DownloadOrigin)
	fmt.Fprintf(out, "  таймаут             = %s\n", opts.timeout)

	client := gateway.New(gateway.Options{
		BaseURL:       cfg.APIBaseURL,
		Timeout:       opts.timeout,
		TokenProvider: session.TokenFromContext,
		Logger:        logger,
	})

	fmt.Fprintf(out, "\nПроверка %s ... ", client.HealthURL())
	status, err := client.Health(ctx)
	if err != nil {
		fmt.Fprintln(out, "ОШИБКА")
		fmt.Fprintf(out, "  %s\n", gateway.UserMessage(err, err.Error()))
		fmt.Fprintf(out, "  %v\n", err)
		return fmt.Errorf("backend недоступен")
	}
	fmt.Fprintf(out, "OK (status=%q)\n", status.Status)

	if opts.username == "" || opts.password == "" {
		return nil
	}

	fmt.Fprintf(out, "\nВход пользователя %q ... ", opts.username)
	resp, err := client.Login(ctx, opts.username, opts.password)
	if err != nil {
		fmt.Fprintln(out, "ОШИБКА")
		fmt.Fprintf(out, "  %s\n", gateway.UserMessage(err, err.Error()))
		return fmt.Errorf("вход не выполнен")
	}
	if !resp.Valid() {
		fmt.Fprintln(out, "ОШИБКА")
		fmt.Fprintf(out, "  неверный формат ответа: success=%t, message=%q\n", resp.Success, resp.Message)
		return fmt.Errorf("вход не выполнен")
	}
	fmt.Fprintln(out, "OK")

	store := session.NewStore(session.NewMemoryStorage(8, session.DefaultTTL), 0)
	if err := store.Set(resp.Token, *resp.User); err != nil {
		return fmt.Errorf("сохранение сессии: %w", err)
	}
	fmt.Fprintf(out, "  пользователь = %s <%s>\n", resp.User.Username, resp.User.Email)
	fmt.Fprintf(out, "  роль         = %s (super_admin: %t)\n", store.Role(), store.IsSuperAdmin())
	if exp, ok := session.TokenExpiry(resp.Token); ok {
		fmt.Fprintf(out, "  токен до     = %s (осталось %s)\n",
			exp.In(cfg.Location).Format("02.01.2006 15:04"),
			time.Until(exp).Truncate(time.Second),
		)
	} else {
		fmt.Fprintln(out, "  токен        = непрозрачный (срок не определён)")
	}

	fmt.Fprint(out, "\nЗапрос списка документов ... ")
	docs, err := client.ListDocuments(session.WithStore(ctx, store))
	if err != nil {
		fmt.Fprintln(out, "ОШИБКА")
		fmt.Fprintf(out, "  %s\n", gateway.UserMessage(err, err.Error()))
		return fmt.Errorf("список документов недоступен")
	}
	fmt.Fprintf(out, "OK (%d документов)\n", len(docs))
	return nil
}
