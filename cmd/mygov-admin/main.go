// Точка входа MyGov Admin — панель администратора медицинских документов MyGov.
// Подкоманды: serve (HTTP-сервер панели), diagnose (проверка связи с backend), version.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bigkaa/mygov-admin/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "mygov-admin: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mygov-admin",
		Short: "Панель администратора MyGov",
		Long: `MyGov Admin — веб-панель для создания, поиска и удаления медицинских
документов MyGov, просмотра файлов хранилища и управления администраторами.
Все данные хранит MyGov backend; панель обращается к нему по HTTP.`,
		SilenceUsage: true,
	}
	cmd.AddCommand(
		newServeCmd(),
		newDiagnoseCmd(),
		newVersionCmd(),
	)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Показать версию",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.Version)
		},
	}
}
