package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lifesprint/internal/app/client"
)

var (
	showStatus bool
	watch      bool
)

var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Управление синхронизацией",
	Long: `Синхронизация данных между клиентом и сервером.

Без флагов выполняет внеочередной проход синхронизации. Флаг --status
показывает текущее состояние, --watch обновляет его каждые несколько секунд.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := client.FromContext(cmd.Context())
		if !ok {
			return fmt.Errorf("приложение не инициализировано")
		}

		if watch {
			return watchStatus(cmd.Context(), app)
		}

		if showStatus {
			return printStatus(app)
		}

		return runSync(cmd.Context(), app)
	},
}

func runSync(ctx context.Context, app *client.App) error {
	fmt.Println("=== Синхронизация данных ===")

	fmt.Println("Проверка соединения с сервером...")
	if err := app.CheckConnection(); err != nil {
		return fmt.Errorf("сервер недоступен: %v", err)
	}

	fmt.Println("Начало синхронизации...")
	start := time.Now()

	if err := app.SyncNow(ctx); err != nil {
		return fmt.Errorf("ошибка синхронизации: %w", err)
	}

	duration := time.Since(start)

	fmt.Println()
	color.Green("✅ Синхронизация завершена!")
	fmt.Printf("Время выполнения: %v\n", duration.Round(time.Millisecond))

	return printStatus(app)
}

func printStatus(app *client.App) error {
	status, err := app.SyncStatus()
	if err != nil {
		return fmt.Errorf("ошибка чтения статуса: %w", err)
	}

	fmt.Println("=== Статус синхронизации ===")

	if status.LastSyncAt.IsZero() {
		fmt.Println("Последняя синхронизация: ещё не выполнялась")
	} else {
		fmt.Printf("Последняя синхронизация: %s\n", status.LastSyncAt.Format("2006-01-02 15:04:05"))
	}

	if status.InProgress {
		color.Yellow("Проход синхронизации выполняется")
	}

	if status.PendingCount > 0 {
		color.Yellow("Ожидают отправки: %d операций", status.PendingCount)
	} else {
		fmt.Println("Ожидают отправки: нет")
	}

	if status.LastError != "" {
		color.Red("Ошибка: %s", status.LastError)
	}

	fmt.Printf("Соединение с сервером: ")
	if err := app.CheckConnection(); err != nil {
		color.Red("недоступно")
	} else {
		color.Green("OK")
	}

	return nil
}

func watchStatus(ctx context.Context, app *client.App) error {
	ticker := time.NewTicker(3 * time.Second)
	defer ticker.Stop()

	for {
		if err := printStatus(app); err != nil {
			return err
		}
		fmt.Println()

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func init() {
	SyncCmd.Flags().BoolVar(&showStatus, "status", false, "показать статус синхронизации")
	SyncCmd.Flags().BoolVar(&watch, "watch", false, "следить за статусом синхронизации")
}
