// cmd/client/cmd/logout.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Завершить сессию",
	Long: `Останавливает фоновую синхронизацию, сбрасывает статус
и отвязывает клиент от пользователя. Локальные данные не удаляются.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if app.CurrentUser() == "" {
			fmt.Println("Активной сессии нет.")
			return nil
		}

		if err := app.Logout(); err != nil {
			return fmt.Errorf("ошибка завершения сессии: %w", err)
		}

		fmt.Println("✅ Сессия завершена")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
