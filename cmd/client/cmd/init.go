// cmd/client/cmd/init.go
package cmd

import (
	"fmt"
	"time"

	"lifesprint/cmd/client/cmd/day"
	"lifesprint/cmd/client/cmd/sync"
	"lifesprint/cmd/client/cmd/week"

	"github.com/spf13/cobra"
)

var (
	initUserID    string
	initStartDate string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Инициализировать клиент LifeSprint",
	Long: `Команда init выполняет первоначальную настройку клиента:
	1. Привязывает клиент к идентификатору пользователя
	2. Создает локальное хранилище и запускает новый спринт
	3. Проверяет соединение с сервером

Если на сервере уже есть прогресс для этого пользователя,
он будет загружен и объединён с локальными данными.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if app.IsInitialized() {
			fmt.Println("Клиент уже инициализирован.")
			return nil
		}

		if initUserID == "" {
			return fmt.Errorf("укажите идентификатор пользователя: --user")
		}

		start := time.Now()
		if initStartDate != "" {
			parsed, err := time.Parse("2006-01-02", initStartDate)
			if err != nil {
				return fmt.Errorf("неверный формат даты начала (ожидается ГГГГ-ММ-ДД): %w", err)
			}
			start = parsed
		}

		fmt.Println("=== Инициализация LifeSprint ===")
		fmt.Println()

		// Проверяем соединение с сервером
		fmt.Println("Проверка соединения с сервером...")
		if err := app.CheckConnection(); err != nil {
			fmt.Printf("⚠️  Предупреждение: не удалось подключиться к серверу: %v\n", err)
			fmt.Println("Вы можете работать в офлайн-режиме, изменения синхронизируются позже.")
		} else {
			fmt.Println("✓ Соединение с сервером установлено")
		}

		fmt.Println("Создание спринта...")
		if err := app.Init(cmd.Context(), initUserID, start); err != nil {
			return fmt.Errorf("ошибка инициализации: %w", err)
		}

		fmt.Println()
		fmt.Println("✅ Инициализация успешно завершена!")
		fmt.Println()
		fmt.Println("Что дальше:")
		fmt.Println("1. Заполните первый день: lifesprint day log --day 1")
		fmt.Println("2. Посмотрите прогресс: lifesprint day show")
		fmt.Println("3. Проверьте синхронизацию: lifesprint sync --status")

		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initUserID, "user", "", "идентификатор пользователя")
	initCmd.Flags().StringVar(&initStartDate, "start", "", "дата начала спринта (ГГГГ-ММ-ДД)")

	rootCmd.AddCommand(initCmd)

	// Команды работы с днями и неделями
	rootCmd.AddCommand(day.DayCmd)
	day.DayCmd.AddCommand(day.LogCmd)
	day.DayCmd.AddCommand(day.ShowCmd)

	rootCmd.AddCommand(week.WeekCmd)
	week.WeekCmd.AddCommand(week.ReflectCmd)
	week.WeekCmd.AddCommand(week.ShowCmd)

	rootCmd.AddCommand(sync.SyncCmd)
}
