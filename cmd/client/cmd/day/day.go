package day

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lifesprint/internal/app/client"
	"lifesprint/internal/domain/progress"
)

var (
	dayNumber    int
	gratitude    []string
	achievements []string
	goals        []string
	goalsDone    []int
	dayDone      bool
	exerciseDone bool
)

var DayCmd = &cobra.Command{
	Use:   "day",
	Short: "Работа с дневными записями",
	Long: `Ведение дневных записей спринта: благодарности, достижения,
цели дня и отметка о тренировке.`,
}

var LogCmd = &cobra.Command{
	Use:   "log",
	Short: "Заполнить запись дня",
	Long: `Заполняет или дополняет запись указанного дня. Каждый список
вмещает до трёх значений; переданные значения занимают свободные
позиции по порядку.

Примеры:
  lifesprint day log --day 3 --gratitude "утренний кофе" --exercise
  lifesprint day log --day 3 --goal "пробежка 5 км" --goal-done 0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := client.FromContext(cmd.Context())
		if !ok {
			return fmt.Errorf("приложение не инициализировано")
		}

		if dayNumber < 1 {
			return fmt.Errorf("укажите номер дня: --day")
		}

		err := app.UpdateDay(cmd.Context(), dayNumber, func(entry *progress.DayEntry) {
			fillSlots(&entry.Gratitude, gratitude)
			fillSlots(&entry.Achievements, achievements)

			for _, text := range goals {
				placed := false
				for i := range entry.Goals {
					if strings.TrimSpace(entry.Goals[i].Text) == "" {
						entry.Goals[i].Text = text
						placed = true
						break
					}
				}
				if !placed && len(entry.Goals) < 3 {
					entry.Goals = append(entry.Goals, progress.Goal{Text: text})
				}
			}

			for _, idx := range goalsDone {
				if idx >= 0 && idx < len(entry.Goals) {
					entry.Goals[idx].Completed = true
				}
			}

			if dayDone {
				entry.Completed = true
			}
			if exerciseDone {
				entry.ExerciseCompleted = true
			}
		})
		if err != nil {
			return fmt.Errorf("ошибка сохранения дня: %w", err)
		}

		color.Green("✅ День %d сохранён", dayNumber)
		if progress.IsWeekBoundary(dayNumber) {
			fmt.Printf("Неделя %d завершена. Заполните рефлексию: lifesprint week reflect --week %d\n",
				progress.WeekKey(dayNumber), progress.WeekKey(dayNumber))
		}
		return nil
	},
}

var ShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Показать прогресс спринта",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := client.FromContext(cmd.Context())
		if !ok {
			return fmt.Errorf("приложение не инициализировано")
		}

		rec, err := app.Progress(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка чтения прогресса: %w", err)
		}

		bold := color.New(color.Bold)
		bold.Printf("Спринт с %s, текущий день: %d\n\n", rec.StartDate.Format("2006-01-02"), rec.CurrentDay)

		days := make([]int, 0, len(rec.Days))
		for d := range rec.Days {
			days = append(days, d)
		}
		sort.Ints(days)

		for _, d := range days {
			entry := rec.Days[d]
			score := progress.DayScore(entry)
			printDay(d, entry, score)
		}

		return nil
	},
}

func printDay(day int, entry progress.DayEntry, score int) {
	header := color.New(color.FgCyan)
	header.Printf("День %d", day)

	switch {
	case score >= 70:
		color.New(color.FgGreen).Printf("  [%d/100]\n", score)
	case score >= 30:
		color.New(color.FgYellow).Printf("  [%d/100]\n", score)
	default:
		color.New(color.FgRed).Printf("  [%d/100]\n", score)
	}

	printList("  Благодарности", entry.Gratitude)
	printList("  Достижения", entry.Achievements)

	if len(entry.Goals) > 0 {
		fmt.Println("  Цели:")
		for i, g := range entry.Goals {
			if strings.TrimSpace(g.Text) == "" {
				continue
			}
			mark := " "
			if g.Completed {
				mark = "x"
			}
			fmt.Printf("    [%s] %d. %s\n", mark, i, g.Text)
		}
	}

	if entry.ExerciseCompleted {
		fmt.Println("  Тренировка: выполнена")
	}
	fmt.Println()
}

func printList(title string, items []string) {
	filled := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			filled = append(filled, item)
		}
	}
	if len(filled) == 0 {
		return
	}
	fmt.Printf("%s:\n", title)
	for _, item := range filled {
		fmt.Printf("    • %s\n", item)
	}
}

// fillSlots раскладывает новые значения по свободным позициям списка
func fillSlots(dst *[]string, values []string) {
	for _, v := range values {
		placed := false
		for i := range *dst {
			if strings.TrimSpace((*dst)[i]) == "" {
				(*dst)[i] = v
				placed = true
				break
			}
		}
		if !placed && len(*dst) < 3 {
			*dst = append(*dst, v)
		}
	}
}

func init() {
	LogCmd.Flags().IntVar(&dayNumber, "day", 0, "номер дня спринта")
	LogCmd.Flags().StringArrayVar(&gratitude, "gratitude", nil, "запись благодарности (до 3)")
	LogCmd.Flags().StringArrayVar(&achievements, "achievement", nil, "запись достижения (до 3)")
	LogCmd.Flags().StringArrayVar(&goals, "goal", nil, "цель дня (до 3)")
	LogCmd.Flags().IntSliceVar(&goalsDone, "goal-done", nil, "отметить цель выполненной по индексу")
	LogCmd.Flags().BoolVar(&dayDone, "done", false, "отметить день завершённым")
	LogCmd.Flags().BoolVar(&exerciseDone, "exercise", false, "отметить тренировку выполненной")
}
