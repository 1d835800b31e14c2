package week

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
	weekNumber      int
	gratitudeSelf   string
	gratitudeOthers string
	gratitudeWorld  string
	achievements    []string
	improvements    []string
	insights        []string
	rules           []string
	exerciseDone    bool
)

var WeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Работа с недельными рефлексиями",
	Long: `Еженедельная рефлексия спринта: благодарности себе, людям и миру,
достижения, зоны роста, осознания и правила на следующую неделю.`,
}

var ReflectCmd = &cobra.Command{
	Use:   "reflect",
	Short: "Заполнить рефлексию недели",
	Long: `Заполняет или дополняет рефлексию указанной недели.

Пример:
  lifesprint week reflect --week 1 --gratitude-self "держал темп" --rule "спать до полуночи"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := client.FromContext(cmd.Context())
		if !ok {
			return fmt.Errorf("приложение не инициализировано")
		}

		if weekNumber < 1 {
			return fmt.Errorf("укажите номер недели: --week")
		}

		err := app.UpdateWeek(cmd.Context(), weekNumber, func(r *progress.WeekReflection) {
			if gratitudeSelf != "" {
				r.GratitudeSelf = gratitudeSelf
			}
			if gratitudeOthers != "" {
				r.GratitudeOthers = gratitudeOthers
			}
			if gratitudeWorld != "" {
				r.GratitudeWorld = gratitudeWorld
			}

			fillSlots(&r.Achievements, achievements)
			fillSlots(&r.Improvements, improvements)
			fillSlots(&r.Insights, insights)
			fillSlots(&r.Rules, rules)

			if exerciseDone {
				r.ExerciseCompleted = true
			}
		})
		if err != nil {
			return fmt.Errorf("ошибка сохранения рефлексии: %w", err)
		}

		color.Green("✅ Рефлексия недели %d сохранена", weekNumber)
		return nil
	},
}

var ShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Показать рефлексии спринта",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := client.FromContext(cmd.Context())
		if !ok {
			return fmt.Errorf("приложение не инициализировано")
		}

		rec, err := app.Progress(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка чтения прогресса: %w", err)
		}

		weeks := make([]int, 0, len(rec.Weeks))
		for w := range rec.Weeks {
			weeks = append(weeks, w)
		}
		sort.Ints(weeks)

		if len(weeks) == 0 {
			fmt.Println("Рефлексий пока нет.")
			return nil
		}

		for _, w := range weeks {
			reflection := rec.Weeks[w]
			score := progress.ReflectionScore(reflection)

			color.New(color.FgCyan).Printf("Неделя %d", w)
			fmt.Printf("  [%d/100]\n", score)

			printScalar("  Благодарность себе", reflection.GratitudeSelf)
			printScalar("  Благодарность людям", reflection.GratitudeOthers)
			printScalar("  Благодарность миру", reflection.GratitudeWorld)
			printList("  Достижения", reflection.Achievements)
			printList("  Зоны роста", reflection.Improvements)
			printList("  Осознания", reflection.Insights)
			printList("  Правила", reflection.Rules)
			if reflection.ExerciseCompleted {
				fmt.Println("  Тренировка: выполнена")
			}
			fmt.Println()
		}

		return nil
	},
}

func printScalar(title, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Printf("%s: %s\n", title, value)
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
	ReflectCmd.Flags().IntVar(&weekNumber, "week", 0, "номер недели спринта")
	ReflectCmd.Flags().StringVar(&gratitudeSelf, "gratitude-self", "", "благодарность себе")
	ReflectCmd.Flags().StringVar(&gratitudeOthers, "gratitude-others", "", "благодарность людям")
	ReflectCmd.Flags().StringVar(&gratitudeWorld, "gratitude-world", "", "благодарность миру")
	ReflectCmd.Flags().StringArrayVar(&achievements, "achievement", nil, "достижение недели (до 3)")
	ReflectCmd.Flags().StringArrayVar(&improvements, "improvement", nil, "зона роста (до 3)")
	ReflectCmd.Flags().StringArrayVar(&insights, "insight", nil, "осознание недели (до 3)")
	ReflectCmd.Flags().StringArrayVar(&rules, "rule", nil, "правило на следующую неделю (до 3)")
	ReflectCmd.Flags().BoolVar(&exerciseDone, "exercise", false, "отметить тренировку выполненной")
}
