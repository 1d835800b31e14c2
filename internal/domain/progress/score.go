package progress

// Completion scoring. The weights are chosen so that a fully filled entry
// scores exactly 100; the cap guards against lists longer than the UI slots.
const (
	maxScore = 100

	dayGratitudeSlots    = 3
	dayAchievementSlots  = 3
	dayGoalSlots         = 3
	reflectionListSlots  = 3
	reflectionRuleSlots  = 3
	entryPoints          = 5
	goalCompletedPoints  = 15
	rulePoints           = 10
	exercisePoints       = 10
)

// DayScore returns the 0-100 completion score of a day entry: 5 points per
// filled gratitude/achievement/goal text (3 slots each), 15 per completed
// goal, 10 for the exercise flag.
func DayScore(d DayEntry) int {
	score := entryPoints * capAt(countFilled(d.Gratitude), dayGratitudeSlots)
	score += entryPoints * capAt(countFilled(d.Achievements), dayAchievementSlots)

	goalTexts, goalsDone := 0, 0
	for _, g := range d.Goals {
		if filled(g.Text) {
			goalTexts++
		}
		if g.Completed {
			goalsDone++
		}
	}
	score += entryPoints * capAt(goalTexts, dayGoalSlots)
	score += goalCompletedPoints * capAt(goalsDone, dayGoalSlots)

	if d.ExerciseCompleted {
		score += exercisePoints
	}

	return capAt(score, maxScore)
}

// ReflectionScore returns the 0-100 completion score of a week reflection:
// 5 points per filled gratitude scalar, achievement, improvement and insight
// (3 slots each), 10 per filled rule, 10 for the exercise flag.
func ReflectionScore(w WeekReflection) int {
	score := entryPoints * countFilled([]string{w.GratitudeSelf, w.GratitudeOthers, w.GratitudeWorld})
	score += entryPoints * capAt(countFilled(w.Achievements), reflectionListSlots)
	score += entryPoints * capAt(countFilled(w.Improvements), reflectionListSlots)
	score += entryPoints * capAt(countFilled(w.Insights), reflectionListSlots)
	score += rulePoints * capAt(countFilled(w.Rules), reflectionRuleSlots)

	if w.ExerciseCompleted {
		score += exercisePoints
	}

	return capAt(score, maxScore)
}

func capAt(n, max int) int {
	if n > max {
		return max
	}
	return n
}
