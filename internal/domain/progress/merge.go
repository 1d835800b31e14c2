package progress

import (
	"fmt"
	"sort"
	"time"
)

// Dropped records a non-empty value that lost a merge tie-break. The merge
// itself stays pure and deterministic; callers decide whether to log the
// discarded text so it is never thrown away silently.
type Dropped struct {
	Field   string
	Index   int
	Kept    string
	Dropped string
}

// Merge combines two copies of the same logical record into one. The first
// argument wins ties, so callers reconciling against the remote store pass
// the remote copy first.
//
// Rules: the earlier start date wins, the greater current day wins, and day
// and week entries present on only one side are copied unchanged. Entries
// present on both sides are merged by MergeDay / MergeReflection.
func Merge(a, b Record) (Record, []Dropped) {
	merged := Record{
		StartDate:  earlierDate(a, b),
		CurrentDay: maxInt(a.CurrentDay, b.CurrentDay),
		Days:       make(map[int]DayEntry, len(a.Days)+len(b.Days)),
		Weeks:      make(map[int]WeekReflection, len(a.Weeks)+len(b.Weeks)),
	}

	var drops []Dropped

	for _, day := range unionKeysDay(a.Days, b.Days) {
		da, inA := a.Days[day]
		db, inB := b.Days[day]
		switch {
		case inA && inB:
			m, d := MergeDay(da, db)
			merged.Days[day] = m
			drops = append(drops, prefixed(d, fmt.Sprintf("days.%d", day))...)
		case inA:
			merged.Days[day] = cloneDay(da)
		default:
			merged.Days[day] = cloneDay(db)
		}
	}

	for _, week := range unionKeysWeek(a.Weeks, b.Weeks) {
		wa, inA := a.Weeks[week]
		wb, inB := b.Weeks[week]
		switch {
		case inA && inB:
			m, d := MergeReflection(wa, wb)
			merged.Weeks[week] = m
			drops = append(drops, prefixed(d, fmt.Sprintf("weeks.%d", week))...)
		case inA:
			merged.Weeks[week] = cloneReflection(wa)
		default:
			merged.Weeks[week] = cloneReflection(wb)
		}
	}

	return merged, drops
}

// MergeDay merges two versions of the same day. The side with the strictly
// higher completion score wins wholesale, which keeps a coherent entry
// intact instead of interleaving half-typed text. On equal scores the entry
// is merged field by field.
func MergeDay(a, b DayEntry) (DayEntry, []Dropped) {
	sa, sb := DayScore(a), DayScore(b)
	if sa > sb {
		return cloneDay(a), nil
	}
	if sa < sb {
		return cloneDay(b), nil
	}

	var drops []Dropped
	merged := DayEntry{
		Completed:         a.Completed || b.Completed,
		ExerciseCompleted: a.ExerciseCompleted || b.ExerciseCompleted,
	}
	merged.Gratitude, drops = mergeLists(a.Gratitude, b.Gratitude, "gratitude", drops)
	merged.Achievements, drops = mergeLists(a.Achievements, b.Achievements, "achievements", drops)
	merged.Goals, drops = mergeGoals(a.Goals, b.Goals, drops)
	return merged, drops
}

// MergeReflection merges two versions of the same week reflection under the
// same score-gated wholesale-or-fieldwise policy as MergeDay.
func MergeReflection(a, b WeekReflection) (WeekReflection, []Dropped) {
	sa, sb := ReflectionScore(a), ReflectionScore(b)
	if sa > sb {
		return cloneReflection(a), nil
	}
	if sa < sb {
		return cloneReflection(b), nil
	}

	var drops []Dropped
	merged := WeekReflection{
		ExerciseCompleted: a.ExerciseCompleted || b.ExerciseCompleted,
	}
	merged.GratitudeSelf, drops = mergeScalar(a.GratitudeSelf, b.GratitudeSelf, "gratitude_self", drops)
	merged.GratitudeOthers, drops = mergeScalar(a.GratitudeOthers, b.GratitudeOthers, "gratitude_others", drops)
	merged.GratitudeWorld, drops = mergeScalar(a.GratitudeWorld, b.GratitudeWorld, "gratitude_world", drops)
	merged.Achievements, drops = mergeLists(a.Achievements, b.Achievements, "achievements", drops)
	merged.Improvements, drops = mergeLists(a.Improvements, b.Improvements, "improvements", drops)
	merged.Insights, drops = mergeLists(a.Insights, b.Insights, "insights", drops)
	merged.Rules, drops = mergeLists(a.Rules, b.Rules, "rules", drops)
	return merged, drops
}

// mergeLists combines two ordered string lists into one of the maximum
// length. At each index the non-empty-after-trim value wins; when both sides
// are non-empty (or both empty) the first list's value is kept, and a
// differing non-empty loser is reported.
func mergeLists(a, b []string, field string, drops []Dropped) ([]string, []Dropped) {
	n := maxInt(len(a), len(b))
	if n == 0 {
		return nil, drops
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		av, bv := at(a, i), at(b, i)
		switch {
		case filled(av):
			out[i] = av
			if filled(bv) && av != bv {
				drops = append(drops, Dropped{Field: field, Index: i, Kept: av, Dropped: bv})
			}
		case filled(bv):
			out[i] = bv
		default:
			out[i] = av
		}
	}
	return out, drops
}

func mergeScalar(av, bv, field string, drops []Dropped) (string, []Dropped) {
	switch {
	case filled(av):
		if filled(bv) && av != bv {
			drops = append(drops, Dropped{Field: field, Kept: av, Dropped: bv})
		}
		return av, drops
	case filled(bv):
		return bv, drops
	default:
		return av, drops
	}
}

// mergeGoals merges goal lists position by position: text follows the list
// rule, the completed flag is the OR of both sides.
func mergeGoals(a, b []Goal, drops []Dropped) ([]Goal, []Dropped) {
	n := maxInt(len(a), len(b))
	if n == 0 {
		return nil, drops
	}
	out := make([]Goal, n)
	for i := 0; i < n; i++ {
		ga, gb := goalAt(a, i), goalAt(b, i)
		out[i].Completed = ga.Completed || gb.Completed
		switch {
		case filled(ga.Text):
			out[i].Text = ga.Text
			if filled(gb.Text) && ga.Text != gb.Text {
				drops = append(drops, Dropped{Field: "goals", Index: i, Kept: ga.Text, Dropped: gb.Text})
			}
		case filled(gb.Text):
			out[i].Text = gb.Text
		default:
			out[i].Text = ga.Text
		}
	}
	return out, drops
}

func earlierDate(a, b Record) time.Time {
	switch {
	case a.StartDate.IsZero():
		return b.StartDate
	case b.StartDate.IsZero():
		return a.StartDate
	case b.StartDate.Before(a.StartDate):
		return b.StartDate
	default:
		return a.StartDate
	}
}

func prefixed(drops []Dropped, prefix string) []Dropped {
	for i := range drops {
		drops[i].Field = prefix + "." + drops[i].Field
	}
	return drops
}

func cloneDay(d DayEntry) DayEntry {
	c := d
	c.Gratitude = append([]string(nil), d.Gratitude...)
	c.Achievements = append([]string(nil), d.Achievements...)
	c.Goals = append([]Goal(nil), d.Goals...)
	return c
}

func cloneReflection(w WeekReflection) WeekReflection {
	c := w
	c.Achievements = append([]string(nil), w.Achievements...)
	c.Improvements = append([]string(nil), w.Improvements...)
	c.Insights = append([]string(nil), w.Insights...)
	c.Rules = append([]string(nil), w.Rules...)
	return c
}

func unionKeysDay(a, b map[int]DayEntry) []int {
	seen := make(map[int]struct{}, len(a)+len(b))
	for k := range a {
		seen[k] = struct{}{}
	}
	for k := range b {
		seen[k] = struct{}{}
	}
	keys := make([]int, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func unionKeysWeek(a, b map[int]WeekReflection) []int {
	seen := make(map[int]struct{}, len(a)+len(b))
	for k := range a {
		seen[k] = struct{}{}
	}
	for k := range b {
		seen[k] = struct{}{}
	}
	keys := make([]int, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func at(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}

func goalAt(s []Goal, i int) Goal {
	if i < len(s) {
		return s[i]
	}
	return Goal{}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
