package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() Record {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return Record{
		StartDate:  start,
		CurrentDay: 5,
		Days: map[int]DayEntry{
			3: {
				Completed:    true,
				Gratitude:    []string{"health", "family", ""},
				Achievements: []string{"finished report", "", ""},
				Goals: []Goal{
					{Text: "run 5k", Completed: true},
					{Text: "call mom", Completed: false},
				},
				ExerciseCompleted: true,
			},
		},
		Weeks: map[int]WeekReflection{},
	}
}

func TestMergeIdempotent(t *testing.T) {
	a := sampleRecord()

	merged, drops := Merge(a, a)

	assert.Empty(t, drops)
	assert.Equal(t, a, merged)
}

func TestMergeCommutativeOnDisjointKeys(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	a := Record{
		StartDate:  start,
		CurrentDay: 3,
		Days:       map[int]DayEntry{3: {Gratitude: []string{"x"}}},
		Weeks:      map[int]WeekReflection{},
	}
	b := Record{
		StartDate:  start,
		CurrentDay: 8,
		Days:       map[int]DayEntry{8: {Gratitude: []string{"y"}}},
		Weeks:      map[int]WeekReflection{1: {GratitudeSelf: "grew"}},
	}

	ab, dropsAB := Merge(a, b)
	ba, dropsBA := Merge(b, a)

	assert.Empty(t, dropsAB)
	assert.Empty(t, dropsBA)
	assert.Equal(t, ab, ba)
	assert.Len(t, ab.Days, 2)
	assert.Len(t, ab.Weeks, 1)
	assert.Equal(t, 8, ab.CurrentDay)
}

func TestMergeEarliestStartDateWins(t *testing.T) {
	early := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	a := Record{StartDate: late, CurrentDay: 1}
	b := Record{StartDate: early, CurrentDay: 1}

	merged, _ := Merge(a, b)
	assert.Equal(t, early, merged.StartDate)

	// Zero time means the side never established a start date.
	c := Record{CurrentDay: 1}
	merged, _ = Merge(c, a)
	assert.Equal(t, late, merged.StartDate)
}

func TestMergeDayWholesaleWins(t *testing.T) {
	// Side A: one filled goal (completed) and exercise done.
	a := DayEntry{
		Goals:             []Goal{{Text: "run 5k", Completed: true}},
		ExerciseCompleted: true,
	}
	// Side B: two filled goals, none completed, no exercise.
	b := DayEntry{
		Goals: []Goal{{Text: "read"}, {Text: "write"}},
	}
	require.Greater(t, DayScore(a), DayScore(b))

	merged, drops := MergeDay(a, b)

	assert.Empty(t, drops)
	assert.Equal(t, a.Goals, merged.Goals)
	assert.True(t, merged.ExerciseCompleted)

	// Symmetric: the more complete side wins regardless of argument order.
	merged, _ = MergeDay(b, a)
	assert.Equal(t, a.Goals, merged.Goals)
}

func TestMergeDayPositionalGratitude(t *testing.T) {
	local := DayEntry{Gratitude: []string{"x", "", ""}}
	remote := DayEntry{Gratitude: []string{"", "y", ""}}
	require.Equal(t, DayScore(local), DayScore(remote))

	merged, drops := MergeDay(local, remote)

	assert.Empty(t, drops)
	assert.Equal(t, []string{"x", "y", ""}, merged.Gratitude)
}

func TestMergeDayFieldwiseOnEqualScore(t *testing.T) {
	a := DayEntry{
		Completed:         true,
		Goals:             []Goal{{Text: "run", Completed: false}},
		ExerciseCompleted: true,
	}
	b := DayEntry{
		Goals: []Goal{{Text: "", Completed: true}},
	}
	// Hand-picked so both score 15.
	require.Equal(t, DayScore(a), DayScore(b))

	merged, _ := MergeDay(a, b)

	assert.True(t, merged.Completed)
	assert.True(t, merged.ExerciseCompleted)
	require.Len(t, merged.Goals, 1)
	assert.Equal(t, "run", merged.Goals[0].Text)
	assert.True(t, merged.Goals[0].Completed, "completed flag is the OR of both sides")
}

func TestMergeReportsDroppedAlternates(t *testing.T) {
	a := DayEntry{Gratitude: []string{"coffee"}}
	b := DayEntry{Gratitude: []string{"tea"}}
	require.Equal(t, DayScore(a), DayScore(b))

	merged, drops := MergeDay(a, b)

	assert.Equal(t, []string{"coffee"}, merged.Gratitude)
	require.Len(t, drops, 1)
	assert.Equal(t, "gratitude", drops[0].Field)
	assert.Equal(t, "coffee", drops[0].Kept)
	assert.Equal(t, "tea", drops[0].Dropped)
}

func TestMergeMonotonicCompletion(t *testing.T) {
	days := []DayEntry{
		{},
		{Gratitude: []string{"a", "", ""}},
		{Gratitude: []string{"", "b", ""}, ExerciseCompleted: true},
		{Goals: []Goal{{Text: "x", Completed: true}}},
		{Achievements: []string{"done", "also done"}},
	}

	for _, a := range days {
		for _, b := range days {
			merged, _ := MergeDay(a, b)
			sa, sb := DayScore(a), DayScore(b)
			assert.GreaterOrEqual(t, DayScore(merged), maxInt(sa, sb))
		}
	}
}

func TestMergeReflection(t *testing.T) {
	a := WeekReflection{
		GratitudeSelf: "kept the streak",
		Rules:         []string{"sleep by 23:00"},
	}
	b := WeekReflection{
		GratitudeSelf:     "kept the streak",
		GratitudeOthers:   "team support",
		Rules:             []string{"sleep by 23:00"},
		ExerciseCompleted: true,
	}

	// B is strictly more complete and must win wholesale.
	merged, drops := MergeReflection(a, b)
	assert.Empty(t, drops)
	assert.Equal(t, b, merged)

	// Equal scores merge field by field.
	c := WeekReflection{GratitudeSelf: "one"}
	d := WeekReflection{GratitudeOthers: "two"}
	merged, _ = MergeReflection(c, d)
	assert.Equal(t, "one", merged.GratitudeSelf)
	assert.Equal(t, "two", merged.GratitudeOthers)
}

func TestWeekKey(t *testing.T) {
	assert.Equal(t, 1, WeekKey(7))
	assert.Equal(t, 2, WeekKey(14))
	assert.True(t, IsWeekBoundary(7))
	assert.False(t, IsWeekBoundary(8))
	assert.False(t, IsWeekBoundary(0))
}
