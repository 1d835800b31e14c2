package progress

import (
	"strings"
	"time"
)

// DaysPerWeek is the length of one sprint week. A week's reflection key is
// derived from the day number of its last day (7 -> week 1, 14 -> week 2).
const DaysPerWeek = 7

// Record is the per-user aggregate of daily entries and weekly reflections
// for one sprint. Day and week numbers are stable positive integers.
type Record struct {
	StartDate  time.Time              `json:"start_date"`
	CurrentDay int                    `json:"current_day"`
	Days       map[int]DayEntry       `json:"days,omitempty"`
	Weeks      map[int]WeekReflection `json:"weeks,omitempty"`
}

// Goal is a single daily goal with its completion flag.
type Goal struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// DayEntry holds everything a user fills in for one sprint day.
type DayEntry struct {
	Completed         bool     `json:"completed"`
	Gratitude         []string `json:"gratitude"`
	Achievements      []string `json:"achievements"`
	Goals             []Goal   `json:"goals"`
	ExerciseCompleted bool     `json:"exercise_completed"`
}

// WeekReflection holds the end-of-week reflection entries.
type WeekReflection struct {
	GratitudeSelf     string   `json:"gratitude_self"`
	GratitudeOthers   string   `json:"gratitude_others"`
	GratitudeWorld    string   `json:"gratitude_world"`
	Achievements      []string `json:"achievements"`
	Improvements      []string `json:"improvements"`
	Insights          []string `json:"insights"`
	Rules             []string `json:"rules"`
	ExerciseCompleted bool     `json:"exercise_completed"`
}

// WeekKey returns the reflection key for a day number. Only day numbers that
// are multiples of DaysPerWeek close a week.
func WeekKey(day int) int {
	return day / DaysPerWeek
}

// IsWeekBoundary reports whether the day number closes a week.
func IsWeekBoundary(day int) bool {
	return day > 0 && day%DaysPerWeek == 0
}

// New returns an empty record starting at the given date.
func New(startDate time.Time) Record {
	return Record{
		StartDate:  startDate,
		CurrentDay: 1,
		Days:       make(map[int]DayEntry),
		Weeks:      make(map[int]WeekReflection),
	}
}

func filled(s string) bool {
	return strings.TrimSpace(s) != ""
}

func countFilled(items []string) int {
	n := 0
	for _, s := range items {
		if filled(s) {
			n++
		}
	}
	return n
}
