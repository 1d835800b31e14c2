package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDayScore(t *testing.T) {
	tests := []struct {
		name string
		day  DayEntry
		want int
	}{
		{
			name: "empty day",
			day:  DayEntry{},
			want: 0,
		},
		{
			name: "single gratitude entry",
			day:  DayEntry{Gratitude: []string{"sunrise", "", ""}},
			want: 5,
		},
		{
			name: "whitespace does not count",
			day:  DayEntry{Gratitude: []string{"   ", "\t", ""}},
			want: 0,
		},
		{
			name: "one completed goal plus exercise",
			day: DayEntry{
				Goals:             []Goal{{Text: "run 5k", Completed: true}},
				ExerciseCompleted: true,
			},
			want: 30, // 5 for the text, 15 for completion, 10 for exercise
		},
		{
			name: "two filled goals none completed",
			day: DayEntry{
				Goals: []Goal{{Text: "read"}, {Text: "write"}},
			},
			want: 10,
		},
		{
			name: "fully filled day",
			day: DayEntry{
				Completed:    true,
				Gratitude:    []string{"a", "b", "c"},
				Achievements: []string{"a", "b", "c"},
				Goals: []Goal{
					{Text: "one", Completed: true},
					{Text: "two", Completed: true},
					{Text: "three", Completed: true},
				},
				ExerciseCompleted: true,
			},
			want: 100,
		},
		{
			name: "extra entries beyond the slots are capped",
			day: DayEntry{
				Gratitude: []string{"a", "b", "c", "d", "e"},
			},
			want: 15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DayScore(tt.day))
		})
	}
}

func TestReflectionScore(t *testing.T) {
	tests := []struct {
		name string
		week WeekReflection
		want int
	}{
		{
			name: "empty reflection",
			week: WeekReflection{},
			want: 0,
		},
		{
			name: "scalar gratitude fields",
			week: WeekReflection{
				GratitudeSelf:  "grew",
				GratitudeWorld: "sun",
			},
			want: 10,
		},
		{
			name: "rules weigh double",
			week: WeekReflection{
				Rules: []string{"sleep by 23:00", "no phone at dinner"},
			},
			want: 20,
		},
		{
			name: "fully filled reflection",
			week: WeekReflection{
				GratitudeSelf:     "a",
				GratitudeOthers:   "b",
				GratitudeWorld:    "c",
				Achievements:      []string{"a", "b", "c"},
				Improvements:      []string{"a", "b", "c"},
				Insights:          []string{"a", "b", "c"},
				Rules:             []string{"a", "b", "c"},
				ExerciseCompleted: true,
			},
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReflectionScore(tt.week))
		})
	}
}
