package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestTask_Validate(t *testing.T) {
	valid := Task{
		Name:      "Pour foundation",
		StartDate: day("2024-03-08"),
		EndDate:   day("2024-03-18"),
		Progress:  50,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Task)
	}{
		{"empty name", func(tk *Task) { tk.Name = "" }},
		{"end before start", func(tk *Task) { tk.EndDate = day("2024-03-01") }},
		{"progress below zero", func(tk *Task) { tk.Progress = -1 }},
		{"progress above hundred", func(tk *Task) { tk.Progress = 101 }},
		{"negative estimated hours", func(tk *Task) { tk.EstimatedHours = -2 }},
		{"negative actual hours", func(tk *Task) { tk.ActualHours = -0.5 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tk := valid
			tc.mutate(&tk)
			err := tk.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidationFailed)
		})
	}
}

func TestTask_EqualDatesAreValidMilestones(t *testing.T) {
	tk := Task{
		Name:      "Kickoff",
		StartDate: day("2024-03-08"),
		EndDate:   day("2024-03-08"),
	}
	require.NoError(t, tk.Validate())
	assert.True(t, tk.SpansSingleDay())
	assert.Equal(t, 0, tk.DurationDays())
}

func TestTaskTemplate_Validate(t *testing.T) {
	valid := TaskTemplate{
		Name:                  "Design review",
		EstimatedHours:        8,
		EstimatedDurationDays: 2,
		StartOffsetDays:       5,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*TaskTemplate)
	}{
		{"empty name", func(tt *TaskTemplate) { tt.Name = "" }},
		{"negative hours", func(tt *TaskTemplate) { tt.EstimatedHours = -1 }},
		{"negative duration", func(tt *TaskTemplate) { tt.EstimatedDurationDays = -1 }},
		{"negative offset", func(tt *TaskTemplate) { tt.StartOffsetDays = -1 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tt := valid
			tc.mutate(&tt)
			assert.ErrorIs(t, tt.Validate(), ErrValidationFailed)
		})
	}
}

func TestProject_Validate(t *testing.T) {
	p := Project{
		Name:      "Office move",
		StartDate: day("2024-03-08"),
		EndDate:   day("2024-05-01"),
	}
	require.NoError(t, p.Validate())

	p.EndDate = day("2024-02-01")
	assert.ErrorIs(t, p.Validate(), ErrValidationFailed)

	p.EndDate = day("2024-05-01")
	p.Budget = -100
	assert.ErrorIs(t, p.Validate(), ErrValidationFailed)
}
