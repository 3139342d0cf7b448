package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDeadline(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		deadline time.Time
		want     DeadlineStatus
	}{
		{name: "already passed", deadline: now.Add(-time.Hour), want: DeadlineUrgent},
		{name: "due in an hour", deadline: now.Add(time.Hour), want: DeadlineUrgent},
		{name: "due in exactly a day", deadline: now.Add(24 * time.Hour), want: DeadlineUrgent},
		{name: "due in 25 hours counts as two days", deadline: now.Add(25 * time.Hour), want: DeadlineSoon},
		{name: "due in four days", deadline: now.Add(4 * 24 * time.Hour), want: DeadlineSoon},
		{name: "due in just over four days", deadline: now.Add(4*24*time.Hour + time.Hour), want: DeadlineComfortable},
		{name: "due in two weeks", deadline: now.Add(14 * 24 * time.Hour), want: DeadlineComfortable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDeadline(tt.deadline, now))
		})
	}
}

func TestLinkedTypeIsValid(t *testing.T) {
	assert.True(t, LinkedTypeClass.IsValid())
	assert.True(t, LinkedTypeModule.IsValid())
	assert.True(t, LinkedTypeAssignment.IsValid())
	assert.False(t, LinkedType("USER").IsValid())
	assert.False(t, LinkedType("").IsValid())
}
