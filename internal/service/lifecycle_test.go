package service

import (
	"testing"
	"time"

	"onlinetest_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestNextLifecycleState(t *testing.T) {
	tests := []struct {
		name         string
		attemptsUsed int
		passed       bool
		maxAttempts  int
		wantStatus   model.AssignmentStatus
		wantMax      int
	}{
		{"pass on first attempt completes", 0, true, 1, model.StatusCompleted, 1},
		{"fail on first attempt grants one retry", 0, false, 1, model.StatusAssigned, 2},
		{"fail on first attempt overrides generous max", 0, false, 5, model.StatusAssigned, 2},
		{"pass on retry completes", 1, true, 2, model.StatusCompleted, 2},
		{"fail on retry completes", 1, false, 2, model.StatusCompleted, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, max := nextLifecycleState(tt.attemptsUsed, tt.passed, tt.maxAttempts)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMax, max)
		})
	}
}

func TestRoundPercentage(t *testing.T) {
	assert.Equal(t, 67, roundPercentage(2, 3))
	assert.Equal(t, 33, roundPercentage(1, 3))
	assert.Equal(t, 50, roundPercentage(1, 2))
	assert.Equal(t, 17, roundPercentage(1, 6))
	assert.Equal(t, 13, roundPercentage(1, 8))
	assert.Equal(t, 100, roundPercentage(3, 3))
	assert.Equal(t, 0, roundPercentage(0, 5))
	assert.Equal(t, 0, roundPercentage(0, 0))
}

func TestCanStart(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	open := &model.ExamAssignment{Status: model.StatusAssigned}
	assert.True(t, canStart(open, now))

	inProgress := &model.ExamAssignment{Status: model.StatusInProgress}
	assert.True(t, canStart(inProgress, now))

	completed := &model.ExamAssignment{Status: model.StatusCompleted}
	assert.False(t, canStart(completed, now))

	revoked := &model.ExamAssignment{Status: model.StatusRevoked}
	assert.False(t, canStart(revoked, now))

	notYetOpen := &model.ExamAssignment{Status: model.StatusAssigned, StartTime: &future}
	assert.False(t, canStart(notYetOpen, now))

	closed := &model.ExamAssignment{Status: model.StatusAssigned, EndTime: &past}
	assert.False(t, canStart(closed, now))

	windowed := &model.ExamAssignment{Status: model.StatusAssigned, StartTime: &past, EndTime: &future}
	assert.True(t, canStart(windowed, now))
}
