package service

import (
	"time"

	"onlinetest_backend/internal/model"
)

// nextLifecycleState is the single place the automatic-retry rule
// lives. A failing first submission grants exactly one extra attempt
// by raising maxAttempts to 2 and returning the assignment to
// ASSIGNED; any other outcome completes the assignment. The rule is
// fixed and overrides whatever maxAttempts the assigner chose.
func nextLifecycleState(attemptsUsedBefore int, passed bool, maxAttempts int) (model.AssignmentStatus, int) {
	if passed {
		return model.StatusCompleted, maxAttempts
	}
	if attemptsUsedBefore == 0 {
		return model.StatusAssigned, 2
	}
	return model.StatusCompleted, maxAttempts
}

// canStart is the read-time predicate gating session creation: the
// window must be open and the assignment not yet completed or revoked.
func canStart(a *model.ExamAssignment, now time.Time) bool {
	if a.EndTime != nil && now.After(*a.EndTime) {
		return false
	}
	if a.Status != model.StatusAssigned && a.Status != model.StatusInProgress {
		return false
	}
	if a.StartTime != nil && now.Before(*a.StartTime) {
		return false
	}
	return true
}

// roundPercentage rounds half-up, so 2 of 3 correct reads as 67.
func roundPercentage(correct, total int) int {
	if total == 0 {
		return 0
	}
	return (200*correct + total) / (2 * total)
}
