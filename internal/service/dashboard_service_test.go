package service

import (
	"testing"

	"onlinetest_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreDistributionCountsOnlyLatestAttempt(t *testing.T) {
	f := newFixture(t)
	svc := NewDashboardService(f.attempts)

	seed := func(assignmentID uint, attemptNumber, percentage int) {
		require.NoError(t, f.db.Create(&model.ExamAttempt{
			CompanyID:      1,
			ExamID:         1,
			AssignmentID:   assignmentID,
			EmployeeID:     10,
			AttemptNumber:  attemptNumber,
			TotalQuestions: 10,
			CorrectAnswers: percentage / 10,
			Percentage:     percentage,
			Passed:         percentage >= 60,
			Status:         model.ResultFailed,
		}).Error)
	}

	// assignment 1: failed 40, retried to 90; only the retry counts
	seed(1, 1, 40)
	seed(1, 2, 90)
	// assignment 2: single 70
	seed(2, 1, 70)
	// another employee's attempt must not bleed in
	require.NoError(t, f.db.Create(&model.ExamAttempt{
		CompanyID: 1, ExamID: 1, AssignmentID: 3, EmployeeID: 11,
		AttemptNumber: 1, TotalQuestions: 10, Percentage: 75, Status: model.ResultPassed,
	}).Error)

	buckets, err := svc.ScoreDistribution(employeePrincipal(1, 10))
	require.NoError(t, err)
	require.Len(t, buckets, 4)

	byLabel := make(map[string]int64, len(buckets))
	for _, b := range buckets {
		byLabel[b.Label] = b.Count
	}
	assert.EqualValues(t, 0, byLabel["below-60"], "superseded first attempt must not count")
	assert.EqualValues(t, 1, byLabel["60-74"])
	assert.EqualValues(t, 0, byLabel["75-84"])
	assert.EqualValues(t, 1, byLabel["85-100"])
}
