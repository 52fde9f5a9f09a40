package service

import (
	"time"

	"onlinetest_backend/internal/model"
	"onlinetest_backend/internal/repository"
	"onlinetest_backend/internal/util"
	"onlinetest_backend/pkg/claims"
	"onlinetest_backend/pkg/logger"
	"onlinetest_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubmissionService struct {
	AssignmentRepo *repository.AssignmentRepository
	AttemptRepo    *repository.AttemptRepository
	ExamRepo       *repository.ExamRepository
	QuestionRepo   *repository.QuestionRepository
	DB             *gorm.DB
	Now            func() time.Time
}

func NewSubmissionService(assignmentRepo *repository.AssignmentRepository, attemptRepo *repository.AttemptRepository, examRepo *repository.ExamRepository, questionRepo *repository.QuestionRepository, db *gorm.DB) *SubmissionService {
	return &SubmissionService{
		AssignmentRepo: assignmentRepo,
		AttemptRepo:    attemptRepo,
		ExamRepo:       examRepo,
		QuestionRepo:   questionRepo,
		DB:             db,
		Now:            time.Now,
	}
}

type SubmittedAnswer struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Selected   string `json:"selected" binding:"required"`
}

type SubmitRequest struct {
	AssignmentID uint              `json:"assignmentId" binding:"required"`
	ExamID       uint              `json:"examId" binding:"required"`
	Answers      []SubmittedAnswer `json:"answers" binding:"required,min=1,dive"`
}

// AttemptResult is what a just-scored submission returns. It carries
// the pass threshold but never the correct answers.
type AttemptResult struct {
	AttemptID         uint                   `json:"attemptId"`
	AttemptNumber     int                    `json:"attemptNumber"`
	TotalQuestions    int                    `json:"totalQuestions"`
	CorrectAnswers    int                    `json:"correctAnswers"`
	Percentage        int                    `json:"percentage"`
	PassingPercentage int                    `json:"passingPercentage"`
	Passed            bool                   `json:"passed"`
	AttemptsRemaining int                    `json:"attemptsRemaining"`
	AssignmentStatus  model.AssignmentStatus `json:"assignmentStatus"`
}

// Submit scores one sitting against the frozen composition and
// advances the assignment lifecycle in a single transaction. The
// assignment row is locked for the duration, and the attempts counter
// is re-checked under the lock so the loser of a double submission
// gets ErrConflict instead of a second recorded attempt.
func (s *SubmissionService) Submit(principal *claims.Principal, req SubmitRequest) (*AttemptResult, error) {
	a, err := s.AssignmentRepo.FindByID(principal.CompanyID, req.AssignmentID)
	if err != nil {
		return nil, err
	}
	if a.EmployeeID != principal.UserID {
		return nil, util.ErrForbidden
	}
	if a.ExamID != req.ExamID {
		return nil, util.Invalid("examId does not match this assignment")
	}

	now := s.Now()
	if a.Status == model.StatusRevoked {
		return nil, util.Invalid("assignment has been revoked")
	}
	if a.Status == model.StatusCompleted {
		return nil, util.Invalid("assignment is already completed")
	}
	if a.StartTime != nil && now.Before(*a.StartTime) {
		return nil, util.Invalid("exam window has not opened yet")
	}
	if a.EndTime != nil && now.After(*a.EndTime) {
		return nil, util.Invalid("exam window has closed")
	}
	if a.AttemptsUsed >= a.MaxAttempts {
		return nil, util.Invalid("no attempts remaining")
	}

	return s.scoreValidated(principal, a, req)
}

// scoreValidated runs the scoring transaction against an assignment
// snapshot the caller has already validated. The snapshot's attempts
// counter doubles as the optimistic guard inside the transaction.
func (s *SubmissionService) scoreValidated(principal *claims.Principal, a *model.ExamAssignment, req SubmitRequest) (*AttemptResult, error) {
	now := s.Now()

	exam, err := s.ExamRepo.FindByID(principal.CompanyID, a.ExamID)
	if err != nil {
		return nil, err
	}
	eqs, err := s.ExamRepo.FindExamQuestions(exam.ID)
	if err != nil {
		return nil, err
	}
	qids := make([]uint, len(eqs))
	for i, eq := range eqs {
		qids[i] = eq.QuestionID
	}
	questions, err := s.QuestionRepo.FindByIDs(principal.CompanyID, qids)
	if err != nil {
		return nil, err
	}
	qMap := make(map[uint]model.Question, len(questions))
	for _, q := range questions {
		qMap[q.ID] = q
	}

	// reject answers for questions outside the composition, a question
	// answered twice, and any value that is not one of the four options
	frozen := make(map[uint]bool, len(eqs))
	for _, eq := range eqs {
		frozen[eq.QuestionID] = true
	}
	picks := make(map[uint]string, len(req.Answers))
	for _, ans := range req.Answers {
		if !frozen[ans.QuestionID] {
			return nil, util.Invalid("question %d is not part of this exam", ans.QuestionID)
		}
		if _, dup := picks[ans.QuestionID]; dup {
			return nil, util.Invalid("duplicate answer for question %d", ans.QuestionID)
		}
		if !model.ValidOption(ans.Selected) {
			return nil, util.Invalid("answer for question %d must be one of A, B, C, D", ans.QuestionID)
		}
		picks[ans.QuestionID] = ans.Selected
	}

	var attempt *model.ExamAttempt
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var locked model.ExamAssignment
		lookup := tx.Where("id = ? AND company_id = ?", a.ID, principal.CompanyID)
		// sqlite has no row locks; the attempts guard below still
		// catches a lost race there
		if tx.Dialector.Name() == "mysql" {
			lookup = lookup.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := lookup.First(&locked).Error; err != nil {
			return err
		}
		if locked.AttemptsUsed != a.AttemptsUsed || locked.Status == model.StatusCompleted {
			return util.ErrConflict
		}

		correct := 0
		answers := make([]model.ExamAttemptAnswer, 0, len(eqs))
		for _, eq := range eqs {
			q, ok := qMap[eq.QuestionID]
			if !ok {
				continue
			}
			ans := model.ExamAttemptAnswer{
				QuestionID: eq.QuestionID,
				Position:   eq.Position,
			}
			if raw, answered := picks[eq.QuestionID]; answered {
				selected := model.AnswerOption(raw)
				ans.Selected = &selected
				ans.IsCorrect = selected == q.CorrectAnswer
			}
			if ans.IsCorrect {
				correct++
			}
			answers = append(answers, ans)
		}

		percentage := roundPercentage(correct, len(answers))
		passed := percentage >= exam.PassingPercentage

		attempt = &model.ExamAttempt{
			CompanyID:      principal.CompanyID,
			ExamID:         exam.ID,
			AssignmentID:   locked.ID,
			EmployeeID:     principal.UserID,
			AttemptNumber:  locked.AttemptsUsed + 1,
			TotalQuestions: len(answers),
			CorrectAnswers: correct,
			Percentage:     percentage,
			Passed:         passed,
		}
		if passed {
			attempt.Status = model.ResultPassed
		} else {
			attempt.Status = model.ResultFailed
		}
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}
		for i := range answers {
			answers[i].AttemptID = attempt.ID
		}
		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return err
			}
		}

		nextStatus, nextMax := nextLifecycleState(locked.AttemptsUsed, passed, locked.MaxAttempts)
		locked.AttemptsUsed++
		locked.Status = nextStatus
		locked.MaxAttempts = nextMax
		locked.LastResult = attempt.Status
		locked.LastPercentage = &attempt.Percentage
		locked.LastSubmittedAt = &now
		if err := tx.Save(&locked).Error; err != nil {
			return err
		}

		a = &locked
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	result := "failed"
	if attempt.Passed {
		result = "passed"
	}
	monitoring.SubmissionsScored.WithLabelValues(result).Inc()
	logger.Log.Info("submission scored",
		zap.Uint("assignmentId", a.ID),
		zap.Uint("employeeId", principal.UserID),
		zap.Int("percentage", attempt.Percentage),
		zap.Bool("passed", attempt.Passed))

	remaining := a.MaxAttempts - a.AttemptsUsed
	if remaining < 0 {
		remaining = 0
	}
	return &AttemptResult{
		AttemptID:         attempt.ID,
		AttemptNumber:     attempt.AttemptNumber,
		TotalQuestions:    attempt.TotalQuestions,
		CorrectAnswers:    attempt.CorrectAnswers,
		Percentage:        attempt.Percentage,
		PassingPercentage: exam.PassingPercentage,
		Passed:            attempt.Passed,
		AttemptsRemaining: remaining,
		AssignmentStatus:  a.Status,
	}, nil
}

// AnswerReview pairs a stored answer with the question it graded.
type AnswerReview struct {
	Position      int                 `json:"position"`
	QuestionID    uint                `json:"questionId"`
	QuestionText  string              `json:"questionText"`
	OptionA       string              `json:"optionA"`
	OptionB       string              `json:"optionB"`
	OptionC       string              `json:"optionC"`
	OptionD       string              `json:"optionD"`
	Selected      *model.AnswerOption `json:"selected"`
	CorrectAnswer model.AnswerOption  `json:"correctAnswer"`
	IsCorrect     bool                `json:"isCorrect"`
}

type AttemptReview struct {
	AttemptID      uint           `json:"attemptId"`
	AttemptNumber  int            `json:"attemptNumber"`
	TotalQuestions int            `json:"totalQuestions"`
	CorrectAnswers int            `json:"correctAnswers"`
	Percentage     int            `json:"percentage"`
	Passed         bool           `json:"passed"`
	SubmittedAt    time.Time      `json:"submittedAt"`
	Answers        []AnswerReview `json:"answers"`
}

// ReviewAttempt exposes a scored attempt with the correct answers.
// Employees can only review their own attempts, and only while the
// exam's review window after submission is still open; admins review
// any attempt of their company without the window limit.
func (s *SubmissionService) ReviewAttempt(principal *claims.Principal, attemptID uint) (*AttemptReview, error) {
	attempt, err := s.AttemptRepo.FindByID(principal.CompanyID, attemptID)
	if err != nil {
		return nil, err
	}

	if principal.Role == claims.RoleEmployee {
		if attempt.EmployeeID != principal.UserID {
			return nil, util.ErrForbidden
		}
		exam, err := s.ExamRepo.FindByID(principal.CompanyID, attempt.ExamID)
		if err != nil {
			return nil, err
		}
		if exam.ReviewMinutes > 0 {
			deadline := attempt.CreatedAt.Add(time.Duration(exam.ReviewMinutes) * time.Minute)
			if s.Now().After(deadline) {
				return nil, util.Invalid("the review window for this attempt has closed")
			}
		}
	}

	stored, err := s.AttemptRepo.FindAnswers(attempt.ID)
	if err != nil {
		return nil, err
	}
	qids := make([]uint, len(stored))
	for i, ans := range stored {
		qids[i] = ans.QuestionID
	}
	questions, err := s.QuestionRepo.FindByIDs(principal.CompanyID, qids)
	if err != nil {
		return nil, err
	}
	qMap := make(map[uint]model.Question, len(questions))
	for _, q := range questions {
		qMap[q.ID] = q
	}

	reviews := make([]AnswerReview, 0, len(stored))
	for _, ans := range stored {
		q := qMap[ans.QuestionID]
		reviews = append(reviews, AnswerReview{
			Position:      ans.Position,
			QuestionID:    ans.QuestionID,
			QuestionText:  q.QuestionText,
			OptionA:       q.OptionA,
			OptionB:       q.OptionB,
			OptionC:       q.OptionC,
			OptionD:       q.OptionD,
			Selected:      ans.Selected,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     ans.IsCorrect,
		})
	}

	return &AttemptReview{
		AttemptID:      attempt.ID,
		AttemptNumber:  attempt.AttemptNumber,
		TotalQuestions: attempt.TotalQuestions,
		CorrectAnswers: attempt.CorrectAnswers,
		Percentage:     attempt.Percentage,
		Passed:         attempt.Passed,
		SubmittedAt:    attempt.CreatedAt,
		Answers:        reviews,
	}, nil
}

// ListAttempts returns the attempt history of one assignment.
func (s *SubmissionService) ListAttempts(principal *claims.Principal, assignmentID uint) ([]model.ExamAttempt, error) {
	a, err := s.AssignmentRepo.FindByID(principal.CompanyID, assignmentID)
	if err != nil {
		return nil, err
	}
	if principal.Role == claims.RoleEmployee && a.EmployeeID != principal.UserID {
		return nil, util.ErrForbidden
	}
	return s.AttemptRepo.ListByAssignment(principal.CompanyID, assignmentID)
}
