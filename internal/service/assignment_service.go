package service

import (
	"context"
	"time"

	"onlinetest_backend/internal/integration"
	"onlinetest_backend/internal/model"
	"onlinetest_backend/internal/repository"
	"onlinetest_backend/internal/util"
	"onlinetest_backend/pkg/claims"
	"onlinetest_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AssignmentService struct {
	AssignmentRepo *repository.AssignmentRepository
	AttemptRepo    *repository.AttemptRepository
	ExamService    *ExamService
	Users          integration.UserDirectory
	Now            func() time.Time
}

func NewAssignmentService(assignmentRepo *repository.AssignmentRepository, attemptRepo *repository.AttemptRepository, examService *ExamService, users integration.UserDirectory) *AssignmentService {
	return &AssignmentService{
		AssignmentRepo: assignmentRepo,
		AttemptRepo:    attemptRepo,
		ExamService:    examService,
		Users:          users,
		Now:            time.Now,
	}
}

type AssignRequest struct {
	ExamID      uint       `json:"examId" binding:"required"`
	EmployeeIDs []uint     `json:"employeeIds" binding:"required,min=1"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	MaxAttempts int        `json:"maxAttempts"`
}

type AssignResult struct {
	Assigned []uint `json:"assigned"`
	Skipped  []uint `json:"skipped"`
}

// Assign hands an exam to a batch of employees. Employees already
// holding an assignment for this exam are skipped rather than failing
// the batch, and every id is checked against the company roster so an
// admin cannot assign across tenants.
func (s *AssignmentService) Assign(ctx context.Context, principal *claims.Principal, bearerToken string, req AssignRequest) (*AssignResult, error) {
	exam, err := s.ExamService.GetExam(principal.CompanyID, req.ExamID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	if req.StartTime != nil && req.EndTime != nil && !req.EndTime.After(*req.StartTime) {
		return nil, util.Invalid("endTime must be after startTime")
	}
	if req.EndTime != nil && req.EndTime.Before(now) {
		return nil, util.Invalid("endTime is already in the past")
	}
	maxAttempts := req.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	roster, err := s.Users.LookupEmployees(ctx, principal.CompanyID, bearerToken)
	if err != nil {
		return nil, err
	}
	known := make(map[uint]bool, len(roster))
	for _, u := range roster {
		known[u.ID] = true
	}
	for _, id := range req.EmployeeIDs {
		if !known[id] {
			return nil, util.Invalid("employee %d is not in your company", id)
		}
	}

	result := &AssignResult{Assigned: []uint{}, Skipped: []uint{}}
	for _, employeeID := range req.EmployeeIDs {
		exists, err := s.AssignmentRepo.Exists(principal.CompanyID, exam.ID, employeeID)
		if err != nil {
			return nil, err
		}
		if exists {
			result.Skipped = append(result.Skipped, employeeID)
			continue
		}
		a := &model.ExamAssignment{
			CompanyID:      principal.CompanyID,
			ExamID:         exam.ID,
			EmployeeID:     employeeID,
			AssignedBy:     principal.UserID,
			AssignedByRole: string(principal.Role),
			StartTime:      req.StartTime,
			EndTime:        req.EndTime,
			MaxAttempts:    maxAttempts,
			Status:         model.StatusAssigned,
		}
		if err := s.AssignmentRepo.Create(a); err != nil {
			return nil, err
		}
		result.Assigned = append(result.Assigned, employeeID)
	}

	logger.Log.Info("exam assigned",
		zap.Uint("examId", exam.ID),
		zap.Uint("companyId", principal.CompanyID),
		zap.Int("assigned", len(result.Assigned)),
		zap.Int("skipped", len(result.Skipped)))
	return result, nil
}

// ExamSession is what an employee receives when a sitting opens:
// the delivered questions with correct answers stripped, plus the
// timing parameters the client enforces.
type ExamSession struct {
	SessionID          string         `json:"sessionId"`
	AssignmentID       uint           `json:"assignmentId"`
	ExamID             uint           `json:"examId"`
	ExamTitle          string         `json:"examTitle"`
	AttemptNumber      int            `json:"attemptNumber"`
	PerQuestionSeconds int            `json:"perQuestionSeconds"`
	ReviewMinutes      int            `json:"reviewMinutes"`
	TotalQuestions     int            `json:"totalQuestions"`
	StartedAt          time.Time      `json:"startedAt"`
	EndTime            *time.Time     `json:"endTime,omitempty"`
	Questions          []QuestionView `json:"questions"`
}

// Start opens (or re-enters) a sitting. Re-entry after a crash gets a
// fresh session id and a freshly shuffled presentation; the frozen
// composition underneath is unchanged, so grading stays stable.
func (s *AssignmentService) Start(principal *claims.Principal, assignmentID uint) (*ExamSession, error) {
	a, err := s.AssignmentRepo.FindByID(principal.CompanyID, assignmentID)
	if err != nil {
		return nil, err
	}
	if a.EmployeeID != principal.UserID {
		return nil, util.ErrForbidden
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

	exam, err := s.ExamService.GetExam(principal.CompanyID, a.ExamID)
	if err != nil {
		return nil, err
	}
	questions, err := s.ExamService.DeliverForSession(principal.CompanyID, a.ExamID)
	if err != nil {
		return nil, err
	}

	if a.Status != model.StatusInProgress {
		a.Status = model.StatusInProgress
		if err := s.AssignmentRepo.Update(a); err != nil {
			return nil, err
		}
	}

	return &ExamSession{
		SessionID:          uuid.NewString(),
		AssignmentID:       a.ID,
		ExamID:             exam.ID,
		ExamTitle:          exam.Title,
		AttemptNumber:      a.AttemptsUsed + 1,
		PerQuestionSeconds: exam.PerQuestionSeconds,
		ReviewMinutes:      exam.ReviewMinutes,
		TotalQuestions:     exam.TotalQuestions,
		StartedAt:          now,
		EndTime:            a.EndTime,
		Questions:          questions,
	}, nil
}

// AssignmentView decorates a stored assignment with everything the
// employee dashboard derives at read time.
type AssignmentView struct {
	ID              uint                   `json:"id"`
	ExamID          uint                   `json:"examId"`
	EmployeeID      uint                   `json:"employeeId"`
	ExamTitle       string                 `json:"examTitle"`
	Status          model.AssignmentStatus `json:"status"`
	StatusMessage   string                 `json:"statusMessage"`
	CanStart        bool                   `json:"canStart"`
	StartTime       *time.Time             `json:"startTime,omitempty"`
	EndTime         *time.Time             `json:"endTime,omitempty"`
	MaxAttempts     int                    `json:"maxAttempts"`
	AttemptsUsed    int                    `json:"attemptsUsed"`
	LastResult      string                 `json:"lastResult,omitempty"`
	LastPercentage  *int                   `json:"lastPercentage,omitempty"`
	LastSubmittedAt *time.Time             `json:"lastSubmittedAt,omitempty"`
}

// ListMyAssignments returns the caller's own assignments with derived
// status. EXPIRED is computed here, never written back.
func (s *AssignmentService) ListMyAssignments(principal *claims.Principal, page, limit int) ([]AssignmentView, int64, error) {
	assignments, total, err := s.AssignmentRepo.ListByEmployee(principal.CompanyID, principal.UserID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	now := s.Now()
	views := make([]AssignmentView, 0, len(assignments))
	for i := range assignments {
		a := &assignments[i]
		title := ""
		if exam, err := s.ExamService.GetExam(principal.CompanyID, a.ExamID); err == nil {
			title = exam.Title
		}
		status := a.EffectiveStatus(now)
		views = append(views, AssignmentView{
			ID:              a.ID,
			ExamID:          a.ExamID,
			EmployeeID:      a.EmployeeID,
			ExamTitle:       title,
			Status:          status,
			StatusMessage:   statusMessage(a, status, now),
			CanStart:        canStart(a, now),
			StartTime:       a.StartTime,
			EndTime:         a.EndTime,
			MaxAttempts:     a.MaxAttempts,
			AttemptsUsed:    a.AttemptsUsed,
			LastResult:      a.LastResult,
			LastPercentage:  a.LastPercentage,
			LastSubmittedAt: a.LastSubmittedAt,
		})
	}
	return views, total, nil
}

func statusMessage(a *model.ExamAssignment, status model.AssignmentStatus, now time.Time) string {
	switch status {
	case model.StatusExpired:
		return "The exam window has closed."
	case model.StatusRevoked:
		return "This assignment was revoked."
	case model.StatusCompleted:
		if a.LastResult == model.ResultPassed {
			return "You passed this exam."
		}
		return "You have used all attempts for this exam."
	case model.StatusInProgress:
		return "You have a sitting in progress. You can resume it."
	}
	if a.StartTime != nil && now.Before(*a.StartTime) {
		return "The exam window has not opened yet."
	}
	return "You can start this exam."
}

// ListByExam is the admin view of who holds an exam and how they did.
func (s *AssignmentService) ListByExam(companyID, examID uint, page, limit int) ([]AssignmentView, int64, error) {
	if _, err := s.ExamService.GetExam(companyID, examID); err != nil {
		return nil, 0, err
	}
	assignments, total, err := s.AssignmentRepo.ListByExam(companyID, examID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	now := s.Now()
	views := make([]AssignmentView, 0, len(assignments))
	for i := range assignments {
		a := &assignments[i]
		status := a.EffectiveStatus(now)
		views = append(views, AssignmentView{
			ID:              a.ID,
			ExamID:          a.ExamID,
			EmployeeID:      a.EmployeeID,
			Status:          status,
			StatusMessage:   statusMessage(a, status, now),
			CanStart:        canStart(a, now),
			StartTime:       a.StartTime,
			EndTime:         a.EndTime,
			MaxAttempts:     a.MaxAttempts,
			AttemptsUsed:    a.AttemptsUsed,
			LastResult:      a.LastResult,
			LastPercentage:  a.LastPercentage,
			LastSubmittedAt: a.LastSubmittedAt,
		})
	}
	return views, total, nil
}

// Revoke withdraws a pending or in-progress assignment. Completed
// assignments keep their record and cannot be revoked.
func (s *AssignmentService) Revoke(companyID, assignmentID uint) error {
	a, err := s.AssignmentRepo.FindByID(companyID, assignmentID)
	if err != nil {
		return err
	}
	if a.Status == model.StatusCompleted {
		return util.Invalid("completed assignments cannot be revoked")
	}
	a.Status = model.StatusRevoked
	return s.AssignmentRepo.Update(a)
}
