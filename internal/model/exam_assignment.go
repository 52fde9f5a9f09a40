package model

import "time"

type AssignmentStatus string

const (
	StatusAssigned   AssignmentStatus = "ASSIGNED"
	StatusInProgress AssignmentStatus = "IN_PROGRESS"
	StatusCompleted  AssignmentStatus = "COMPLETED"
	StatusRevoked    AssignmentStatus = "REVOKED"

	// StatusExpired is derived at read time when the window has closed;
	// it is never persisted.
	StatusExpired AssignmentStatus = "EXPIRED"
)

const (
	ResultPassed = "PASSED"
	ResultFailed = "FAILED"
)

// swagger:model ExamAssignment
type ExamAssignment struct {
	BaseModel

	CompanyID      uint             `gorm:"index;not null;uniqueIndex:uniq_assignment" json:"companyId"`
	ExamID         uint             `gorm:"not null;uniqueIndex:uniq_assignment" json:"examId"`
	EmployeeID     uint             `gorm:"index;not null;uniqueIndex:uniq_assignment" json:"employeeId"`
	AssignedBy     uint             `gorm:"not null" json:"assignedBy"`
	AssignedByRole string           `gorm:"size:50" json:"assignedByRole"`
	StartTime      *time.Time       `json:"startTime,omitempty"`
	EndTime        *time.Time       `json:"endTime,omitempty"`
	MaxAttempts    int              `gorm:"not null;default:1" json:"maxAttempts"`
	AttemptsUsed   int              `gorm:"not null;default:0" json:"attemptsUsed"`
	Status         AssignmentStatus `gorm:"size:30;not null;default:'ASSIGNED'" json:"status"`
	LastResult     string           `gorm:"size:15" json:"lastResult,omitempty"`
	LastPercentage *int             `json:"lastPercentage,omitempty"`
	LastSubmittedAt *time.Time      `json:"lastSubmittedAt,omitempty"`
}

func (ExamAssignment) TableName() string {
	return "exam_assignments"
}

// EffectiveStatus derives the read-time status: a non-completed
// assignment whose window has closed reads as EXPIRED.
func (a *ExamAssignment) EffectiveStatus(now time.Time) AssignmentStatus {
	if a.Status == StatusCompleted {
		return StatusCompleted
	}
	if a.EndTime != nil && now.After(*a.EndTime) {
		return StatusExpired
	}
	return a.Status
}
