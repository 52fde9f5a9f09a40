package model

// ExamAttempt is one completed scoring pass over an assignment's frozen
// question set. Rows are append-only; AttemptNumber starts at 1.
// swagger:model ExamAttempt
type ExamAttempt struct {
	BaseModel

	CompanyID      uint   `gorm:"index;not null" json:"companyId"`
	ExamID         uint   `gorm:"index;not null" json:"examId"`
	AssignmentID   uint   `gorm:"index;not null" json:"assignmentId"`
	EmployeeID     uint   `gorm:"index;not null" json:"employeeId"`
	AttemptNumber  int    `gorm:"not null" json:"attemptNumber"`
	TotalQuestions int    `gorm:"not null" json:"totalQuestions"`
	CorrectAnswers int    `gorm:"not null" json:"correctAnswers"`
	Percentage     int    `gorm:"not null" json:"percentage"`
	Passed         bool   `gorm:"not null" json:"passed"`
	Status         string `gorm:"size:30;not null" json:"status"`
}

func (ExamAttempt) TableName() string {
	return "exam_attempts"
}
