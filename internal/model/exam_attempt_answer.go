package model

// ExamAttemptAnswer records one delivered question of one attempt,
// including unanswered ones (Selected nil). Immutable once written;
// forms the audit trail for review.
// swagger:model ExamAttemptAnswer
type ExamAttemptAnswer struct {
	ID         uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	AttemptID  uint          `gorm:"index;not null" json:"attemptId"`
	QuestionID uint          `gorm:"not null" json:"questionId"`
	Selected   *AnswerOption `gorm:"size:1" json:"selected"`
	IsCorrect  bool          `gorm:"not null" json:"isCorrect"`
	Position   int           `gorm:"not null" json:"position"`
}

func (ExamAttemptAnswer) TableName() string {
	return "exam_attempt_answers"
}
