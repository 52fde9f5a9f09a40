package model

// ExamQuestion is the frozen composition link between an exam and a
// question. Position is assigned once at exam creation and never
// regenerated; scoring always runs against it.
// swagger:model ExamQuestion
type ExamQuestion struct {
	ID         uint `gorm:"primaryKey;autoIncrement" json:"id"`
	ExamID     uint `gorm:"index;not null" json:"examId"`
	QuestionID uint `gorm:"not null" json:"questionId"`
	Position   int  `gorm:"not null" json:"position"`
}

func (ExamQuestion) TableName() string {
	return "exam_questions"
}
