package model

// swagger:model Exam
type Exam struct {
	BaseModel

	CompanyID          uint   `gorm:"index;not null" json:"companyId"`
	Title              string `gorm:"size:255;not null" json:"title"`
	Description        string `gorm:"type:text" json:"description"`
	TotalQuestions     int    `gorm:"not null" json:"totalQuestions"`
	PassingPercentage  int    `gorm:"default:0" json:"passingPercentage"`
	PerQuestionSeconds int    `gorm:"not null" json:"perQuestionSeconds"`
	ReviewMinutes      int    `gorm:"not null" json:"reviewMinutes"`
	CreatedBy          uint   `gorm:"not null" json:"createdBy"`
	CreatedByRole      string `gorm:"size:50" json:"createdByRole"`
	UpdatedBy          uint   `json:"updatedBy,omitempty"`
	UpdatedByRole      string `gorm:"size:50" json:"updatedByRole,omitempty"`
}

func (Exam) TableName() string {
	return "exams"
}
