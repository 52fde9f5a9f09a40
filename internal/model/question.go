package model

// AnswerOption is one of the four fixed choices of a question.
type AnswerOption string

const (
	OptionA AnswerOption = "A"
	OptionB AnswerOption = "B"
	OptionC AnswerOption = "C"
	OptionD AnswerOption = "D"
)

// ValidOption reports whether s names one of the four options.
func ValidOption(s string) bool {
	switch AnswerOption(s) {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	}
	return false
}

// swagger:model Question
type Question struct {
	BaseModel

	CompanyID     uint         `gorm:"index;not null" json:"companyId"`
	TopicID       uint         `gorm:"index;not null" json:"topicId"`
	QuestionText  string       `gorm:"type:text;not null" json:"questionText"`
	OptionA       string       `gorm:"size:500;not null" json:"optionA"`
	OptionB       string       `gorm:"size:500;not null" json:"optionB"`
	OptionC       string       `gorm:"size:500;not null" json:"optionC"`
	OptionD       string       `gorm:"size:500;not null" json:"optionD"`
	CorrectAnswer AnswerOption `gorm:"size:1;not null" json:"correctAnswer"`
	IsActive      bool         `gorm:"default:true" json:"isActive"`
	CreatedBy     uint         `gorm:"not null" json:"createdBy"`
	CreatedByRole string       `gorm:"size:50" json:"createdByRole"`
}

func (Question) TableName() string {
	return "questions"
}
