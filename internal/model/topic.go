package model

// swagger:model Topic
type Topic struct {
	BaseModel

	CompanyID     uint   `gorm:"index;not null" json:"companyId"`
	Name          string `gorm:"size:255;not null" json:"name"`
	Description   string `gorm:"type:text" json:"description"`
	CreatedBy     uint   `gorm:"not null" json:"createdBy"`
	CreatedByRole string `gorm:"size:50" json:"createdByRole"`
}

func (Topic) TableName() string {
	return "topics"
}
