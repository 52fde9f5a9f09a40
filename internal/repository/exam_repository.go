package repository

import (
	"errors"

	"onlinetest_backend/internal/model"
	"onlinetest_backend/internal/util"

	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

func (r *ExamRepository) FindByID(companyID, id uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.Where("id = ? AND company_id = ?", id, companyID).First(&exam).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *ExamRepository) Search(companyID uint, search string, page, limit int) ([]model.Exam, int64, error) {
	var exams []model.Exam
	var total int64

	query := r.DB.Model(&model.Exam{}).Where("company_id = ?", companyID)
	if search != "" {
		query = query.Where("LOWER(title) LIKE LOWER(?)", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&exams).Error
	return exams, total, err
}

func (r *ExamRepository) Update(exam *model.Exam) error {
	return r.DB.Save(exam).Error
}

// Delete removes the exam and its frozen composition rows together.
func (r *ExamRepository) Delete(companyID, id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND company_id = ?", id, companyID).Delete(&model.Exam{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrNotFound
		}
		return tx.Where("exam_id = ?", id).Delete(&model.ExamQuestion{}).Error
	})
}

// FindExamQuestions reads the frozen composition in storage-position
// order. Callers must have tenant-checked the exam first; the link
// table itself carries no company column.
func (r *ExamRepository) FindExamQuestions(examID uint) ([]model.ExamQuestion, error) {
	var eqs []model.ExamQuestion
	err := r.DB.Where("exam_id = ?", examID).Order("position asc").Find(&eqs).Error
	return eqs, err
}
