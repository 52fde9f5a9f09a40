package repository

import (
	"errors"

	"onlinetest_backend/internal/model"
	"onlinetest_backend/internal/util"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(a *model.ExamAssignment) error {
	return r.DB.Create(a).Error
}

func (r *AssignmentRepository) FindByID(companyID, id uint) (*model.ExamAssignment, error) {
	var a model.ExamAssignment
	err := r.DB.Where("id = ? AND company_id = ?", id, companyID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssignmentRepository) Exists(companyID, examID, employeeID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ExamAssignment{}).
		Where("company_id = ? AND exam_id = ? AND employee_id = ?", companyID, examID, employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *AssignmentRepository) ListByEmployee(companyID, employeeID uint, page, limit int) ([]model.ExamAssignment, int64, error) {
	var assignments []model.ExamAssignment
	var total int64

	query := r.DB.Model(&model.ExamAssignment{}).
		Where("company_id = ? AND employee_id = ?", companyID, employeeID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&assignments).Error
	return assignments, total, err
}

func (r *AssignmentRepository) ListByExam(companyID, examID uint, page, limit int) ([]model.ExamAssignment, int64, error) {
	var assignments []model.ExamAssignment
	var total int64

	query := r.DB.Model(&model.ExamAssignment{}).
		Where("company_id = ? AND exam_id = ?", companyID, examID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&assignments).Error
	return assignments, total, err
}

func (r *AssignmentRepository) Update(a *model.ExamAssignment) error {
	return r.DB.Save(a).Error
}
