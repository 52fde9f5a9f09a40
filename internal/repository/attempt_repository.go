package repository

import (
	"errors"

	"onlinetest_backend/internal/model"
	"onlinetest_backend/internal/util"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) FindByID(companyID, id uint) (*model.ExamAttempt, error) {
	var attempt model.ExamAttempt
	err := r.DB.Where("id = ? AND company_id = ?", id, companyID).First(&attempt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *AttemptRepository) FindLastByAssignment(companyID, assignmentID uint) (*model.ExamAttempt, error) {
	var attempt model.ExamAttempt
	err := r.DB.Where("company_id = ? AND assignment_id = ?", companyID, assignmentID).
		Order("attempt_number desc").First(&attempt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *AttemptRepository) ListByAssignment(companyID, assignmentID uint) ([]model.ExamAttempt, error) {
	var attempts []model.ExamAttempt
	err := r.DB.Where("company_id = ? AND assignment_id = ?", companyID, assignmentID).
		Order("attempt_number asc").Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) FindAnswers(attemptID uint) ([]model.ExamAttemptAnswer, error) {
	var answers []model.ExamAttemptAnswer
	err := r.DB.Where("attempt_id = ?", attemptID).Order("position asc").Find(&answers).Error
	return answers, err
}

// CountLatestByPercentageRange counts, per assignment, only the most
// recent attempt whose percentage falls inside [lo, hi]. Feeds the
// employee score-distribution read.
func (r *AttemptRepository) CountLatestByPercentageRange(companyID, employeeID uint, lo, hi int) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ExamAttempt{}).
		Where("company_id = ? AND employee_id = ?", companyID, employeeID).
		Where("percentage BETWEEN ? AND ?", lo, hi).
		Where(`attempt_number = (
			SELECT MAX(a2.attempt_number) FROM exam_attempts a2
			WHERE a2.assignment_id = exam_attempts.assignment_id
		)`).
		Count(&count).Error
	return count, err
}
