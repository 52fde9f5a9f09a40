package repository

import (
	"errors"

	"onlinetest_backend/internal/model"
	"onlinetest_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *QuestionRepository) FindByID(companyID, id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.Where("id = ? AND company_id = ?", id, companyID).First(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) List(companyID, topicID uint, search string, page, limit int) ([]model.Question, int64, error) {
	var questions []model.Question
	var total int64

	query := r.DB.Model(&model.Question{}).Where("company_id = ? AND is_active = ?", companyID, true)
	if topicID > 0 {
		query = query.Where("topic_id = ?", topicID)
	}
	if search != "" {
		query = query.Where("question_text LIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&questions).Error
	return questions, total, err
}

func (r *QuestionRepository) ExistsByText(companyID uint, text string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).
		Where("company_id = ? AND LOWER(question_text) = LOWER(?)", companyID, text).
		Count(&count).Error
	return count > 0, err
}

// FindActiveIDsByTopic returns the selectable pool for exam
// composition: active questions of one topic within the tenant.
func (r *QuestionRepository) FindActiveIDsByTopic(companyID, topicID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Question{}).
		Where("company_id = ? AND topic_id = ? AND is_active = ?", companyID, topicID, true).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *QuestionRepository) FindByIDs(companyID uint, ids []uint) ([]model.Question, error) {
	var questions []model.Question
	if len(ids) == 0 {
		return questions, nil
	}
	err := r.DB.Where("company_id = ? AND id IN ?", companyID, ids).Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) Update(q *model.Question) error {
	return r.DB.Save(q).Error
}

// SoftDelete deactivates a question instead of destroying it, so
// attempt answers keep their referential history.
func (r *QuestionRepository) SoftDelete(companyID, id uint) error {
	res := r.DB.Model(&model.Question{}).
		Where("id = ? AND company_id = ?", id, companyID).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}
