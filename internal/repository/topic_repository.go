package repository

import (
	"errors"

	"onlinetest_backend/internal/model"
	"onlinetest_backend/internal/util"

	"gorm.io/gorm"
)

type TopicRepository struct {
	DB *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{DB: db}
}

func (r *TopicRepository) Create(topic *model.Topic) error {
	return r.DB.Create(topic).Error
}

// FindByID scopes the primary-key lookup to the tenant; a topic owned
// by another company is indistinguishable from a missing one.
func (r *TopicRepository) FindByID(companyID, id uint) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.Where("id = ? AND company_id = ?", id, companyID).First(&topic).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *TopicRepository) List(companyID uint, page, limit int) ([]model.Topic, int64, error) {
	var topics []model.Topic
	var total int64
	query := r.DB.Model(&model.Topic{}).Where("company_id = ?", companyID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&topics).Error
	return topics, total, err
}

func (r *TopicRepository) ExistsByName(companyID uint, name string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Topic{}).
		Where("company_id = ? AND LOWER(name) = LOWER(?)", companyID, name).
		Count(&count).Error
	return count > 0, err
}

func (r *TopicRepository) Update(topic *model.Topic) error {
	return r.DB.Save(topic).Error
}

func (r *TopicRepository) Delete(companyID, id uint) error {
	res := r.DB.Where("id = ? AND company_id = ?", id, companyID).Delete(&model.Topic{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}
