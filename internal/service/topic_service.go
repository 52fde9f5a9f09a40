package service

import (
	"onlinetest_backend/internal/model"
	"onlinetest_backend/internal/repository"
	"onlinetest_backend/internal/util"
	"onlinetest_backend/pkg/claims"
)

type TopicService struct {
	TopicRepo *repository.TopicRepository
}

func NewTopicService(topicRepo *repository.TopicRepository) *TopicService {
	return &TopicService{TopicRepo: topicRepo}
}

type TopicRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
}

func (s *TopicService) CreateTopic(principal *claims.Principal, req TopicRequest) (*model.Topic, error) {
	exists, err := s.TopicRepo.ExistsByName(principal.CompanyID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.Invalid("a topic named %q already exists", req.Name)
	}

	topic := &model.Topic{
		CompanyID:     principal.CompanyID,
		Name:          req.Name,
		Description:   req.Description,
		CreatedBy:     principal.UserID,
		CreatedByRole: string(principal.Role),
	}
	if err := s.TopicRepo.Create(topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *TopicService) GetTopic(companyID, id uint) (*model.Topic, error) {
	return s.TopicRepo.FindByID(companyID, id)
}

func (s *TopicService) ListTopics(companyID uint, page, limit int) ([]model.Topic, int64, error) {
	return s.TopicRepo.List(companyID, page, limit)
}

func (s *TopicService) UpdateTopic(companyID, id uint, req TopicRequest) (*model.Topic, error) {
	topic, err := s.TopicRepo.FindByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if topic.Name != req.Name {
		exists, err := s.TopicRepo.ExistsByName(companyID, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, util.Invalid("a topic named %q already exists", req.Name)
		}
	}
	topic.Name = req.Name
	topic.Description = req.Description
	if err := s.TopicRepo.Update(topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *TopicService) DeleteTopic(companyID, id uint) error {
	return s.TopicRepo.Delete(companyID, id)
}
