package service

import (
	"onlinetest_backend/internal/model"
	"onlinetest_backend/internal/repository"
	"onlinetest_backend/internal/util"
	"onlinetest_backend/pkg/claims"
)

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
	TopicRepo    *repository.TopicRepository
}

func NewQuestionService(questionRepo *repository.QuestionRepository, topicRepo *repository.TopicRepository) *QuestionService {
	return &QuestionService{QuestionRepo: questionRepo, TopicRepo: topicRepo}
}

type QuestionRequest struct {
	TopicID       uint   `json:"topicId" binding:"required"`
	QuestionText  string `json:"questionText" binding:"required"`
	OptionA       string `json:"optionA" binding:"required,max=500"`
	OptionB       string `json:"optionB" binding:"required,max=500"`
	OptionC       string `json:"optionC" binding:"required,max=500"`
	OptionD       string `json:"optionD" binding:"required,max=500"`
	CorrectAnswer string `json:"correctAnswer" binding:"required"`
}

func (s *QuestionService) CreateQuestion(principal *claims.Principal, req QuestionRequest) (*model.Question, error) {
	if !model.ValidOption(req.CorrectAnswer) {
		return nil, util.Invalid("correctAnswer must be one of A, B, C, D")
	}
	if _, err := s.TopicRepo.FindByID(principal.CompanyID, req.TopicID); err != nil {
		return nil, err
	}
	exists, err := s.QuestionRepo.ExistsByText(principal.CompanyID, req.QuestionText)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.Invalid("an identical question already exists")
	}

	q := &model.Question{
		CompanyID:     principal.CompanyID,
		TopicID:       req.TopicID,
		QuestionText:  req.QuestionText,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectAnswer: model.AnswerOption(req.CorrectAnswer),
		IsActive:      true,
		CreatedBy:     principal.UserID,
		CreatedByRole: string(principal.Role),
	}
	if err := s.QuestionRepo.Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) GetQuestion(companyID, id uint) (*model.Question, error) {
	return s.QuestionRepo.FindByID(companyID, id)
}

func (s *QuestionService) ListQuestions(companyID, topicID uint, search string, page, limit int) ([]model.Question, int64, error) {
	return s.QuestionRepo.List(companyID, topicID, search, page, limit)
}

// UpdateQuestion edits a question in place. Frozen exam compositions
// keep referencing the row, so edits show up in future sittings of
// exams that selected it.
func (s *QuestionService) UpdateQuestion(principal *claims.Principal, id uint, req QuestionRequest) (*model.Question, error) {
	if !model.ValidOption(req.CorrectAnswer) {
		return nil, util.Invalid("correctAnswer must be one of A, B, C, D")
	}
	q, err := s.QuestionRepo.FindByID(principal.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.TopicRepo.FindByID(principal.CompanyID, req.TopicID); err != nil {
		return nil, err
	}

	q.TopicID = req.TopicID
	q.QuestionText = req.QuestionText
	q.OptionA = req.OptionA
	q.OptionB = req.OptionB
	q.OptionC = req.OptionC
	q.OptionD = req.OptionD
	q.CorrectAnswer = model.AnswerOption(req.CorrectAnswer)
	if err := s.QuestionRepo.Update(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) DeleteQuestion(companyID, id uint) error {
	return s.QuestionRepo.SoftDelete(companyID, id)
}
