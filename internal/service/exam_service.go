package service

import (
	"onlinetest_backend/internal/model"
	"onlinetest_backend/internal/repository"
	"onlinetest_backend/internal/util"
	"onlinetest_backend/pkg/claims"
	"onlinetest_backend/pkg/randutil"

	"gorm.io/gorm"
)

type ExamService struct {
	ExamRepo     *repository.ExamRepository
	QuestionRepo *repository.QuestionRepository
	TopicRepo    *repository.TopicRepository
	Rand         randutil.Source
	DB           *gorm.DB
}

func NewExamService(examRepo *repository.ExamRepository, questionRepo *repository.QuestionRepository, topicRepo *repository.TopicRepository, rnd randutil.Source, db *gorm.DB) *ExamService {
	return &ExamService{
		ExamRepo:     examRepo,
		QuestionRepo: questionRepo,
		TopicRepo:    topicRepo,
		Rand:         rnd,
		DB:           db,
	}
}

type TopicSelection struct {
	TopicID        uint `json:"topicId" binding:"required"`
	QuestionsCount int  `json:"questionsCount" binding:"required,min=1"`
}

type ExamCreateRequest struct {
	Title              string           `json:"title" binding:"required"`
	Description        string           `json:"description"`
	PassingPercentage  int              `json:"passingPercentage" binding:"min=0,max=100"`
	PerQuestionSeconds int              `json:"perQuestionSeconds" binding:"required,min=1"`
	ReviewMinutes      int              `json:"reviewMinutes" binding:"min=0"`
	Topics             []TopicSelection `json:"topics" binding:"required,min=1,dive"`
}

// CreateExam composes an exam from the requested topics. The whole
// composition is all-or-nothing: if any topic cannot supply its count
// of active questions the error names every short topic and nothing is
// persisted. Selection is uniform without replacement per topic, then
// the combined list is reshuffled so position does not correlate with
// topic, and positions 1..N are frozen.
func (s *ExamService) CreateExam(principal *claims.Principal, req ExamCreateRequest) (*model.Exam, error) {
	type topicPool struct {
		selection TopicSelection
		ids       []uint
	}

	pools := make([]topicPool, 0, len(req.Topics))
	var shortfalls []util.TopicShortfall
	totalQuestions := 0

	for _, sel := range req.Topics {
		topic, err := s.TopicRepo.FindByID(principal.CompanyID, sel.TopicID)
		if err != nil {
			return nil, err
		}
		ids, err := s.QuestionRepo.FindActiveIDsByTopic(principal.CompanyID, sel.TopicID)
		if err != nil {
			return nil, err
		}
		if len(ids) < sel.QuestionsCount {
			shortfalls = append(shortfalls, util.TopicShortfall{
				TopicID:   topic.ID,
				Name:      topic.Name,
				Available: len(ids),
				Requested: sel.QuestionsCount,
			})
			continue
		}
		pools = append(pools, topicPool{selection: sel, ids: ids})
		totalQuestions += sel.QuestionsCount
	}

	if len(shortfalls) > 0 {
		return nil, &util.InsufficientQuestionsError{Topics: shortfalls}
	}

	chosen := make([]uint, 0, totalQuestions)
	for _, pool := range pools {
		s.Rand.Shuffle(len(pool.ids), func(i, j int) {
			pool.ids[i], pool.ids[j] = pool.ids[j], pool.ids[i]
		})
		chosen = append(chosen, pool.ids[:pool.selection.QuestionsCount]...)
	}

	// second shuffle across topics
	s.Rand.Shuffle(len(chosen), func(i, j int) {
		chosen[i], chosen[j] = chosen[j], chosen[i]
	})

	exam := &model.Exam{
		CompanyID:          principal.CompanyID,
		Title:              req.Title,
		Description:        req.Description,
		TotalQuestions:     totalQuestions,
		PassingPercentage:  req.PassingPercentage,
		PerQuestionSeconds: req.PerQuestionSeconds,
		ReviewMinutes:      req.ReviewMinutes,
		CreatedBy:          principal.UserID,
		CreatedByRole:      string(principal.Role),
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(exam).Error; err != nil {
			return err
		}
		eqs := make([]model.ExamQuestion, len(chosen))
		for i, qid := range chosen {
			eqs[i] = model.ExamQuestion{
				ExamID:     exam.ID,
				QuestionID: qid,
				Position:   i + 1,
			}
		}
		return tx.Create(&eqs).Error
	})
	if err != nil {
		return nil, err
	}
	return exam, nil
}

// QuestionView is a delivered question with the correct answer
// stripped.
type QuestionView struct {
	ID           uint   `json:"id"`
	TopicID      uint   `json:"topicId"`
	QuestionText string `json:"questionText"`
	OptionA      string `json:"optionA"`
	OptionB      string `json:"optionB"`
	OptionC      string `json:"optionC"`
	OptionD      string `json:"optionD"`
}

// DeliverForSession re-reads the frozen composition (never re-selects)
// and applies a fresh presentation shuffle, so two sessions of the same
// exam show different on-screen order while grading against the same
// frozen positions.
func (s *ExamService) DeliverForSession(companyID, examID uint) ([]QuestionView, error) {
	exam, err := s.ExamRepo.FindByID(companyID, examID)
	if err != nil {
		return nil, err
	}

	eqs, err := s.ExamRepo.FindExamQuestions(exam.ID)
	if err != nil {
		return nil, err
	}

	qids := make([]uint, len(eqs))
	for i, eq := range eqs {
		qids[i] = eq.QuestionID
	}
	questions, err := s.QuestionRepo.FindByIDs(companyID, qids)
	if err != nil {
		return nil, err
	}
	qMap := make(map[uint]model.Question, len(questions))
	for _, q := range questions {
		qMap[q.ID] = q
	}

	views := make([]QuestionView, 0, len(eqs))
	for _, eq := range eqs {
		q, ok := qMap[eq.QuestionID]
		if !ok {
			continue
		}
		views = append(views, QuestionView{
			ID:           q.ID,
			TopicID:      q.TopicID,
			QuestionText: q.QuestionText,
			OptionA:      q.OptionA,
			OptionB:      q.OptionB,
			OptionC:      q.OptionC,
			OptionD:      q.OptionD,
		})
	}

	s.Rand.Shuffle(len(views), func(i, j int) {
		views[i], views[j] = views[j], views[i]
	})
	return views, nil
}

func (s *ExamService) GetExam(companyID, examID uint) (*model.Exam, error) {
	return s.ExamRepo.FindByID(companyID, examID)
}

func (s *ExamService) SearchExams(companyID uint, search string, page, limit int) ([]model.Exam, int64, error) {
	return s.ExamRepo.Search(companyID, search, page, limit)
}

type ExamUpdateRequest struct {
	Title              string `json:"title" binding:"required"`
	Description        string `json:"description"`
	PassingPercentage  int    `json:"passingPercentage" binding:"min=0,max=100"`
	PerQuestionSeconds int    `json:"perQuestionSeconds" binding:"required,min=1"`
	ReviewMinutes      int    `json:"reviewMinutes" binding:"min=0"`
}

// UpdateExam edits scalar fields only; the frozen composition is never
// regenerated.
func (s *ExamService) UpdateExam(principal *claims.Principal, examID uint, req ExamUpdateRequest) (*model.Exam, error) {
	exam, err := s.ExamRepo.FindByID(principal.CompanyID, examID)
	if err != nil {
		return nil, err
	}

	exam.Title = req.Title
	exam.Description = req.Description
	exam.PassingPercentage = req.PassingPercentage
	exam.PerQuestionSeconds = req.PerQuestionSeconds
	exam.ReviewMinutes = req.ReviewMinutes
	exam.UpdatedBy = principal.UserID
	exam.UpdatedByRole = string(principal.Role)

	if err := s.ExamRepo.Update(exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *ExamService) DeleteExam(companyID, examID uint) error {
	return s.ExamRepo.Delete(companyID, examID)
}

// ExamTopicSummary groups a composed exam's questions by topic for
// admin display.
type ExamTopicSummary struct {
	TopicID   uint   `json:"topicId"`
	TopicName string `json:"topicName"`
	Count     int    `json:"count"`
}

func (s *ExamService) DeriveSelectedTopics(companyID, examID uint) ([]ExamTopicSummary, error) {
	eqs, err := s.ExamRepo.FindExamQuestions(examID)
	if err != nil {
		return nil, err
	}
	qids := make([]uint, len(eqs))
	for i, eq := range eqs {
		qids[i] = eq.QuestionID
	}
	questions, err := s.QuestionRepo.FindByIDs(companyID, qids)
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int)
	order := make([]uint, 0)
	for _, q := range questions {
		if _, seen := counts[q.TopicID]; !seen {
			order = append(order, q.TopicID)
		}
		counts[q.TopicID]++
	}

	summaries := make([]ExamTopicSummary, 0, len(order))
	for _, topicID := range order {
		name := "Unknown"
		if topic, err := s.TopicRepo.FindByID(companyID, topicID); err == nil {
			name = topic.Name
		}
		summaries = append(summaries, ExamTopicSummary{TopicID: topicID, TopicName: name, Count: counts[topicID]})
	}
	return summaries, nil
}
