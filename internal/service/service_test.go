package service

import (
	"fmt"
	"testing"

	"onlinetest_backend/internal/model"
	"onlinetest_backend/internal/repository"
	"onlinetest_backend/pkg/claims"
	"onlinetest_backend/pkg/database"
	"onlinetest_backend/pkg/randutil"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

type fixture struct {
	db         *gorm.DB
	topics     *repository.TopicRepository
	questions  *repository.QuestionRepository
	exams      *repository.ExamRepository
	assignment *repository.AssignmentRepository
	attempts   *repository.AttemptRepository
}

func newFixture(t *testing.T) *fixture {
	db := newTestDB(t)
	return &fixture{
		db:         db,
		topics:     repository.NewTopicRepository(db),
		questions:  repository.NewQuestionRepository(db),
		exams:      repository.NewExamRepository(db),
		assignment: repository.NewAssignmentRepository(db),
		attempts:   repository.NewAttemptRepository(db),
	}
}

func (f *fixture) examService(seed int64) *ExamService {
	return NewExamService(f.exams, f.questions, f.topics, randutil.NewSeeded(seed), f.db)
}

func adminPrincipal(companyID uint) *claims.Principal {
	return &claims.Principal{UserID: 1, CompanyID: companyID, Role: claims.RoleAdmin}
}

func employeePrincipal(companyID, userID uint) *claims.Principal {
	return &claims.Principal{UserID: userID, CompanyID: companyID, Role: claims.RoleEmployee}
}

func (f *fixture) seedTopic(t *testing.T, companyID uint, name string) *model.Topic {
	t.Helper()
	topic := &model.Topic{CompanyID: companyID, Name: name, CreatedBy: 1}
	require.NoError(t, f.topics.Create(topic))
	return topic
}

func (f *fixture) seedQuestions(t *testing.T, companyID, topicID uint, n int, correct model.AnswerOption) []uint {
	t.Helper()
	ids := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		q := &model.Question{
			CompanyID:     companyID,
			TopicID:       topicID,
			QuestionText:  fmt.Sprintf("topic %d question %d", topicID, i),
			OptionA:       "a",
			OptionB:       "b",
			OptionC:       "c",
			OptionD:       "d",
			CorrectAnswer: correct,
			IsActive:      true,
			CreatedBy:     1,
		}
		require.NoError(t, f.questions.Create(q))
		ids = append(ids, q.ID)
	}
	return ids
}
