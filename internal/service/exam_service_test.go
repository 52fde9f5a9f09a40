package service

import (
	"testing"

	"onlinetest_backend/internal/model"
	"onlinetest_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateExamComposesFrozenPositions(t *testing.T) {
	f := newFixture(t)
	svc := f.examService(42)

	goTopic := f.seedTopic(t, 1, "Go")
	sqlTopic := f.seedTopic(t, 1, "SQL")
	goIDs := f.seedQuestions(t, 1, goTopic.ID, 10, model.OptionA)
	sqlIDs := f.seedQuestions(t, 1, sqlTopic.ID, 5, model.OptionB)

	exam, err := svc.CreateExam(adminPrincipal(1), ExamCreateRequest{
		Title:              "Backend basics",
		PassingPercentage:  60,
		PerQuestionSeconds: 30,
		ReviewMinutes:      15,
		Topics: []TopicSelection{
			{TopicID: goTopic.ID, QuestionsCount: 4},
			{TopicID: sqlTopic.ID, QuestionsCount: 3},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 7, exam.TotalQuestions)

	eqs, err := f.exams.FindExamQuestions(exam.ID)
	require.NoError(t, err)
	require.Len(t, eqs, 7)

	pool := make(map[uint]bool)
	for _, id := range goIDs {
		pool[id] = true
	}
	for _, id := range sqlIDs {
		pool[id] = true
	}
	seen := make(map[uint]bool)
	for i, eq := range eqs {
		assert.Equal(t, i+1, eq.Position)
		assert.True(t, pool[eq.QuestionID], "selected question must come from a requested topic")
		assert.False(t, seen[eq.QuestionID], "no question selected twice")
		seen[eq.QuestionID] = true
	}
}

func TestCreateExamReportsEveryShortTopic(t *testing.T) {
	f := newFixture(t)
	svc := f.examService(1)

	goTopic := f.seedTopic(t, 1, "Go")
	sqlTopic := f.seedTopic(t, 1, "SQL")
	netTopic := f.seedTopic(t, 1, "Networking")
	f.seedQuestions(t, 1, goTopic.ID, 2, model.OptionA)
	f.seedQuestions(t, 1, sqlTopic.ID, 5, model.OptionA)

	_, err := svc.CreateExam(adminPrincipal(1), ExamCreateRequest{
		Title:              "Too ambitious",
		PerQuestionSeconds: 30,
		Topics: []TopicSelection{
			{TopicID: goTopic.ID, QuestionsCount: 5},
			{TopicID: sqlTopic.ID, QuestionsCount: 3},
			{TopicID: netTopic.ID, QuestionsCount: 1},
		},
	})

	var insufficient *util.InsufficientQuestionsError
	require.ErrorAs(t, err, &insufficient)
	require.Len(t, insufficient.Topics, 2)
	assert.Equal(t, "Go", insufficient.Topics[0].Name)
	assert.Equal(t, 2, insufficient.Topics[0].Available)
	assert.Equal(t, 5, insufficient.Topics[0].Requested)
	assert.Equal(t, "Networking", insufficient.Topics[1].Name)

	// nothing persisted
	exams, total, listErr := svc.SearchExams(1, "", 1, 10)
	require.NoError(t, listErr)
	assert.Zero(t, total)
	assert.Empty(t, exams)
}

func TestCreateExamIgnoresInactiveQuestions(t *testing.T) {
	f := newFixture(t)
	svc := f.examService(7)

	topic := f.seedTopic(t, 1, "Go")
	ids := f.seedQuestions(t, 1, topic.ID, 3, model.OptionA)
	require.NoError(t, f.questions.SoftDelete(1, ids[0]))

	_, err := svc.CreateExam(adminPrincipal(1), ExamCreateRequest{
		Title:              "Go quiz",
		PerQuestionSeconds: 30,
		Topics:             []TopicSelection{{TopicID: topic.ID, QuestionsCount: 3}},
	})
	var insufficient *util.InsufficientQuestionsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 2, insufficient.Topics[0].Available)
}

func TestCreateExamCrossTenantTopicIsNotFound(t *testing.T) {
	f := newFixture(t)
	svc := f.examService(1)

	foreign := f.seedTopic(t, 2, "Theirs")
	_, err := svc.CreateExam(adminPrincipal(1), ExamCreateRequest{
		Title:              "Stolen",
		PerQuestionSeconds: 30,
		Topics:             []TopicSelection{{TopicID: foreign.ID, QuestionsCount: 1}},
	})
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestDeliverForSessionStripsCorrectAnswer(t *testing.T) {
	f := newFixture(t)
	svc := f.examService(3)

	topic := f.seedTopic(t, 1, "Go")
	f.seedQuestions(t, 1, topic.ID, 6, model.OptionC)

	exam, err := svc.CreateExam(adminPrincipal(1), ExamCreateRequest{
		Title:              "Go quiz",
		PerQuestionSeconds: 20,
		Topics:             []TopicSelection{{TopicID: topic.ID, QuestionsCount: 6}},
	})
	require.NoError(t, err)

	views, err := svc.DeliverForSession(1, exam.ID)
	require.NoError(t, err)
	require.Len(t, views, 6)

	eqs, err := f.exams.FindExamQuestions(exam.ID)
	require.NoError(t, err)
	frozen := make(map[uint]bool, len(eqs))
	for _, eq := range eqs {
		frozen[eq.QuestionID] = true
	}
	for _, v := range views {
		assert.True(t, frozen[v.ID], "delivery must re-read the frozen composition")
		assert.NotEmpty(t, v.QuestionText)
	}
}

func TestDeliverForSessionReshufflesButGradesFrozen(t *testing.T) {
	f := newFixture(t)
	asvc := f.assignmentService(rosterOf(10), 11)
	svc := asvc.ExamService

	topic := f.seedTopic(t, 1, "Go")
	f.seedQuestions(t, 1, topic.ID, 12, model.OptionA)
	exam, err := svc.CreateExam(adminPrincipal(1), ExamCreateRequest{
		Title:              "Go quiz",
		PassingPercentage:  60,
		PerQuestionSeconds: 20,
		Topics:             []TopicSelection{{TopicID: topic.ID, QuestionsCount: 12}},
	})
	require.NoError(t, err)

	frozen, err := f.exams.FindExamQuestions(exam.ID)
	require.NoError(t, err)

	order := func(views []QuestionView) []uint {
		ids := make([]uint, len(views))
		for i, v := range views {
			ids[i] = v.ID
		}
		return ids
	}

	first, err := svc.DeliverForSession(1, exam.ID)
	require.NoError(t, err)

	differs := false
	for i := 0; i < 10 && !differs; i++ {
		next, err := svc.DeliverForSession(1, exam.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, order(first), order(next))
		if !assert.ObjectsAreEqual(order(first), order(next)) {
			differs = true
		}
	}
	assert.True(t, differs, "repeated deliveries should not share one presentation order")

	// delivery never touches the stored grading positions
	after, err := f.exams.FindExamQuestions(exam.ID)
	require.NoError(t, err)
	assert.Equal(t, frozen, after)

	// a submission keyed by the shuffled delivery still grades against
	// the frozen positions
	a := assignOne(t, f, asvc, exam.ID, 10)
	answers := make([]SubmittedAnswer, len(first))
	for i, v := range first {
		answers[i] = SubmittedAnswer{QuestionID: v.ID, Selected: "A"}
	}
	result, err := f.submissionService().Submit(employeePrincipal(1, 10), submitAll(exam.ID, a.ID, answers))
	require.NoError(t, err)
	assert.Equal(t, 100, result.Percentage)

	positions := make(map[uint]int, len(frozen))
	for _, eq := range frozen {
		positions[eq.QuestionID] = eq.Position
	}
	stored, err := f.attempts.FindAnswers(result.AttemptID)
	require.NoError(t, err)
	require.Len(t, stored, len(frozen))
	for _, ans := range stored {
		assert.Equal(t, positions[ans.QuestionID], ans.Position)
	}
}

func TestDeliverForSessionCrossTenant(t *testing.T) {
	f := newFixture(t)
	svc := f.examService(3)

	topic := f.seedTopic(t, 1, "Go")
	f.seedQuestions(t, 1, topic.ID, 2, model.OptionA)
	exam, err := svc.CreateExam(adminPrincipal(1), ExamCreateRequest{
		Title:              "Go quiz",
		PerQuestionSeconds: 20,
		Topics:             []TopicSelection{{TopicID: topic.ID, QuestionsCount: 2}},
	})
	require.NoError(t, err)

	_, err = svc.DeliverForSession(2, exam.ID)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestUpdateExamKeepsComposition(t *testing.T) {
	f := newFixture(t)
	svc := f.examService(9)

	topic := f.seedTopic(t, 1, "Go")
	f.seedQuestions(t, 1, topic.ID, 4, model.OptionA)
	exam, err := svc.CreateExam(adminPrincipal(1), ExamCreateRequest{
		Title:              "Before",
		PerQuestionSeconds: 30,
		Topics:             []TopicSelection{{TopicID: topic.ID, QuestionsCount: 4}},
	})
	require.NoError(t, err)

	before, err := f.exams.FindExamQuestions(exam.ID)
	require.NoError(t, err)

	updated, err := svc.UpdateExam(adminPrincipal(1), exam.ID, ExamUpdateRequest{
		Title:              "After",
		PassingPercentage:  80,
		PerQuestionSeconds: 45,
		ReviewMinutes:      10,
	})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Title)
	assert.Equal(t, 4, updated.TotalQuestions)

	after, err := f.exams.FindExamQuestions(exam.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestDeleteExamRemovesComposition(t *testing.T) {
	f := newFixture(t)
	svc := f.examService(5)

	topic := f.seedTopic(t, 1, "Go")
	f.seedQuestions(t, 1, topic.ID, 3, model.OptionA)
	exam, err := svc.CreateExam(adminPrincipal(1), ExamCreateRequest{
		Title:              "Doomed",
		PerQuestionSeconds: 30,
		Topics:             []TopicSelection{{TopicID: topic.ID, QuestionsCount: 3}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteExam(1, exam.ID))

	_, err = svc.GetExam(1, exam.ID)
	assert.ErrorIs(t, err, util.ErrNotFound)
	eqs, err := f.exams.FindExamQuestions(exam.ID)
	require.NoError(t, err)
	assert.Empty(t, eqs)
}
