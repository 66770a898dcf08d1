package questionnaires

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"Backend-Toolbox/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is an in-memory Store used by service tests. GetQuestions honors
// the store contract: sequence order with insertion-order ties.
type memStore struct {
	records   map[primitive.ObjectID]*models.Questionnaire
	questions []models.Question
	options   map[primitive.ObjectID][]models.Option

	failQuestions bool
}

func newMemStore() *memStore {
	return &memStore{
		records: make(map[primitive.ObjectID]*models.Questionnaire),
		options: make(map[primitive.ObjectID][]models.Option),
	}
}

func (m *memStore) GetQuestionnaire(_ context.Context, id primitive.ObjectID) (*models.Questionnaire, error) {
	q, ok := m.records[id]
	if !ok {
		return nil, ErrQuestionnaireNotFound
	}
	copied := *q
	return &copied, nil
}

func (m *memStore) GetQuestions(_ context.Context, questionnaireID primitive.ObjectID) ([]models.Question, error) {
	if m.failQuestions {
		return nil, errors.New("storage unavailable")
	}
	var out []models.Question
	for _, q := range m.questions {
		if q.QuestionnaireID == questionnaireID {
			out = append(out, q)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out, nil
}

func (m *memStore) GetOptions(_ context.Context, questionID primitive.ObjectID) ([]models.Option, error) {
	return m.options[questionID], nil
}

func (m *memStore) InsertQuestionnaire(_ context.Context, q *models.Questionnaire, questions []models.Question, opts []models.Option) error {
	m.records[q.ID] = q
	m.questions = append(m.questions, questions...)
	for _, opt := range opts {
		m.options[opt.QuestionID] = append(m.options[opt.QuestionID], opt)
	}
	return nil
}

func (m *memStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) error {
	q, ok := m.records[id]
	if !ok {
		return ErrQuestionnaireNotFound
	}
	q.Status = status
	return nil
}

func newTestService(store Store, now time.Time) *Service {
	svc := NewService(store)
	svc.now = func() time.Time { return now }
	return svc
}

func seedQuestionnaire(store *memStore, status string, expiresAt *time.Time) *models.Questionnaire {
	q := &models.Questionnaire{
		ID:     primitive.NewObjectID(),
		Title:  "Team health check",
		Status: status,
	}
	q.ExpiresAt = expiresAt
	store.records[q.ID] = q
	return q
}

func TestGetQuestionnaireDetailNotFound(t *testing.T) {
	svc := newTestService(newMemStore(), time.Now())

	_, err := svc.GetQuestionnaireDetail(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrQuestionnaireNotFound)
}

func TestGetQuestionnaireDetailClosed(t *testing.T) {
	now := time.Now()
	store := newMemStore()

	t.Run("closed status", func(t *testing.T) {
		q := seedQuestionnaire(store, models.QuestionnaireClosed, nil)

		_, err := newTestService(store, now).GetQuestionnaireDetail(context.Background(), q.ID)
		assert.ErrorIs(t, err, ErrQuestionnaireClosed)
		assert.NotErrorIs(t, err, ErrQuestionnaireNotFound)
	})

	t.Run("open but expired", func(t *testing.T) {
		past := now.Add(-time.Minute)
		q := seedQuestionnaire(store, models.QuestionnaireOpen, &past)

		_, err := newTestService(store, now).GetQuestionnaireDetail(context.Background(), q.ID)
		assert.ErrorIs(t, err, ErrQuestionnaireClosed)
	})
}

func TestGetQuestionnaireDetailAssemblesQuestions(t *testing.T) {
	now := time.Now()
	store := newMemStore()
	q := seedQuestionnaire(store, models.QuestionnaireOpen, nil)

	// inserted out of order, plus a sequence tie (20 twice)
	free := models.Question{ID: primitive.NewObjectID(), QuestionnaireID: q.ID, Title: "Anything else?", Type: models.FreeText, Sequence: 30}
	firstTie := models.Question{ID: primitive.NewObjectID(), QuestionnaireID: q.ID, Title: "Pick several", Type: models.MultipleChoice, Sequence: 20}
	secondTie := models.Question{ID: primitive.NewObjectID(), QuestionnaireID: q.ID, Title: "Pick one", Type: models.SingleChoice, Sequence: 20}
	lead := models.Question{ID: primitive.NewObjectID(), QuestionnaireID: q.ID, Title: "Mood?", Type: models.SingleChoice, Sequence: 10}
	store.questions = append(store.questions, free, firstTie, secondTie, lead)

	store.options[lead.ID] = []models.Option{
		{ID: primitive.NewObjectID(), QuestionID: lead.ID, Title: "Good"},
		{ID: primitive.NewObjectID(), QuestionID: lead.ID, Title: "Bad"},
	}
	// firstTie deliberately has no options seeded

	detail, err := newTestService(store, now).GetQuestionnaireDetail(context.Background(), q.ID)
	require.NoError(t, err)
	require.Len(t, detail.Questions, 4)

	// sequence order, ties in insertion order
	assert.Equal(t, []string{"Mood?", "Pick several", "Pick one", "Anything else?"}, []string{
		detail.Questions[0].Title,
		detail.Questions[1].Title,
		detail.Questions[2].Title,
		detail.Questions[3].Title,
	})

	// choice questions carry a non-nil options list, even when empty
	require.NotNil(t, detail.Questions[0].Options)
	assert.Len(t, *detail.Questions[0].Options, 2)
	require.NotNil(t, detail.Questions[1].Options)
	assert.Empty(t, *detail.Questions[1].Options)

	// free-text questions carry none at all
	assert.Nil(t, detail.Questions[3].Options)
}

func TestGetQuestionnaireDetailStorageFailure(t *testing.T) {
	now := time.Now()
	store := newMemStore()
	q := seedQuestionnaire(store, models.QuestionnaireOpen, nil)
	store.failQuestions = true

	_, err := newTestService(store, now).GetQuestionnaireDetail(context.Background(), q.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrQuestionnaireNotFound)
	assert.NotErrorIs(t, err, ErrQuestionnaireClosed)
}

func TestCreateQuestionnaire(t *testing.T) {
	now := time.Now()
	store := newMemStore()
	svc := newTestService(store, now)

	req := &models.CreateQuestionnaireRequest{
		Title:                  "Onboarding feedback",
		OneSubmissionPerPerson: true,
		Questions: []models.CreateQuestionRequest{
			{Title: "How was week one?", Type: models.SingleChoice, Options: []string{"Great", "Fine", "Rough"}},
			{Title: "Tell us more", Type: models.FreeText},
		},
	}

	detail, err := svc.CreateQuestionnaire(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, models.QuestionnaireOpen, detail.Questionnaire.Status)
	assert.True(t, detail.Questionnaire.OneSubmissionPerPerson)
	require.Len(t, detail.Questions, 2)
	assert.Equal(t, 1, detail.Questions[0].Sequence)
	assert.Equal(t, 2, detail.Questions[1].Sequence)
	require.NotNil(t, detail.Questions[0].Options)
	assert.Len(t, *detail.Questions[0].Options, 3)
	assert.Nil(t, detail.Questions[1].Options)

	// round-trips through retrieval
	got, err := svc.GetQuestionnaireDetail(context.Background(), detail.Questionnaire.ID)
	require.NoError(t, err)
	assert.Equal(t, "How was week one?", got.Questions[0].Title)
}

func TestUpdateQuestionnaireStatus(t *testing.T) {
	now := time.Now()
	store := newMemStore()
	q := seedQuestionnaire(store, models.QuestionnaireOpen, nil)
	svc := newTestService(store, now)

	require.NoError(t, svc.UpdateQuestionnaireStatus(context.Background(), q.ID, models.QuestionnaireClosed))

	_, err := svc.GetQuestionnaireDetail(context.Background(), q.ID)
	assert.ErrorIs(t, err, ErrQuestionnaireClosed)

	err = svc.UpdateQuestionnaireStatus(context.Background(), primitive.NewObjectID(), models.QuestionnaireClosed)
	assert.ErrorIs(t, err, ErrQuestionnaireNotFound)
}
