package submissions

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"Backend-Toolbox/src/models"
	"Backend-Toolbox/src/services/questionnaires"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore mimics the persistence contract including batch atomicity: a
// forced insert failure leaves neither the submission nor any answers behind.
type memStore struct {
	records     map[primitive.ObjectID]*models.Questionnaire
	submissions []models.Submission
	answers     []models.Answer

	failInsert error
}

func newMemStore() *memStore {
	return &memStore{records: make(map[primitive.ObjectID]*models.Questionnaire)}
}

func (m *memStore) GetQuestionnaire(_ context.Context, id primitive.ObjectID) (*models.Questionnaire, error) {
	q, ok := m.records[id]
	if !ok {
		return nil, questionnaires.ErrQuestionnaireNotFound
	}
	copied := *q
	return &copied, nil
}

func (m *memStore) HasSubmission(_ context.Context, questionnaireID primitive.ObjectID, submitterHash string) (bool, error) {
	for _, sub := range m.submissions {
		if sub.QuestionnaireID == questionnaireID && sub.SubmitterHash != nil && *sub.SubmitterHash == submitterHash {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) InsertSubmission(_ context.Context, submission *models.Submission, answers []models.Answer) error {
	if m.failInsert != nil {
		return m.failInsert
	}
	// unique (questionnaireId, submitterHash) constraint, as the partial
	// index enforces it in MongoDB
	if submission.SubmitterHash != nil {
		for _, sub := range m.submissions {
			if sub.QuestionnaireID == submission.QuestionnaireID && sub.SubmitterHash != nil && *sub.SubmitterHash == *submission.SubmitterHash {
				return ErrDuplicateSubmission
			}
		}
	}
	m.submissions = append(m.submissions, *submission)
	m.answers = append(m.answers, answers...)
	return nil
}

func newTestService(store Store) *Service {
	svc := NewService(store)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("id-%04d", n)
	}
	return svc
}

func seedQuestionnaire(store *memStore, dedup bool) *models.Questionnaire {
	q := &models.Questionnaire{
		ID:                     primitive.NewObjectID(),
		Title:                  "Lunch preferences",
		Status:                 models.QuestionnaireOpen,
		OneSubmissionPerPerson: dedup,
	}
	store.records[q.ID] = q
	return q
}

func textAnswer(questionID primitive.ObjectID, text string) models.AnswerInput {
	return models.AnswerInput{QuestionID: questionID.Hex(), AnswerText: &text}
}

func optionAnswer(questionID, optionID primitive.ObjectID) models.AnswerInput {
	hexID := optionID.Hex()
	return models.AnswerInput{QuestionID: questionID.Hex(), OptionID: &hexID}
}

func TestSubmitNotFound(t *testing.T) {
	svc := newTestService(newMemStore())

	_, err := svc.Submit(context.Background(), primitive.NewObjectID(), nil, "ip", "ua")
	assert.ErrorIs(t, err, questionnaires.ErrQuestionnaireNotFound)
}

func TestSubmitClosed(t *testing.T) {
	store := newMemStore()
	q := seedQuestionnaire(store, false)
	q.Status = models.QuestionnaireClosed
	svc := newTestService(store)

	_, err := svc.Submit(context.Background(), q.ID, []models.AnswerInput{textAnswer(primitive.NewObjectID(), "hi")}, "ip", "ua")
	assert.ErrorIs(t, err, questionnaires.ErrQuestionnaireClosed)
	assert.Empty(t, store.submissions)
}

func TestSubmitExpired(t *testing.T) {
	store := newMemStore()
	q := seedQuestionnaire(store, false)
	past := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	q.ExpiresAt = &past
	svc := newTestService(store)

	_, err := svc.Submit(context.Background(), q.ID, []models.AnswerInput{textAnswer(primitive.NewObjectID(), "hi")}, "ip", "ua")
	assert.ErrorIs(t, err, questionnaires.ErrQuestionnaireClosed)
}

func TestSubmitSuccessWithDedup(t *testing.T) {
	store := newMemStore()
	q := seedQuestionnaire(store, true)
	questionID := primitive.NewObjectID()
	optionID := primitive.NewObjectID()
	svc := newTestService(store)

	id, err := svc.Submit(context.Background(), q.ID, []models.AnswerInput{optionAnswer(questionID, optionID)}, "203.0.113.7", "Mozilla/5.0")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	require.Len(t, store.submissions, 1)
	sub := store.submissions[0]
	assert.Equal(t, id, sub.ID)
	require.NotNil(t, sub.SubmitterHash)
	assert.Equal(t, SubmitterHash("203.0.113.7", "Mozilla/5.0"), *sub.SubmitterHash)

	require.Len(t, store.answers, 1)
	assert.Equal(t, id, store.answers[0].SubmissionID)
	assert.Equal(t, questionID, store.answers[0].QuestionID)
	require.NotNil(t, store.answers[0].OptionID)
	assert.Equal(t, optionID, *store.answers[0].OptionID)
	assert.Nil(t, store.answers[0].AnswerText)
}

func TestSubmitDuplicateRejected(t *testing.T) {
	store := newMemStore()
	q := seedQuestionnaire(store, true)
	questionID := primitive.NewObjectID()
	svc := newTestService(store)

	_, err := svc.Submit(context.Background(), q.ID, []models.AnswerInput{textAnswer(questionID, "first")}, "203.0.113.7", "Mozilla/5.0")
	require.NoError(t, err)

	// identical identity after the first commit
	_, err = svc.Submit(context.Background(), q.ID, []models.AnswerInput{textAnswer(questionID, "again")}, "203.0.113.7", "Mozilla/5.0")
	assert.ErrorIs(t, err, ErrDuplicateSubmission)
	assert.Len(t, store.submissions, 1)

	// a different identity still goes through
	id, err := svc.Submit(context.Background(), q.ID, []models.AnswerInput{textAnswer(questionID, "other")}, "198.51.100.9", "Mozilla/5.0")
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Len(t, store.submissions, 2)
}

func TestSubmitDedupDisabled(t *testing.T) {
	store := newMemStore()
	q := seedQuestionnaire(store, false)
	questionID := primitive.NewObjectID()
	svc := newTestService(store)

	// same signals twice; both must land, neither carries a hash
	for i := 0; i < 2; i++ {
		_, err := svc.Submit(context.Background(), q.ID, []models.AnswerInput{textAnswer(questionID, "hi")}, "203.0.113.7", "Mozilla/5.0")
		require.NoError(t, err)
	}

	require.Len(t, store.submissions, 2)
	assert.Nil(t, store.submissions[0].SubmitterHash)
	assert.Nil(t, store.submissions[1].SubmitterHash)
}

func TestSubmitAnswersKeepInputOrder(t *testing.T) {
	store := newMemStore()
	q := seedQuestionnaire(store, false)
	svc := newTestService(store)

	inputs := []models.AnswerInput{
		textAnswer(primitive.NewObjectID(), "third question answered first"),
		textAnswer(primitive.NewObjectID(), "then this"),
		textAnswer(primitive.NewObjectID(), "and this"),
	}

	_, err := svc.Submit(context.Background(), q.ID, inputs, "ip", "ua")
	require.NoError(t, err)

	require.Len(t, store.answers, 3)
	for i, answer := range store.answers {
		assert.Equal(t, i+1, answer.Sequence)
		assert.Equal(t, *inputs[i].AnswerText, *answer.AnswerText)
	}
}

func TestSubmitBatchFailureLeavesNothing(t *testing.T) {
	store := newMemStore()
	q := seedQuestionnaire(store, true)
	store.failInsert = errors.New("constraint violation")
	svc := newTestService(store)

	_, err := svc.Submit(context.Background(), q.ID, []models.AnswerInput{textAnswer(primitive.NewObjectID(), "hi")}, "ip", "ua")
	require.Error(t, err)
	assert.Empty(t, store.submissions)
	assert.Empty(t, store.answers)
}

func TestSubmitRaceLostMapsToDuplicate(t *testing.T) {
	store := newMemStore()
	q := seedQuestionnaire(store, true)
	svc := newTestService(store)

	// simulate the racing writer committing between our dedup check and our
	// insert: the store's uniqueness constraint fires on insert
	store.failInsert = ErrDuplicateSubmission

	_, err := svc.Submit(context.Background(), q.ID, []models.AnswerInput{textAnswer(primitive.NewObjectID(), "hi")}, "ip", "ua")
	assert.ErrorIs(t, err, ErrDuplicateSubmission)
}
