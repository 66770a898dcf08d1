package submissions

import (
	"context"
	"log"
	"time"

	"Backend-Toolbox/src/models"
	"Backend-Toolbox/src/services/questionnaires"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service implements the submission workflow: lifecycle gate, anti-duplicate
// check, then one atomic write of the submission record and its answers.
type Service struct {
	store Store
	now   func() time.Time
	newID func() string
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Submit records one response event for a questionnaire. origin and agent are
// the raw dedup signals from the request boundary; they are only hashed when
// the questionnaire enforces one submission per person.
//
// Returns the generated submission id, or one of
// questionnaires.ErrQuestionnaireNotFound, questionnaires.ErrQuestionnaireClosed,
// ErrDuplicateSubmission. Storage failures propagate unchanged and are never
// mapped onto the domain errors.
func (s *Service) Submit(ctx context.Context, questionnaireID primitive.ObjectID, answers []models.AnswerInput, origin, agent string) (string, error) {
	q, err := s.store.GetQuestionnaire(ctx, questionnaireID)
	if err != nil {
		return "", err
	}

	if !questionnaires.IsAcceptingActivity(q, s.now()) {
		return "", questionnaires.ErrQuestionnaireClosed
	}

	var submitterHash *string
	if q.OneSubmissionPerPerson {
		token := SubmitterHash(origin, agent)
		exists, err := s.store.HasSubmission(ctx, q.ID, token)
		if err != nil {
			return "", err
		}
		if exists {
			return "", ErrDuplicateSubmission
		}
		submitterHash = &token
	}

	submission := &models.Submission{
		ID:              s.newID(),
		QuestionnaireID: q.ID,
		SubmitterHash:   submitterHash,
		SubmittedAt:     s.now(),
	}

	records := make([]models.Answer, 0, len(answers))
	for i, in := range answers {
		questionID, err := primitive.ObjectIDFromHex(in.QuestionID)
		if err != nil {
			return "", err
		}

		answer := models.Answer{
			ID:           s.newID(),
			SubmissionID: submission.ID,
			QuestionID:   questionID,
			AnswerText:   in.AnswerText,
			Sequence:     i + 1,
		}
		if in.OptionID != nil {
			optionID, err := primitive.ObjectIDFromHex(*in.OptionID)
			if err != nil {
				return "", err
			}
			answer.OptionID = &optionID
		}
		records = append(records, answer)
	}

	if err := s.store.InsertSubmission(ctx, submission, records); err != nil {
		return "", err
	}

	log.Printf("[submission] inserted id=%s questionnaire=%s answers=%d",
		submission.ID, q.ID.Hex(), len(records))
	return submission.ID, nil
}
