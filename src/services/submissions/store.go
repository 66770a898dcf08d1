package submissions

import (
	"context"
	"errors"

	DB "Backend-Toolbox/src/database"
	"Backend-Toolbox/src/models"
	"Backend-Toolbox/src/services/questionnaires"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store is the persistence capability the submission writer needs: loading
// the target questionnaire, probing for an existing submission by identity,
// and the atomic submission+answers batch.
type Store interface {
	GetQuestionnaire(ctx context.Context, id primitive.ObjectID) (*models.Questionnaire, error)
	HasSubmission(ctx context.Context, questionnaireID primitive.ObjectID, submitterHash string) (bool, error)
	InsertSubmission(ctx context.Context, submission *models.Submission, answers []models.Answer) error
}

type mongoStore struct{}

// NewMongoStore returns the Store backed by the shared MongoDB collections.
func NewMongoStore() Store {
	return &mongoStore{}
}

func (s *mongoStore) GetQuestionnaire(ctx context.Context, id primitive.ObjectID) (*models.Questionnaire, error) {
	var q models.Questionnaire
	err := DB.QuestionnaireCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&q)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, questionnaires.ErrQuestionnaireNotFound
		}
		return nil, err
	}
	return &q, nil
}

func (s *mongoStore) HasSubmission(ctx context.Context, questionnaireID primitive.ObjectID, submitterHash string) (bool, error) {
	count, err := DB.SubmissionCollection.CountDocuments(ctx, bson.M{
		"questionnaireId": questionnaireID,
		"submitterHash":   submitterHash,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertSubmission writes the submission and all its answers in one
// transaction; nothing of the batch survives a failure. A duplicate-key hit
// on the (questionnaireId, submitterHash) index means a concurrent identical
// submission won the race, which is reported as ErrDuplicateSubmission.
func (s *mongoStore) InsertSubmission(ctx context.Context, submission *models.Submission, answers []models.Answer) error {
	session, err := DB.GetClient().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := DB.SubmissionCollection.InsertOne(sc, submission); err != nil {
			return nil, err
		}
		if len(answers) > 0 {
			docs := make([]interface{}, 0, len(answers))
			for _, answer := range answers {
				docs = append(docs, answer)
			}
			if _, err := DB.AnswerCollection.InsertMany(sc, docs); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateSubmission
		}
		return err
	}
	return nil
}
