package questionnaires

import (
	"context"
	"errors"
	"time"

	DB "Backend-Toolbox/src/database"
	"Backend-Toolbox/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store abstracts the persistence the questionnaire service needs. Services
// receive a Store explicitly so tests can run against an in-memory fake.
type Store interface {
	GetQuestionnaire(ctx context.Context, id primitive.ObjectID) (*models.Questionnaire, error)
	GetQuestions(ctx context.Context, questionnaireID primitive.ObjectID) ([]models.Question, error)
	GetOptions(ctx context.Context, questionID primitive.ObjectID) ([]models.Option, error)
	InsertQuestionnaire(ctx context.Context, q *models.Questionnaire, questions []models.Question, opts []models.Option) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
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
			return nil, ErrQuestionnaireNotFound
		}
		return nil, err
	}
	return &q, nil
}

func (s *mongoStore) GetQuestions(ctx context.Context, questionnaireID primitive.ObjectID) ([]models.Question, error) {
	// _id as a secondary key keeps ties stable in insertion order
	findOpts := options.Find().SetSort(bson.D{
		{Key: "sequence", Value: 1},
		{Key: "_id", Value: 1},
	})
	cursor, err := DB.QuestionCollection.Find(ctx, bson.M{"questionnaireId": questionnaireID}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []models.Question
	if err = cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *mongoStore) GetOptions(ctx context.Context, questionID primitive.ObjectID) ([]models.Option, error) {
	cursor, err := DB.OptionCollection.Find(ctx, bson.M{"questionId": questionID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var opts []models.Option
	if err = cursor.All(ctx, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}

func (s *mongoStore) InsertQuestionnaire(ctx context.Context, q *models.Questionnaire, questions []models.Question, opts []models.Option) error {
	session, err := DB.GetClient().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := DB.QuestionnaireCollection.InsertOne(sc, q); err != nil {
			return nil, err
		}
		if len(questions) > 0 {
			docs := make([]interface{}, 0, len(questions))
			for _, question := range questions {
				docs = append(docs, question)
			}
			if _, err := DB.QuestionCollection.InsertMany(sc, docs); err != nil {
				return nil, err
			}
		}
		if len(opts) > 0 {
			docs := make([]interface{}, 0, len(opts))
			for _, opt := range opts {
				docs = append(docs, opt)
			}
			if _, err := DB.OptionCollection.InsertMany(sc, docs); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}

func (s *mongoStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	result, err := DB.QuestionnaireCollection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrQuestionnaireNotFound
	}
	return nil
}
