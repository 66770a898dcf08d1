package questionnaires

import (
	"context"
	"log"
	"time"

	DB "Backend-Toolbox/src/database"
	"Backend-Toolbox/src/jobs"
	"Backend-Toolbox/src/models"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service assembles questionnaires for retrieval and backs the authoring
// flow. The storage capability is injected rather than reached through a
// global so the whole workflow is testable without MongoDB.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// GetQuestionnaireDetail loads a questionnaire with its ordered questions and,
// for choice-type questions, their nested options.
func (s *Service) GetQuestionnaireDetail(ctx context.Context, id primitive.ObjectID) (*models.QuestionnaireDetail, error) {
	q, err := s.store.GetQuestionnaire(ctx, id)
	if err != nil {
		return nil, err
	}

	if !IsAcceptingActivity(q, s.now()) {
		return nil, ErrQuestionnaireClosed
	}

	questions, err := s.store.GetQuestions(ctx, q.ID)
	if err != nil {
		return nil, err
	}

	for i := range questions {
		if !models.IsChoiceType(questions[i].Type) {
			continue
		}
		opts, err := s.store.GetOptions(ctx, questions[i].ID)
		if err != nil {
			return nil, err
		}
		if opts == nil {
			opts = []models.Option{}
		}
		questions[i].Options = &opts
	}

	return &models.QuestionnaireDetail{
		Questionnaire: *q,
		Questions:     questions,
	}, nil
}

// CreateQuestionnaire inserts a questionnaire together with its questions and
// options. Question sequence follows input order. When an expiration is set
// and the job queue is up, a close task is scheduled at that instant.
func (s *Service) CreateQuestionnaire(ctx context.Context, req *models.CreateQuestionnaireRequest) (*models.QuestionnaireDetail, error) {
	now := s.now()

	q := &models.Questionnaire{
		ID:                     primitive.NewObjectID(),
		Title:                  req.Title,
		Description:            req.Description,
		Status:                 models.QuestionnaireOpen,
		ExpiresAt:              req.ExpiresAt,
		OneSubmissionPerPerson: req.OneSubmissionPerPerson,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	questions := make([]models.Question, 0, len(req.Questions))
	var allOptions []models.Option
	for i, in := range req.Questions {
		question := models.Question{
			ID:              primitive.NewObjectID(),
			QuestionnaireID: q.ID,
			Title:           in.Title,
			Type:            in.Type,
			IsRequired:      in.IsRequired,
			Sequence:        i + 1,
		}
		questions = append(questions, question)

		if !models.IsChoiceType(in.Type) {
			continue
		}
		for _, title := range in.Options {
			allOptions = append(allOptions, models.Option{
				ID:         primitive.NewObjectID(),
				QuestionID: question.ID,
				Title:      title,
			})
		}
	}

	if err := s.store.InsertQuestionnaire(ctx, q, questions, allOptions); err != nil {
		return nil, err
	}

	s.scheduleClose(q)

	// reuse the retrieval shape; options were just written so reattach them
	for i := range questions {
		if !models.IsChoiceType(questions[i].Type) {
			continue
		}
		opts := make([]models.Option, 0)
		for _, opt := range allOptions {
			if opt.QuestionID == questions[i].ID {
				opts = append(opts, opt)
			}
		}
		questions[i].Options = &opts
	}

	return &models.QuestionnaireDetail{Questionnaire: *q, Questions: questions}, nil
}

// UpdateQuestionnaireStatus flips a questionnaire between open and closed.
// Used by authoring and by the expiry close worker; the engine itself never
// calls this.
func (s *Service) UpdateQuestionnaireStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	return s.store.UpdateStatus(ctx, id, status)
}

func (s *Service) scheduleClose(q *models.Questionnaire) {
	if q.ExpiresAt == nil || DB.AsynqClient == nil {
		return
	}

	task, err := jobs.NewCloseQuestionnaireTask(q.ID.Hex())
	if err != nil {
		log.Println("[questionnaires] failed to build close task:", err)
		return
	}

	_, err = DB.AsynqClient.Enqueue(task,
		asynq.ProcessAt(*q.ExpiresAt),
		asynq.TaskID("close-questionnaire-"+q.ID.Hex()),
	)
	if err != nil {
		log.Println("[questionnaires] failed to enqueue close task:", err)
		return
	}
	log.Printf("[questionnaires] scheduled close id=%s at=%s", q.ID.Hex(), q.ExpiresAt.Format(time.RFC3339))
}
