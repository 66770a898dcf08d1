package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Questionnaire statuses. The engine only ever reads these; transitions
// happen through the authoring flow or the expiry close job.
const (
	QuestionnaireOpen   = "open"
	QuestionnaireClosed = "closed"
)

// Question types
const (
	SingleChoice   = "single-choice"
	MultipleChoice = "multiple-choice"
	FreeText       = "free-text"
)

// --- Questionnaire ---
type Questionnaire struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title                  string             `bson:"title" json:"title"`
	Description            string             `bson:"description,omitempty" json:"description,omitempty"`
	Status                 string             `bson:"status" json:"status"`
	ExpiresAt              *time.Time         `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
	OneSubmissionPerPerson bool               `bson:"oneSubmissionPerPerson" json:"oneSubmissionPerPerson"`
	CreatedAt              time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt              time.Time          `bson:"updatedAt,omitempty" json:"updatedAt"`
}

// IsChoiceType reports whether a question type carries selectable options.
func IsChoiceType(questionType string) bool {
	return questionType == SingleChoice || questionType == MultipleChoice
}

// --- Question ---
// Options is filled by the assembler for choice-type questions only; a
// non-nil pointer renders as a JSON array (possibly empty), a nil pointer is
// omitted entirely.
type Question struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	QuestionnaireID primitive.ObjectID `bson:"questionnaireId" json:"questionnaireId"`
	Title           string             `bson:"title" json:"title"`
	Type            string             `bson:"type" json:"type"`
	IsRequired      bool               `bson:"isRequired" json:"isRequired"`
	Sequence        int                `bson:"sequence" json:"sequence"`

	Options *[]Option `bson:"-" json:"options,omitempty"`
}

// --- Option ---
type Option struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	QuestionID primitive.ObjectID `bson:"questionId" json:"questionId"`
	Title      string             `bson:"title" json:"title"`
}

// QuestionnaireDetail is the composed document returned by retrieval.
type QuestionnaireDetail struct {
	Questionnaire Questionnaire `json:"questionnaire"`
	Questions     []Question    `json:"questions"`
}

// --- Authoring DTOs ---

type CreateQuestionnaireRequest struct {
	Title                  string                  `json:"title" validate:"required"`
	Description            string                  `json:"description"`
	ExpiresAt              *time.Time              `json:"expiresAt"`
	OneSubmissionPerPerson bool                    `json:"oneSubmissionPerPerson"`
	Questions              []CreateQuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

type CreateQuestionRequest struct {
	Title      string   `json:"title" validate:"required"`
	Type       string   `json:"type" validate:"required,oneof=single-choice multiple-choice free-text"`
	IsRequired bool     `json:"isRequired"`
	Options    []string `json:"options"`
}

type UpdateQuestionnaireStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open closed"`
}
