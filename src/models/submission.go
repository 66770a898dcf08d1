package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submission records one completed response event. SubmitterHash is only set
// when the questionnaire enforces one submission per person; it is never
// echoed back to clients.
type Submission struct {
	ID              string             `bson:"_id" json:"id"`
	QuestionnaireID primitive.ObjectID `bson:"questionnaireId" json:"questionnaireId"`
	SubmitterHash   *string            `bson:"submitterHash,omitempty" json:"-"`
	SubmittedAt     time.Time          `bson:"submittedAt" json:"submittedAt"`
}

// Answer is stored separately from its submission; Sequence preserves the
// order answers arrived in.
type Answer struct {
	ID           string              `bson:"_id" json:"id"`
	SubmissionID string              `bson:"submissionId" json:"submissionId"`
	QuestionID   primitive.ObjectID  `bson:"questionId" json:"questionId"`
	AnswerText   *string             `bson:"answerText,omitempty" json:"answerText,omitempty"`
	OptionID     *primitive.ObjectID `bson:"optionId,omitempty" json:"optionId,omitempty"`
	Sequence     int                 `bson:"sequence" json:"sequence"`
}

// --- Input DTOs ---

type SubmitAnswersRequest struct {
	Answers []AnswerInput `json:"answers" validate:"required,min=1,dive"`
}

// AnswerInput carries exactly one of AnswerText / OptionID; controllers
// reject payloads that set both or neither before the writer runs.
type AnswerInput struct {
	QuestionID string  `json:"question_id" validate:"required"`
	AnswerText *string `json:"answer_text,omitempty"`
	OptionID   *string `json:"option_id,omitempty"`
}
