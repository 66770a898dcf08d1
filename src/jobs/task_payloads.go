package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeCloseQuestionnaire = "questionnaire:close"

type CloseQuestionnairePayload struct {
	QuestionnaireID string `json:"questionnaire_id"`
}

func NewCloseQuestionnaireTask(questionnaireID string) (*asynq.Task, error) {
	payload, err := json.Marshal(CloseQuestionnairePayload{QuestionnaireID: questionnaireID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCloseQuestionnaire, payload), nil
}
