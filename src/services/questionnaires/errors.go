package questionnaires

import "errors"

var (
	// ErrQuestionnaireNotFound is returned when the referenced questionnaire
	// does not exist.
	ErrQuestionnaireNotFound = errors.New("questionnaire not found")
	// ErrQuestionnaireClosed is returned when the questionnaire exists but no
	// longer accepts retrieval or submission. Never confused with not-found.
	ErrQuestionnaireClosed = errors.New("questionnaire is closed")
)
