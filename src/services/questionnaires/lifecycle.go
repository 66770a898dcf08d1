package questionnaires

import (
	"time"

	"Backend-Toolbox/src/models"
)

// IsAcceptingActivity reports whether a questionnaire currently accepts
// retrieval and submission. Pure function of the record and the supplied
// clock; callers must evaluate it freshly per request because expiration is
// time-dependent.
func IsAcceptingActivity(q *models.Questionnaire, now time.Time) bool {
	if q.Status == models.QuestionnaireClosed {
		return false
	}
	if q.ExpiresAt != nil && q.ExpiresAt.Before(now) {
		return false
	}
	return true
}
