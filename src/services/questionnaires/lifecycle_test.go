package questionnaires

import (
	"testing"
	"time"

	"Backend-Toolbox/src/models"

	"github.com/stretchr/testify/assert"
)

func TestIsAcceptingActivity(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name      string
		status    string
		expiresAt *time.Time
		want      bool
	}{
		{"open without expiration", models.QuestionnaireOpen, nil, true},
		{"open with future expiration", models.QuestionnaireOpen, &future, true},
		{"open with past expiration", models.QuestionnaireOpen, &past, false},
		{"closed without expiration", models.QuestionnaireClosed, nil, false},
		{"closed with future expiration", models.QuestionnaireClosed, &future, false},
		{"expiration exactly now is not expired", models.QuestionnaireOpen, &now, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &models.Questionnaire{Status: tt.status, ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, IsAcceptingActivity(q, now))
		})
	}
}

func TestIsAcceptingActivityIsTimeDependent(t *testing.T) {
	expires := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	q := &models.Questionnaire{Status: models.QuestionnaireOpen, ExpiresAt: &expires}

	// the same record flips once the clock passes the expiration
	assert.True(t, IsAcceptingActivity(q, expires.Add(-time.Second)))
	assert.False(t, IsAcceptingActivity(q, expires.Add(time.Second)))
}
