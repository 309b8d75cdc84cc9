package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/models"
)

func TestCanAttempt(t *testing.T) {
	cfg := QuizConfig{MaxAttempts: 2, PassingGrade: 50}

	gate := CanAttempt(nil, cfg)
	assert.True(t, gate.Allowed)

	gate = CanAttempt([]models.QuizAttempt{{AttemptNumber: 1}}, cfg)
	assert.True(t, gate.Allowed)

	gate = CanAttempt([]models.QuizAttempt{{AttemptNumber: 1, Passed: true}}, cfg)
	assert.False(t, gate.Allowed)
	assert.Equal(t, ReasonAlreadyPassed, gate.Reason)

	gate = CanAttempt([]models.QuizAttempt{{AttemptNumber: 1}, {AttemptNumber: 2}}, cfg)
	assert.False(t, gate.Allowed)
	assert.Equal(t, ReasonAttemptsExceeded, gate.Reason)
}

func TestResultsVisible(t *testing.T) {
	// passed attempts always disclose results
	assert.True(t, ResultsVisible(true, 1, 3))
	// exhausted budget discloses results
	assert.True(t, ResultsVisible(false, 3, 3))
	// retries remain: results stay hidden
	assert.False(t, ResultsVisible(false, 1, 3))
	assert.False(t, ResultsVisible(false, 2, 3))
}

func TestSanitizeStripsAnswerKeys(t *testing.T) {
	cfg := QuizConfig{
		Questions: []Question{
			{Prompt: "q1", Options: []string{"a", "b"}, CorrectAnswer: "a"},
			{Prompt: "q2", CorrectAnswer: float64(7)},
		},
		MaxAttempts:  2,
		PassingGrade: 50,
	}

	clean := Sanitize(cfg)
	for _, q := range clean.Questions {
		assert.Nil(t, q.CorrectAnswer)
	}
	assert.Equal(t, "q1", clean.Questions[0].Prompt)
	assert.Equal(t, []string{"a", "b"}, clean.Questions[0].Options)
	// the original config keeps its keys
	assert.Equal(t, "a", cfg.Questions[0].CorrectAnswer)
}
