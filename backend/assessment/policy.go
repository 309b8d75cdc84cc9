package assessment

import (
	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/models"
)

type Gate struct {
	Allowed bool
	Reason  string
}

// CanAttempt gates a new quiz attempt against the recorded history: a passed
// attempt or an exhausted attempt budget both close the quiz.
func CanAttempt(history []models.QuizAttempt, cfg QuizConfig) Gate {
	for _, a := range history {
		if a.Passed {
			return Gate{Reason: ReasonAlreadyPassed}
		}
	}
	if len(history) >= cfg.MaxAttempts {
		return Gate{Reason: ReasonAttemptsExceeded}
	}
	return Gate{Allowed: true}
}

// ResultsVisible decides whether per-question correctness may be disclosed:
// only once the student has passed or has no retries left. While a retry
// remains, results leak the answer key and stay hidden.
func ResultsVisible(passed bool, attemptNumber, maxAttempts int) bool {
	return passed || attemptNumber >= maxAttempts
}

// Sanitize strips the answer keys from a quiz config before it is served to
// a student, regardless of attempt state.
func Sanitize(cfg QuizConfig) QuizConfig {
	qs := make([]Question, len(cfg.Questions))
	for i, q := range cfg.Questions {
		q.CorrectAnswer = nil
		qs[i] = q
	}
	cfg.Questions = qs
	return cfg
}
