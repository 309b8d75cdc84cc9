package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeAllCorrect(t *testing.T) {
	questions := []Question{
		{Prompt: "Capital of France?", CorrectAnswer: "paris"},
		{Prompt: "Answer to everything", CorrectAnswer: float64(42)},
		{Prompt: "Sky color", CorrectAnswer: "blue"},
	}
	answers := []interface{}{"paris", "42", "blue"}

	res := Grade(questions, answers)
	assert.Equal(t, 3, res.Score)
	assert.Equal(t, 100.0, Percentage(res.Score, len(questions)))
	for i, r := range res.Results {
		assert.Equal(t, i, r.QuestionIndex)
		assert.True(t, r.IsCorrect)
	}
}

func TestGradeCaseInsensitive(t *testing.T) {
	questions := []Question{{CorrectAnswer: "paris"}}

	res := Grade(questions, []interface{}{"PaRiS"})
	assert.Equal(t, 1, res.Score)
}

func TestGradeTypeCoercion(t *testing.T) {
	// JSON numbers arrive as float64; they must compare equal to their
	// string form
	questions := []Question{
		{CorrectAnswer: float64(42)},
		{CorrectAnswer: "42"},
	}

	res := Grade(questions, []interface{}{"42", float64(42)})
	assert.Equal(t, 2, res.Score)
}

func TestGradeMissingAnswerKeyDegradesToIncorrect(t *testing.T) {
	questions := []Question{
		{Prompt: "broken question, no key"},
		{Prompt: "ok", CorrectAnswer: "yes"},
	}

	res := Grade(questions, []interface{}{"anything", "yes"})
	assert.Equal(t, 1, res.Score)
	assert.False(t, res.Results[0].IsCorrect)
	assert.True(t, res.Results[1].IsCorrect)
}

func TestGradeShortAnswerList(t *testing.T) {
	questions := []Question{
		{CorrectAnswer: "a"},
		{CorrectAnswer: "b"},
		{CorrectAnswer: "c"},
	}

	res := Grade(questions, []interface{}{"a"})
	assert.Equal(t, 1, res.Score)
	assert.Len(t, res.Results, 3)
	assert.Nil(t, res.Results[1].StudentAnswer)
	assert.False(t, res.Results[2].IsCorrect)
}

func TestGradeNoPartialCredit(t *testing.T) {
	questions := []Question{{CorrectAnswer: "paris"}}

	res := Grade(questions, []interface{}{"pariss"})
	assert.Equal(t, 0, res.Score)
}

func TestPercentageEmptyQuiz(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(0, 0))
	assert.Equal(t, 50.0, Percentage(1, 2))
	assert.Equal(t, 100.0, Percentage(3, 3))
}
