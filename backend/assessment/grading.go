package assessment

import (
	"fmt"
	"math"
	"strings"
)

type Question struct {
	Prompt        string      `json:"prompt"`
	Options       []string    `json:"options,omitempty"`
	CorrectAnswer interface{} `json:"correctAnswer,omitempty"`
}

// QuizConfig is the validated quiz metadata decoded once at the catalog
// boundary.
type QuizConfig struct {
	Questions    []Question `json:"questions"`
	MaxAttempts  int        `json:"maxAttempts"`
	PassingGrade float64    `json:"passingGrade"`
}

type QuestionResult struct {
	QuestionIndex int         `json:"question_index"`
	IsCorrect     bool        `json:"is_correct"`
	StudentAnswer interface{} `json:"student_answer"`
	CorrectAnswer interface{} `json:"correct_answer"`
}

type GradeResult struct {
	Score   int
	Results []QuestionResult
}

// Grade scores a set of answers against the question list: case-insensitive,
// type-coerced string equality, no partial credit. A question with a missing
// answer key grades as incorrect rather than failing the attempt. Pure and
// deterministic.
func Grade(questions []Question, answers []interface{}) GradeResult {
	res := GradeResult{Results: make([]QuestionResult, 0, len(questions))}
	for i, q := range questions {
		var ans interface{}
		if i < len(answers) {
			ans = answers[i]
		}
		correct := q.CorrectAnswer != nil && ans != nil &&
			strings.EqualFold(coerce(ans), coerce(q.CorrectAnswer))
		if correct {
			res.Score++
		}
		res.Results = append(res.Results, QuestionResult{
			QuestionIndex: i,
			IsCorrect:     correct,
			StudentAnswer: ans,
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	return res
}

// Percentage is 100*score/total, 0 for an empty quiz.
func Percentage(score, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(score) / float64(total)
}

// coerce renders any answer value the way JSON delivered it, so 42,
// "42" and 42.0 all compare equal.
func coerce(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1e15 {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprintf("%v", x)
	default:
		return fmt.Sprintf("%v", v)
	}
}
