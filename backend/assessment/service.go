package assessment

import (
	"encoding/json"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/models"
)

// Engine wires the attempt policy, grading, submission store and progress
// ledger behind the operations the HTTP layer exposes. It is stateless; all
// isolation comes from scope-key filtering in the store.
type Engine struct {
	store       *Store
	ledger      *Ledger
	catalog     Catalog
	enrollments EnrollmentResolver
	log         *log.Logger
}

func NewEngine(db *gorm.DB, logger *log.Logger) *Engine {
	return &Engine{
		store:       NewStore(db),
		ledger:      NewLedger(db),
		catalog:     NewCatalog(db),
		enrollments: NewEnrollmentResolver(db),
		log:         logger,
	}
}

func (e *Engine) warnf(format string, args ...interface{}) {
	if e.log != nil {
		e.log.Printf("WARN "+format, args...)
	}
}

// requireUnlocked rejects writes on scope keys whose enrollment path is
// locked or absent. Authorization, not validation.
func (e *Engine) requireUnlocked(studentID, courseID uint, cohortID *uint) error {
	paths, err := e.enrollments.ResolvePaths(studentID, courseID)
	if err != nil {
		return err
	}
	if !pathUnlocked(paths, cohortID) {
		return ErrForbidden
	}
	return nil
}

type SubmitQuizInput struct {
	StudentID uint
	CourseID  uint
	QuizID    uint
	CohortID  *uint
	Answers   []interface{}
}

type SubmitQuizResult struct {
	AttemptID      string           `json:"attempt_id"`
	Passed         bool             `json:"passed"`
	Score          int              `json:"score"`
	TotalQuestions int              `json:"totalQuestions"`
	Percentage     float64          `json:"percentage"`
	AttemptsCount  int              `json:"attemptsCount"`
	MaxAttempts    int              `json:"maxAttempts"`
	CanRetry       bool             `json:"canRetry"`
	Results        []QuestionResult `json:"results"`
}

// SubmitQuizAttempt grades and records one quiz attempt. Eligibility is
// re-checked inside the store transaction, so the attempt budget holds under
// concurrent submissions. A pass marks the item completed; a ledger failure
// after the attempt is recorded is logged and swallowed, the attempt is the
// source of truth.
func (e *Engine) SubmitQuizAttempt(in SubmitQuizInput) (*SubmitQuizResult, error) {
	item, err := e.catalog.Item(in.QuizID)
	if err != nil {
		return nil, err
	}
	if item.CourseID != in.CourseID {
		return nil, &ValidationError{Field: "course_id", Reason: "quiz does not belong to course"}
	}
	cfg, err := e.catalog.QuizConfig(item)
	if err != nil {
		return nil, err
	}
	if err := e.requireUnlocked(in.StudentID, in.CourseID, in.CohortID); err != nil {
		return nil, err
	}

	key := ScopeKey{StudentID: in.StudentID, ItemID: in.QuizID, CohortID: in.CohortID}
	var graded GradeResult
	attempt, err := e.store.RecordQuizAttempt(key, func(prior []models.QuizAttempt) (*models.QuizAttempt, error) {
		if gate := CanAttempt(prior, cfg); !gate.Allowed {
			return nil, &PolicyError{Reason: gate.Reason}
		}
		graded = Grade(cfg.Questions, in.Answers)
		total := len(cfg.Questions)
		pct := Percentage(graded.Score, total)

		answersJSON, err := json.Marshal(in.Answers)
		if err != nil {
			return nil, &ValidationError{Field: "answers", Reason: "not serializable"}
		}
		resultsJSON, err := json.Marshal(graded.Results)
		if err != nil {
			return nil, &ValidationError{Field: "answers", Reason: "not serializable"}
		}
		return &models.QuizAttempt{
			CourseID:       in.CourseID,
			Score:          graded.Score,
			TotalQuestions: total,
			Percentage:     pct,
			Passed:         pct >= cfg.PassingGrade,
			Answers:        answersJSON,
			Results:        resultsJSON,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	if attempt.Passed {
		if _, err := e.ledger.MarkCompleted(key, in.CourseID, true); err != nil {
			e.warnf("progress mark after quiz pass failed for student %d item %d: %v",
				in.StudentID, in.QuizID, err)
		}
	}

	out := &SubmitQuizResult{
		AttemptID:      attempt.ID,
		Passed:         attempt.Passed,
		Score:          attempt.Score,
		TotalQuestions: attempt.TotalQuestions,
		Percentage:     attempt.Percentage,
		AttemptsCount:  attempt.AttemptNumber,
		MaxAttempts:    cfg.MaxAttempts,
		CanRetry:       !attempt.Passed && attempt.AttemptNumber < cfg.MaxAttempts,
	}
	if ResultsVisible(attempt.Passed, attempt.AttemptNumber, cfg.MaxAttempts) {
		out.Results = graded.Results
	}
	return out, nil
}

// AttemptView is an attempt as shown to the student; Results stays nil while
// the policy withholds it.
type AttemptView struct {
	AttemptID      string           `json:"attempt_id"`
	AttemptNumber  int              `json:"attempt_number"`
	Score          int              `json:"score"`
	TotalQuestions int              `json:"totalQuestions"`
	Percentage     float64          `json:"percentage"`
	Passed         bool             `json:"passed"`
	Results        []QuestionResult `json:"results"`
	CreatedAt      time.Time        `json:"created_at"`
}

type QuizState struct {
	QuizID        uint         `json:"quiz_id"`
	Title         string       `json:"title"`
	Questions     []Question   `json:"questions"`
	AttemptsCount int          `json:"attemptsCount"`
	MaxAttempts   int          `json:"maxAttempts"`
	PassingGrade  float64      `json:"passingGrade"`
	Passed        bool         `json:"passed"`
	CanRetry      bool         `json:"canRetry"`
	Submission    *AttemptView `json:"submission"`
}

// GetQuizState returns the sanitized quiz plus the student's standing under
// one cohort scope. Answer keys are never included; the surfaced submission
// is the passed attempt if there is one, otherwise the latest.
func (e *Engine) GetQuizState(studentID, quizID uint, cohortID *uint) (*QuizState, error) {
	item, err := e.catalog.Item(quizID)
	if err != nil {
		return nil, err
	}
	cfg, err := e.catalog.QuizConfig(item)
	if err != nil {
		return nil, err
	}

	key := ScopeKey{StudentID: studentID, ItemID: quizID, CohortID: cohortID}
	attempts, err := e.store.ListAttempts(key)
	if err != nil {
		return nil, err
	}

	state := &QuizState{
		QuizID:        item.ID,
		Title:         item.Title,
		Questions:     Sanitize(cfg).Questions,
		AttemptsCount: len(attempts),
		MaxAttempts:   cfg.MaxAttempts,
		PassingGrade:  cfg.PassingGrade,
	}

	var best *models.QuizAttempt
	for i := range attempts {
		if attempts[i].Passed {
			best = &attempts[i]
			state.Passed = true
			break
		}
	}
	if best == nil && len(attempts) > 0 {
		best = &attempts[len(attempts)-1]
	}
	state.CanRetry = !state.Passed && len(attempts) < cfg.MaxAttempts

	if best != nil {
		view := &AttemptView{
			AttemptID:      best.ID,
			AttemptNumber:  best.AttemptNumber,
			Score:          best.Score,
			TotalQuestions: best.TotalQuestions,
			Percentage:     best.Percentage,
			Passed:         best.Passed,
			CreatedAt:      best.CreatedAt,
		}
		if ResultsVisible(best.Passed, best.AttemptNumber, cfg.MaxAttempts) {
			if err := json.Unmarshal(best.Results, &view.Results); err != nil {
				e.warnf("stored results for attempt %s do not decode: %v", best.ID, err)
			}
		}
		state.Submission = view
	}
	return state, nil
}

type SubmitAssignmentInput struct {
	StudentID   uint
	CourseID    uint
	ItemID      uint
	CohortID    *uint
	Attachments []string
	Comment     string
}

// SubmitAssignment records or overwrites the single submission row for the
// scope key and always marks the item completed, regardless of the eventual
// grade.
func (e *Engine) SubmitAssignment(in SubmitAssignmentInput) (*models.AssignmentSubmission, error) {
	item, err := e.catalog.Item(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item.Type != models.ItemTypeAssignment {
		return nil, notFoundf("item %d is not an assignment", in.ItemID)
	}
	if item.CourseID != in.CourseID {
		return nil, &ValidationError{Field: "course_id", Reason: "item does not belong to course"}
	}
	if err := e.requireUnlocked(in.StudentID, in.CourseID, in.CohortID); err != nil {
		return nil, err
	}

	key := ScopeKey{StudentID: in.StudentID, ItemID: in.ItemID, CohortID: in.CohortID}
	sub, err := e.store.UpsertAssignmentSubmission(key, in.CourseID, SubmissionData{
		Attachments: in.Attachments,
		Comment:     in.Comment,
		SubmittedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if _, err := e.ledger.MarkCompleted(key, in.CourseID, true); err != nil {
		e.warnf("progress mark after assignment submit failed for student %d item %d: %v",
			in.StudentID, in.ItemID, err)
	}
	return sub, nil
}

// GradeAssignment is the tutor-facing grading mutation.
func (e *Engine) GradeAssignment(submissionID string, points float64, feedback string, graderID uint) (*models.AssignmentSubmission, error) {
	return e.store.GradeAssignment(submissionID, points, feedback, graderID)
}

type ProgressItem struct {
	ItemID      uint       `json:"item_id"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at"`
}

type ProgressReport struct {
	Items   []ProgressItem `json:"items"`
	Percent int            `json:"percent"`
}

// GetProgress lists the student's per-item completion for a course under one
// cohort scope, plus the rolled-up percent.
func (e *Engine) GetProgress(studentID, courseID uint, cohortID *uint) (*ProgressReport, error) {
	itemIDs, err := e.catalog.CourseItemIDs(courseID)
	if err != nil {
		return nil, err
	}
	records, err := e.ledger.ListForCourse(studentID, courseID, cohortID)
	if err != nil {
		return nil, err
	}

	report := &ProgressReport{
		Items:   make([]ProgressItem, 0, len(records)),
		Percent: CourseProgress(itemIDs, records),
	}
	for _, r := range records {
		report.Items = append(report.Items, ProgressItem{
			ItemID:      r.ItemID,
			IsCompleted: r.IsCompleted,
			CompletedAt: r.CompletedAt,
		})
	}
	return report, nil
}

// SetProgress is the explicit completion toggle for lessons and live
// classes.
func (e *Engine) SetProgress(studentID, courseID, itemID uint, cohortID *uint, completed bool) (*models.ProgressRecord, error) {
	item, err := e.catalog.Item(itemID)
	if err != nil {
		return nil, err
	}
	if item.CourseID != courseID {
		return nil, &ValidationError{Field: "item_id", Reason: "item does not belong to course"}
	}
	if err := e.requireUnlocked(studentID, courseID, cohortID); err != nil {
		return nil, err
	}

	key := ScopeKey{StudentID: studentID, ItemID: itemID, CohortID: cohortID}
	return e.ledger.MarkCompleted(key, courseID, completed)
}

// QuizAnalytics is the tutor-facing roll-up of attempts per student.
func (e *Engine) QuizAnalytics(quizID uint) ([]AttemptSummary, error) {
	item, err := e.catalog.Item(quizID)
	if err != nil {
		return nil, err
	}
	if item.Type != models.ItemTypeQuiz {
		return nil, notFoundf("item %d is not a quiz", quizID)
	}
	return e.store.AttemptSummaries(quizID)
}
