package assessment

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/models"
)

// SubmissionData is the student-supplied payload of an assignment
// submission.
type SubmissionData struct {
	Attachments []string  `json:"attachments"`
	Comment     string    `json:"comment"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// GradeData is the tutor-side grading payload.
type GradeData struct {
	Points   float64   `json:"points"`
	Feedback string    `json:"feedback"`
	GraderID uint      `json:"grader_id"`
	GradedAt time.Time `json:"graded_at"`
}

// Store is the scope-keyed persistence layer for attempts and submissions.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ListAttempts returns the attempt history for one scope key, oldest first.
func (s *Store) ListAttempts(key ScopeKey) ([]models.QuizAttempt, error) {
	var attempts []models.QuizAttempt
	err := s.db.
		Where("student_id = ? AND quiz_id = ? AND cohort_key = ?",
			key.StudentID, key.ItemID, key.CohortKey()).
		Order("attempt_number").
		Find(&attempts).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return attempts, nil
}

// RecordQuizAttempt runs the check-then-act sequence inside one transaction:
// it reloads the history, lets build re-check eligibility and grade, stamps
// the server-computed attempt number, and inserts. Two racing submissions
// compute the same attempt number and the unique index rejects the loser
// with ErrConflict, so the attempt budget can never be exceeded.
func (s *Store) RecordQuizAttempt(key ScopeKey, build func(prior []models.QuizAttempt) (*models.QuizAttempt, error)) (*models.QuizAttempt, error) {
	var out *models.QuizAttempt
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var prior []models.QuizAttempt
		err := tx.
			Where("student_id = ? AND quiz_id = ? AND cohort_key = ?",
				key.StudentID, key.ItemID, key.CohortKey()).
			Order("attempt_number").
			Find(&prior).Error
		if err != nil {
			return storeErr(err)
		}

		attempt, err := build(prior)
		if err != nil {
			return err
		}
		attempt.ID = uuid.NewString()
		attempt.StudentID = key.StudentID
		attempt.QuizID = key.ItemID
		attempt.CohortID = key.CohortID
		attempt.CohortKey = key.CohortKey()
		attempt.AttemptNumber = len(prior) + 1

		if err := tx.Create(attempt).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrConflict
			}
			return storeErr(err)
		}
		out = attempt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertAssignmentSubmission atomically creates or overwrites the single
// submission row for a scope key. A resubmission replaces submission_data
// and resets the status; previous grade_data is left in place until the
// tutor regrades.
func (s *Store) UpsertAssignmentSubmission(key ScopeKey, courseID uint, data SubmissionData) (*models.AssignmentSubmission, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, &ValidationError{Field: "submission_data", Reason: "not serializable"}
	}

	sub := models.AssignmentSubmission{
		ID:             uuid.NewString(),
		StudentID:      key.StudentID,
		CourseID:       courseID,
		ItemID:         key.ItemID,
		CohortID:       key.CohortID,
		CohortKey:      key.CohortKey(),
		SubmissionData: payload,
		Status:         models.SubmissionStatusSubmitted,
	}
	err = s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "student_id"}, {Name: "item_id"}, {Name: "cohort_key"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"submission_data", "status", "updated_at"}),
	}).Create(&sub).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return s.GetSubmission(key)
}

// GetSubmission returns the submission for a scope key, ErrNotFound if the
// student never submitted under that path.
func (s *Store) GetSubmission(key ScopeKey) (*models.AssignmentSubmission, error) {
	var sub models.AssignmentSubmission
	err := s.db.
		Where("student_id = ? AND item_id = ? AND cohort_key = ?",
			key.StudentID, key.ItemID, key.CohortKey()).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("submission for item %d", key.ItemID)
		}
		return nil, storeErr(err)
	}
	return &sub, nil
}

// GradeAssignment marks a submission graded and attaches the grade payload.
func (s *Store) GradeAssignment(submissionID string, points float64, feedback string, graderID uint) (*models.AssignmentSubmission, error) {
	var sub models.AssignmentSubmission
	if err := s.db.First(&sub, "id = ?", submissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("submission %s", submissionID)
		}
		return nil, storeErr(err)
	}

	grade, err := json.Marshal(GradeData{
		Points:   points,
		Feedback: feedback,
		GraderID: graderID,
		GradedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, &ValidationError{Field: "grade_data", Reason: "not serializable"}
	}

	sub.Status = models.SubmissionStatusGraded
	sub.GradeData = grade
	if err := s.db.Save(&sub).Error; err != nil {
		return nil, storeErr(err)
	}
	return &sub, nil
}

// AttemptSummary is the tutor-facing roll-up of one student's attempts at a
// quiz.
type AttemptSummary struct {
	StudentID      uint    `json:"student_id"`
	Attempts       int     `json:"attempts"`
	BestPercentage float64 `json:"best_percentage"`
	Passes         int     `json:"-"`
	Passed         bool    `json:"passed"`
}

// AttemptSummaries aggregates attempt history per student for one quiz,
// across every cohort scope.
func (s *Store) AttemptSummaries(quizID uint) ([]AttemptSummary, error) {
	var rows []AttemptSummary
	err := s.db.Model(&models.QuizAttempt{}).
		Select("student_id, COUNT(*) AS attempts, MAX(percentage) AS best_percentage, SUM(CASE WHEN passed THEN 1 ELSE 0 END) AS passes").
		Where("quiz_id = ?", quizID).
		Group("student_id").
		Order("student_id").
		Scan(&rows).Error
	if err != nil {
		return nil, storeErr(err)
	}
	for i := range rows {
		rows[i].Passed = rows[i].Passes > 0
	}
	return rows, nil
}
