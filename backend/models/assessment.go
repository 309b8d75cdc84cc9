package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	SubmissionStatusSubmitted = "submitted"
	SubmissionStatusGraded    = "graded"
)

// QuizAttempt is one graded quiz submission. Rows are append-only; the unique
// index on (student, quiz, cohort_key, attempt_number) is what stops two
// racing submissions from both taking the same slot.
type QuizAttempt struct {
	ID             string `gorm:"primaryKey;size:36"`
	StudentID      uint   `gorm:"not null;index:idx_attempt_scope,priority:1;uniqueIndex:idx_attempt_slot,priority:1"`
	CourseID       uint   `gorm:"not null"`
	QuizID         uint   `gorm:"not null;index:idx_attempt_scope,priority:2;uniqueIndex:idx_attempt_slot,priority:2"`
	CohortID       *uint
	CohortKey      string `gorm:"not null;default:'';index:idx_attempt_scope,priority:3;uniqueIndex:idx_attempt_slot,priority:3"`
	AttemptNumber  int    `gorm:"not null;uniqueIndex:idx_attempt_slot,priority:4"`
	Score          int
	TotalQuestions int
	Percentage     float64
	Passed         bool
	Answers        datatypes.JSON
	Results        datatypes.JSON
	CreatedAt      time.Time
}

// AssignmentSubmission keeps at most one row per scope key; a resubmission
// overwrites submission_data in place and resets the status to submitted.
type AssignmentSubmission struct {
	ID             string `gorm:"primaryKey;size:36"`
	StudentID      uint   `gorm:"not null;uniqueIndex:idx_submission_scope,priority:1"`
	CourseID       uint   `gorm:"not null"`
	ItemID         uint   `gorm:"not null;uniqueIndex:idx_submission_scope,priority:2"`
	CohortID       *uint
	CohortKey      string `gorm:"not null;default:'';uniqueIndex:idx_submission_scope,priority:3"`
	SubmissionData datatypes.JSON
	Status         string `gorm:"default:submitted"` // submitted, graded
	GradeData      datatypes.JSON
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ProgressRecord is the per-item completion flag, one row per scope key.
type ProgressRecord struct {
	gorm.Model
	StudentID   uint `gorm:"not null;uniqueIndex:idx_progress_scope,priority:1;index:idx_progress_course,priority:1"`
	CourseID    uint `gorm:"not null;index:idx_progress_course,priority:2"`
	ItemID      uint `gorm:"not null;uniqueIndex:idx_progress_scope,priority:2"`
	CohortID    *uint
	CohortKey   string `gorm:"not null;default:'';uniqueIndex:idx_progress_scope,priority:3;index:idx_progress_course,priority:3"`
	IsCompleted bool
	CompletedAt *time.Time
}
