package assessment

import (
	"math"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/models"
)

// Ledger holds the per-item completion flags, one row per scope key.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// MarkCompleted upserts the completion flag for a scope key. completed_at is
// stamped only on the false-to-true transition and cleared on the way back;
// repeating the same value refreshes updated_at and nothing else.
func (l *Ledger) MarkCompleted(key ScopeKey, courseID uint, completed bool) (*models.ProgressRecord, error) {
	now := time.Now().UTC()
	rec := models.ProgressRecord{
		StudentID:   key.StudentID,
		CourseID:    courseID,
		ItemID:      key.ItemID,
		CohortID:    key.CohortID,
		CohortKey:   key.CohortKey(),
		IsCompleted: completed,
	}
	if completed {
		rec.CompletedAt = &now
	}

	err := l.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "student_id"}, {Name: "item_id"}, {Name: "cohort_key"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"is_completed": completed,
			"updated_at":   now,
			"completed_at": gorm.Expr(
				"CASE WHEN NOT excluded.is_completed THEN NULL " +
					"WHEN progress_records.is_completed THEN progress_records.completed_at " +
					"ELSE excluded.completed_at END"),
		}),
	}).Create(&rec).Error
	if err != nil {
		return nil, storeErr(err)
	}

	var saved models.ProgressRecord
	err = l.db.
		Where("student_id = ? AND item_id = ? AND cohort_key = ?",
			key.StudentID, key.ItemID, key.CohortKey()).
		First(&saved).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return &saved, nil
}

// ListForCourse returns the progress rows of one student for one course
// under one cohort scope.
func (l *Ledger) ListForCourse(studentID, courseID uint, cohortID *uint) ([]models.ProgressRecord, error) {
	key := ScopeKey{StudentID: studentID, CohortID: cohortID}
	var records []models.ProgressRecord
	err := l.db.
		Where("student_id = ? AND course_id = ? AND cohort_key = ?",
			studentID, courseID, key.CohortKey()).
		Order("item_id").
		Find(&records).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return records, nil
}

// CourseProgress rolls per-item completion up into a rounded percent of the
// course item list; 0 for an empty course. Reporting only, never gating.
func CourseProgress(itemIDs []uint, records []models.ProgressRecord) int {
	if len(itemIDs) == 0 {
		return 0
	}
	completed := make(map[uint]bool, len(records))
	for _, r := range records {
		if r.IsCompleted {
			completed[r.ItemID] = true
		}
	}
	n := 0
	for _, id := range itemIDs {
		if completed[id] {
			n++
		}
	}
	return int(math.Round(100 * float64(n) / float64(len(itemIDs))))
}
