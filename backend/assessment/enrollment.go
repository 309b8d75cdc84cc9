package assessment

import (
	"errors"

	"gorm.io/gorm"

	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/models"
)

// EnrollmentPath is one way a student reaches a course: directly (nil
// CohortID, never locked) or through a cohort whose course link may be
// locked.
type EnrollmentPath struct {
	CohortID *uint
	Locked   bool
}

// EnrollmentResolver is the membership store the engine consumes.
type EnrollmentResolver interface {
	ResolvePaths(studentID, courseID uint) ([]EnrollmentPath, error)
}

type gormEnrollments struct {
	db *gorm.DB
}

func NewEnrollmentResolver(db *gorm.DB) EnrollmentResolver {
	return &gormEnrollments{db: db}
}

func (r *gormEnrollments) ResolvePaths(studentID, courseID uint) ([]EnrollmentPath, error) {
	var enrollments []models.Enrollment
	err := r.db.Where("student_id = ? AND course_id = ?", studentID, courseID).
		Find(&enrollments).Error
	if err != nil {
		return nil, storeErr(err)
	}

	paths := make([]EnrollmentPath, 0, len(enrollments))
	for _, e := range enrollments {
		if e.CohortID == nil {
			paths = append(paths, EnrollmentPath{})
			continue
		}
		var link models.CourseCohort
		err := r.db.Where("course_id = ? AND cohort_id = ?", courseID, *e.CohortID).
			First(&link).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// cohort no longer linked to the course: treat as locked
				paths = append(paths, EnrollmentPath{CohortID: e.CohortID, Locked: true})
				continue
			}
			return nil, storeErr(err)
		}
		paths = append(paths, EnrollmentPath{CohortID: e.CohortID, Locked: link.Locked})
	}
	return paths, nil
}

// pathUnlocked reports whether the requested path (cohort or direct) exists
// and is open.
func pathUnlocked(paths []EnrollmentPath, cohortID *uint) bool {
	for _, p := range paths {
		if cohortID == nil && p.CohortID == nil {
			return true
		}
		if cohortID != nil && p.CohortID != nil && *cohortID == *p.CohortID {
			return !p.Locked
		}
	}
	return false
}
