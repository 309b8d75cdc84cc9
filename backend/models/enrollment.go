package models

import "gorm.io/gorm"

type Cohort struct {
	gorm.Model
	Name string `gorm:"not null"`
}

// CourseCohort links a cohort to a course. Locked links keep cohort members
// out of the course until a tutor reopens them.
type CourseCohort struct {
	gorm.Model
	CourseID uint `gorm:"not null;uniqueIndex:idx_course_cohort"`
	CohortID uint `gorm:"not null;uniqueIndex:idx_course_cohort"`
	Locked   bool `gorm:"default:false"`
}

// Enrollment is one access path of a student into a course. CohortID nil is
// the direct path.
type Enrollment struct {
	gorm.Model
	StudentID uint `gorm:"not null;index:idx_enrollment_student_course"`
	CourseID  uint `gorm:"not null;index:idx_enrollment_student_course"`
	CohortID  *uint
}
