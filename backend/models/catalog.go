package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ItemTypeLesson     = "lesson"
	ItemTypeQuiz       = "quiz"
	ItemTypeAssignment = "assignment"
	ItemTypeLiveClass  = "live-class"
)

type Course struct {
	gorm.Model
	Title       string
	ShortDesc   string
	Description string
	AuthorID    uint
	Modules     []CourseModule
}

type CourseModule struct {
	gorm.Model
	CourseID      uint `gorm:"index"`
	Title         string
	SequenceOrder int
	Items         []ModuleItem `gorm:"foreignKey:ModuleID"`
}

// ModuleItem is one entry of the curriculum tree. Metadata holds the
// type-specific payload; for quizzes it decodes to assessment.QuizConfig.
type ModuleItem struct {
	gorm.Model
	ModuleID      uint `gorm:"index"`
	CourseID      uint `gorm:"index"`
	Type          string
	Title         string
	SequenceOrder int
	Metadata      datatypes.JSON
}
