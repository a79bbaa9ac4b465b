package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment tracks a student's enrollment in a course with progress.
// The composite unique index backs the at-most-one-enrollment-per-pair rule
// even when two purchase completions for the same pair race each other.
type Enrollment struct {
	gorm.Model
	StudentID uint `json:"student_id" gorm:"uniqueIndex:idx_student_course;not null"`
	CourseID  uint `json:"course_id" gorm:"uniqueIndex:idx_student_course;not null"`
	PaymentID uint `json:"payment_id" gorm:"index"`

	Status         string     `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, IN_PROGRESS, COMPLETED
	Progress       float64    `json:"progress" gorm:"default:0"`        // Completion percentage (0-100)
	CompletedAt    *time.Time `json:"completed_at"`
	LastAccessedAt *time.Time `json:"last_accessed_at"`
	IsDeleted      bool       `gorm:"default:false"`

	Course Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}
