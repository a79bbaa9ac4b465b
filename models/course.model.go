package models

import "gorm.io/gorm"

// Course represents a learning course sold on the marketplace
type Course struct {
	gorm.Model
	Title        string `json:"title"`
	Description  string `json:"description"`
	InstructorID uint   `json:"instructor_id" gorm:"index;not null"`
	Price        int64  `json:"price" gorm:"not null;default:0"` // smallest currency unit (cents)
	Currency     string `json:"currency" gorm:"type:varchar(3);default:'USD'"`
	Duration     int64  `json:"duration" gorm:"default:0"`     // duration in hours
	Status       string `json:"status" gorm:"default:'DRAFT'"` // DRAFT, ACTIVE, INACTIVE
	ThumbnailURL string `json:"thumbnail_url"`
	IsPublished  bool   `json:"is_published" gorm:"default:false"`
	// EnrollmentCount only ever grows through payment completion and must be
	// incremented inside the same transaction as the enrollment insert.
	EnrollmentCount uint `json:"enrollment_count" gorm:"default:0"`
	IsDeleted       bool `gorm:"default:false"`
}
