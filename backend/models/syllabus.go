package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Syllabus struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string         `json:"title"`
	Content   datatypes.JSON `gorm:"not null" json:"content"`
	TeacherID uuid.UUID      `gorm:"type:uuid;not null;index" json:"teacherId"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (s *Syllabus) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
