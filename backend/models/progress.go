package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentStreak struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"studentId"`
	StreakCount int       `gorm:"not null;default:1" json:"streakCount"`
	LastVisit   time.Time `gorm:"not null" json:"lastVisit"`
}

func (s *StudentStreak) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
