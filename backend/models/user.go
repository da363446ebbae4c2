package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Teacher struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	PhoneNumber string    `json:"phoneNumber"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Exams      []Exam     `gorm:"foreignKey:TeacherID;constraint:OnDelete:CASCADE" json:"-"`
	Syllabuses []Syllabus `gorm:"foreignKey:TeacherID;constraint:OnDelete:CASCADE" json:"-"`
}

func (t *Teacher) BeforeCreate(tx *gorm.DB) error {
	ensureID(&t.ID)
	return nil
}

type Student struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	PhoneNumber string     `json:"phoneNumber"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Todos  []Todo         `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	Streak *StudentStreak `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
