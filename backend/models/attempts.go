package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EvaluatedFeedback marks a mains attempt as graded when the teacher leaves
// no comment of their own.
const EvaluatedFeedback = "Evaluated"

type PrelimsAttempt struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID   uuid.UUID `gorm:"type:uuid;not null;index" json:"studentId"`
	ExamID      uuid.UUID `gorm:"type:uuid;not null;index" json:"examId"`
	Score       float64   `gorm:"not null" json:"score"`
	Accuracy    float64   `gorm:"not null" json:"accuracy"`
	Attempts    int       `gorm:"not null" json:"attempts"`
	AttemptDate time.Time `gorm:"not null;index" json:"attemptDate"`

	Student *Student `gorm:"constraint:OnDelete:CASCADE" json:"student,omitempty"`
	Exam    *Exam    `gorm:"constraint:OnDelete:CASCADE" json:"exam,omitempty"`
}

func (a *PrelimsAttempt) BeforeCreate(tx *gorm.DB) error {
	ensureID(&a.ID)
	if a.AttemptDate.IsZero() {
		a.AttemptDate = time.Now()
	}
	return nil
}

// MainsAttempt is pending while Feedback is empty.
type MainsAttempt struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID      uuid.UUID `gorm:"type:uuid;not null;index" json:"studentId"`
	ExamID         uuid.UUID `gorm:"type:uuid;not null;index" json:"examId"`
	AnswerSheetURL string    `gorm:"not null" json:"answerSheetUrl"`
	Score          int       `gorm:"not null;default:0" json:"score"`
	Feedback       string    `gorm:"not null;default:''" json:"feedback"`
	AttemptDate    time.Time `gorm:"not null;index" json:"attemptDate"`

	Student *Student `gorm:"constraint:OnDelete:CASCADE" json:"student,omitempty"`
	Exam    *Exam    `gorm:"constraint:OnDelete:CASCADE" json:"exam,omitempty"`
}

func (a *MainsAttempt) BeforeCreate(tx *gorm.DB) error {
	ensureID(&a.ID)
	if a.AttemptDate.IsZero() {
		a.AttemptDate = time.Now()
	}
	return nil
}

func (a *MainsAttempt) Pending() bool {
	return a.Feedback == ""
}
