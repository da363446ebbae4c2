package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ExamType string

const (
	ExamTypeFree ExamType = "Free"
	ExamTypePaid ExamType = "Paid"
)

type ExamCategory string

const (
	CategoryPrelims ExamCategory = "Prelims"
	CategoryMains   ExamCategory = "Mains"
)

// PrelimsQuestion is one multiple-choice question; Image is an optional
// base64 payload.
type PrelimsQuestion struct {
	Question string   `json:"question" validate:"required"`
	Answers  []string `json:"answers" validate:"required,min=2,dive,required"`
	Image    string   `json:"image,omitempty"`
}

type AnswerKeyEntry struct {
	CorrectAnswerIndex int    `json:"correctAnswerIndex" validate:"min=0"`
	Reason             string `json:"reason,omitempty"`
}

type SubjectScope struct {
	Subject   string   `json:"subject" validate:"required"`
	Subtopics []string `json:"subtopics"`
}

// Exam holds both categories; QuestionData/Subjects are Prelims-only and
// FileURL is Mains-only.
type Exam struct {
	ID           uuid.UUID                            `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string                               `gorm:"not null" json:"title"`
	Type         ExamType                             `gorm:"type:varchar(10);not null;index" json:"type"`
	TestType     string                               `gorm:"type:varchar(20)" json:"testType,omitempty"`
	Category     ExamCategory                         `gorm:"type:varchar(10);not null;index" json:"category"`
	Duration     int                                  `gorm:"not null" json:"duration"`
	TotalMarks   int                                  `gorm:"not null" json:"totalMarks"`
	QuestionData datatypes.JSONSlice[PrelimsQuestion] `json:"questionData,omitempty"`
	Subjects     datatypes.JSON                       `json:"subjects,omitempty"`
	FileURL      string                               `json:"fileUrl,omitempty"`
	TeacherID    uuid.UUID                            `gorm:"type:uuid;not null;index" json:"teacherId"`
	CreatedAt    time.Time                            `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time                            `json:"updatedAt"`

	PrelimsAnswerKey *PrelimsAnswerKey `gorm:"foreignKey:ExamID;constraint:OnDelete:CASCADE" json:"prelimsAnswerKey,omitempty"`
}

func (e *Exam) BeforeCreate(tx *gorm.DB) error {
	ensureID(&e.ID)
	return nil
}

type PrelimsAnswerKey struct {
	ID            uuid.UUID                           `gorm:"type:uuid;primaryKey" json:"id"`
	ExamID        uuid.UUID                           `gorm:"type:uuid;uniqueIndex;not null" json:"examId"`
	AnswerKeyData datatypes.JSONSlice[AnswerKeyEntry] `gorm:"not null" json:"answerKeyData"`
}

func (k *PrelimsAnswerKey) BeforeCreate(tx *gorm.DB) error {
	ensureID(&k.ID)
	return nil
}
