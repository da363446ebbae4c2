package repository

import (
	"context"

	"examprep/backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func examSummary(tx *gorm.DB) *gorm.DB {
	return tx.Select("id", "title", "total_marks", "teacher_id", "category")
}

func studentSummary(tx *gorm.DB) *gorm.DB {
	return tx.Select("id", "name", "email")
}

func (r *Repository) CreatePrelimsAttempt(ctx context.Context, attempt *models.PrelimsAttempt) error {
	return r.conn(ctx).Create(attempt).Error
}

func (r *Repository) ListPrelimsAttemptsByStudent(ctx context.Context, studentID uuid.UUID) ([]models.PrelimsAttempt, error) {
	attempts := []models.PrelimsAttempt{}
	err := r.conn(ctx).
		Preload("Exam", examSummary).
		Where("student_id = ?", studentID).
		Order("attempt_date DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *Repository) CreateMainsAttempt(ctx context.Context, attempt *models.MainsAttempt) error {
	return r.conn(ctx).Create(attempt).Error
}

// FindMainsAttempt loads the attempt with its full exam so ownership can be
// checked against the exam's teacher.
func (r *Repository) FindMainsAttempt(ctx context.Context, id uuid.UUID) (*models.MainsAttempt, error) {
	var attempt models.MainsAttempt
	if err := r.conn(ctx).Preload("Exam").First(&attempt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *Repository) ListMainsAttemptsByStudent(ctx context.Context, studentID uuid.UUID) ([]models.MainsAttempt, error) {
	attempts := []models.MainsAttempt{}
	err := r.conn(ctx).
		Preload("Exam", examSummary).
		Where("student_id = ?", studentID).
		Order("attempt_date DESC").
		Find(&attempts).Error
	return attempts, err
}

// ListPendingMainsAttempts returns unevaluated attempts on the teacher's exams.
func (r *Repository) ListPendingMainsAttempts(ctx context.Context, teacherID uuid.UUID) ([]models.MainsAttempt, error) {
	attempts := []models.MainsAttempt{}
	err := r.conn(ctx).
		Preload("Student", studentSummary).
		Preload("Exam", examSummary).
		Where("feedback = ?", "").
		Where("exam_id IN (?)", r.conn(ctx).Model(&models.Exam{}).Select("id").Where("teacher_id = ?", teacherID)).
		Order("attempt_date DESC").
		Find(&attempts).Error
	return attempts, err
}

// UpdateMainsAttempt applies the given columns and returns the reloaded row.
func (r *Repository) UpdateMainsAttempt(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*models.MainsAttempt, error) {
	result := r.conn(ctx).Model(&models.MainsAttempt{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var attempt models.MainsAttempt
	err := r.conn(ctx).
		Preload("Student", studentSummary).
		Preload("Exam", examSummary).
		First(&attempt, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}
