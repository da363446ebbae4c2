package repository

import (
	"context"

	"examprep/backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExamFilter narrows ListExams; zero values are ignored except Category.
// Answer keys are only loaded when WithAnswerKey is set, so public listings
// never carry them.
type ExamFilter struct {
	Category      models.ExamCategory
	TeacherID     uuid.UUID
	Type          models.ExamType
	WithAnswerKey bool
}

// CreateExam inserts the exam together with its nested answer key.
func (r *Repository) CreateExam(ctx context.Context, exam *models.Exam) error {
	return r.conn(ctx).Create(exam).Error
}

// FindExam loads an exam of the given category, with its answer key for
// Prelims exams.
func (r *Repository) FindExam(ctx context.Context, id uuid.UUID, category models.ExamCategory) (*models.Exam, error) {
	query := r.conn(ctx).Where("id = ? AND category = ?", id, category)
	if category == models.CategoryPrelims {
		query = query.Preload("PrelimsAnswerKey")
	}

	var exam models.Exam
	if err := query.First(&exam).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *Repository) ListExams(ctx context.Context, filter ExamFilter) ([]models.Exam, error) {
	query := r.conn(ctx).Where("category = ?", filter.Category)
	if filter.TeacherID != uuid.Nil {
		query = query.Where("teacher_id = ?", filter.TeacherID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.WithAnswerKey && filter.Category == models.CategoryPrelims {
		query = query.Preload("PrelimsAnswerKey")
	}

	exams := []models.Exam{}
	if err := query.Order("created_at DESC").Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

// DeleteExam removes the exam and every row that references it.
func (r *Repository) DeleteExam(ctx context.Context, id uuid.UUID) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("exam_id = ?", id).Delete(&models.PrelimsAnswerKey{}).Error; err != nil {
			return err
		}
		if err := tx.Where("exam_id = ?", id).Delete(&models.PrelimsAttempt{}).Error; err != nil {
			return err
		}
		if err := tx.Where("exam_id = ?", id).Delete(&models.MainsAttempt{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Exam{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
