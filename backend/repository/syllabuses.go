package repository

import (
	"context"

	"examprep/backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *Repository) CreateSyllabus(ctx context.Context, syllabus *models.Syllabus) error {
	return r.conn(ctx).Create(syllabus).Error
}

func (r *Repository) FindSyllabus(ctx context.Context, id uuid.UUID) (*models.Syllabus, error) {
	var syllabus models.Syllabus
	if err := r.conn(ctx).First(&syllabus, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &syllabus, nil
}

func (r *Repository) ListSyllabusesByTeacher(ctx context.Context, teacherID uuid.UUID) ([]models.Syllabus, error) {
	syllabuses := []models.Syllabus{}
	err := r.conn(ctx).Where("teacher_id = ?", teacherID).Order("created_at DESC").Find(&syllabuses).Error
	return syllabuses, err
}

func (r *Repository) UpdateSyllabus(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*models.Syllabus, error) {
	result := r.conn(ctx).Model(&models.Syllabus{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindSyllabus(ctx, id)
}

func (r *Repository) DeleteSyllabus(ctx context.Context, id uuid.UUID) error {
	result := r.conn(ctx).Where("id = ?", id).Delete(&models.Syllabus{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
