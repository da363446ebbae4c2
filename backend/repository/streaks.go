package repository

import (
	"context"
	"errors"

	"examprep/backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FindStreak returns nil, nil when the student has no streak yet.
func (r *Repository) FindStreak(ctx context.Context, studentID uuid.UUID) (*models.StudentStreak, error) {
	var streak models.StudentStreak
	err := r.conn(ctx).Where("student_id = ?", studentID).First(&streak).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &streak, nil
}

// SaveStreak inserts a new streak or updates an existing one.
func (r *Repository) SaveStreak(ctx context.Context, streak *models.StudentStreak) error {
	if streak.ID == uuid.Nil {
		return r.conn(ctx).Create(streak).Error
	}
	return r.conn(ctx).Model(streak).Updates(map[string]interface{}{
		"streak_count": streak.StreakCount,
		"last_visit":   streak.LastVisit,
	}).Error
}
