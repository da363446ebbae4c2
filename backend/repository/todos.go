package repository

import (
	"context"

	"examprep/backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *Repository) CreateTodo(ctx context.Context, todo *models.Todo) error {
	return r.conn(ctx).Create(todo).Error
}

func (r *Repository) FindTodo(ctx context.Context, id uuid.UUID) (*models.Todo, error) {
	var todo models.Todo
	if err := r.conn(ctx).First(&todo, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *Repository) ListTodosByStudent(ctx context.Context, studentID uuid.UUID) ([]models.Todo, error) {
	todos := []models.Todo{}
	err := r.conn(ctx).Where("student_id = ?", studentID).Order("created_at DESC").Find(&todos).Error
	return todos, err
}

func (r *Repository) UpdateTodo(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*models.Todo, error) {
	if len(fields) > 0 {
		result := r.conn(ctx).Model(&models.Todo{}).Where("id = ?", id).Updates(fields)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindTodo(ctx, id)
}

func (r *Repository) DeleteTodo(ctx context.Context, id uuid.UUID) error {
	result := r.conn(ctx).Where("id = ?", id).Delete(&models.Todo{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
