package repository

import (
	"context"
	"fmt"

	"examprep/backend/models"

	"github.com/google/uuid"
)

// Identity is the sanitized view of an authenticated account.
type Identity struct {
	ID    uuid.UUID   `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  models.Role `json:"-"`
}

func (r *Repository) CreateTeacher(ctx context.Context, teacher *models.Teacher) error {
	return r.conn(ctx).Create(teacher).Error
}

func (r *Repository) FindTeacherByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := r.conn(ctx).Where("email = ?", email).First(&teacher).Error; err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *Repository) FindTeacherByID(ctx context.Context, id uuid.UUID) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := r.conn(ctx).First(&teacher, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *Repository) TeacherEmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&models.Teacher{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *Repository) CreateStudent(ctx context.Context, student *models.Student) error {
	return r.conn(ctx).Create(student).Error
}

func (r *Repository) FindStudentByEmail(ctx context.Context, email string) (*models.Student, error) {
	var student models.Student
	if err := r.conn(ctx).Where("email = ?", email).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *Repository) FindStudentByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	var student models.Student
	if err := r.conn(ctx).First(&student, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *Repository) StudentEmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&models.Student{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// LoadIdentity resolves a token subject to the account it names.
func (r *Repository) LoadIdentity(ctx context.Context, role models.Role, id uuid.UUID) (*Identity, error) {
	switch role {
	case models.RoleTeacher:
		teacher, err := r.FindTeacherByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return &Identity{ID: teacher.ID, Email: teacher.Email, Name: teacher.Name, Role: role}, nil
	case models.RoleStudent:
		student, err := r.FindStudentByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return &Identity{ID: student.ID, Email: student.Email, Name: student.Name, Role: role}, nil
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}
}
