package services

import (
	"context"
	"errors"
	"time"

	"examprep/backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const day = 24 * time.Hour

// DayDifference counts whole 24h periods between last and now, clamped at 0
// when the clock went backwards.
func DayDifference(last, now time.Time) int {
	diff := int(now.Sub(last) / day)
	if diff < 0 {
		return 0
	}
	return diff
}

// AdvanceStreak applies one visit at now. A nil current starts a new streak.
// The returned record is a copy; LastVisit never moves backwards.
func AdvanceStreak(current *models.StudentStreak, studentID uuid.UUID, now time.Time) models.StudentStreak {
	if current == nil {
		return models.StudentStreak{StudentID: studentID, StreakCount: 1, LastVisit: now}
	}

	next := *current
	switch diff := DayDifference(current.LastVisit, now); {
	case diff == 1:
		next.StreakCount++
	case diff > 1:
		next.StreakCount = 1
	}
	if next.StreakCount < 1 {
		next.StreakCount = 1
	}
	if now.After(current.LastVisit) {
		next.LastVisit = now
	}
	return next
}

type streakStore interface {
	FindStreak(ctx context.Context, studentID uuid.UUID) (*models.StudentStreak, error)
	SaveStreak(ctx context.Context, streak *models.StudentStreak) error
}

type StreakService struct {
	store streakStore
	now   func() time.Time
}

func NewStreakService(store streakStore, now func() time.Time) *StreakService {
	if now == nil {
		now = time.Now
	}
	return &StreakService{store: store, now: now}
}

// Touch records a visit for the student and returns the stored streak.
// When a concurrent first visit inserts the row between our read and write,
// the visit is applied again on top of that row.
func (s *StreakService) Touch(ctx context.Context, studentID uuid.UUID) (*models.StudentStreak, error) {
	streak, err := s.touch(ctx, studentID)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		streak, err = s.touch(ctx, studentID)
	}
	return streak, err
}

func (s *StreakService) touch(ctx context.Context, studentID uuid.UUID) (*models.StudentStreak, error) {
	current, err := s.store.FindStreak(ctx, studentID)
	if err != nil {
		return nil, err
	}

	next := AdvanceStreak(current, studentID, s.now())
	if err := s.store.SaveStreak(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

func (s *StreakService) Get(ctx context.Context, studentID uuid.UUID) (*models.StudentStreak, error) {
	return s.store.FindStreak(ctx, studentID)
}
