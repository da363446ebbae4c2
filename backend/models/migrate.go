package models

import "gorm.io/gorm"

// All lists every table in dependency order.
func All() []interface{} {
	return []interface{}{
		&Teacher{},
		&Student{},
		&Exam{},
		&PrelimsAnswerKey{},
		&PrelimsAttempt{},
		&MainsAttempt{},
		&StudentStreak{},
		&Syllabus{},
		&Todo{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
