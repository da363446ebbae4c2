package models

import "github.com/google/uuid"

// Role identifies which account table a token refers to.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
