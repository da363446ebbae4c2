package controllers

import (
	"log"

	"examprep/backend/services"
	"examprep/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type StreakController struct {
	Streaks *services.StreakService
	Logger  *log.Logger
}

func NewStreakController(streaks *services.StreakService, logger *log.Logger) *StreakController {
	return &StreakController{Streaks: streaks, Logger: logger}
}

// Update records today's visit.
func (sc *StreakController) Update(c *fiber.Ctx) error {
	streak, err := sc.Streaks.Touch(c.UserContext(), identityID(c))
	if err != nil {
		return utils.InternalServerError(c, sc.Logger, "Internal server error", err)
	}
	return c.JSON(fiber.Map{"streak": streak})
}

func (sc *StreakController) Get(c *fiber.Ctx) error {
	streak, err := sc.Streaks.Get(c.UserContext(), identityID(c))
	if err != nil {
		return utils.InternalServerError(c, sc.Logger, "Internal server error", err)
	}
	if streak == nil {
		return c.JSON(fiber.Map{"streak": fiber.Map{"streakCount": 0}})
	}
	return c.JSON(fiber.Map{"streak": streak})
}
