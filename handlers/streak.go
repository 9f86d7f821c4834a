package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// RachaResponse is the streak dashboard payload.
type RachaResponse struct {
	GoogleID         string     `json:"google_id"`
	CurrentStreak    int        `json:"current_streak"`
	LongestStreak    int        `json:"longest_streak"`
	FreezeInventory  int        `json:"freeze_inventory"` // 1 when the weekly protector is available
	IsPlusUser       bool       `json:"is_plus_user"`
	LastActivityDate *time.Time `json:"last_activity_date"`
}

// GetRacha returns the user's streak and current freeze availability.
func GetRacha(c *fiber.Ctx) error {
	user, ok := requireUser(c, c.Query("google_id"))
	if !ok {
		return nil
	}

	streakRow, err := Streaks.GetOrCreate(user.ID)
	if err != nil {
		Log.Error().Err(err).Msg("get or create streak")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error obteniendo racha"})
	}

	canUse, err := Streaks.CanUseWeeklyFreeze(user.ID, time.Now())
	if err != nil {
		Log.Error().Err(err).Msg("check weekly freeze")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error obteniendo racha"})
	}
	freezeInventory := 0
	if canUse {
		freezeInventory = 1
	}

	return c.JSON(RachaResponse{
		GoogleID:         user.GoogleID,
		CurrentStreak:    streakRow.CurrentStreak,
		LongestStreak:    streakRow.LongestStreak,
		FreezeInventory:  freezeInventory,
		IsPlusUser:       false, // no PLUS logic in V1.5
		LastActivityDate: streakRow.LastActivityDate,
	})
}

// StreakFreezeRequest asks to consume the weekly protector proactively.
type StreakFreezeRequest struct {
	GoogleID string `json:"google_id"`
}

// UseFreeze consumes the weekly streak protector manually.
func UseFreeze(c *fiber.Ctx) error {
	var req StreakFreezeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	user, ok := requireUser(c, req.GoogleID)
	if !ok {
		return nil
	}

	result, err := Streaks.UseFreeze(user.ID)
	if err != nil {
		Log.Error().Err(err).Msg("use freeze")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error usando freeze"})
	}
	if !result.Success {
		return c.Status(fiber.StatusBadRequest).JSON(result)
	}
	return c.JSON(result)
}
