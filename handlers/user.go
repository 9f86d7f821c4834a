package handlers

import (
	"github.com/gofiber/fiber/v2"

	"ahorify-go-be/aury"
	"ahorify-go-be/database"
)

// UserGoalRequest sets the savings goal ("what are you saving for?").
type UserGoalRequest struct {
	Goal string `json:"goal"`
}

// SetGoal stores the user's savings goal.
func SetGoal(c *fiber.Ctx) error {
	user, ok := requireUser(c, c.Query("google_id"))
	if !ok {
		return nil
	}

	var req UserGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(req.Goal) == 0 || len(req.Goal) > 500 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "goal must be 1-500 characters"})
	}

	user.Goal = req.Goal
	if err := database.DB.Save(user).Error; err != nil {
		Log.Error().Err(err).Msg("save goal")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error guardando goal"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"goal":    user.Goal,
		"message": "Objetivo guardado correctamente",
	})
}

// AuryToneRequest changes the commentary tone preference.
type AuryToneRequest struct {
	GoogleID string `json:"google_id"`
	Tone     string `json:"tone"`
}

// SetAuryTone updates the user's tone preference. Invalid tones are
// rejected before anything is written.
func SetAuryTone(c *fiber.Ctx) error {
	var req AuryToneRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	tone, err := aury.ParseTone(req.Tone)
	if err != nil || req.Tone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Tono debe ser uno de: sarcastic, subtle, analytical"})
	}

	user, ok := requireUser(c, req.GoogleID)
	if !ok {
		return nil
	}

	user.AuryTone = string(tone)
	if err := database.DB.Save(user).Error; err != nil {
		Log.Error().Err(err).Msg("save tone")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error cambiando tono"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"tone":    string(tone),
		"message": "Tono de Aury cambiado a: " + tone.DisplayName(),
	})
}

// GetAuryTone returns the user's current tone preference.
func GetAuryTone(c *fiber.Ctx) error {
	user, ok := requireUser(c, c.Query("google_id"))
	if !ok {
		return nil
	}

	tone, err := aury.ParseTone(user.AuryTone)
	if err != nil {
		tone = aury.ToneSarcastic
	}
	return c.JSON(fiber.Map{
		"tone":      string(tone),
		"tone_name": tone.DisplayName(),
	})
}
