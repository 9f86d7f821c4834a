package handlers

import (
	"github.com/gofiber/fiber/v2"

	"ahorify-go-be/database"
	"ahorify-go-be/models"
)

// WaitlistStatus reports whether new sign-ups land on the waitlist.
func WaitlistStatus(c *fiber.Ctx) error {
	var totalUsers int64
	if err := database.DB.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		Log.Error().Err(err).Msg("count users")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error verificando waitlist"})
	}

	return c.JSON(fiber.Map{
		"on_waitlist":    totalUsers >= int64(Cfg.WaitlistLimit),
		"total_users":    totalUsers,
		"waitlist_limit": Cfg.WaitlistLimit,
	})
}

// BetaStatus is public: remaining beta slots, floored at 100 so the
// frontend always shows urgency.
func BetaStatus(c *fiber.Ctx) error {
	var totalUsers int64
	if err := database.DB.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		Log.Error().Err(err).Msg("count users for beta status")
		return c.JSON(fiber.Map{"slots_remaining": 100})
	}

	slots := int64(Cfg.MaxBetaUsers) - totalUsers
	if slots < 100 {
		slots = 100
	}
	return c.JSON(fiber.Map{"slots_remaining": slots})
}
