package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ahorify-go-be/database"
	"ahorify-go-be/models"
)

// DeviceSubscriptionRequest registers a device for push notifications.
type DeviceSubscriptionRequest struct {
	GoogleID   string `json:"google_id"`
	PlayerID   string `json:"player_id"`
	DeviceType string `json:"device_type"`
	UserAgent  string `json:"user_agent"`
}

// SubscribeDevice registers or reactivates a OneSignal device subscription.
func SubscribeDevice(c *fiber.Ctx) error {
	var req DeviceSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.PlayerID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "player_id required"})
	}
	user, ok := requireUser(c, req.GoogleID)
	if !ok {
		return nil
	}
	if req.DeviceType == "" {
		req.DeviceType = "web"
	}

	var existing models.DeviceSubscription
	err := database.DB.First(&existing, "one_signal_player_id = ?", req.PlayerID).Error
	switch {
	case err == nil:
		existing.UserID = user.ID
		existing.IsActive = true
		existing.DeviceType = req.DeviceType
		existing.UserAgent = req.UserAgent
		if err := database.DB.Save(&existing).Error; err != nil {
			Log.Error().Err(err).Msg("update subscription")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error suscribiendo dispositivo"})
		}
		return c.JSON(fiber.Map{
			"success":         true,
			"subscription_id": existing.ID.String(),
			"message":         "Suscripción actualizada",
		})

	case errors.Is(err, gorm.ErrRecordNotFound):
		subscription := models.DeviceSubscription{
			UserID:            user.ID,
			OneSignalPlayerID: req.PlayerID,
			DeviceType:        req.DeviceType,
			UserAgent:         req.UserAgent,
			IsActive:          true,
		}
		if err := database.DB.Create(&subscription).Error; err != nil {
			Log.Error().Err(err).Msg("create subscription")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error suscribiendo dispositivo"})
		}
		return c.JSON(fiber.Map{
			"success":         true,
			"subscription_id": subscription.ID.String(),
			"message":         "Dispositivo suscrito correctamente",
		})

	default:
		Log.Error().Err(err).Msg("lookup subscription")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error suscribiendo dispositivo"})
	}
}

// UnsubscribeDevice deactivates a device subscription without deleting it.
func UnsubscribeDevice(c *fiber.Ctx) error {
	playerID := c.Query("player_id")
	if playerID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "player_id required"})
	}
	user, ok := requireUser(c, c.Query("google_id"))
	if !ok {
		return nil
	}

	var subscription models.DeviceSubscription
	err := database.DB.First(&subscription, "one_signal_player_id = ? AND user_id = ?", playerID, user.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Suscripción no encontrada"})
		}
		Log.Error().Err(err).Msg("lookup subscription")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error desuscribiendo dispositivo"})
	}

	subscription.IsActive = false
	if err := database.DB.Save(&subscription).Error; err != nil {
		Log.Error().Err(err).Msg("save subscription")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error desuscribiendo dispositivo"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Suscripción desactivada"})
}
