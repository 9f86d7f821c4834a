package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"ahorify-go-be/auth"
	"ahorify-go-be/aury"
	"ahorify-go-be/config"
	"ahorify-go-be/models"
	"ahorify-go-be/parser"
	"ahorify-go-be/streak"
)

// Package-level dependencies, wired once from main.
var (
	Cfg     *config.Config
	Auth    *auth.Service
	Streaks *streak.Service
	Aury    *aury.Service
	Parse   *parser.Parser
	Log     zerolog.Logger
)

// Init wires the handler dependencies.
func Init(cfg *config.Config, authSvc *auth.Service, streakSvc *streak.Service, aurySvc *aury.Service, p *parser.Parser, log zerolog.Logger) {
	Cfg = cfg
	Auth = authSvc
	Streaks = streakSvc
	Aury = aurySvc
	Parse = p
	Log = log
}

// requireUser resolves google_id to a user or writes the 404 response.
// The returned bool reports whether the request may proceed.
func requireUser(c *fiber.Ctx, googleID string) (*models.User, bool) {
	if googleID == "" {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "google_id required"})
		return nil, false
	}
	user, err := Auth.GetUserByGoogleID(googleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Usuario no encontrado"})
		} else {
			Log.Error().Err(err).Msg("load user")
			c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load user"})
		}
		return nil, false
	}
	return user, true
}
