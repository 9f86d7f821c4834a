package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ahorify-go-be/auth"
)

// GoogleAuthRequest carries the Google ID token to verify.
type GoogleAuthRequest struct {
	Token string `json:"token"`
}

// GoogleAuthResponse returns the resolved identity.
type GoogleAuthResponse struct {
	GoogleID  string `json:"google_id"`
	Email     string `json:"email"`
	IsNewUser bool   `json:"is_new_user"`
	Message   string `json:"message"`
}

// GoogleAuth validates a Google ID token and creates or fetches the user.
func GoogleAuth(c *fiber.Ctx) error {
	var req GoogleAuthRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "token required"})
	}

	user, isNew, err := Auth.Authenticate(c.UserContext(), req.Token)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token de Google inválido o expirado"})
		}
		Log.Error().Err(err).Msg("google auth failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error en autenticación"})
	}

	message := "Usuario autenticado correctamente"
	if isNew {
		message = "¡Bienvenido a Ahorify! Usuario creado."
	}
	return c.Status(fiber.StatusCreated).JSON(GoogleAuthResponse{
		GoogleID:  user.GoogleID,
		Email:     user.Email,
		IsNewUser: isNew,
		Message:   message,
	})
}
