package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ahorify-go-be/aury"
	"ahorify-go-be/database"
	"ahorify-go-be/models"
	"ahorify-go-be/streak"
)

// maxRawTextLength bounds free-text input before it reaches the parser.
const maxRawTextLength = 500

// GastoCreateRequest is the smart text input payload: "Pizza 15 euros".
type GastoCreateRequest struct {
	RawText  string `json:"raw_text"`
	GoogleID string `json:"google_id"`
}

// GastoResponse returns the stored transaction with Aury's remark and the
// streak outcome.
type GastoResponse struct {
	Success       bool                `json:"success"`
	TransactionID uuid.UUID           `json:"transaction_id"`
	ParsedData    interface{}         `json:"parsed_data"`
	AuryResponse  string              `json:"aury_response"`
	Streak        streak.UpdateResult `json:"streak"`
	Message       string              `json:"message"`
}

// CreateGasto is the primary flow: parse the free text, generate Aury's
// commentary with streak context, then atomically insert the transaction
// and record today's activity on the streak.
func CreateGasto(c *fiber.Ctx) error {
	var req GastoCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(req.RawText) == 0 || len(req.RawText) > maxRawTextLength {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "raw_text must be 1-500 characters"})
	}

	user, ok := requireUser(c, req.GoogleID)
	if !ok {
		return nil
	}

	parsed := Parse.Parse(req.RawText)

	// Streak context for the commentary; the streak itself is updated
	// later, inside the same transaction as the insert.
	streakRow, err := Streaks.GetOrCreate(user.ID)
	if err != nil {
		Log.Error().Err(err).Msg("get or create streak")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load streak"})
	}

	tone, err := aury.ParseTone(user.AuryTone)
	if err != nil {
		tone = aury.ToneSarcastic
	}
	comment := Aury.Respond(c.UserContext(), aury.Request{
		RawText:       req.RawText,
		Amount:        parsed.Amount,
		Category:      parsed.Category,
		CurrentStreak: streakRow.CurrentStreak,
		UserGoal:      user.Goal,
		Tone:          tone,
	})

	transaction := models.Transaction{
		UserID:       user.ID,
		RawText:      req.RawText,
		Amount:       parsed.Amount,
		Category:     parsed.Category,
		Type:         parsed.Type,
		AuryResponse: comment,
	}

	var streakResult streak.UpdateResult
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}
		var txErr error
		streakResult, txErr = Streaks.UpdateWithin(tx, user.ID, time.Now())
		return txErr
	})
	if err != nil {
		Log.Error().Err(err).Str("user_id", user.ID.String()).Msg("register gasto failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error registrando gasto"})
	}

	return c.Status(fiber.StatusCreated).JSON(GastoResponse{
		Success:       true,
		TransactionID: transaction.ID,
		ParsedData:    parsed,
		AuryResponse:  comment,
		Streak:        streakResult,
		Message:       "Gasto registrado. " + streakResult.Message,
	})
}

// GastoFeedItem is one entry of the recent-expenses feed.
type GastoFeedItem struct {
	ID           uuid.UUID        `json:"id"`
	Amount       *decimal.Decimal `json:"amount"`
	Category     string           `json:"category"`
	RawText      string           `json:"raw_text"`
	AuryResponse string           `json:"aury_response"`
	CreatedAt    time.Time        `json:"created_at"`
}

// GastoFeedResponse is the recent-expenses feed.
type GastoFeedResponse struct {
	Gastos []GastoFeedItem `json:"gastos"`
	Total  int             `json:"total"`
}

// RecentGastos returns the user's latest transactions with commentary.
func RecentGastos(c *fiber.Ctx) error {
	user, ok := requireUser(c, c.Query("google_id"))
	if !ok {
		return nil
	}

	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var transactions []models.Transaction
	err := database.DB.
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(limit).
		Find(&transactions).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		Log.Error().Err(err).Msg("load transactions")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error obteniendo gastos"})
	}

	gastos := make([]GastoFeedItem, len(transactions))
	for i, t := range transactions {
		gastos[i] = GastoFeedItem{
			ID:           t.ID,
			Amount:       t.Amount,
			Category:     t.Category,
			RawText:      t.RawText,
			AuryResponse: t.AuryResponse,
			CreatedAt:    t.CreatedAt,
		}
	}

	return c.JSON(GastoFeedResponse{Gastos: gastos, Total: len(gastos)})
}
