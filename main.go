package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"

	"ahorify-go-be/auth"
	"ahorify-go-be/aury"
	"ahorify-go-be/config"
	"ahorify-go-be/database"
	"ahorify-go-be/handlers"
	"ahorify-go-be/logger"
	"ahorify-go-be/notify"
	"ahorify-go-be/parser"
	"ahorify-go-be/streak"
	"ahorify-go-be/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New()

	// Connect to Database
	if err := database.ConnectDB(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer database.Close()
	log.Info().Msg("connected to database")

	// Services
	var generator aury.Generator
	if cfg.GeminiAPIKey != "" {
		generator = &aury.GeminiGenerator{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel}
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, Aury will use canned responses")
	}
	aurySvc := aury.NewService(generator, aury.DefaultFallbacks(), log)
	streakSvc := streak.NewService(database.DB, log)
	authSvc := auth.NewService(database.DB, cfg.GoogleClientID, log)
	expenseParser := parser.New(parser.DefaultTables())

	handlers.Init(cfg, authSvc, streakSvc, aurySvc, expenseParser, log)

	// Daily reminder worker, only when Redis is configured
	if cfg.RedisURL != "" {
		notifier := notify.NewClient(cfg.OneSignalAppID, cfg.OneSignalRESTAPIKey, log)
		stop, err := worker.Start(cfg, database.DB, notifier, log)
		if err != nil {
			log.Fatal().Err(err).Msg("reminder worker failed to start")
		}
		defer stop()
	}

	// Initialize Fiber app
	app := fiber.New()

	// Middleware
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health Check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Google Auth
	api.Post("/auth/google", handlers.GoogleAuth)

	// Smart Input + Aury + Feed
	api.Post("/gasto", handlers.CreateGasto)
	api.Get("/gastos/recent", handlers.RecentGastos)

	// Streak + Freeze
	api.Get("/racha", handlers.GetRacha)
	api.Post("/streak/freeze", handlers.UseFreeze)

	// User preferences
	api.Post("/user/goal", handlers.SetGoal)
	api.Post("/user/aury-tone", handlers.SetAuryTone)
	api.Get("/user/aury-tone", handlers.GetAuryTone)

	// Waitlist / beta
	api.Get("/waitlist/status", handlers.WaitlistStatus)
	api.Get("/public/beta-status", handlers.BetaStatus)

	// Push notifications
	api.Post("/notifications/subscribe", handlers.SubscribeDevice)
	api.Post("/notifications/unsubscribe", handlers.UnsubscribeDevice)

	// Start Server
	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
