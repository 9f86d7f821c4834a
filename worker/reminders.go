// Package worker runs the daily streak reminder dispatch on a schedule.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"ahorify-go-be/config"
	"ahorify-go-be/models"
	"ahorify-go-be/notify"
)

// TaskDailyReminders is the periodic task that nudges users whose streak
// needs activity today.
const TaskDailyReminders = "streak:daily_reminders"

// Reminder dispatches push reminders for streaks at risk of breaking.
type Reminder struct {
	db       *gorm.DB
	notifier *notify.Client
	log      zerolog.Logger
}

// NewReminder creates the reminder task handler.
func NewReminder(db *gorm.DB, notifier *notify.Client, log zerolog.Logger) *Reminder {
	return &Reminder{db: db, notifier: notifier, log: log}
}

// HandleDailyReminders sends a reminder to every user with an active
// streak whose last activity is not today. Users already past a one-day
// gap get the risk-alert wording instead.
func (r *Reminder) HandleDailyReminders(ctx context.Context, _ *asynq.Task) error {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	var streaks []models.Streak
	err := r.db.WithContext(ctx).
		Where("current_streak > 0 AND last_activity_date <= ?", yesterday).
		Find(&streaks).Error
	if err != nil {
		return fmt.Errorf("list streaks to remind: %w", err)
	}

	sent := 0
	for _, streak := range streaks {
		var subs []models.DeviceSubscription
		err := r.db.WithContext(ctx).
			Where("user_id = ? AND is_active = ?", streak.UserID, true).
			Find(&subs).Error
		if err != nil {
			r.log.Error().Err(err).Str("user_id", streak.UserID.String()).Msg("load subscriptions")
			continue
		}
		if len(subs) == 0 {
			continue
		}

		playerIDs := make([]string, len(subs))
		for i, sub := range subs {
			playerIDs[i] = sub.OneSignalPlayerID
		}

		atRisk := streak.LastActivityDate != nil && streak.LastActivityDate.Before(yesterday)
		n := notify.Notification{
			PlayerIDs: playerIDs,
			Heading:   "🔥 ¡No rompas tu racha!",
			Message:   fmt.Sprintf("Llevas %d días consecutivos. ¡Registra un gasto hoy para mantenerla!", streak.CurrentStreak),
			Data:      map[string]string{"type": "streak_reminder", "user_id": streak.UserID.String()},
			URL:       "/dashboard",
		}
		if atRisk {
			n.Heading = "⚠️ ¡Tu racha está en peligro!"
			n.Message = fmt.Sprintf("Tienes %d días de racha. ¡Registra un gasto ahora o la perderás!", streak.CurrentStreak)
			n.Data["type"] = "streak_risk"
		}

		if r.notifier.Send(ctx, n) {
			sent++
		}
	}

	r.log.Info().Int("candidates", len(streaks)).Int("sent", sent).Msg("daily reminders dispatched")
	return nil
}

// Start launches the asynq worker and scheduler in non-blocking mode and
// returns a stop function for graceful shutdown.
func Start(cfg *config.Config, db *gorm.DB, notifier *notify.Client, log zerolog.Logger) (stop func(), err error) {
	redisOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	location, err := time.LoadLocation(cfg.ReminderTimezone)
	if err != nil {
		log.Warn().Str("timezone", cfg.ReminderTimezone).Err(err).Msg("invalid timezone, using UTC")
		location = time.UTC
	}

	adapter := &asynqLoggerAdapter{log: log}

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		Logger:      adapter,
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskDailyReminders, NewReminder(db, notifier, log).HandleDailyReminders)
	if err := srv.Start(mux); err != nil {
		return nil, fmt.Errorf("start worker: %w", err)
	}

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Location: location,
		Logger:   adapter,
	})
	task := asynq.NewTask(
		TaskDailyReminders,
		nil,
		asynq.MaxRetry(3),
		asynq.Timeout(5*time.Minute),
		asynq.Retention(24*time.Hour),
		asynq.Unique(23*time.Hour), // prevent duplicates if the scheduler fires twice
	)
	entryID, err := scheduler.Register(cfg.ReminderSchedule, task)
	if err != nil {
		srv.Shutdown()
		return nil, fmt.Errorf("register reminder schedule: %w", err)
	}
	if err := scheduler.Start(); err != nil {
		srv.Shutdown()
		return nil, fmt.Errorf("start scheduler: %w", err)
	}

	log.Info().
		Str("schedule", cfg.ReminderSchedule).
		Str("timezone", location.String()).
		Str("entry_id", entryID).
		Msg("reminder scheduler started")

	return func() {
		scheduler.Shutdown()
		srv.Shutdown()
	}, nil
}

// asynqLoggerAdapter wraps zerolog to implement asynq.Logger
type asynqLoggerAdapter struct {
	log zerolog.Logger
}

func (a *asynqLoggerAdapter) Debug(args ...interface{}) { a.log.Debug().Msg(fmt.Sprint(args...)) }
func (a *asynqLoggerAdapter) Info(args ...interface{})  { a.log.Info().Msg(fmt.Sprint(args...)) }
func (a *asynqLoggerAdapter) Warn(args ...interface{})  { a.log.Warn().Msg(fmt.Sprint(args...)) }
func (a *asynqLoggerAdapter) Error(args ...interface{}) { a.log.Error().Msg(fmt.Sprint(args...)) }
func (a *asynqLoggerAdapter) Fatal(args ...interface{}) { a.log.Fatal().Msg(fmt.Sprint(args...)) }
