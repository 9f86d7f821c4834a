// Package streak implements the consecutive-day activity state machine,
// including the weekly freeze protector (one free use per ISO week).
package streak

import (
	"errors"
	"fmt"
	"time"

	"ahorify-go-be/models"
)

// ErrPastDate is returned when activity is recorded for a date before the
// last recorded one. Callers must always advance or repeat the current date.
var ErrPastDate = errors.New("streak: activity date is before last recorded activity")

// Outcome classifies what an update did to the streak.
type Outcome string

const (
	OutcomeStarted       Outcome = "started"
	OutcomeAlreadyActive Outcome = "already_active"
	OutcomeExtended      Outcome = "extended"
	OutcomeProtected     Outcome = "protected"
	OutcomeSecondLoss    Outcome = "reset_second_loss"
	OutcomeRestarted     Outcome = "restarted"
)

// UpdateResult reports the outcome of recording activity for one date.
type UpdateResult struct {
	StreakUpdated bool    `json:"streak_updated"`
	CurrentStreak int     `json:"current_streak"`
	FreezeUsed    bool    `json:"freeze_used"`
	Outcome       Outcome `json:"outcome"`
	Message       string  `json:"message"`
}

// dateOnly truncates a timestamp to its calendar date in UTC.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween counts calendar days from one date to another.
func daysBetween(from, to time.Time) int {
	return int(dateOnly(to).Sub(dateOnly(from)).Hours() / 24)
}

// weekNumber returns a single integer that orders ISO weeks:
// isoYear*100 + isoWeek. Weeks run Monday to Sunday.
func weekNumber(d time.Time) int {
	year, week := d.ISOWeek()
	return year*100 + week
}

// rollWeeklyCounter resets the freeze counter when the ISO week has
// advanced past the week of the last freeze use. Lazy: called on both the
// write path and the availability query.
func rollWeeklyCounter(user *models.User, current time.Time) {
	if user.LastWeeklyFreezeDate == nil {
		return
	}
	if weekNumber(current) > weekNumber(*user.LastWeeklyFreezeDate) {
		user.WeeklyFreezeCount = 0
		user.LastWeeklyFreezeDate = nil
	}
}

// canUseWeeklyFreeze reports freeze eligibility against the current fields.
// Eligible when the freeze was never used, was used in an earlier ISO week,
// or was used this week but the counter is already back at zero.
func canUseWeeklyFreeze(user *models.User, current time.Time) bool {
	if user.LastWeeklyFreezeDate == nil {
		return true
	}
	lastWeek := weekNumber(*user.LastWeeklyFreezeDate)
	currentWeek := weekNumber(current)
	if currentWeek > lastWeek {
		return true
	}
	if currentWeek == lastWeek {
		return user.WeeklyFreezeCount == 0
	}
	return false
}

// advance applies one activity record to the streak and the user's freeze
// bookkeeping. It mutates both structs in place; persistence is the
// caller's job. A negative gap returns ErrPastDate with nothing mutated.
func advance(streak *models.Streak, user *models.User, activityDate time.Time) (UpdateResult, error) {
	day := dateOnly(activityDate)

	if streak.LastActivityDate == nil {
		streak.CurrentStreak = 1
		streak.LongestStreak = 1
		streak.LastActivityDate = &day
		return UpdateResult{
			StreakUpdated: true,
			CurrentStreak: 1,
			Outcome:       OutcomeStarted,
			Message:       "🎉 ¡Comienza tu racha financiera!",
		}, nil
	}

	gap := daysBetween(*streak.LastActivityDate, day)
	switch {
	case gap < 0:
		return UpdateResult{}, fmt.Errorf("%w: last %s, got %s",
			ErrPastDate,
			streak.LastActivityDate.Format("2006-01-02"),
			day.Format("2006-01-02"))

	case gap == 0:
		return UpdateResult{
			StreakUpdated: false,
			CurrentStreak: streak.CurrentStreak,
			Outcome:       OutcomeAlreadyActive,
			Message:       "Racha mantenida - ya activo hoy",
		}, nil

	case gap == 1:
		streak.CurrentStreak++
		if streak.CurrentStreak > streak.LongestStreak {
			streak.LongestStreak = streak.CurrentStreak
		}
		streak.LastActivityDate = &day
		return UpdateResult{
			StreakUpdated: true,
			CurrentStreak: streak.CurrentStreak,
			Outcome:       OutcomeExtended,
			Message:       fmt.Sprintf("🔥 ¡Racha de %d días!", streak.CurrentStreak),
		}, nil

	default:
		return handleBreak(streak, user, day), nil
	}
}

// handleBreak decides whether a gap of more than one day is absorbed by the
// weekly freeze, resets the streak to zero (second loss in the same week),
// or restarts it at one.
func handleBreak(streak *models.Streak, user *models.User, day time.Time) UpdateResult {
	rollWeeklyCounter(user, day)

	if canUseWeeklyFreeze(user, day) {
		user.LastWeeklyFreezeDate = &day
		user.WeeklyFreezeCount++
		streak.LastActivityDate = &day
		return UpdateResult{
			StreakUpdated: false, // protected, not incremented
			CurrentStreak: streak.CurrentStreak,
			FreezeUsed:    true,
			Outcome:       OutcomeProtected,
			Message:       fmt.Sprintf("🛡️ Racha protegida con protector semanal (%d/1 esta semana)", user.WeeklyFreezeCount),
		}
	}

	if user.WeeklyFreezeCount >= 1 {
		// Second loss in the same week: back to zero, and the counter is
		// cleared right away for the following week.
		streak.CurrentStreak = 0
		streak.LastActivityDate = &day
		user.WeeklyFreezeCount = 0
		user.LastWeeklyFreezeDate = nil
		return UpdateResult{
			StreakUpdated: true,
			CurrentStreak: 0,
			Outcome:       OutcomeSecondLoss,
			Message:       "💔 Racha perdida dos veces esta semana. Racha reiniciada a 0.",
		}
	}

	streak.CurrentStreak = 1
	if streak.LongestStreak < 1 {
		streak.LongestStreak = 1
	}
	streak.LastActivityDate = &day
	return UpdateResult{
		StreakUpdated: true,
		CurrentStreak: 1,
		Outcome:       OutcomeRestarted,
		Message:       "💔 Racha rota. Nueva racha iniciada.",
	}
}
